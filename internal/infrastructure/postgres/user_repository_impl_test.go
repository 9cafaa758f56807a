package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-commerce-user/internal/domain/entity"
	"github.com/oksasatya/go-commerce-user/internal/domain/errs"
	"github.com/oksasatya/go-commerce-user/internal/domain/repository"
)

var birth = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestUserRepository_ExistsByLoginID(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      bool
		wantErr   bool
	}{
		{
			name: "exists",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("testuser1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			want: true,
		},
		{
			name: "absent",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("testuser1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
			want: false,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("testuser1").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.setupMock(mock)

			got, err := NewUserRepository(mock).ExistsByLoginID(context.Background(), "testuser1")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "connection refused")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_FindByLoginID(t *testing.T) {
	columns := []string{"id", "login_id", "password_hash", "name", "birth_date", "email"}

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, login_id, password_hash, name, birth_date, email`).
			WithArgs("testuser1").
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(int64(3), "testuser1", "hash", "홍길동", birth, "test@example.com"))

		u, err := NewUserRepository(mock).FindByLoginID(context.Background(), "testuser1")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, int64(3), u.ID())
		assert.Equal(t, "testuser1", u.LoginID())
		assert.Equal(t, "hash", u.PasswordHash())
		assert.Equal(t, "홍길동", u.Name())
		assert.Equal(t, birth, u.BirthDate())
		assert.Equal(t, "test@example.com", u.Email())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, login_id`).
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		u, err := NewUserRepository(mock).FindByLoginID(context.Background(), "ghost")
		require.NoError(t, err)
		assert.Nil(t, u)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, login_id`).
			WithArgs("testuser1").
			WillReturnError(errors.New("timeout"))

		u, err := NewUserRepository(mock).FindByLoginID(context.Background(), "testuser1")
		require.Error(t, err)
		assert.Nil(t, u)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_SaveInsert(t *testing.T) {
	fresh := entity.Retrieve(0, "testuser1", "hash", "홍길동", birth, "test@example.com")

	t.Run("assigns identity", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("testuser1", "hash", "홍길동", birth, "test@example.com").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

		saved, err := NewUserRepository(mock).Save(context.Background(), fresh)
		require.NoError(t, err)
		assert.Equal(t, int64(11), saved.ID())
		assert.False(t, fresh.HasIdentity())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("testuser1", "hash", "홍길동", birth, "test@example.com").
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_login_id_key"})

		_, err = NewUserRepository(mock).Save(context.Background(), fresh)
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrLoginIDTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("testuser1", "hash", "홍길동", birth, "test@example.com").
			WillReturnError(errors.New("disk full"))

		_, err = NewUserRepository(mock).Save(context.Background(), fresh)
		require.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrLoginIDTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_SaveUpdate(t *testing.T) {
	existing := entity.Retrieve(5, "testuser1", "newhash", "홍길동", birth, "test@example.com")

	t.Run("updates by id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE users`).
			WithArgs("newhash", "홍길동", birth, "test@example.com", int64(5)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		saved, err := NewUserRepository(mock).Save(context.Background(), existing)
		require.NoError(t, err)
		assert.Equal(t, existing, saved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE users`).
			WithArgs("newhash", "홍길동", birth, "test@example.com", int64(5)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		_, err = NewUserRepository(mock).Save(context.Background(), existing)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
