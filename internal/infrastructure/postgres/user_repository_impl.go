package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/oksasatya/go-commerce-user/internal/domain/entity"
	"github.com/oksasatya/go-commerce-user/internal/domain/errs"
	"github.com/oksasatya/go-commerce-user/internal/domain/repository"
)

// DBTX is the query surface shared by *pgxpool.Pool, pgx.Tx and pgxmock.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ExistsByLoginID(ctx context.Context, loginID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE login_id = $1)`, loginID).Scan(&exists)
	if err != nil {
		return false, oops.Code("USER_EXISTS_QUERY_FAILED").With("login_id", loginID).Wrap(err)
	}
	return exists, nil
}

func (r *UserRepository) FindByLoginID(ctx context.Context, loginID string) (*entity.User, error) {
	var (
		id                       int64
		login, hash, name, email string
		birthDate                time.Time
	)
	row := r.db.QueryRow(ctx, `
		SELECT id, login_id, password_hash, name, birth_date, email
		FROM users
		WHERE login_id = $1
	`, loginID)
	if err := row.Scan(&id, &login, &hash, &name, &birthDate, &email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, oops.Code("USER_FIND_FAILED").With("login_id", loginID).Wrap(err)
	}
	return entity.Retrieve(id, login, hash, name, birthDate, email), nil
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	if u.HasIdentity() {
		return r.update(ctx, u)
	}
	return r.insert(ctx, u)
}

func (r *UserRepository) insert(ctx context.Context, u *entity.User) (*entity.User, error) {
	var id int64
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (login_id, password_hash, name, birth_date, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, u.LoginID(), u.PasswordHash(), u.Name(), u.BirthDate(), u.Email())
	if err := row.Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return nil, oops.Code("USER_LOGIN_ID_TAKEN").With("login_id", u.LoginID()).Wrap(errors.Join(repository.ErrLoginIDTaken, err))
		}
		return nil, oops.Code("USER_INSERT_FAILED").With("login_id", u.LoginID()).Wrap(err)
	}
	return u.WithID(id), nil
}

func (r *UserRepository) update(ctx context.Context, u *entity.User) (*entity.User, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, name = $2, birth_date = $3, email = $4, updated_at = now()
		WHERE id = $5
	`, u.PasswordHash(), u.Name(), u.BirthDate(), u.Email(), u.ID())
	if err != nil {
		return nil, oops.Code("USER_UPDATE_FAILED").With("user_id", u.ID()).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, errs.New(errs.KindNotFound, "", "")
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

var _ repository.UserRepository = (*UserRepository)(nil)
