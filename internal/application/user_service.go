package application

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-commerce-user/internal/domain/entity"
	"github.com/oksasatya/go-commerce-user/internal/domain/errs"
	repo "github.com/oksasatya/go-commerce-user/internal/domain/repository"
)

type Service struct {
	Tx       repo.Transactor
	Hasher   entity.PasswordHasher
	Notifier Notifier
	Metrics  *Metrics
	Logger   *logrus.Logger
	Clock    clockwork.Clock
}

func NewService(tx repo.Transactor, hasher entity.PasswordHasher, notifier Notifier, metrics *Metrics, logger *logrus.Logger, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		Tx:       tx,
		Hasher:   hasher,
		Notifier: notifier,
		Metrics:  metrics,
		Logger:   logger,
		Clock:    clock,
	}
}

type SignUpInput struct {
	LoginID   string
	Password  string
	Name      string
	BirthDate time.Time
	Email     string
	Meta      RequestMeta
}

type ChangePasswordInput struct {
	LoginID         string
	HeaderPassword  string
	CurrentPassword string
	NewPassword     string
	Meta            RequestMeta
}

// AccountView is the outward projection of a user. It never carries the
// password; Name is masked when returned from GetMe.
type AccountView struct {
	LoginID   string
	Name      string
	BirthDate time.Time
	Email     string
}

// SignUp registers a new account. The duplicate check runs before hashing
// and the insert runs last; a unique violation from storage is reported as
// a duplicate login id as well.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (view *AccountView, err error) {
	defer func() { s.Metrics.observe(opSignUp, err) }()

	var saved *entity.User
	err = s.Tx.WithinTx(ctx, func(ctx context.Context, users repo.UserRepository) error {
		exists, err := users.ExistsByLoginID(ctx, in.LoginID)
		if err != nil {
			return err
		}
		if exists {
			return errs.New(errs.KindDuplicateLoginID, "", "")
		}
		u, err := entity.Register(in.LoginID, in.Password, in.Name, in.BirthDate, in.Email, s.Hasher)
		if err != nil {
			return err
		}
		saved, err = users.Save(ctx, u)
		if errors.Is(err, repo.ErrLoginIDTaken) {
			return errs.Wrap(errs.KindDuplicateLoginID, "", "", err)
		}
		return err
	})
	if err != nil {
		s.logFailure("sign up", in.LoginID, err)
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"login_id": saved.LoginID(), "user_id": saved.ID()}).Info("account created")
	}
	s.notify(ctx, EventAccountSignedUp, saved, in.Meta)
	return &AccountView{LoginID: saved.LoginID()}, nil
}

// GetMe authenticates with the header credentials and returns the profile
// with a masked name. Unknown login ids and wrong passwords fail alike.
func (s *Service) GetMe(ctx context.Context, loginID, password string) (view *AccountView, err error) {
	defer func() { s.Metrics.observe(opGetMe, err) }()

	err = s.Tx.WithinTx(ctx, func(ctx context.Context, users repo.UserRepository) error {
		u, err := s.authenticate(ctx, users, loginID, password)
		if err != nil {
			return err
		}
		view = &AccountView{
			LoginID:   u.LoginID(),
			Name:      u.MaskedName(),
			BirthDate: u.BirthDate(),
			Email:     u.Email(),
		}
		return nil
	})
	if err != nil {
		s.logFailure("get me", loginID, err)
		return nil, err
	}
	return view, nil
}

// ChangePassword authenticates the request with the header password, checks
// the current password, then replaces the hash with one of the new password.
func (s *Service) ChangePassword(ctx context.Context, in ChangePasswordInput) (err error) {
	defer func() { s.Metrics.observe(opChangePassword, err) }()

	var updated *entity.User
	err = s.Tx.WithinTx(ctx, func(ctx context.Context, users repo.UserRepository) error {
		u, err := s.authenticate(ctx, users, in.LoginID, in.HeaderPassword)
		if err != nil {
			return err
		}
		if !u.MatchesPassword(in.CurrentPassword, s.Hasher) {
			return errs.New(errs.KindInvalidPassword, errs.ReasonCurrentMismatch, "현재 비밀번호가 일치하지 않습니다.")
		}
		if in.CurrentPassword == in.NewPassword {
			return errs.New(errs.KindInvalidPassword, errs.ReasonUnchanged, "새 비밀번호는 현재 비밀번호와 달라야 합니다.")
		}
		next, err := u.WithPassword(in.NewPassword, s.Hasher)
		if err != nil {
			var de *errs.Error
			if errors.As(err, &de) && de.Kind == errs.KindInvalidPassword {
				return errs.Wrap(errs.KindInvalidPassword, errs.ReasonPolicyViolation, errs.MessageOf(de), de)
			}
			return err
		}
		updated, err = users.Save(ctx, next)
		return err
	})
	if err != nil {
		s.logFailure("change password", in.LoginID, err)
		return err
	}

	if s.Logger != nil {
		s.Logger.WithField("login_id", updated.LoginID()).Info("password changed")
	}
	s.notify(ctx, EventPasswordChanged, updated, in.Meta)
	return nil
}

func (s *Service) authenticate(ctx context.Context, users repo.UserRepository, loginID, password string) (*entity.User, error) {
	u, err := users.FindByLoginID(ctx, loginID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.MatchesPassword(password, s.Hasher) {
		return nil, errs.Unauthorized()
	}
	return u, nil
}

func (s *Service) notify(ctx context.Context, typ string, u *entity.User, meta RequestMeta) {
	if s.Notifier == nil {
		return
	}
	ev := AccountEvent{
		Type:       typ,
		LoginID:    u.LoginID(),
		MaskedName: u.MaskedName(),
		Email:      u.Email(),
		Meta:       meta,
		OccurredAt: s.Clock.Now().UTC(),
	}
	if err := s.Notifier.Notify(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"event": typ, "login_id": u.LoginID()}).Warn("account notification failed")
	}
}

func (s *Service) logFailure(op, loginID string, err error) {
	if s.Logger == nil {
		return
	}
	entry := s.Logger.WithError(err).WithFields(logrus.Fields{"op": op, "login_id": loginID})
	if errs.KindOf(err) == errs.KindInternal {
		entry.Error("account operation failed")
		return
	}
	entry.Warn("account operation rejected")
}
