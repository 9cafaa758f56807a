package entity

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-commerce-user/internal/domain/credential"
	"github.com/oksasatya/go-commerce-user/internal/domain/errs"
)

// PasswordHasher is a one-way hash with a constant-time verify.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// User is the aggregate root for the user domain.
// The password field always holds a hash. Instances are never mutated;
// changes produce a new User.
type User struct {
	id           int64
	loginID      string
	passwordHash string
	name         string
	birthDate    time.Time
	email        string
}

// Register validates fresh input and hashes the raw password. The returned
// user has no identity until it is saved.
func Register(loginID, rawPassword, name string, birthDate time.Time, email string, hasher PasswordHasher) (*User, error) {
	if err := credential.ValidateLoginID(loginID); err != nil {
		return nil, err
	}
	if err := credential.ValidatePassword(rawPassword, birthDate); err != nil {
		return nil, err
	}
	if err := credential.ValidateName(name); err != nil {
		return nil, err
	}
	hash, err := hashPassword(hasher, rawPassword)
	if err != nil {
		return nil, err
	}
	return &User{
		loginID:      loginID,
		passwordHash: hash,
		name:         name,
		birthDate:    dateOnly(birthDate),
		email:        email,
	}, nil
}

// Retrieve rebuilds a user from stored data without validation.
func Retrieve(id int64, loginID, passwordHash, name string, birthDate time.Time, email string) *User {
	return &User{
		id:           id,
		loginID:      loginID,
		passwordHash: passwordHash,
		name:         name,
		birthDate:    dateOnly(birthDate),
		email:        email,
	}
}

func (u *User) ID() int64            { return u.id }
func (u *User) HasIdentity() bool    { return u.id != 0 }
func (u *User) LoginID() string      { return u.loginID }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Name() string         { return u.name }
func (u *User) BirthDate() time.Time { return u.birthDate }
func (u *User) Email() string        { return u.email }

// MaskedName is the display name with its last character hidden.
func (u *User) MaskedName() string { return credential.MaskName(u.name) }

// MatchesPassword reports whether plain verifies against the stored hash.
func (u *User) MatchesPassword(plain string, hasher PasswordHasher) bool {
	return hasher.Verify(plain, u.passwordHash)
}

// WithPassword validates newPassword against the birth date and returns a
// copy carrying its hash.
func (u *User) WithPassword(newPassword string, hasher PasswordHasher) (*User, error) {
	if err := credential.ValidatePassword(newPassword, u.birthDate); err != nil {
		return nil, err
	}
	hash, err := hashPassword(hasher, newPassword)
	if err != nil {
		return nil, err
	}
	next := *u
	next.passwordHash = hash
	return &next, nil
}

// hashPassword reports a password longer than bcrypt's 72-byte input limit
// as an invalid password rather than a hashing failure.
func hashPassword(hasher PasswordHasher, plain string) (string, error) {
	hash, err := hasher.Hash(plain)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errs.Wrap(errs.KindInvalidPassword, errs.ReasonTooLong, "비밀번호가 너무 깁니다.", err)
	}
	return hash, err
}

// WithID returns a copy carrying the identity assigned by storage.
func (u *User) WithID(id int64) *User {
	next := *u
	next.id = id
	return &next
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
