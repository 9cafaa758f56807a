// Package credential holds the validation rules shared by every flow that
// sets a login id, a name or a password.
package credential

import (
	"regexp"
	"strings"
	"time"

	"github.com/oksasatya/go-commerce-user/internal/domain/errs"
)

const (
	birthDateCompact = "20060102"
	birthDateDashed  = "2006-01-02"
)

var (
	loginIDPattern  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	passwordPattern = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_+\-=\[\]{}|;:',.<>?/]+$`)
	namePattern     = regexp.MustCompile(`^[가-힣]+$`)
)

// ValidateLoginID accepts non-empty ASCII letters and digits only.
func ValidateLoginID(loginID string) error {
	if !loginIDPattern.MatchString(loginID) {
		return errs.New(errs.KindInvalidLoginID, "", "")
	}
	return nil
}

// ValidatePassword checks the allowed character set first, then rejects
// passwords containing the birth date as yyyyMMdd or yyyy-MM-dd.
func ValidatePassword(password string, birthDate time.Time) error {
	if !passwordPattern.MatchString(password) {
		return errs.New(errs.KindInvalidPassword, errs.ReasonBadCharacters, "")
	}
	if strings.Contains(password, birthDate.Format(birthDateCompact)) {
		return errs.New(errs.KindInvalidPassword, errs.ReasonContainsBirthDate, "비밀번호에 생년월일을 포함할 수 없습니다.")
	}
	if strings.Contains(password, birthDate.Format(birthDateDashed)) {
		return errs.New(errs.KindInvalidPassword, errs.ReasonContainsBirthDate, "비밀번호에 생년월일을 포함할 수 없습니다.")
	}
	return nil
}

// ValidateName accepts Hangul syllables (U+AC00..U+D7A3) only.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return errs.New(errs.KindInvalidName, "", "")
	}
	return nil
}

// MaskName replaces the last rune of name with '*'.
func MaskName(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[:len(runes)-1]) + "*"
}
