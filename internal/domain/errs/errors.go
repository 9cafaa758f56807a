package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. The string value doubles as the stable error
// code exposed to API clients.
type Kind string

const (
	KindInvalidLoginID   Kind = "USER_INVALID_LOGIN_ID"
	KindInvalidPassword  Kind = "USER_INVALID_PASSWORD"
	KindInvalidName      Kind = "USER_INVALID_NAME"
	KindDuplicateLoginID Kind = "USER_DUPLICATE_LOGIN_ID"
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindNotFound         Kind = "NOT_FOUND"
	KindBadRequest       Kind = "BAD_REQUEST"
	KindInternal         Kind = "INTERNAL_ERROR"
)

// Reason narrows down why a password was rejected.
type Reason string

const (
	ReasonBadCharacters     Reason = "bad_characters"
	ReasonContainsBirthDate Reason = "contains_birth_date"
	ReasonTooLong           Reason = "too_long"
	ReasonCurrentMismatch   Reason = "current_mismatch"
	ReasonUnchanged         Reason = "unchanged"
	ReasonPolicyViolation   Reason = "policy_violation"
)

var defaultMessages = map[Kind]string{
	KindInvalidLoginID:   "로그인 ID는 영문 대소문자와 숫자만 사용할 수 있습니다.",
	KindInvalidPassword:  "비밀번호는 영문, 숫자, 허용된 특수문자만 사용할 수 있습니다.",
	KindInvalidName:      "이름은 한글만 입력할 수 있습니다.",
	KindDuplicateLoginID: "이미 사용 중인 로그인 ID입니다.",
	KindUnauthorized:     "인증에 실패했습니다.",
	KindNotFound:         "존재하지 않는 요청입니다.",
	KindBadRequest:       "잘못된 요청입니다.",
	KindInternal:         "일시적인 오류가 발생했습니다.",
}

// Error is the domain error carried from the policy and service layers up to
// the HTTP surface.
type Error struct {
	Kind    Kind
	Reason  Reason
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = DefaultMessage(e.Kind)
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s (%s): %s", e.Kind, e.Reason, msg)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind. A target without a reason
// matches any reason of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidLoginID   = &Error{Kind: KindInvalidLoginID}
	ErrInvalidPassword  = &Error{Kind: KindInvalidPassword}
	ErrInvalidName      = &Error{Kind: KindInvalidName}
	ErrDuplicateLoginID = &Error{Kind: KindDuplicateLoginID}
	ErrUnauthorized     = &Error{Kind: KindUnauthorized}
	ErrNotFound         = &Error{Kind: KindNotFound}
)

// New builds an error of the given kind. An empty message falls back to the
// kind's default.
func New(kind Kind, reason Reason, message string) *Error {
	return &Error{Kind: kind, Reason: reason, Message: message}
}

// Wrap attaches a cause to a new error of the given kind.
func Wrap(kind Kind, reason Reason, message string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Message: message, Err: err}
}

func Unauthorized() *Error { return New(KindUnauthorized, "", "") }

// KindOf reports the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			return e.Message
		}
		return DefaultMessage(e.Kind)
	}
	return DefaultMessage(KindInternal)
}

func DefaultMessage(kind Kind) string {
	if m, ok := defaultMessages[kind]; ok {
		return m
	}
	return defaultMessages[KindInternal]
}
