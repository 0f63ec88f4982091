// Package validation provides input validation utilities
package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 4

// User-facing account validation messages.
const (
	MsgRegisterRequired  = "이메일, 이름, 비밀번호는 필수 입력 항목입니다."
	MsgPasswordMismatch  = "비밀번호가 일치하지 않습니다."
	MsgPasswordTooShort  = "비밀번호는 4자 이상이어야 합니다."
	MsgLoginRequired     = "이메일과 비밀번호를 입력해주세요."
	MsgEmailTaken        = "이미 사용 중인 이메일입니다."
	MsgRegisterFailed    = "회원가입에 실패했습니다. 다시 시도해주세요."
	MsgInvalidCredential = "이메일 또는 비밀번호가 올바르지 않습니다."
)

// ValidateRegistration checks a sign-up form. Rules apply in order and the
// first failure is returned.
func ValidateRegistration(email, name, password, passwordConfirm string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(name) == "" || strings.TrimSpace(password) == "" {
		return errors.New(MsgRegisterRequired)
	}
	if password != passwordConfirm {
		return errors.New(MsgPasswordMismatch)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return errors.New(MsgPasswordTooShort)
	}
	return nil
}

// ValidateLogin checks that both credentials are present.
func ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return errors.New(MsgLoginRequired)
	}
	return nil
}

// NormalizeEmail trims and lowercases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
