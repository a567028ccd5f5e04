package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/itchan-dev/kindboard/shared/errors"
)

const (
	maxTitleLen         = 100
	maxContentLen       = 10_000
	maxKindBoardNameLen = 64
	minUsernameLen      = 3
	maxUsernameLen      = 32
	minPasswordLen      = 8
	maxPasswordLen      = 72 // bcrypt ignores the rest
)

func IsAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

type BoardValidator struct{}

func (v *BoardValidator) Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.InvalidArgument("Title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return errors.InvalidArgument("Title is too long")
	}
	return nil
}

func (v *BoardValidator) Content(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.InvalidArgument("Content is required")
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return errors.InvalidArgument("Content is too long")
	}
	return nil
}

type KindBoardNameValidator struct{}

func (v *KindBoardNameValidator) Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.InvalidArgument("Kind board name is required")
	}
	if utf8.RuneCountInString(name) > maxKindBoardNameLen {
		return errors.InvalidArgument("Kind board name is too long")
	}
	return nil
}

type UserValidator struct{}

func (v *UserValidator) Username(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLen || n > maxUsernameLen {
		return errors.InvalidArgument("Username must be 3 to 32 characters long")
	}
	if !IsAlphanumeric(username) {
		return errors.InvalidArgument("Username should contain only letters and digits")
	}
	return nil
}

func (v *UserValidator) Password(password string) error {
	if len(password) < minPasswordLen {
		return errors.InvalidArgument("Password is too short")
	}
	if len(password) > maxPasswordLen {
		return errors.InvalidArgument("Password is too long")
	}
	return nil
}
