package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrGroupNotFound        = errors.New("group not found")
	ErrGroupRequestNotFound = errors.New("group request not found")
	ErrRequestNotPending    = errors.New("group request is not pending")
	ErrTokenNotFound        = errors.New("token not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrDuplicate            = errors.New("duplicate record")
)

// translate maps gorm sentinel errors onto repository ones.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
