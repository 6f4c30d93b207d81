// Package pixformat validates Pix key values against their declared type.
package pixformat

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/finaya/pixwallet/internal/apperrors"
	"github.com/finaya/pixwallet/internal/core/domain"
)

var (
	// local-part@domain; intentionally permissive, the bank registry is the
	// final authority on deliverability.
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)

	// E.164-style: leading +, country code starting 1-9, up to 15 digits.
	phonePattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
)

// Validate checks that value is well formed for the given key type.
func Validate(value string, keyType domain.PixKeyType) error {
	switch keyType {
	case domain.PixKeyEmail:
		if !emailPattern.MatchString(value) {
			return fmt.Errorf("%w: invalid email format: %s", apperrors.ErrValidation, value)
		}
	case domain.PixKeyPhone:
		if !phonePattern.MatchString(value) {
			return fmt.Errorf("%w: invalid phone format, expected +5511999999999 style", apperrors.ErrValidation)
		}
	case domain.PixKeyEVP:
		// EVP keys are canonical 36-character UUIDs.
		if len(value) != 36 {
			return fmt.Errorf("%w: invalid EVP format, expected canonical UUID", apperrors.ErrValidation)
		}
		if _, err := uuid.Parse(value); err != nil {
			return fmt.Errorf("%w: invalid EVP format, expected canonical UUID", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unsupported pix key type: %s", apperrors.ErrValidation, keyType)
	}
	return nil
}
