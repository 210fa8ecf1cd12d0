package auth

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator knowing the "username" and "roomname" tags.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return domain.ValidUsername(fl.Field().String())
	})
	_ = v.RegisterValidation("roomname", func(fl validator.FieldLevel) bool {
		return domain.ValidRoomName(fl.Field().String())
	})
	return v
}

type SignupRequest struct {
	Username        string `json:"username" validate:"required,username"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ValidateSignup applies field rules, then the confirmation and complexity rules.
func ValidateSignup(v *validator.Validate, req SignupRequest) error {
	if err := v.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidArgument, err)
	}
	if req.Password != req.ConfirmPassword {
		return errors.ErrPasswordMismatch
	}
	if !isPasswordComplex(req.Password) {
		return errors.ErrInvalidPassword
	}
	return nil
}

// isPasswordComplex requires a letter, a digit and a symbol.
func isPasswordComplex(s string) bool {
	var hasLetter, hasNumber, hasSpecial bool
	for _, char := range s {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}
	return hasLetter && hasNumber && hasSpecial
}
