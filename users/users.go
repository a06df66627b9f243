package users

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
	"github.com/jrsteele09/go-mall-client/mallmodel"
	"golang.org/x/crypto/bcrypt"
)

// User is a mall customer or administrator account
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialize
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	IsAdmin      bool      `json:"isAdmin"`
	DateJoined   time.Time `json:"date_joined,omitempty"`
	LastLogin    time.Time `json:"last_login,omitempty"`
}

// UserType maps the administrator flag onto the login body's userType
func (u *User) UserType() mallmodel.UserType {
	if u.IsAdmin {
		return mallmodel.UserTypeAdmin
	}
	return mallmodel.UserTypeCustomer
}

// ValidateRegistration checks a registration request before it is sent or stored.
// Username and password are mandatory; email, when present, must parse.
func ValidateRegistration(r mallmodel.RegisterRequest) error {
	if strings.TrimSpace(r.Username) == "" || r.Password == "" {
		return fmt.Errorf("username and password are required: %w", mallerrors.ErrInvalidInput)
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return fmt.Errorf("invalid email %q: %w", r.Email, mallerrors.ErrInvalidInput)
		}
	}
	if err := ValidatePasswordStrength(r.Password); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), mallerrors.ErrInvalidInput)
	}
	return nil
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
