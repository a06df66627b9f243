package server

import (
	"net/http"
	"net/mail"
	"strings"

	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/jrsteele09/go-mall-client/users"
	"github.com/rs/zerolog/log"
)

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req mallmodel.LoginRequest
		if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.Username) == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "username and password are required")
			return
		}

		user, err := s.users.GetByUsername(strings.TrimSpace(req.Username))
		if err != nil || !users.CheckPasswordHash(req.Password, user.PasswordHash) {
			log.Info().Str("username", req.Username).Msg("[Server LoginHandler] invalid credentials")
			writeError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}

		credential, err := s.creator.Create(user.ID, user.Username, user.IsAdmin)
		if err != nil {
			log.Err(err).Int64("user_id", user.ID).Msg("[Server LoginHandler] failed to issue credential")
			writeError(w, http.StatusInternalServerError, "failed to issue credential")
			return
		}

		user.LastLogin = s.now()
		if err := s.users.Update(user); err != nil {
			log.Warn().Err(err).Int64("user_id", user.ID).Msg("[Server LoginHandler] failed to record last login")
		}

		writeSuccess(w, http.StatusOK, "login successful", envelope{
			"token": credential,
			"user": mallmodel.LoginUser{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
				UserType: user.UserType(),
			},
		})
	}
}

// LogoutHandler revokes the presented credential until it would have expired
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r.Context())
		if err := s.revoked.Revoke(claims); err != nil {
			writeDomainError(w, err, "logout failed")
			return
		}
		writeSuccess(w, http.StatusOK, "logged out", nil)
	}
}

// RegisterHandler creates a customer account. Administrator accounts are never
// created through self-registration.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req mallmodel.RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			writeDomainError(w, err, "registration failed")
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if err := users.ValidateRegistration(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		hash, err := users.HashPassword(req.Password)
		if err != nil {
			writeDomainError(w, err, "registration failed")
			return
		}

		user := &users.User{
			Username:     req.Username,
			PasswordHash: hash,
			Email:        req.Email,
			Phone:        req.Phone,
			DateJoined:   s.now(),
		}
		if err := s.users.Create(user); err != nil {
			if mallerrors.Is(err, mallerrors.ErrUserExists) {
				writeError(w, http.StatusConflict, "username already exists, please choose another")
				return
			}
			writeDomainError(w, err, "registration failed")
			return
		}

		log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("[Server RegisterHandler] account created")
		writeSuccess(w, http.StatusOK, "registration successful, please log in", nil)
	}
}

func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())
		writeSuccess(w, http.StatusOK, "", envelope{
			"user_profile": mallmodel.Profile{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
				Phone:    user.Phone,
				Info:     profileInfo(user),
			},
		})
	}
}

func profileInfo(user *users.User) string {
	if user.DateJoined.IsZero() {
		return string(user.UserType())
	}
	return string(user.UserType()) + " since " + user.DateJoined.Format("2006-01-02")
}

// UpdateProfileHandler replaces the caller's contact details and, when given, password
func (s *Server) UpdateProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req mallmodel.ProfileUpdate
		if err := decodeJSON(r, &req); err != nil {
			writeDomainError(w, err, "failed to update profile")
			return
		}
		if req.Email != "" {
			if _, err := mail.ParseAddress(req.Email); err != nil {
				writeError(w, http.StatusBadRequest, "invalid email address")
				return
			}
		}

		user := *userFromContext(r.Context())
		if req.Email != "" {
			user.Email = req.Email
		}
		if req.Phone != "" {
			user.Phone = req.Phone
		}
		if req.Password != "" {
			if err := users.ValidatePasswordStrength(req.Password); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			hash, err := users.HashPassword(req.Password)
			if err != nil {
				writeDomainError(w, err, "failed to update profile")
				return
			}
			user.PasswordHash = hash
		}

		if err := s.users.Update(&user); err != nil {
			writeDomainError(w, err, "failed to update profile")
			return
		}
		writeSuccess(w, http.StatusOK, "profile updated", nil)
	}
}
