package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/jrsteele09/go-mall-client/users"
	"github.com/rs/zerolog/log"
)

const DefaultAdminUsername = "admin"

// seedProducts is the demo catalog loaded into an empty store
var seedProducts = []mallmodel.ProductInput{
	{Name: "Wireless Mouse", Description: "2.4 GHz ergonomic mouse", Price: 24.99, StockQuantity: 120, ImageURL: "https://picsum.photos/seed/mouse/400/400.jpg"},
	{Name: "Mechanical Keyboard", Description: "87-key, brown switches", Price: 79.5, StockQuantity: 45, ImageURL: "https://picsum.photos/seed/keyboard/400/400.jpg"},
	{Name: "USB-C Hub", Description: "7-in-1 with HDMI and card reader", Price: 35, StockQuantity: 80},
	{Name: "27\" Monitor", Description: "QHD IPS panel", Price: 289, StockQuantity: 12, ImageURL: "https://picsum.photos/seed/monitor/400/400.jpg"},
	{Name: "Laptop Stand", Description: "Aluminium, adjustable height", Price: 42.25, StockQuantity: 0},
}

// InitialiseSystem creates the administrator account and, when enabled, the demo catalog.
// The administrator password is generated and logged when none is configured.
func (s *Server) InitialiseSystem(ctx context.Context) error {
	generatedPassword, err := s.createAdmin(ctx, s.adminUsername(), s.config.GetAdminPassword())
	if err != nil {
		return fmt.Errorf("[Server InitialiseSystem] failed to bootstrap administrator: %w", err)
	}

	if s.config.GetSeedData() {
		if err := s.seedCatalog(); err != nil {
			return fmt.Errorf("[Server InitialiseSystem] failed to seed catalog: %w", err)
		}
	}

	// A configured password is never echoed
	if generatedPassword != "" && s.config.GetAdminPassword() == "" {
		log.Info().Msg("System Configuration:")
		log.Info().Msgf("   API:         %s%s", s.config.GetListenAddr(), APIPrefix)
		log.Info().Msgf("   Username:    %s", s.adminUsername())
		log.Info().Msgf("   Password:    %s", generatedPassword)
	}
	return nil
}

func (s *Server) adminUsername() string {
	if name := s.config.GetAdminUsername(); name != "" {
		return name
	}
	return DefaultAdminUsername
}

// createAdmin returns the password it set, or "" when the account already existed
func (s *Server) createAdmin(_ context.Context, username, defaultPassword string) (generatedPassword string, err error) {
	existingUser, err := s.users.GetByUsername(username)
	if err == nil && existingUser != nil {
		if !existingUser.IsAdmin {
			return "", fmt.Errorf("[server createAdmin] %q exists and is not an administrator: %w", username, mallerrors.ErrUserExists)
		}
		return "", nil
	}

	generatedPassword = defaultPassword
	if generatedPassword == "" {
		// Generate a secure random password
		passwordBytes := make([]byte, 16)
		if _, err := rand.Read(passwordBytes); err != nil {
			return "", fmt.Errorf("[server createAdmin] failed to generate password: %w", err)
		}
		generatedPassword = base64.URLEncoding.EncodeToString(passwordBytes)
	}

	passwordHash, err := users.HashPassword(generatedPassword)
	if err != nil {
		return "", fmt.Errorf("[server createAdmin] failed to hash password: %w", err)
	}

	admin := &users.User{
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      true,
		DateJoined:   s.now(),
	}
	if err := s.users.Create(admin); err != nil {
		return "", fmt.Errorf("[server createAdmin] failed to create administrator: %w", err)
	}
	return generatedPassword, nil
}

func (s *Server) seedCatalog() error {
	existing, err := s.shop.ListProducts()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, p := range seedProducts {
		if _, err := s.shop.CreateProduct(p); err != nil {
			return err
		}
	}
	log.Debug().Int("products", len(seedProducts)).Msg("[Server seedCatalog] demo catalog loaded")
	return nil
}
