package sessions

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jrsteele09/go-mall-client/internal/utils"
	"github.com/jrsteele09/go-mall-client/token"
	"github.com/rs/zerolog/log"
)

var (
	ErrMalformedAuthResponse = errors.New("malformed auth response")
	ErrNilRepo               = errors.New("session repo is required")
)

// Store is the single owner of the authenticated identity. Construct one per
// process with NewStore and pass it to whatever needs it.
type Store struct {
	repo    Repo
	lock    sync.RWMutex
	session Session
}

// NewStore creates a Store and reconstructs its state from repo. Absent entries
// yield the logged-out defaults.
func NewStore(repo Repo) (*Store, error) {
	if repo == nil {
		return nil, ErrNilRepo
	}

	s := &Store{repo: repo}
	session, err := load(repo)
	if err != nil {
		return nil, fmt.Errorf("[NewStore] failed to load persisted session: %w", err)
	}
	s.session = session
	return s, nil
}

func load(repo Repo) (Session, error) {
	var session Session

	credential, _, err := repo.Get(KeyCredential)
	if err != nil {
		return Session{}, err
	}
	session.Credential = credential

	userID, ok, err := repo.Get(KeyUserID)
	if err != nil {
		return Session{}, err
	}
	if ok && userID != "" {
		id, err := strconv.ParseInt(userID, 10, 64)
		if err != nil {
			log.Warn().Str("value", userID).Msg("Ignoring unparsable persisted user id")
		} else {
			session.UserID = utils.Ptr(id)
		}
	}

	session.DisplayName, _, err = repo.Get(KeyDisplayName)
	if err != nil {
		return Session{}, err
	}

	isAdmin, _, err := repo.Get(KeyIsAdmin)
	if err != nil {
		return Session{}, err
	}
	session.IsAdmin = isAdmin == "true"

	return session, nil
}

// Login records an authentication result obtained elsewhere. It makes no
// network call. A nil response or one without a credential is rejected with
// ErrMalformedAuthResponse and the current session is left untouched.
func (s *Store) Login(resp *AuthResponse) (Session, error) {
	if resp == nil || strings.TrimSpace(resp.Credential) == "" {
		log.Error().Interface("response", resp).Msg("Login data format error")
		return s.Snapshot(), ErrMalformedAuthResponse
	}

	next := Session{
		Credential:  resp.Credential,
		DisplayName: utils.Value(resp.DisplayName),
		IsAdmin:     resp.IsAdministrator,
	}
	if resp.UserID != nil {
		next.UserID = utils.Ptr(*resp.UserID)
	}

	entries := map[string]string{
		KeyCredential:  next.Credential,
		KeyUserID:      "",
		KeyDisplayName: next.DisplayName,
		KeyIsAdmin:     strconv.FormatBool(next.IsAdmin),
	}
	if next.UserID != nil {
		entries[KeyUserID] = strconv.FormatInt(*next.UserID, 10)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.repo.SetAll(entries); err != nil {
		return s.session, fmt.Errorf("[Store Login] failed to persist session: %w", err)
	}
	s.session = next

	log.Debug().Str("username", next.DisplayName).Bool("is_admin", next.IsAdmin).Msg("Session established")
	return next, nil
}

// Logout clears the session and its persisted entries. Calling it while
// logged out has no observable effect.
func (s *Store) Logout() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.session = Session{}
	if err := s.repo.Delete(PersistedKeys...); err != nil {
		return fmt.Errorf("[Store Logout] failed to remove persisted session: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the current session
func (s *Store) Snapshot() Session {
	s.lock.RLock()
	defer s.lock.RUnlock()

	snapshot := s.session
	if s.session.UserID != nil {
		snapshot.UserID = utils.Ptr(*s.session.UserID)
	}
	return snapshot
}

func (s *Store) IsAuthenticated() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.session.IsAuthenticated()
}

// IsAdmin returns the stored administrator flag
func (s *Store) IsAdmin() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.session.IsAdmin
}

// Credential returns the bearer credential, empty when logged out
func (s *Store) Credential() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.session.Credential
}

// CredentialClaims decodes the credential's claims for display. The signature
// is not verified.
func (s *Store) CredentialClaims() (*token.Claims, error) {
	credential := s.Credential()
	if credential == "" {
		return nil, errors.New("not logged in")
	}
	return token.Inspect(credential)
}
