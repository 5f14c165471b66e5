// Package session owns the Identity lifecycle: decoding the bearer
// credential, persisting it across restarts, and exposing the signed-in
// principal to the rest of the client.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/jamal0042/boomPlan/internal/gateway"
	"github.com/jamal0042/boomPlan/internal/models"
)

// CredentialKey is the fixed name the credential is persisted under.
const CredentialKey = "jwt_token"

// ErrMalformedCredential is returned when a token fails the structural
// decode.
var ErrMalformedCredential = errors.New("malformed credential")

// ErrNotAuthenticated is returned when an operation needs a signed-in
// identity and there is none.
var ErrNotAuthenticated = errors.New("not authenticated")

// CredentialStorage is durable client-local storage for the credential.
type CredentialStorage interface {
	Get(name string) (value string, ok bool, err error)
	Set(name, value string) error
	Delete(name string) error
}

// AuthGateway is the slice of the remote API the session store calls.
type AuthGateway interface {
	Register(ctx context.Context, req models.RegisterRequest) (*gateway.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*gateway.AuthResponse, error)
	UpdateProfile(ctx context.Context, userID int, update models.ProfileUpdate) (*models.User, error)
}

// Store holds the current identity and its credential. All methods are
// safe for concurrent use; the identity is replaced wholesale, never
// partially mutated.
type Store struct {
	storage CredentialStorage
	auth    AuthGateway
	log     *zap.Logger

	mu            sync.RWMutex
	user          *models.User
	authenticated bool
	loading       bool
	lastErr       string
}

// NewStore creates a session store. The store reports Loading until
// Bootstrap has run once.
func NewStore(storage CredentialStorage, auth AuthGateway, log *zap.Logger) *Store {
	return &Store{
		storage: storage,
		auth:    auth,
		log:     log,
		loading: true,
	}
}

// Bootstrap reads the persisted credential once at startup. A decodable
// credential establishes the identity; an undecodable one is removed.
// Either way the loading flag clears, so guards can distinguish "not
// yet known" from "known to be unauthenticated".
func (s *Store) Bootstrap() {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	token, ok, err := s.storage.Get(CredentialKey)
	if err != nil {
		s.log.Warn("read persisted credential", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	user := DecodeCredential(token)
	if user == nil {
		s.log.Warn("persisted credential is malformed, removing it")
		if err := s.storage.Delete(CredentialKey); err != nil {
			s.log.Warn("remove malformed credential", zap.Error(err))
		}
		return
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.mu.Unlock()
}

// Login validates and installs a credential. A token that fails the
// structural decode performs the logout side effects, records an error
// message, and returns ErrMalformedCredential; nothing is persisted. A
// valid token is persisted and the decoded identity installed.
func (s *Store) Login(token string) error {
	user := DecodeCredential(token)
	if user == nil {
		s.Logout()
		s.setError("credential is malformed")
		return ErrMalformedCredential
	}

	if err := s.storage.Set(CredentialKey, token); err != nil {
		s.setError("could not persist credential")
		return err
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Logout clears the persisted credential and the identity. Idempotent.
func (s *Store) Logout() {
	if err := s.storage.Delete(CredentialKey); err != nil {
		s.log.Warn("remove persisted credential", zap.Error(err))
	}

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.lastErr = ""
	s.mu.Unlock()
}

// SignUp registers a new account and signs it in. The returned user is
// the server's record from the response; the session identity is set
// from the decoded token. The two may legitimately disagree when the
// server returns fields the token omits, so neither is dropped: callers
// get the server's copy, Identity() serves the token's copy.
func (s *Store) SignUp(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		s.setError(err.Error())
		return nil, err
	}

	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		s.setError(err.Error())
		return nil, err
	}

	if err := s.Login(resp.Token); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// SignIn exchanges email and password for a credential and signs it in.
// Return value semantics match SignUp.
func (s *Store) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.setError(err.Error())
		return nil, err
	}

	if err := s.Login(resp.Token); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// UpdateProfile sends partial fields to the remote API and, on success,
// replaces the identity wholesale with the server's returned record.
func (s *Store) UpdateProfile(ctx context.Context, userID int, update models.ProfileUpdate) (*models.User, error) {
	if !s.IsAuthenticated() {
		s.setError("authentication required")
		return nil, ErrNotAuthenticated
	}

	user, err := s.auth.UpdateProfile(ctx, userID, update)
	if err != nil {
		s.setError(err.Error())
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// Identity returns a copy of the current identity, nil when
// unauthenticated.
func (s *Store) Identity() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// IsAuthenticated reports whether an identity is installed.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Loading reports whether Bootstrap has not finished yet.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last recorded error message, empty when the last
// operation succeeded.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}
