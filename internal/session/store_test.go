package session

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/jamal0042/boomPlan/internal/gateway"
	"github.com/jamal0042/boomPlan/internal/models"
)

// memStorage is an in-memory CredentialStorage for tests.
type memStorage struct {
	values map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{values: map[string]string{}}
}

func (m *memStorage) Get(name string) (string, bool, error) {
	value, ok := m.values[name]
	return value, ok, nil
}

func (m *memStorage) Set(name, value string) error {
	m.values[name] = value
	return nil
}

func (m *memStorage) Delete(name string) error {
	delete(m.values, name)
	return nil
}

// fakeAuthGateway is a canned AuthGateway for tests.
type fakeAuthGateway struct {
	resp        *gateway.AuthResponse
	profileResp *models.User
	err         error
	calls       int
}

func (f *fakeAuthGateway) Register(context.Context, models.RegisterRequest) (*gateway.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}

func (f *fakeAuthGateway) Login(context.Context, string, string) (*gateway.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}

func (f *fakeAuthGateway) UpdateProfile(context.Context, int, models.ProfileUpdate) (*models.User, error) {
	f.calls++
	return f.profileResp, f.err
}

func newTestStore(storage CredentialStorage, auth AuthGateway) *Store {
	return NewStore(storage, auth, zap.NewNop())
}

func TestStore_Bootstrap(t *testing.T) {
	t.Run("valid persisted credential", func(t *testing.T) {
		storage := newMemStorage()
		storage.values[CredentialKey] = makeToken(t, map[string]any{"data": fullPayload()})
		store := newTestStore(storage, &fakeAuthGateway{})

		if !store.Loading() {
			t.Fatal("Loading() = false before Bootstrap")
		}
		store.Bootstrap()

		if store.Loading() {
			t.Error("Loading() = true after Bootstrap")
		}
		if !store.IsAuthenticated() {
			t.Error("IsAuthenticated() = false")
		}
		if user := store.Identity(); user == nil || user.ID != 7 {
			t.Errorf("Identity() = %+v, want id 7", user)
		}
	})

	t.Run("malformed persisted credential is removed", func(t *testing.T) {
		storage := newMemStorage()
		storage.values[CredentialKey] = "not.a-real.credential"
		store := newTestStore(storage, &fakeAuthGateway{})

		store.Bootstrap()

		if store.Loading() {
			t.Error("Loading() = true after Bootstrap")
		}
		if store.IsAuthenticated() {
			t.Error("IsAuthenticated() = true for malformed credential")
		}
		if _, ok := storage.values[CredentialKey]; ok {
			t.Error("malformed credential left in storage")
		}
	})

	t.Run("no persisted credential", func(t *testing.T) {
		store := newTestStore(newMemStorage(), &fakeAuthGateway{})
		store.Bootstrap()

		if store.Loading() {
			t.Error("Loading() = true after Bootstrap")
		}
		if store.Identity() != nil {
			t.Error("Identity() != nil with empty storage")
		}
	})
}

func TestStore_Login(t *testing.T) {
	t.Run("two segment token fails without persisting", func(t *testing.T) {
		storage := newMemStorage()
		store := newTestStore(storage, &fakeAuthGateway{})

		err := store.Login("header.payload")

		if !errors.Is(err, ErrMalformedCredential) {
			t.Fatalf("Login() error = %v, want ErrMalformedCredential", err)
		}
		if _, ok := storage.values[CredentialKey]; ok {
			t.Error("malformed token was persisted")
		}
		if store.Identity() != nil {
			t.Error("Identity() != nil after failed login")
		}
		if store.Err() == "" {
			t.Error("Err() is empty after failed login")
		}
	})

	t.Run("valid token persists and installs identity", func(t *testing.T) {
		storage := newMemStorage()
		store := newTestStore(storage, &fakeAuthGateway{})
		token := makeToken(t, map[string]any{"data": fullPayload()})

		if err := store.Login(token); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if storage.values[CredentialKey] != token {
			t.Error("token not persisted under the credential key")
		}
		if !store.IsAuthenticated() {
			t.Error("IsAuthenticated() = false after login")
		}
		if store.Err() != "" {
			t.Errorf("Err() = %q after successful login", store.Err())
		}
	})
}

func TestStore_LogoutIsIdempotent(t *testing.T) {
	storage := newMemStorage()
	store := newTestStore(storage, &fakeAuthGateway{})
	if err := store.Login(makeToken(t, map[string]any{"data": fullPayload()})); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	store.Logout()
	store.Logout()

	if store.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after logout")
	}
	if store.Identity() != nil {
		t.Error("Identity() != nil after logout")
	}
	if _, ok := storage.values[CredentialKey]; ok {
		t.Error("credential left in storage after logout")
	}
}

func TestStore_SignInReturnsGatewayUser(t *testing.T) {
	// The server's user record and the token payload deliberately
	// disagree: callers get the server's copy, the session keeps the
	// token's copy.
	serverUser := &models.User{ID: 7, Name: "Ada L. (server)", Email: "ada@example.com", RoleID: 2}
	auth := &fakeAuthGateway{resp: &gateway.AuthResponse{
		Token: makeToken(t, map[string]any{"data": fullPayload()}),
		User:  serverUser,
	}}
	store := newTestStore(newMemStorage(), auth)

	user, err := store.SignIn(context.Background(), "ada@example.com", "hunter2secret")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	if user.Name != "Ada L. (server)" {
		t.Errorf("returned user = %q, want the server's record", user.Name)
	}
	if identity := store.Identity(); identity == nil || identity.Name != "Ada Lovelace" {
		t.Errorf("Identity() = %+v, want the token's record", identity)
	}
}

func TestStore_SignInGatewayFailure(t *testing.T) {
	auth := &fakeAuthGateway{err: &gateway.Error{Status: 401, Message: "invalid credentials"}}
	store := newTestStore(newMemStorage(), auth)

	_, err := store.SignIn(context.Background(), "ada@example.com", "wrongpassword")
	if err == nil {
		t.Fatal("SignIn() error = nil")
	}
	if store.Err() != "invalid credentials" {
		t.Errorf("Err() = %q, want the gateway message", store.Err())
	}
	if store.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after failed sign-in")
	}
}

func TestStore_SignUpValidatesBeforeCalling(t *testing.T) {
	auth := &fakeAuthGateway{}
	store := newTestStore(newMemStorage(), auth)

	_, err := store.SignUp(context.Background(), models.RegisterRequest{
		Name:     "Ada",
		Email:    "not-an-email",
		Password: "longenough",
	})
	if err == nil {
		t.Fatal("SignUp() error = nil for invalid email")
	}
	if auth.calls != 0 {
		t.Errorf("gateway called %d times for invalid payload", auth.calls)
	}
}

func TestStore_UpdateProfile(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		store := newTestStore(newMemStorage(), &fakeAuthGateway{})
		store.Bootstrap()

		_, err := store.UpdateProfile(context.Background(), 7, models.ProfileUpdate{})
		if !errors.Is(err, ErrNotAuthenticated) {
			t.Fatalf("UpdateProfile() error = %v, want ErrNotAuthenticated", err)
		}
	})

	t.Run("replaces identity wholesale", func(t *testing.T) {
		replaced := &models.User{ID: 7, Name: "Ada Byron", Email: "ada@example.com", RoleID: 2}
		auth := &fakeAuthGateway{profileResp: replaced}
		store := newTestStore(newMemStorage(), auth)
		if err := store.Login(makeToken(t, map[string]any{"data": fullPayload()})); err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		bio := "new bio"
		user, err := store.UpdateProfile(context.Background(), 7, models.ProfileUpdate{Bio: &bio})
		if err != nil {
			t.Fatalf("UpdateProfile() error = %v", err)
		}
		if user.Name != "Ada Byron" {
			t.Errorf("returned user = %+v", user)
		}
		if identity := store.Identity(); identity.Name != "Ada Byron" {
			t.Errorf("Identity() = %+v, want the server's replaced record", identity)
		}
	})
}
