package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
)

func newTestAuthService() (*AuthService, *stubSessionStore) {
	sessions := newStubSessionStore()
	return NewAuthService(newStubUserRepo(), sessions, "secret", time.Hour, zerolog.Nop()), sessions
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), "", "pw"); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", ""); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _ = svc.Register(context.Background(), "bob", "pw")
	if _, err := svc.Register(context.Background(), "bob", "pw2"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, sessions := newTestAuthService()
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	if _, err := svc.Register(context.Background(), "carol", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if res.User == nil || res.User.Username != "carol" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if !res.ExpiresAt.Equal(fixed.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", res.ExpiresAt)
	}
	if len(sessions.sessions) != 1 {
		t.Fatalf("expected one stored session, got %d", len(sessions.sessions))
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(res.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return fixed }))
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Username != "carol" {
		t.Fatalf("unexpected username claim %q", claims.Username)
	}
	if _, ok := sessions.sessions[claims.SessionID]; !ok {
		t.Fatalf("token does not reference the stored session")
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc, sessions := newTestAuthService()
	_, _ = svc.Register(context.Background(), "dave", "pw")

	tests := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"missing username", "", "pw", domain.ErrMissingCredentials},
		{"missing password", "dave", "", domain.ErrMissingCredentials},
		{"unknown user", "erin", "pw", domain.ErrInvalidCredentials},
		{"wrong password", "dave", "nope", domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(context.Background(), tt.username, tt.password); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("failed logins must not create sessions")
	}
}

func TestAuthService_ResolveIdentity(t *testing.T) {
	svc, _ := newTestAuthService()
	_, _ = svc.Register(context.Background(), "alice", "pw")
	res, _ := svc.Login(context.Background(), "alice", "pw")

	username, err := svc.ResolveIdentity(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("ResolveIdentity returned error: %v", err)
	}
	if username != "alice" {
		t.Fatalf("expected alice, got %q", username)
	}
}

func TestAuthService_ResolveIdentity_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("empty token", func(t *testing.T) {
		svc, _ := newTestAuthService()
		if _, err := svc.ResolveIdentity(ctx, ""); !errors.Is(err, domain.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		svc, _ := newTestAuthService()
		if _, err := svc.ResolveIdentity(ctx, "not-a-jwt"); !errors.Is(err, domain.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		svc, sessions := newTestAuthService()
		_, _ = svc.Register(ctx, "alice", "pw")
		other := NewAuthService(newStubUserRepo(), sessions, "other-secret", time.Hour, zerolog.Nop())
		_, _ = other.Register(ctx, "alice", "pw")
		res, _ := other.Login(ctx, "alice", "pw")

		if _, err := svc.ResolveIdentity(ctx, res.Token); !errors.Is(err, domain.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		svc, _ := newTestAuthService()
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return start }
		_, _ = svc.Register(ctx, "alice", "pw")
		res, _ := svc.Login(ctx, "alice", "pw")

		svc.now = func() time.Time { return start.Add(2 * time.Hour) }
		if _, err := svc.ResolveIdentity(ctx, res.Token); !errors.Is(err, domain.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("session expired before token", func(t *testing.T) {
		svc, sessions := newTestAuthService()
		_, _ = svc.Register(ctx, "alice", "pw")
		res, _ := svc.Login(ctx, "alice", "pw")
		for id, s := range sessions.sessions {
			s.ExpiresAt = time.Now().Add(-time.Minute)
			sessions.sessions[id] = s
		}

		if _, err := svc.ResolveIdentity(ctx, res.Token); !errors.Is(err, domain.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("session bound to another user", func(t *testing.T) {
		svc, sessions := newTestAuthService()
		_, _ = svc.Register(ctx, "alice", "pw")
		res, _ := svc.Login(ctx, "alice", "pw")
		for id, s := range sessions.sessions {
			s.Username = "mallory"
			sessions.sessions[id] = s
		}

		if _, err := svc.ResolveIdentity(ctx, res.Token); !errors.Is(err, domain.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("store failure is not an auth failure", func(t *testing.T) {
		svc, sessions := newTestAuthService()
		_, _ = svc.Register(ctx, "alice", "pw")
		res, _ := svc.Login(ctx, "alice", "pw")
		sessions.findErr = errStoreDown

		_, err := svc.ResolveIdentity(ctx, res.Token)
		if !errors.Is(err, errStoreDown) || errors.Is(err, domain.ErrNotAuthenticated) {
			t.Fatalf("expected wrapped store error, got %v", err)
		}
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newTestAuthService()
	_, _ = svc.Register(ctx, "alice", "pw")
	res, _ := svc.Login(ctx, "alice", "pw")

	if err := svc.Logout(ctx, res.Token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("expected session to be removed")
	}
	if _, err := svc.ResolveIdentity(ctx, res.Token); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("token must not resolve after logout, got %v", err)
	}
	if err := svc.Logout(ctx, "garbage"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated for bad token, got %v", err)
	}
}
