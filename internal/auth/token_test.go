package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/cineia/cinex/internal/shared"
	tu "github.com/cineia/cinex/internal/testing"
)

func TestDecode(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		exp := time.Now().Add(time.Hour)
		token := tu.ForgeToken("a@b.com", 7, exp)

		claims, err := Decode(token)
		if err != nil {
			t.Fatalf("failed to decode token: %v", err)
		}

		if claims.Email != "a@b.com" {
			t.Errorf("expected email a@b.com, got %s", claims.Email)
		}
		if claims.UserID != 7 {
			t.Errorf("expected user_id 7, got %d", claims.UserID)
		}
		if claims.Exp != exp.Unix() {
			t.Errorf("expected exp %d, got %d", exp.Unix(), claims.Exp)
		}
	})

	t.Run("malformed tokens", func(t *testing.T) {
		tc := []struct {
			name  string
			token string
		}{
			{name: "empty", token: ""},
			{name: "one segment", token: "abcdef"},
			{name: "two segments", token: "abc.def"},
			{name: "invalid base64 payload", token: "head.!!!.sig"},
			{name: "payload not JSON", token: "head.bm90IGpzb24.sig"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Decode(tt.token)
				if !errors.Is(err, shared.ErrMalformedToken) {
					t.Errorf("expected ErrMalformedToken, got %v", err)
				}
			})
		}
	})
}

func TestClaimsExpired(t *testing.T) {
	now := time.Now()

	tc := []struct {
		name string
		exp  int64
		want bool
	}{
		{name: "future expiry", exp: now.Add(time.Hour).Unix(), want: false},
		{name: "past expiry", exp: now.Add(-time.Hour).Unix(), want: true},
		{name: "missing exp claim", exp: 0, want: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			c := &Claims{Exp: tt.exp}
			if got := c.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeriveIdentity(t *testing.T) {
	t.Run("username is email local-part", func(t *testing.T) {
		claims := &Claims{Email: "a@b.com", UserID: 7, Exp: time.Now().Add(time.Hour).Unix()}

		identity := DeriveIdentity(claims, "raw-token")
		if identity == nil {
			t.Fatal("expected identity, got nil")
		}

		if identity.Username != "a" {
			t.Errorf("expected username a, got %s", identity.Username)
		}
		if identity.Email != "a@b.com" {
			t.Errorf("expected email a@b.com, got %s", identity.Email)
		}
		if identity.UserID != 7 {
			t.Errorf("expected user id 7, got %d", identity.UserID)
		}
		if identity.Token != "raw-token" {
			t.Errorf("expected token to carry through, got %s", identity.Token)
		}
	})

	t.Run("missing email yields nil", func(t *testing.T) {
		claims := &Claims{UserID: 7}
		if identity := DeriveIdentity(claims, "raw-token"); identity != nil {
			t.Errorf("expected nil identity for claims without email, got %+v", identity)
		}
	})

	t.Run("nil claims yields nil", func(t *testing.T) {
		if identity := DeriveIdentity(nil, "raw-token"); identity != nil {
			t.Errorf("expected nil identity for nil claims, got %+v", identity)
		}
	})

	t.Run("email without at sign", func(t *testing.T) {
		claims := &Claims{Email: "nodomain", UserID: 1}
		identity := DeriveIdentity(claims, "raw-token")
		if identity == nil {
			t.Fatal("expected identity")
		}
		if identity.Username != "nodomain" {
			t.Errorf("expected full value as username, got %s", identity.Username)
		}
	})
}
