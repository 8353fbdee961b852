package auth

import (
	"context"
	"testing"
	"time"
)

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		role       Role
		valid      bool
		admin      bool
		manageable bool
	}{
		{RoleUser, true, false, false},
		{RoleHost, true, false, true},
		{RoleAdmin, true, true, true},
		{Role("superuser"), false, false, false},
		{Role(""), false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
			if got := tt.role.IsAdmin(); got != tt.admin {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.admin)
			}
			if got := tt.role.CanManageListings(); got != tt.manageable {
				t.Errorf("CanManageListings() = %v, want %v", got, tt.manageable)
			}
		})
	}
}

func TestOwnsOrAdmin(t *testing.T) {
	owner := Identity{UserID: "u1", Role: RoleHost}
	admin := Identity{UserID: "a1", Role: RoleAdmin}
	stranger := Identity{UserID: "u2", Role: RoleUser}

	if !owner.OwnsOrAdmin("u1") {
		t.Error("owner should pass")
	}
	if !admin.OwnsOrAdmin("u1") {
		t.Error("admin should pass for any owner")
	}
	if stranger.OwnsOrAdmin("u1") {
		t.Error("stranger should not pass")
	}
}

func TestIdentityContextRoundTrip(t *testing.T) {
	id := Identity{UserID: "64f000000000000000000001", Role: RoleHost}
	ctx := ContextWithIdentity(context.Background(), id)

	got, ok := IdentityFromContext(ctx)
	if !ok || got != id {
		t.Errorf("got %+v (%v), want %+v", got, ok, id)
	}

	if _, ok := IdentityFromContext(context.Background()); ok {
		t.Error("empty context should carry no identity")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	v := NewTokenVerifier("test-secret")

	token, err := v.Sign("64f000000000000000000001", RoleHost, time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	id, err := v.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if id.UserID != "64f000000000000000000001" || id.Role != RoleHost {
		t.Errorf("identity = %+v, want signed values", id)
	}
}

func TestVerifyRejects(t *testing.T) {
	v := NewTokenVerifier("test-secret")

	t.Run("garbage", func(t *testing.T) {
		if _, err := v.Verify("not.a.token"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenVerifier("other-secret")
		token, _ := other.Sign("64f000000000000000000001", RoleUser, time.Hour)
		if _, err := v.Verify(token); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("expired", func(t *testing.T) {
		token, _ := v.Sign("64f000000000000000000001", RoleUser, -time.Minute)
		if _, err := v.Verify(token); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("invalid role claim", func(t *testing.T) {
		token, _ := v.Sign("64f000000000000000000001", Role("root"), time.Hour)
		if _, err := v.Verify(token); err == nil {
			t.Error("expected error")
		}
	})
}
