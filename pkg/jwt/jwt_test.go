package jwt

import (
	"errors"
	"testing"
	"time"

	"siscof/backend/config"
)

func newTestManager(accessTTL, refreshTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-with-enough-length",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	})
}

func TestManager_GenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager(15*time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-001", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken should succeed: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken should succeed: %v", err)
	}
	if claims.UserID != "user-001" {
		t.Errorf("expected UserID=user-001, got %s", claims.UserID)
	}
	if !claims.IsAdmin {
		t.Error("expected IsAdmin=true")
	}
	if claims.TokenType != "access" {
		t.Errorf("expected TokenType=access, got %s", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("expected a non-empty JWT ID")
	}
}

func TestManager_RefreshTokenType(t *testing.T) {
	m := newTestManager(15*time.Minute, 24*time.Hour)

	token, err := m.GenerateRefreshToken("user-001", false)
	if err != nil {
		t.Fatalf("GenerateRefreshToken should succeed: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken should succeed: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("expected TokenType=refresh, got %s", claims.TokenType)
	}
}

func TestManager_ParseExpiredToken(t *testing.T) {
	m := newTestManager(-1*time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-001", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken should succeed: %v", err)
	}

	_, err = m.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got: %v", err)
	}
}

func TestManager_ParseTamperedToken(t *testing.T) {
	m := newTestManager(15*time.Minute, 24*time.Hour)
	other := NewManager(&config.AuthConfig{
		JWTSecret:       "another-secret-with-enough-length",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	token, err := other.GenerateAccessToken("user-001", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken should succeed: %v", err)
	}

	_, err = m.ParseToken(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got: %v", err)
	}
}
