package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidateMemberToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := GenerateMemberToken(secret, 7, "alice", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateMemberToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("expected user_id 7, got %d", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("expected username 'alice', got %q", claims.Username)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email 'alice@example.com', got %q", claims.Email)
	}
	if !claims.IsMember() || claims.IsAdmin() {
		t.Errorf("expected member claims, got member=%v admin=%v", claims.IsMember(), claims.IsAdmin())
	}
}

func TestGenerateAndValidateAdminToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := GenerateAdminToken(secret, 3, "reviewer")
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.AdminID != 3 {
		t.Errorf("expected admin_id 3, got %d", claims.AdminID)
	}
	if claims.AdminName != "reviewer" {
		t.Errorf("expected admin_name 'reviewer', got %q", claims.AdminName)
	}
	if !claims.IsAdmin() || claims.IsMember() {
		t.Errorf("expected admin claims, got member=%v admin=%v", claims.IsMember(), claims.IsAdmin())
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := GenerateMemberToken("secret1", 1, "alice", "a@x.com")

	_, err := ValidateToken("secret2", token)
	if err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("secret", "not-a-token")
	if err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestTokenExpiry(t *testing.T) {
	secret := "test"
	token, _ := GenerateMemberToken(secret, 1, "test", "t@x.com")
	claims, _ := ValidateToken(secret, token)

	expiresAt := claims.ExpiresAt.Time
	expectedExpiry := time.Now().Add(TokenExpiry)
	diff := expectedExpiry.Sub(expiresAt)
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiry %v too far from expected %v", expiresAt, expectedExpiry)
	}
	if claims.ID == "" {
		t.Error("expected a JTI on the token")
	}
}
