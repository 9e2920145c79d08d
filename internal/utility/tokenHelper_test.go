package utility_test

import (
	"testing"

	"quizify/internal/utility"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	token, refreshToken, err := utility.GenerateAllTokens("ada@example.com", "Ada", "Lovelace", "admin", "64f0c2e6b2a4f3d8e9a1b2c3")
	if err != nil {
		t.Fatalf("GenerateAllTokens: %v", err)
	}
	if token == "" || refreshToken == "" {
		t.Fatal("expected both tokens to be signed")
	}

	claims, msg := utility.ValidateToken(token)
	if msg != "" {
		t.Fatalf("expected valid token, got %q", msg)
	}
	if claims.Email != "ada@example.com" || claims.Role != "admin" || claims.Uid != "64f0c2e6b2a4f3d8e9a1b2c3" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	refreshClaims, msg := utility.ValidateToken(refreshToken)
	if msg != "" {
		t.Fatalf("expected valid refresh token, got %q", msg)
	}
	if refreshClaims.Uid != "64f0c2e6b2a4f3d8e9a1b2c3" || refreshClaims.Role != "admin" {
		t.Fatalf("unexpected refresh claims: %+v", refreshClaims)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	if _, msg := utility.ValidateToken("not-a-token"); msg == "" {
		t.Fatal("expected a validation message for a malformed token")
	}
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	token, _, err := utility.GenerateAllTokens("ada@example.com", "Ada", "Lovelace", "user", "64f0c2e6b2a4f3d8e9a1b2c3")
	if err != nil {
		t.Fatalf("GenerateAllTokens: %v", err)
	}

	t.Setenv("SECRET_KEY", "another-secret")
	if _, msg := utility.ValidateToken(token); msg == "" {
		t.Fatal("expected a validation message for a token signed with a different key")
	}
}
