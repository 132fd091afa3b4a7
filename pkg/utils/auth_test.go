package utils_test

import (
	"testing"

	"github.com/bookworm-labs/alexandria/pkg/utils"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := utils.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}

	if err := utils.CheckPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("check with right password: %v", err)
	}
	if err := utils.CheckPassword(hash, "wrong"); err == nil {
		t.Error("check with wrong password succeeded")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := utils.GenerateJWT("acct-1", "admin", "secret")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := utils.ValidateJWT(token, "secret")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.AccountID != "acct-1" || claims.Username != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := utils.GenerateJWT("acct-1", "admin", "secret")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := utils.ValidateJWT(token, "other-secret"); err == nil {
		t.Error("validation with wrong secret succeeded")
	}
}
