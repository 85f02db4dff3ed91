package auth

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", "PRO", "secret", 1)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ValidateJWT(token, "secret")
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("want subject user-1, got %s", claims.Subject)
	}
	if claims.Role != "PRO" {
		t.Errorf("want role PRO, got %s", claims.Role)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-1", "NORMAL", "secret", 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateJWT(token, "other-secret"); err == nil {
		t.Fatal("validation must fail with the wrong secret")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPasswordHash("hunter22", hash) {
		t.Error("correct password must verify")
	}
	if CheckPasswordHash("hunter23", hash) {
		t.Error("wrong password must not verify")
	}
}
