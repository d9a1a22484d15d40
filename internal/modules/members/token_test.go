package members

import (
	"testing"
	"time"
)

func TestIssueAndParseToken(t *testing.T) {
	m := Member{ID: "member-1", Role: RoleCashier}

	tok, err := IssueToken("test-secret", m, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := ParseToken("test-secret", tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.MemberID != "member-1" {
		t.Errorf("member id: got %s", claims.MemberID)
	}
	if claims.Role != RoleCashier {
		t.Errorf("role: got %s", claims.Role)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	tok, err := IssueToken("secret-a", Member{ID: "m1", Role: RoleMember}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := ParseToken("secret-b", tok); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	tok, err := IssueToken("secret", Member{ID: "m1", Role: RoleMember}, -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := ParseToken("secret", tok); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("secret", "not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
