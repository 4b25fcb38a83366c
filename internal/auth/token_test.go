package auth

import (
	"errors"
	"testing"
)

func TestIssueAndVerify(t *testing.T) {
	tokens := New("test-secret")

	signed, err := tokens.Issue(42)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	userID, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if userID != 42 {
		t.Fatalf("Verify userID = %d, want 42", userID)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	tokens := New("test-secret")

	signed, err := tokens.Issue(42)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "garbage", raw: "not.a.jwt"},
		{name: "truncated", raw: signed[:len(signed)-5]},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tokens.Verify(tc.raw); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("Verify error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := New("secret-a").Issue(1)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := New("secret-b").Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Verify error = %v, want ErrInvalidToken", err)
	}
}
