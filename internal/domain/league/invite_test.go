package league

import (
	"strings"
	"testing"
	"time"
)

func TestNewInviteCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := NewInviteCode()
		if err != nil {
			t.Fatalf("generate invite code: %v", err)
		}
		if len(code) != inviteCodeLength {
			t.Fatalf("unexpected code length: got=%d want=%d", len(code), inviteCodeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(inviteAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		seen[code] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatalf("expected distinct codes across generations")
	}
}

func TestIsInviteExpired(t *testing.T) {
	issuedAt := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	if IsInviteExpired(issuedAt, issuedAt.Add(InviteTTL-time.Second)) {
		t.Fatalf("code must still be valid just before the window closes")
	}
	// The window is half-open: exactly TTL after issuance is already expired.
	if !IsInviteExpired(issuedAt, issuedAt.Add(InviteTTL)) {
		t.Fatalf("code must be expired at exactly the TTL boundary")
	}
	if !IsInviteExpired(issuedAt, issuedAt.Add(InviteTTL+time.Hour)) {
		t.Fatalf("code must be expired after the TTL")
	}
}

func TestRemainingValidity(t *testing.T) {
	issuedAt := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	remaining, valid := RemainingValidity(issuedAt, issuedAt.Add(2*time.Hour+30*time.Minute))
	if !valid {
		t.Fatalf("expected a live code")
	}
	if remaining.Hours != 9 || remaining.Minutes != 30 || remaining.Seconds != 0 {
		t.Fatalf("unexpected remaining window: got=%dh%dm%ds want=9h30m0s",
			remaining.Hours, remaining.Minutes, remaining.Seconds)
	}

	// One-second granularity: a countdown recomputed every second moves.
	remaining, valid = RemainingValidity(issuedAt, issuedAt.Add(2*time.Hour+30*time.Minute+45*time.Second))
	if !valid {
		t.Fatalf("expected a live code")
	}
	if remaining.Hours != 9 || remaining.Minutes != 29 || remaining.Seconds != 15 {
		t.Fatalf("unexpected remaining window: got=%dh%dm%ds want=9h29m15s",
			remaining.Hours, remaining.Minutes, remaining.Seconds)
	}

	remaining, valid = RemainingValidity(issuedAt, issuedAt.Add(InviteTTL-time.Second))
	if !valid {
		t.Fatalf("expected a live code one second before the window closes")
	}
	if remaining.Hours != 0 || remaining.Minutes != 0 || remaining.Seconds != 1 {
		t.Fatalf("unexpected remaining window: got=%dh%dm%ds want=0h0m1s",
			remaining.Hours, remaining.Minutes, remaining.Seconds)
	}

	if _, valid := RemainingValidity(issuedAt, issuedAt.Add(InviteTTL)); valid {
		t.Fatalf("expired code must not report remaining validity")
	}
}
