package league

import (
	"crypto/rand"
	"fmt"
	"time"
)

// InviteTTL is the validity window of an invite code. A code whose age has
// reached the window is expired, so a gap of exactly InviteTTL rejects.
const InviteTTL = 12 * time.Hour

const inviteCodeLength = 8

// inviteAlphabet drops 0/O/1/I to keep codes readable when shared aloud.
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func NewInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i := range buf {
		buf[i] = inviteAlphabet[int(buf[i])%len(inviteAlphabet)]
	}
	return string(buf), nil
}

func IsInviteExpired(issuedAt, now time.Time) bool {
	return now.Sub(issuedAt) >= InviteTTL
}

// InviteRemaining reports the time left before the code expires, broken into
// whole hours, minutes and seconds so a client can tick a live countdown.
// Expired codes report zero.
type InviteRemaining struct {
	Hours   int
	Minutes int
	Seconds int
}

func RemainingValidity(issuedAt, now time.Time) (InviteRemaining, bool) {
	left := InviteTTL - now.Sub(issuedAt)
	if left <= 0 {
		return InviteRemaining{}, false
	}

	seconds := int(left / time.Second)
	return InviteRemaining{
		Hours:   seconds / 3600,
		Minutes: seconds % 3600 / 60,
		Seconds: seconds % 60,
	}, true
}
