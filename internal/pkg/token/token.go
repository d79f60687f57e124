package token

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Session tokens are base64("<email>:<epoch-millis>"), reversible by any
// holder. The format is part of the client contract: the browser decodes it
// to recover the signed-in email. There is no signature and no server-side
// session record; callers must treat an undecodable token as unauthenticated.

// Encode builds a session token for the given email at the given instant.
func Encode(email string, issuedAt time.Time) string {
	raw := fmt.Sprintf("%s:%d", email, issuedAt.UnixMilli())
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// Decode recovers the email and issuance time from a session token.
func Decode(tok string) (email string, issuedAt time.Time, err error) {
	b, err := base64.StdEncoding.DecodeString(tok)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("decode token: %w", err)
	}
	// The email itself may contain ':' in theory; the timestamp never does,
	// so split on the last separator.
	raw := string(b)
	i := strings.LastIndex(raw, ":")
	if i < 1 || i == len(raw)-1 {
		return "", time.Time{}, fmt.Errorf("malformed token")
	}
	millis, err := strconv.ParseInt(raw[i+1:], 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("malformed token timestamp: %w", err)
	}
	return raw[:i], time.UnixMilli(millis), nil
}
