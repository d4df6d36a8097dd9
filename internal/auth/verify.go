// Package auth verifies that inbound webhook requests were signed by Slack.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"time"
)

// maxTimestampSkew bounds replay-attack exposure: requests whose timestamp
// differs from the server clock by more than this are rejected.
const maxTimestampSkew = 300 * time.Second

// VerifySignature reports whether signature is a valid Slack v0 signature
// for body and timestamp under signingSecret. Missing headers, unparsable
// timestamps and stale requests all yield false, never an error.
func VerifySignature(body []byte, signature, timestamp, signingSecret string) bool {
	return verifyAt(body, signature, timestamp, signingSecret, time.Now())
}

func verifyAt(body []byte, signature, timestamp, signingSecret string, now time.Time) bool {
	if signature == "" || timestamp == "" || signingSecret == "" {
		return false
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	skew := math.Abs(float64(now.Unix() - ts))
	if skew > maxTimestampSkew.Seconds() {
		return false
	}

	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write([]byte(baseString))
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}
