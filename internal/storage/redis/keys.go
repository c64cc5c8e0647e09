package redis

import (
	"fmt"

	"github.com/ramusita/chitgame/internal/fingerprint"
)

const keyPrefix = "chit"

// sessionKey returns the key for a session. The raw token never reaches
// redis; only its digest does.
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, fingerprint.Of(token))
}

func sessionPattern() string {
	return keyPrefix + ":session:*"
}

// counterKey returns the HASH key holding a rate counter's start and count
func counterKey(key string) string {
	return fmt.Sprintf("%s:rate:%s", keyPrefix, key)
}

func counterPattern() string {
	return keyPrefix + ":rate:*"
}
