package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/brandon-wee/jobdash/internal/apperr"
)

// Scoper derives the per-user key every data store query is scoped by.
// Raw user ids never reach the database, only this keyed hash does.
type Scoper struct {
	secret []byte
}

func NewScoper(secret string) (*Scoper, error) {
	if secret == "" {
		return nil, apperr.Configuration("HASH_SECRET is required")
	}
	return &Scoper{secret: []byte(secret)}, nil
}

// Key returns HMAC-SHA256(secret, externalID) as lowercase hex.
// Same id always maps to the same key; the id cannot be recovered without the secret.
func (s *Scoper) Key(externalID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(externalID))
	return hex.EncodeToString(mac.Sum(nil))
}
