// Package flash signs one-shot UI messages carried in a cookie across a
// redirect.
package flash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"urbantide.com/store/pkg/view"
)

var ErrInvalid = errors.New("invalid flash cookie")

const DefaultMaxAge = 2 * time.Minute

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
	MaxAge     time.Duration
}

func NewCodec(secret []byte, cookieName string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: cookieName, Secure: secure, MaxAge: DefaultMaxAge}
}

// Encode produces base64(json) "." base64(hmac-sha256).
func (c *Codec) Encode(f view.Flash) (string, error) {
	if strings.TrimSpace(f.Message) == "" {
		return "", ErrInvalid
	}
	if f.Kind == "" {
		f.Kind = view.FlashInfo
	}
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(c.Secret, payload), nil
}

func (c *Codec) Decode(v string) (*view.Flash, error) {
	payload, sig, ok := strings.Cut(v, ".")
	if !ok || strings.Contains(sig, ".") {
		return nil, ErrInvalid
	}
	if !hmac.Equal([]byte(sign(c.Secret, payload)), []byte(sig)) {
		return nil, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalid
	}
	var f view.Flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, ErrInvalid
	}
	if strings.TrimSpace(f.Message) == "" {
		return nil, ErrInvalid
	}
	return &f, nil
}

func (c *Codec) CookieMaxAge() int {
	if c.MaxAge <= 0 {
		return int(DefaultMaxAge.Seconds())
	}
	return int(c.MaxAge.Seconds())
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
