package middleware

import (
	"errors"
	"time"

	"github.com/gorilla/securecookie"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
)

var ErrSessionExpired = errors.New("session expired")

// sessionPayload is the securecookie-sealed body of the session
// cookie.
type sessionPayload struct {
	AgentUUID string `json:"au"`
	ExpAt     int64  `json:"exp"`
}

func newSecureCookie() *securecookie.SecureCookie {
	key := []byte(C.GetSessionCookieKey())
	s := securecookie.New(key, key)
	s = s.SetSerializer(securecookie.JSONEncoder{})
	return s
}

// EncodeSessionCookie seals the agent identity for the session
// cookie value.
func EncodeSessionCookie(agentUUID string, dur time.Duration) (string, error) {
	if agentUUID == "" {
		return "", errors.New("missing agent uuid")
	}

	payload := sessionPayload{
		AgentUUID: agentUUID,
		ExpAt:     time.Now().UTC().Add(dur).Unix(),
	}

	return newSecureCookie().Encode(C.SessionCookieName, payload)
}

// decodeSessionCookie opens the cookie value and checks expiry.
func decodeSessionCookie(value string) (string, error) {
	var payload sessionPayload
	if err := newSecureCookie().Decode(C.SessionCookieName, value, &payload); err != nil {
		return "", err
	}

	if time.Now().UTC().Unix() > payload.ExpAt {
		return "", ErrSessionExpired
	}

	return payload.AgentUUID, nil
}
