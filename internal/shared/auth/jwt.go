package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type TokenClaims struct {
	Username string `json:"username"`
	Exp      int64  `json:"exp"`
	Iat      int64  `json:"iat"`
}

// TokenIssuer signs and validates HS256 tokens. The signing key is bound to
// the session store's current id, so a logout (session rotation or clear)
// invalidates every token issued before it.
type TokenIssuer struct {
	secret   string
	sessions *SessionStore
	ttl      time.Duration
}

func NewTokenIssuer(secret string, sessions *SessionStore) *TokenIssuer {
	return &TokenIssuer{
		secret:   secret,
		sessions: sessions,
		ttl:      time.Hour,
	}
}

func (t *TokenIssuer) Generate(username string) (string, error) {
	sessionID := t.sessions.Current()
	if sessionID == "" {
		return "", fmt.Errorf("no active session")
	}

	header := map[string]string{
		"alg": "HS256",
		"typ": "JWT",
	}

	claims := TokenClaims{
		Username: username,
		Iat:      time.Now().Unix(),
		Exp:      time.Now().Add(t.ttl).Unix(),
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}

	headerB64 := base64.RawURLEncoding.EncodeToString(headerJSON)
	claimsB64 := base64.RawURLEncoding.EncodeToString(claimsJSON)

	message := headerB64 + "." + claimsB64
	signature := t.sign(message, sessionID)

	return message + "." + signature, nil
}

func (t *TokenIssuer) Validate(token string) (*TokenClaims, error) {
	sessionID := t.sessions.Current()
	if sessionID == "" {
		return nil, fmt.Errorf("no active session")
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid token format")
	}

	message := parts[0] + "." + parts[1]
	signature := parts[2]

	expectedSignature := t.sign(message, sessionID)
	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return nil, fmt.Errorf("invalid signature")
	}

	claimsJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("failed to decode claims: %w", err)
	}

	var claims TokenClaims
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return nil, fmt.Errorf("failed to unmarshal claims: %w", err)
	}

	if time.Now().Unix() > claims.Exp {
		return nil, fmt.Errorf("token expired")
	}

	return &claims, nil
}

func (t *TokenIssuer) sign(message, sessionID string) string {
	h := hmac.New(sha256.New, []byte(t.secret+":"+sessionID))
	h.Write([]byte(message))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
