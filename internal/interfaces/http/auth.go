package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tally/internal/shared/auth"
)

type AuthHandler struct {
	username     string
	passwordHash string
	issuer       *auth.TokenIssuer
	sessions     *auth.SessionStore
}

func NewAuthHandler(username, passwordHash string, issuer *auth.TokenIssuer, sessions *auth.SessionStore) *AuthHandler {
	return &AuthHandler{
		username:     username,
		passwordHash: passwordHash,
		issuer:       issuer,
		sessions:     sessions,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// HandleLogin verifies the credentials, rotates the session and issues a
// token bound to the new session. Rotation invalidates tokens from any
// earlier login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username != h.username || auth.VerifyPassword(h.passwordHash, req.Password) != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if _, err := h.sessions.Rotate(); err != nil {
		log.Printf("Error rotating session: %v", err)
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}

	token, err := h.issuer.Generate(req.Username)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, Username: req.Username})
}

// HandleLogout clears the session, invalidating every outstanding token
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.sessions.Clear()

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	w.WriteHeader(http.StatusNoContent)
}
