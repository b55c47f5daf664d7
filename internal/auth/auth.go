package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vidgallery/vidgallery/internal/database"
	"github.com/vidgallery/vidgallery/internal/httputil"
	"github.com/vidgallery/vidgallery/internal/validate"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const usernameKey contextKey = "username"

// BcryptCost matches the original deployment's 10 rounds.
const BcryptCost = 10

type Handler struct {
	db        database.DBTX
	jwtSecret string
}

func NewHandler(db database.DBTX, jwtSecret string) *Handler {
	return &Handler{db: db, jwtSecret: jwtSecret}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		httputil.WriteError(w, http.StatusBadRequest, "all fields required")
		return
	}

	if msg := validate.Username(req.Username); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	if msg := validate.Password(req.Password); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), BcryptCost)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	// Conditional insert so concurrent signups for the same username
	// cannot both succeed.
	tag, err := h.db.Exec(r.Context(),
		"INSERT INTO users (username, password) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING",
		req.Username, string(hashed),
	)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	if tag.RowsAffected() == 0 {
		httputil.WriteError(w, http.StatusBadRequest, "username already exists")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "signup successful")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		httputil.WriteError(w, http.StatusBadRequest, "all fields required")
		return
	}

	var hashed string
	err := h.db.QueryRow(r.Context(),
		"SELECT password FROM users WHERE username = $1", req.Username,
	).Scan(&hashed)
	if err != nil {
		// Same message whether the user is unknown or the password is wrong.
		httputil.WriteError(w, http.StatusBadRequest, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(req.Password)); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid credentials")
		return
	}

	token, err := GenerateToken(h.jwtSecret, req.Username)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, loginResponse{Token: token, Username: req.Username})
}

func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.WriteError(w, http.StatusUnauthorized, "no token")
			return
		}

		tokenStr, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			httputil.WriteError(w, http.StatusUnauthorized, "no token")
			return
		}

		claims, err := ValidateToken(h.jwtSecret, tokenStr)
		if err != nil {
			httputil.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), usernameKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UsernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}
