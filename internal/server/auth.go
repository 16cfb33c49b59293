package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/nudge/internal/logger"
	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/storage"
)

type ctxKey int

const (
	userKey ctxKey = iota
	tokenKey
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func userFrom(ctx context.Context) models.User {
	u, _ := ctx.Value(userKey).(models.User)
	return u
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		user, err := s.store.GetSessionUser(token)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				logger.Error("Session lookup failed", "error", err)
			}
			writeError(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) newSession(w http.ResponseWriter, status int, user models.User) {
	token := uuid.New().String()
	if err := s.store.AddSession(token, user.ID); err != nil {
		logger.Error("Failed to create session", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	writeJSON(w, status, tokenResponse{Token: token, User: user})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.AddUser(user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			writeError(w, http.StatusBadRequest, "User already exists")
			return
		}
		logger.Error("Failed to add user", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	logger.Info("User registered", "user", user.ID)
	s.newSession(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.store.GetUserByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Error("User lookup failed", "error", err)
		}
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	s.newSession(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, _ := r.Context().Value(tokenKey).(string)
	if err := s.store.DeleteSession(token); err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.Error("Failed to delete session", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
