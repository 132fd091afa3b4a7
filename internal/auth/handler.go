package auth

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bookworm-labs/alexandria/pkg/logger"
	"github.com/bookworm-labs/alexandria/pkg/models"
	"github.com/bookworm-labs/alexandria/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler verifies the librarian credential and manages session tokens.
type Handler struct {
	db        *sql.DB
	jwtSecret string
	log       *logger.Logger

	// In-memory blacklist; tokens expire after 24h so it stays small.
	mu             sync.RWMutex
	tokenBlacklist map[string]struct{}
}

func NewHandler(db *sql.DB, jwtSecret string) *Handler {
	return &Handler{
		db:             db,
		jwtSecret:      jwtSecret,
		log:            logger.GetLogger().WithContext("component", "auth"),
		tokenBlacklist: make(map[string]struct{}),
	}
}

// EnsureLibrarian seeds the single librarian account from configuration when
// it does not exist yet. Never overwrites an existing account.
func EnsureLibrarian(db *sql.DB, username, password string) error {
	var existing string
	err := db.QueryRow(`SELECT id FROM accounts WHERE username = ?`, username).Scan(&existing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO accounts (id, username, password_hash) VALUES (?, ?, ?)`,
		uuid.NewString(), username, hash,
	)
	return err
}

func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var account models.Account
	err := h.db.QueryRow(
		`SELECT id, username, password_hash, created_at FROM accounts WHERE username = ?`,
		req.Username,
	).Scan(&account.ID, &account.Username, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		h.log.Error("login_query_failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if err := utils.CheckPassword(account.PasswordHash, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := utils.GenerateJWT(account.ID, account.Username, h.jwtSecret)
	if err != nil {
		h.log.Error("token_generation_failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	h.log.Info("login_succeeded", "username", account.Username)
	c.JSON(http.StatusOK, models.AuthResponse{
		Token:     token,
		AccountID: account.ID,
		Username:  account.Username,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
}

// Logout blacklists the presented token for the rest of its lifetime.
func (h *Handler) Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return
	}

	h.mu.Lock()
	h.tokenBlacklist[token] = struct{}{}
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) isBlacklisted(token string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.tokenBlacklist[token]
	return ok
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
