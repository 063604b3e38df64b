package sqlite

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/activation/internal/repository"
)

// APIKeyRepository stores hashed bearer tokens and resolves them to tenants.
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Create generates a new token for tenantID and stores its hash. The
// plaintext token is only returned here.
func (r *APIKeyRepository) Create(ctx context.Context, tenantID, description string) (string, error) {
	if strings.TrimSpace(tenantID) == "" {
		return "", repository.ErrInvalidInput
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := "act_" + hex.EncodeToString(buf)

	query := `
		INSERT INTO api_keys (key_hash, tenant_id, created_at, description)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, HashToken(token), tenantID, time.Now().UTC(), description)
	if err != nil {
		return "", translateWriteError("create api key", err)
	}

	return token, nil
}

// ResolveTenant returns the tenant owning token and records its use.
func (r *APIKeyRepository) ResolveTenant(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", repository.ErrNotFound
	}
	hash := HashToken(token)

	var tenantID string
	err := r.db.QueryRowContext(ctx, `SELECT tenant_id FROM api_keys WHERE key_hash = ?`, hash).Scan(&tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve api key: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE api_keys SET last_used = ? WHERE key_hash = ?`, time.Now().UTC(), hash); err != nil {
		return "", fmt.Errorf("failed to touch api key: %w", err)
	}

	return tenantID, nil
}

// HashToken returns the stored form of a bearer token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
