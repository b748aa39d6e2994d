package account

import (
	"database/sql"

	"go.uber.org/zap"

	"editmarket/internal/auth"
)

// NewModule builds the account controller. A nil google disables federated login.
func NewModule(db *sql.DB, sessions *auth.Sessions, hasher *auth.BcryptHasher, google *auth.GoogleProvider, logger *zap.Logger) *Controller {
	var provider GoogleProvider
	if google != nil {
		provider = google
	}

	uc := NewUseCase(NewMySQLRepository(db), hasher, sessions.Issuer(), provider, logger)
	return NewController(uc, sessions, logger)
}
