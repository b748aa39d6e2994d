package file

import (
	"database/sql"

	"go.uber.org/zap"

	orderrepo "editmarket/internal/order/repository"
)

func NewModule(db *sql.DB, storage Storage, logger *zap.Logger) *Controller {
	uc := NewUseCase(NewMySQLRepository(db), orderrepo.NewMySQLOrderRepository(db), storage, logger)
	return NewController(uc, logger)
}
