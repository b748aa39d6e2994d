package order

import (
	"database/sql"

	"go.uber.org/zap"

	"editmarket/internal/config"
	"editmarket/internal/file"
	"editmarket/internal/infrastructure/mysql"
	"editmarket/internal/order/controller"
	orderrepo "editmarket/internal/order/repository"
	"editmarket/internal/order/service"
	"editmarket/internal/order/usecase"
)

func NewModule(db *sql.DB, cfg config.OrderConfig, logger *zap.Logger) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	fileRepo := file.NewMySQLRepository(db)

	creationSvc := service.NewCreationService(
		mysql.NewTxManager(db),
		orderRepo,
		fileRepo,
		logger,
		cfg.TxTimeout,
	)

	return controller.NewOrderController(
		usecase.NewCreateOrderUseCase(creationSvc, orderRepo, logger),
		usecase.NewClaimOrderUseCase(orderRepo, logger),
		usecase.NewOrderQueryUseCase(orderRepo),
		logger,
	)
}
