package controller

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"editmarket/internal/auth"
	"editmarket/internal/domain"
	"editmarket/internal/dto"
	apperrors "editmarket/internal/errors"
	"editmarket/internal/order/usecase"
	"editmarket/internal/web"
)

const (
	maxTitleLength = 255
	maxSourceFiles = 50
)

type CreateOrderUseCase interface {
	Create(ctx context.Context, id auth.Identity, draft dto.OrderDraft) (*domain.Order, error)
}

type ClaimOrderUseCase interface {
	Claim(ctx context.Context, id auth.Identity, orderID uint) (*domain.Order, error)
}

type OrderQueryUseCase interface {
	Get(ctx context.Context, id auth.Identity, orderID uint) (*domain.Order, error)
	ListMine(ctx context.Context, id auth.Identity) ([]domain.Order, error)
	ListAvailable(ctx context.Context, id auth.Identity) ([]domain.Order, error)
	ListClaimed(ctx context.Context, id auth.Identity) ([]domain.Order, error)
	Dashboard(ctx context.Context, id auth.Identity) (*usecase.Dashboard, error)
}

type OrderController struct {
	createUC CreateOrderUseCase
	claimUC  ClaimOrderUseCase
	queryUC  OrderQueryUseCase
	logger   *zap.Logger
}

func NewOrderController(createUC CreateOrderUseCase, claimUC ClaimOrderUseCase, queryUC OrderQueryUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		createUC: createUC,
		claimUC:  claimUC,
		queryUC:  queryUC,
		logger:   logger,
	}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := web.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := auth.RequireIdentity(r.Context())
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	var req dto.CreateOrderRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteMalformedBody(w, traceID, err, logger)
		return
	}

	draft, err := buildOrderDraft(req)
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	order, err := c.createUC.Create(r.Context(), id, draft)
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	web.WriteJSON(w, http.StatusCreated, dto.FromOrder(*order), logger)
}

func (c *OrderController) Claim(w http.ResponseWriter, r *http.Request) {
	c.withOrderID(w, r, c.claimUC.Claim)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	c.withOrderID(w, r, c.queryUC.Get)
}

func (c *OrderController) ListMine(w http.ResponseWriter, r *http.Request) {
	c.writeList(w, r, c.queryUC.ListMine)
}

func (c *OrderController) ListAvailable(w http.ResponseWriter, r *http.Request) {
	c.writeList(w, r, c.queryUC.ListAvailable)
}

func (c *OrderController) ListClaimed(w http.ResponseWriter, r *http.Request) {
	c.writeList(w, r, c.queryUC.ListClaimed)
}

func (c *OrderController) Dashboard(w http.ResponseWriter, r *http.Request) {
	traceID := web.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := auth.RequireIdentity(r.Context())
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	d, err := c.queryUC.Dashboard(r.Context(), id)
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	resp := dto.DashboardResponse{Role: d.Role.String()}
	switch d.Role {
	case domain.RoleCustomer:
		resp.Orders = dto.Section(d.Orders)
	case domain.RoleFreelancer:
		resp.Available = dto.Section(d.Available)
		resp.Claimed = dto.Section(d.Claimed)
	case domain.RoleAdmin:
		resp.Recent = dto.Section(d.Recent)
	}

	web.WriteJSON(w, http.StatusOK, resp, logger)
}

func (c *OrderController) withOrderID(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, id auth.Identity, orderID uint) (*domain.Order, error),
) {
	traceID := web.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := auth.RequireIdentity(r.Context())
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	orderID, err := web.PathID(r, "id", "order")
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	order, err := fn(r.Context(), id, orderID)
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	web.WriteJSON(w, http.StatusOK, dto.FromOrder(*order), logger)
}

func (c *OrderController) writeList(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, id auth.Identity) ([]domain.Order, error),
) {
	traceID := web.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := auth.RequireIdentity(r.Context())
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	orders, err := fn(r.Context(), id)
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	web.WriteJSON(w, http.StatusOK, dto.OrderListResponse{Orders: dto.FromOrders(orders)}, logger)
}

// buildOrderDraft validates a creation request and reports every violation at once.
func buildOrderDraft(req dto.CreateOrderRequest) (dto.OrderDraft, error) {
	var details []apperrors.ValidationDetail

	title := strings.TrimSpace(req.Title)
	if title == "" {
		details = append(details, apperrors.ValidationDetail{Field: "title", Message: "title is required"})
	} else if len(title) > maxTitleLength {
		details = append(details, apperrors.ValidationDetail{Field: "title", Message: "title must be at most 255 characters"})
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		details = append(details, apperrors.ValidationDetail{Field: "description", Message: "description is required"})
	}

	if err := domain.ValidateAmount(req.Price); err != nil {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price " + err.Error()})
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		msg := "deadline must be a date (YYYY-MM-DD) or an RFC 3339 timestamp"
		if strings.TrimSpace(req.Deadline) == "" {
			msg = "deadline is required"
		}
		details = append(details, apperrors.ValidationDetail{Field: "deadline", Message: msg})
	}

	var videoURL *string
	if req.VideoURL != nil && strings.TrimSpace(*req.VideoURL) != "" {
		raw := strings.TrimSpace(*req.VideoURL)
		if !isHTTPURL(raw) {
			details = append(details, apperrors.ValidationDetail{Field: "videoUrl", Message: "videoUrl must be an absolute http(s) URL"})
		}
		videoURL = &raw
	}

	for _, fileID := range req.SourceFiles {
		if fileID == 0 {
			details = append(details, apperrors.ValidationDetail{Field: "sourceFiles", Message: "each source file id must be a positive integer"})
			break
		}
	}
	if len(req.SourceFiles) > maxSourceFiles {
		details = append(details, apperrors.ValidationDetail{Field: "sourceFiles", Message: "sourceFiles exceeds maximum of 50"})
	}
	if len(req.SourceFiles) == 0 && videoURL == nil {
		details = append(details, apperrors.ValidationDetail{Field: "sourceFiles", Message: "provide sourceFiles or a videoUrl"})
	}

	var requirements *string
	if req.Requirements != nil && strings.TrimSpace(*req.Requirements) != "" {
		trimmed := strings.TrimSpace(*req.Requirements)
		requirements = &trimmed
	}

	if len(details) > 0 {
		return dto.OrderDraft{}, apperrors.NewValidationError("validation failed", details...)
	}

	return dto.OrderDraft{
		Title:         title,
		Description:   description,
		Requirements:  requirements,
		VideoURL:      videoURL,
		Price:         req.Price,
		Deadline:      deadline,
		SourceFileIDs: req.SourceFiles,
	}, nil
}

func parseDeadline(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if d, err := time.Parse(time.DateOnly, raw); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return d.UTC().Truncate(time.Second), nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
