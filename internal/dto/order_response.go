package dto

import (
	"time"

	"editmarket/internal/domain"
)

type OrderResponse struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"userId"`
	FreelancerID *uint     `json:"freelancerId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements *string   `json:"requirements"`
	VideoURL     *string   `json:"videoUrl"`
	Price        float64   `json:"price"`
	Deadline     time.Time `json:"deadline"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// DashboardResponse carries only the sections that apply to the caller's role;
// the others are omitted rather than sent empty.
type DashboardResponse struct {
	Role      string           `json:"role"`
	Orders    *[]OrderResponse `json:"orders,omitempty"`
	Available *[]OrderResponse `json:"available,omitempty"`
	Claimed   *[]OrderResponse `json:"claimed,omitempty"`
	Recent    *[]OrderResponse `json:"recent,omitempty"`
}

func FromOrder(o domain.Order) OrderResponse {
	return OrderResponse{
		ID:           o.ID,
		UserID:       o.ClientID,
		FreelancerID: o.FreelancerID,
		Title:        o.Title,
		Description:  o.Description,
		Requirements: o.Requirements,
		VideoURL:     o.VideoURL,
		Price:        o.Price,
		Deadline:     o.Deadline,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// FromOrders never returns nil, so empty lists encode as [].
func FromOrders(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

// Section wraps a list for DashboardResponse.
func Section(orders []domain.Order) *[]OrderResponse {
	list := FromOrders(orders)
	return &list
}
