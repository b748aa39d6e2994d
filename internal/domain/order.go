package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusClaimed    OrderStatus = "CLAIMED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusInReview   OrderStatus = "IN_REVIEW"
	OrderStatusRevision   OrderStatus = "REVISION"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// orderTransitions lists, for each status, the statuses it may move to.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusClaimed, OrderStatusCancelled},
	OrderStatusClaimed:    {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusInReview, OrderStatusCancelled},
	OrderStatusInReview:   {OrderStatusRevision, OrderStatusCompleted},
	OrderStatusRevision:   {OrderStatusInReview, OrderStatusCancelled},
	OrderStatusCompleted:  nil,
	OrderStatusCancelled:  nil,
}

func (s OrderStatus) Validate() error {
	if _, ok := orderTransitions[s]; !ok {
		return fmt.Errorf("order status %q is not valid", string(s))
	}
	return nil
}

func (s OrderStatus) IsTerminal() bool {
	next, ok := orderTransitions[s]
	return ok && len(next) == 0
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, candidate := range orderTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID           uint
	ClientID     uint
	FreelancerID *uint
	Title        string
	Description  string
	Requirements *string
	VideoURL     *string
	Price        float64
	Deadline     time.Time
	Status       OrderStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsClaimable reports whether a freelancer may claim the order right now.
func (o Order) IsClaimable() bool {
	return o.Status == OrderStatusPending && o.FreelancerID == nil
}

// IsParticipant reports whether userID is the owning client or the assigned freelancer.
func (o Order) IsParticipant(userID uint) bool {
	if o.ClientID == userID {
		return true
	}
	return o.FreelancerID != nil && *o.FreelancerID == userID
}
