package order

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusInTransit = "IN_TRANSIT"
	StatusDelivered = "DELIVERED"
	StatusCanceled  = "CANCELED"
)

// statusTransitions defines the order lifecycle. DELIVERED and CANCELED
// are terminal.
var statusTransitions = map[string][]string{
	StatusPending:   {StatusApproved, StatusCanceled},
	StatusApproved:  {StatusInTransit, StatusCanceled},
	StatusInTransit: {StatusDelivered},
}

func ValidTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusInTransit, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

type Order struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	BranchID  uuid.UUID
	Status    string
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time

	Details []OrderDetail
}

// OrderDetail is one line of an order. UnitPrice is captured at order
// time so later price changes do not rewrite history.
type OrderDetail struct {
	ID                    uuid.UUID
	OrderID               uuid.UUID
	ProductPresentationID uuid.UUID
	Quantity              int
	UnitPrice             decimal.Decimal
	Subtotal              decimal.Decimal
}

type DetailInput struct {
	ProductPresentationID string `json:"productPresentationId" binding:"required"`
	Quantity              int    `json:"quantity" binding:"required"`
}

func (d DetailInput) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ProductPresentationID, validation.Required, is.UUID),
		validation.Field(&d.Quantity, validation.Required, validation.Min(1)),
	)
}

type CreateOrderRequest struct {
	UserID   string        `json:"userId" binding:"required"`
	BranchID string        `json:"branchId" binding:"required"`
	Details  []DetailInput `json:"details" binding:"required"`
}

func (r CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required, is.UUID),
		validation.Field(&r.BranchID, validation.Required, is.UUID),
		validation.Field(&r.Details, validation.Required, validation.Length(1, 0)),
	)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required,
			validation.In(StatusPending, StatusApproved, StatusInTransit, StatusDelivered, StatusCanceled)),
	)
}

type DetailResponse struct {
	ID                    uuid.UUID       `json:"id"`
	ProductPresentationID uuid.UUID       `json:"productPresentationId"`
	Quantity              int             `json:"quantity"`
	UnitPrice             decimal.Decimal `json:"unitPrice"`
	Subtotal              decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"userId"`
	BranchID  uuid.UUID        `json:"branchId"`
	Status    string           `json:"status"`
	Total     decimal.Decimal  `json:"total"`
	Details   []DetailResponse `json:"details"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (o *Order) ToResponse() OrderResponse {
	details := make([]DetailResponse, len(o.Details))
	for i, d := range o.Details {
		details[i] = DetailResponse{
			ID:                    d.ID,
			ProductPresentationID: d.ProductPresentationID,
			Quantity:              d.Quantity,
			UnitPrice:             d.UnitPrice,
			Subtotal:              d.Subtotal,
		}
	}
	return OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		BranchID:  o.BranchID,
		Status:    o.Status,
		Total:     o.Total,
		Details:   details,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
