package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pharmacy-backend/internal/domains/branch"
	"pharmacy-backend/internal/domains/product"
	"pharmacy-backend/internal/domains/user"
	"pharmacy-backend/internal/shared/apperr"
)

type Service interface {
	Create(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error)
	List(ctx context.Context, filter ListFilter, page, pageSize int) ([]OrderResponse, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *UpdateStatusRequest) (*OrderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Export(ctx context.Context, filter ListFilter) ([]byte, error)
}

type orderService struct {
	repo        Repository
	userRepo    user.Repository
	branchRepo  branch.Repository
	productRepo product.Repository
	exporter    Exporter
}

func NewService(
	repo Repository,
	userRepo user.Repository,
	branchRepo branch.Repository,
	productRepo product.Repository,
	exporter Exporter,
) Service {
	return &orderService{
		repo:        repo,
		userRepo:    userRepo,
		branchRepo:  branchRepo,
		productRepo: productRepo,
		exporter:    exporter,
	}
}

// Create resolves every referenced entity, snapshots unit prices from
// the product presentations and computes the total.
func (s *orderService) Create(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	if len(req.Details) == 0 {
		return nil, ErrEmptyOrder
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, apperr.BadRequest("invalid user id")
	}
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, apperr.BadRequest("invalid branch id")
	}
	b, err := s.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, branch.ErrBranchNotFound
	}

	details := make([]OrderDetail, 0, len(req.Details))
	total := decimal.Zero
	for _, d := range req.Details {
		ppID, err := uuid.Parse(d.ProductPresentationID)
		if err != nil {
			return nil, apperr.BadRequest("invalid product presentation id")
		}

		pp, err := s.productRepo.GetPresentationByID(ctx, ppID)
		if err != nil {
			return nil, err
		}
		if pp == nil {
			return nil, apperr.NotFound("product presentation not found")
		}

		subtotal := pp.Price.Mul(decimal.NewFromInt(int64(d.Quantity)))
		details = append(details, OrderDetail{
			ProductPresentationID: ppID,
			Quantity:              d.Quantity,
			UnitPrice:             pp.Price,
			Subtotal:              subtotal,
		})
		total = total.Add(subtotal)
	}

	created, err := s.repo.Create(ctx, &Order{
		UserID:   userID,
		BranchID: branchID,
		Status:   StatusPending,
		Total:    total,
		Details:  details,
	})
	if err != nil {
		return nil, err
	}

	resp := created.ToResponse()
	return &resp, nil
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	resp := o.ToResponse()
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, filter ListFilter, page, pageSize int) ([]OrderResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	orders, err := s.repo.List(ctx, filter, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = o.ToResponse()
	}

	return responses, total, nil
}

// UpdateStatus enforces the order lifecycle; illegal jumps are a 400.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *UpdateStatusRequest) (*OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	if !ValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrOrderNotFound
	}

	if !ValidTransition(existing.Status, req.Status) {
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}
	return s.repo.SoftDelete(ctx, id)
}

// Export produces the admin spreadsheet of all matching orders.
func (s *orderService) Export(ctx context.Context, filter ListFilter) ([]byte, error) {
	orders, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return s.exporter.Export(orders)
}
