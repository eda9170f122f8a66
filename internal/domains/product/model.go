package product

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID             uuid.UUID
	Name           string
	Description    string
	ManufacturerID uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time

	Images        []ProductImage
	CategoryIDs   []uuid.UUID
	Presentations []ProductPresentation
}

type ProductImage struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	URL       string
	CreatedAt time.Time
}

// ProductPresentation links a product to a presentation and carries the
// selling price for that packaging. It owns the stock lots.
type ProductPresentation struct {
	ID             uuid.UUID
	ProductID      uuid.UUID
	PresentationID uuid.UUID
	Price          decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Lots []Lot
}

type Lot struct {
	ID                    uuid.UUID
	ProductPresentationID uuid.UUID
	LotNumber             string
	Quantity              int
	ExpirationDate        time.Time
	CreatedAt             time.Time
}

type LotInput struct {
	LotNumber      string    `json:"lotNumber" binding:"required"`
	Quantity       int       `json:"quantity" binding:"required"`
	ExpirationDate time.Time `json:"expirationDate" binding:"required"`
}

func (l LotInput) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.LotNumber, validation.Required, validation.Length(1, 100)),
		validation.Field(&l.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&l.ExpirationDate, validation.Required),
	)
}

type PresentationInput struct {
	PresentationID string     `json:"presentationId" binding:"required"`
	Price          string     `json:"price" binding:"required"`
	Lots           []LotInput `json:"lots"`
}

func (p PresentationInput) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.PresentationID, validation.Required, is.UUID),
		validation.Field(&p.Price, validation.Required),
		validation.Field(&p.Lots),
	)
}

type CreateProductRequest struct {
	Name           string              `json:"name" binding:"required"`
	Description    string              `json:"description"`
	ManufacturerID string              `json:"manufacturerId" binding:"required"`
	ImageURLs      []string            `json:"imageUrls"`
	CategoryIDs    []string            `json:"categoryIds"`
	Presentations  []PresentationInput `json:"presentations"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.ManufacturerID, validation.Required, is.UUID),
		validation.Field(&r.ImageURLs, validation.Each(is.URL)),
		validation.Field(&r.CategoryIDs, validation.Each(is.UUID)),
		validation.Field(&r.Presentations),
	)
}

type UpdateProductRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	ManufacturerID string `json:"manufacturerId"`

	// Nil slices leave the relation untouched; non-nil replaces it.
	ImageURLs     []string            `json:"imageUrls"`
	CategoryIDs   []string            `json:"categoryIds"`
	Presentations []PresentationInput `json:"presentations"`
}

func (r UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.When(r.Name != "", validation.Length(1, 255))),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.ManufacturerID, validation.When(r.ManufacturerID != "", is.UUID)),
		validation.Field(&r.ImageURLs, validation.Each(is.URL)),
		validation.Field(&r.CategoryIDs, validation.Each(is.UUID)),
		validation.Field(&r.Presentations),
	)
}

type LotResponse struct {
	ID             uuid.UUID `json:"id"`
	LotNumber      string    `json:"lotNumber"`
	Quantity       int       `json:"quantity"`
	ExpirationDate time.Time `json:"expirationDate"`
}

type PresentationResponse struct {
	ID             uuid.UUID       `json:"id"`
	PresentationID uuid.UUID       `json:"presentationId"`
	Price          decimal.Decimal `json:"price"`
	Lots           []LotResponse   `json:"lots"`
}

type ImageResponse struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

type ProductResponse struct {
	ID             uuid.UUID              `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	ManufacturerID uuid.UUID              `json:"manufacturerId"`
	Images         []ImageResponse        `json:"images"`
	CategoryIDs    []uuid.UUID            `json:"categoryIds"`
	Presentations  []PresentationResponse `json:"presentations"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

func (p *Product) ToResponse() ProductResponse {
	images := make([]ImageResponse, len(p.Images))
	for i, img := range p.Images {
		images[i] = ImageResponse{ID: img.ID, URL: img.URL}
	}

	presentations := make([]PresentationResponse, len(p.Presentations))
	for i, pp := range p.Presentations {
		lots := make([]LotResponse, len(pp.Lots))
		for j, lot := range pp.Lots {
			lots[j] = LotResponse{
				ID:             lot.ID,
				LotNumber:      lot.LotNumber,
				Quantity:       lot.Quantity,
				ExpirationDate: lot.ExpirationDate,
			}
		}
		presentations[i] = PresentationResponse{
			ID:             pp.ID,
			PresentationID: pp.PresentationID,
			Price:          pp.Price,
			Lots:           lots,
		}
	}

	categoryIDs := p.CategoryIDs
	if categoryIDs == nil {
		categoryIDs = []uuid.UUID{}
	}

	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		ManufacturerID: p.ManufacturerID,
		Images:         images,
		CategoryIDs:    categoryIDs,
		Presentations:  presentations,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
