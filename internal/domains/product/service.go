package product

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pharmacy-backend/internal/domains/category"
	"pharmacy-backend/internal/domains/manufacturer"
	"pharmacy-backend/internal/domains/presentation"
	"pharmacy-backend/internal/infrastructure/storage"
	"pharmacy-backend/internal/shared/apperr"
	"pharmacy-backend/pkg/cache"
	"pharmacy-backend/pkg/logger"
)

const (
	productCacheTTL = 5 * time.Minute

	// MaxImageSize caps product image uploads at 5 MiB.
	MaxImageSize = 5 << 20
)

func productCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id)
}

type Service interface {
	Create(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error)
	List(ctx context.Context, filter ListFilter, page, pageSize int) ([]ProductResponse, int, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, productID uuid.UUID, file *multipart.FileHeader) (*ImageResponse, error)
}

type productService struct {
	repo             Repository
	manufacturerRepo manufacturer.Repository
	categoryRepo     category.Repository
	presentationRepo presentation.Repository
	storage          storage.ObjectStorage
	cache            cache.Cache
}

func NewService(
	repo Repository,
	manufacturerRepo manufacturer.Repository,
	categoryRepo category.Repository,
	presentationRepo presentation.Repository,
	objectStorage storage.ObjectStorage,
	cacheClient cache.Cache,
) Service {
	return &productService{
		repo:             repo,
		manufacturerRepo: manufacturerRepo,
		categoryRepo:     categoryRepo,
		presentationRepo: presentationRepo,
		storage:          objectStorage,
		cache:            cacheClient,
	}
}

func (s *productService) resolveManufacturer(ctx context.Context, id uuid.UUID) error {
	m, err := s.manufacturerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return manufacturer.ErrManufacturerNotFound
	}
	return nil
}

// resolveCategories checks every referenced category exists; a single
// missing id fails the whole request with the category's 404.
func (s *productService) resolveCategories(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return []uuid.UUID{}, nil
	}

	// Dedupe so repeated ids cannot skew the existence check below.
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, apperr.BadRequest("invalid category id")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	found, err := s.categoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, category.ErrCategoryNotFound
	}

	return ids, nil
}

func (s *productService) resolvePresentations(ctx context.Context, inputs []PresentationInput) ([]ProductPresentation, error) {
	presentations := make([]ProductPresentation, 0, len(inputs))
	for _, in := range inputs {
		presentationID, err := uuid.Parse(in.PresentationID)
		if err != nil {
			return nil, apperr.BadRequest("invalid presentation id")
		}

		p, err := s.presentationRepo.GetByID(ctx, presentationID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, presentation.ErrPresentationNotFound
		}

		price, err := decimal.NewFromString(in.Price)
		if err != nil || price.IsNegative() {
			return nil, ErrInvalidPrice
		}

		lots := make([]Lot, len(in.Lots))
		for i, l := range in.Lots {
			lots[i] = Lot{
				LotNumber:      strings.TrimSpace(l.LotNumber),
				Quantity:       l.Quantity,
				ExpirationDate: l.ExpirationDate,
			}
		}

		presentations = append(presentations, ProductPresentation{
			PresentationID: presentationID,
			Price:          price,
			Lots:           lots,
		})
	}

	return presentations, nil
}

func imagesFromURLs(urls []string) []ProductImage {
	images := make([]ProductImage, len(urls))
	for i, u := range urls {
		images[i] = ProductImage{URL: u}
	}
	return images
}

func (s *productService) Create(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	manufacturerID, err := uuid.Parse(req.ManufacturerID)
	if err != nil {
		return nil, apperr.BadRequest("invalid manufacturer id")
	}
	if err := s.resolveManufacturer(ctx, manufacturerID); err != nil {
		return nil, err
	}

	categoryIDs, err := s.resolveCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	presentations, err := s.resolvePresentations(ctx, req.Presentations)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &Product{
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		ManufacturerID: manufacturerID,
		Images:         imagesFromURLs(req.ImageURLs),
		CategoryIDs:    categoryIDs,
		Presentations:  presentations,
	})
	if err != nil {
		return nil, err
	}

	resp := created.ToResponse()
	return &resp, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}

	var cached ProductResponse
	if hit, err := s.cache.Get(ctx, productCacheKey(id), &cached); err == nil && hit {
		return &cached, nil
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	resp := p.ToResponse()

	if err := s.cache.Set(ctx, productCacheKey(id), resp, productCacheTTL); err != nil {
		logger.Warn("failed to cache product", map[string]interface{}{"product_id": id.String()})
	}

	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter ListFilter, page, pageSize int) ([]ProductResponse, int, error) {
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

	products, err := s.repo.List(ctx, filter, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = p.ToResponse()
	}

	return responses, total, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		existing.Name = name
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		existing.Description = desc
	}

	if req.ManufacturerID != "" {
		manufacturerID, err := uuid.Parse(req.ManufacturerID)
		if err != nil {
			return nil, apperr.BadRequest("invalid manufacturer id")
		}
		if err := s.resolveManufacturer(ctx, manufacturerID); err != nil {
			return nil, err
		}
		existing.ManufacturerID = manufacturerID
	}

	// Nil means "leave the relation alone"; an empty non-nil slice
	// clears it.
	if req.ImageURLs != nil {
		existing.Images = imagesFromURLs(req.ImageURLs)
	} else {
		existing.Images = nil
	}

	if req.CategoryIDs != nil {
		categoryIDs, err := s.resolveCategories(ctx, req.CategoryIDs)
		if err != nil {
			return nil, err
		}
		existing.CategoryIDs = categoryIDs
	} else {
		existing.CategoryIDs = nil
	}

	if req.Presentations != nil {
		presentations, err := s.resolvePresentations(ctx, req.Presentations)
		if err != nil {
			return nil, err
		}
		existing.Presentations = presentations
	} else {
		existing.Presentations = nil
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
		logger.Warn("failed to invalidate product cache", map[string]interface{}{"product_id": id.String()})
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
		logger.Warn("failed to invalidate product cache", map[string]interface{}{"product_id": id.String()})
	}

	return nil
}

func (s *productService) UploadImage(ctx context.Context, productID uuid.UUID, file *multipart.FileHeader) (*ImageResponse, error) {
	existing, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	if file.Size > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperr.BadRequest("cannot read uploaded file")
	}
	defer src.Close()

	url, err := s.storage.UploadProductImage(ctx, productID, file.Filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to upload product image: %w", err)
	}

	img, err := s.repo.AddImage(ctx, productID, url)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, productCacheKey(productID)); err != nil {
		logger.Warn("failed to invalidate product cache", map[string]interface{}{"product_id": productID.String()})
	}

	return &ImageResponse{ID: img.ID, URL: img.URL}, nil
}
