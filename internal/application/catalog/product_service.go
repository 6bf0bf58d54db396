package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/catalog"
	"github.com/tinymillion/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles the admin catalog and the public product reads
type ProductService struct {
	products catalog.ProductRepository
	uploader ImageUploader
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	products catalog.ProductRepository,
	uploader ImageUploader,
	events shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		products: products,
		uploader: uploader,
		events:   events,
		logger:   logger,
	}
}

// AddProduct uploads the image files, validates the submission and stores
// the product. Uploaded URLs follow the images given in the body.
func (s *ProductService) AddProduct(ctx context.Context, req AddProductRequest, uploads []ImageUpload) (*ProductResponse, error) {
	uploaded, err := UploadAll(ctx, s.uploader, uploads)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(catalog.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Sizes:       req.Sizes,
		Images:      append(append([]string{}, req.Images...), uploaded...),
		Bestseller:  req.Bestseller,
	})
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product added",
		zap.String("product_id", product.ID.String()),
		zap.Int("uploaded_images", len(uploaded)))
	resp := ToProductResponse(product)
	return &resp, nil
}

// ListProducts returns a page of the catalog, newest first
func (s *ProductService) ListProducts(ctx context.Context, req ListProductsRequest) (*ProductListResponse, error) {
	req = req.normalize()
	products, total, err := s.products.List(ctx, catalog.ProductListFilter{
		Page:  req.Page,
		Limit: req.Limit,
		All:   req.All,
	})
	if err != nil {
		return nil, err
	}
	return &ProductListResponse{
		Products:   ToProductResponses(products),
		Pagination: newPagination(req, total),
	}, nil
}

// RemoveProduct deletes a product. Removing an unknown product succeeds.
func (s *ProductService) RemoveProduct(ctx context.Context, rawID string) (uuid.UUID, error) {
	if strings.TrimSpace(rawID) == "" {
		return uuid.Nil, shared.InvalidInput("Product id is required")
	}
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return uuid.Nil, shared.InvalidInput("Invalid product id")
	}
	if err := s.products.Delete(ctx, id); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, err
	}
	s.logger.Info("Product removed", zap.String("product_id", id.String()))
	return id, nil
}

// SingleProduct fetches one product
func (s *ProductService) SingleProduct(ctx context.Context, rawID string) (*ProductResponse, error) {
	if strings.TrimSpace(rawID) == "" {
		return nil, shared.InvalidInput("productId is required")
	}
	product, err := s.find(ctx, rawID)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Trending returns the newest active bestsellers
func (s *ProductService) Trending(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.products.Trending(ctx, catalog.TrendingLimit)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

func (s *ProductService) find(ctx context.Context, rawID string) (*catalog.Product, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, shared.NotFound("Product not found")
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Product not found")
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) save(ctx context.Context, product *catalog.Product) error {
	if err := product.AssignUniqueSlug(ctx, s.products); err != nil {
		return err
	}
	if err := s.products.Create(ctx, product); err != nil {
		return err
	}
	if err := shared.PublishPending(ctx, s.events, product); err != nil {
		s.logger.Warn("Failed to publish product events", zap.String("product_id", product.ID.String()), zap.Error(err))
	}
	return nil
}
