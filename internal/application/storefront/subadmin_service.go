package storefront

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	catalogapp "github.com/tinymillion/backend/internal/application/catalog"
	orderapp "github.com/tinymillion/backend/internal/application/order"
	"github.com/tinymillion/backend/internal/domain/catalog"
	"github.com/tinymillion/backend/internal/domain/identity"
	"github.com/tinymillion/backend/internal/domain/order"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/domain/storefront"
	"github.com/tinymillion/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// SubAdminTokenIssuer signs sub-admin access tokens
type SubAdminTokenIssuer interface {
	IssueSubAdminToken(userID uuid.UUID, email string) (auth.IssuedToken, error)
}

// SubAdminServiceConfig wires the sub-admin service dependencies
type SubAdminServiceConfig struct {
	Users    identity.UserRepository
	Stores   storefront.MiniStoreRepository
	Products catalog.ProductRepository
	Orders   order.OrderRepository
	Tokens   SubAdminTokenIssuer
	Uploader catalogapp.ImageUploader
	Events   shared.EventPublisher
	Logger   *zap.Logger
}

// SubAdminService serves a sub-admin working on their own store. Every
// method takes the store id resolved from the caller's account.
type SubAdminService struct {
	users    identity.UserRepository
	stores   storefront.MiniStoreRepository
	products catalog.ProductRepository
	orders   order.OrderRepository
	tokens   SubAdminTokenIssuer
	uploader catalogapp.ImageUploader
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewSubAdminService creates a new SubAdminService
func NewSubAdminService(cfg SubAdminServiceConfig) *SubAdminService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubAdminService{
		users:    cfg.Users,
		stores:   cfg.Stores,
		products: cfg.Products,
		orders:   cfg.Orders,
		tokens:   cfg.Tokens,
		uploader: cfg.Uploader,
		events:   cfg.Events,
		logger:   logger,
	}
}

// Login authenticates a sub-admin whose store is active
func (s *SubAdminService) Login(ctx context.Context, email, password string) (*SubAdminLoginResult, error) {
	email = identity.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, shared.InvalidInput("Email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeInvalidCredentials, "Invalid credentials")
		}
		return nil, err
	}
	if !user.IsSubAdmin() {
		return nil, shared.Forbidden("Access denied. This login is for sub-admins only.")
	}
	if !user.VerifyPassword(password) {
		s.logger.Warn("Invalid sub-admin password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError(shared.CodeInvalidCredentials, "Invalid credentials")
	}
	if !user.HasStore() {
		return nil, shared.Forbidden("No mini store assigned to this account")
	}

	store, err := s.stores.FindByID(ctx, *user.MiniStoreID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if store == nil || !store.IsActive {
		return nil, shared.NewDomainError(shared.CodeStoreInactive, "Your store is currently inactive. Please contact admin.")
	}

	issued, err := s.tokens.IssueSubAdminToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	user.RecordLogin()
	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("Failed to record last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return &SubAdminLoginResult{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User: SubAdminUser{
			ID:          user.ID,
			Name:        user.Name,
			Email:       user.Email,
			Role:        string(user.Role),
			MiniStoreID: store.ID,
		},
	}, nil
}

// MyStore returns the caller's store with its curated products
func (s *SubAdminService) MyStore(ctx context.Context, storeID uuid.UUID) (*StoreResponse, error) {
	store, err := s.ownStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	products, err := s.stores.Products(ctx, store.ID, 0)
	if err != nil {
		return nil, err
	}
	resp := toStoreDetail(store, products)
	return &resp, nil
}

// UpdateMyStore changes the caller's store profile. The slug stays under
// admin control.
func (s *SubAdminService) UpdateMyStore(ctx context.Context, storeID uuid.UUID, patch storefront.ProfilePatch) (*StoreResponse, error) {
	store, err := s.ownStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	store.UpdateProfile(patch)
	if err := s.stores.Update(ctx, store); err != nil {
		return nil, err
	}
	resp := ToStoreResponse(store)
	return &resp, nil
}

// MyProducts lists the caller's curated products
func (s *SubAdminService) MyProducts(ctx context.Context, storeID uuid.UUID) ([]catalogapp.ProductResponse, error) {
	store, err := s.ownStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	products, err := s.stores.Products(ctx, store.ID, 0)
	if err != nil {
		return nil, err
	}
	return catalogapp.ToProductResponses(products), nil
}

// AddProductToStore curates an existing catalog product
func (s *SubAdminService) AddProductToStore(ctx context.Context, storeID uuid.UUID, rawProductID string) (*StoreResponse, error) {
	if strings.TrimSpace(rawProductID) == "" {
		return nil, shared.InvalidInput("Product ID is required")
	}
	product, err := s.findProduct(ctx, rawProductID)
	if err != nil {
		return nil, err
	}
	store, err := s.ownStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if err := store.AddProduct(product.ID); err != nil {
		return nil, err
	}
	if err := s.stores.AddProduct(ctx, store.ID, product.ID); err != nil {
		return nil, err
	}
	s.logger.Info("Product added to store",
		zap.String("store_id", store.ID.String()),
		zap.String("product_id", product.ID.String()))
	resp := ToStoreResponse(store)
	return &resp, nil
}

// RemoveProductFromStore drops a product from the caller's curation. An
// unknown product leaves the store unchanged.
func (s *SubAdminService) RemoveProductFromStore(ctx context.Context, storeID uuid.UUID, rawProductID string) (*StoreResponse, error) {
	store, err := s.ownStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if productID, err := uuid.Parse(strings.TrimSpace(rawProductID)); err == nil && store.RemoveProduct(productID) {
		if err := s.stores.RemoveProduct(ctx, store.ID, productID); err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	resp := ToStoreResponse(store)
	return &resp, nil
}

// CreateProduct adds a new catalog product and curates it in the caller's
// store. Uploaded images follow the images given in the body.
func (s *SubAdminService) CreateProduct(ctx context.Context, storeID uuid.UUID, req CreateStoreProductRequest, uploads []catalogapp.ImageUpload) (*StoreProductResult, error) {
	store, err := s.ownStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	uploaded, err := catalogapp.UploadAll(ctx, s.uploader, uploads)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewStoreProduct(catalog.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Sizes:       req.Sizes,
		Images:      append(append([]string{}, req.Images...), uploaded...),
		Stock:       req.Stock,
		Bestseller:  req.Bestseller,
	})
	if err != nil {
		return nil, err
	}
	if err := product.AssignUniqueSlug(ctx, s.products); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	if err := store.AddProduct(product.ID); err != nil {
		return nil, err
	}
	if err := s.stores.AddProduct(ctx, store.ID, product.ID); err != nil {
		return nil, err
	}
	s.publish(ctx, product)

	s.logger.Info("Store product created",
		zap.String("store_id", store.ID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("uploaded_images", len(uploaded)))
	return &StoreProductResult{
		Product: catalogapp.ToProductResponse(product),
		Store:   ToStoreResponse(store),
	}, nil
}

// UpdateMyProduct edits a product curated in the caller's store. Uploaded
// images are appended after the current ones.
func (s *SubAdminService) UpdateMyProduct(ctx context.Context, storeID uuid.UUID, rawProductID string, patch catalog.ProductPatch, uploads []catalogapp.ImageUpload) (*catalogapp.ProductResponse, error) {
	if strings.TrimSpace(rawProductID) == "" {
		return nil, shared.InvalidInput("Product ID is required")
	}
	product, err := s.findProduct(ctx, rawProductID)
	if err != nil {
		return nil, err
	}
	store, err := s.ownStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !store.HasProduct(product.ID) {
		return nil, shared.Forbidden("Unauthorized - product not in your store")
	}

	uploaded, err := catalogapp.UploadAll(ctx, s.uploader, uploads)
	if err != nil {
		return nil, err
	}
	product.Apply(patch)
	product.AppendImages(uploaded...)
	if err := product.AssignUniqueSlug(ctx, s.products); err != nil {
		return nil, err
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Store product updated",
		zap.String("store_id", store.ID.String()),
		zap.String("product_id", product.ID.String()))
	resp := catalogapp.ToProductResponse(product)
	return &resp, nil
}

// DeleteMyProduct removes a product from the caller's store and deletes it
// from the catalog when no other store curates it. It reports whether the
// catalog entry was deleted.
func (s *SubAdminService) DeleteMyProduct(ctx context.Context, storeID uuid.UUID, rawProductID string) (bool, error) {
	if strings.TrimSpace(rawProductID) == "" {
		return false, shared.InvalidInput("Product ID required")
	}
	store, err := s.ownStore(ctx, storeID)
	if err != nil {
		return false, err
	}
	productID, err := uuid.Parse(strings.TrimSpace(rawProductID))
	if err != nil || !store.HasProduct(productID) {
		return false, shared.Forbidden("Product not in your store")
	}

	if err := s.stores.RemoveProduct(ctx, store.ID, productID); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return false, err
	}
	others, err := s.stores.CountStoresWithProduct(ctx, productID)
	if err != nil {
		return false, err
	}
	if others > 0 {
		s.logger.Info("Product removed from store only",
			zap.String("store_id", store.ID.String()),
			zap.String("product_id", productID.String()),
			zap.Int64("other_stores", others))
		return false, nil
	}

	if err := s.products.Delete(ctx, productID); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return false, err
	}
	s.logger.Info("Product deleted from catalog",
		zap.String("store_id", store.ID.String()),
		zap.String("product_id", productID.String()))
	return true, nil
}

// MyOrders lists orders containing any of the caller's products, newest
// first. Search matches the order id or the customer's name or email.
func (s *SubAdminService) MyOrders(ctx context.Context, storeID uuid.UUID, req MyOrdersRequest) (*StoreOrdersResponse, error) {
	store, err := s.ownStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	filter := order.StoreOrderFilter{ProductIDs: store.ProductIDs}
	if status := strings.TrimSpace(req.Status); status != "" {
		st := order.Status(status)
		filter.Status = &st
	}
	orders, err := s.orders.FindContainingProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Search) != "" {
		matched := orders[:0]
		for _, o := range orders {
			if o.MatchesSearch(req.Search) {
				matched = append(matched, o)
			}
		}
		orders = matched
	}
	return &StoreOrdersResponse{Count: len(orders), Orders: orderapp.ToOrderResponses(orders)}, nil
}

func (s *SubAdminService) ownStore(ctx context.Context, storeID uuid.UUID) (*storefront.MiniStore, error) {
	if storeID == uuid.Nil {
		return nil, shared.InvalidInput("Mini store ID not found")
	}
	return loadStore(ctx, s.stores, storeID)
}

func (s *SubAdminService) findProduct(ctx context.Context, rawID string) (*catalog.Product, error) {
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

func (s *SubAdminService) publish(ctx context.Context, product *catalog.Product) {
	if err := shared.PublishPending(ctx, s.events, product); err != nil {
		s.logger.Warn("Failed to publish product events", zap.String("product_id", product.ID.String()), zap.Error(err))
	}
}
