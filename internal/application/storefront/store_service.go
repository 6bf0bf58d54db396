package storefront

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/catalog"
	"github.com/tinymillion/backend/internal/domain/identity"
	"github.com/tinymillion/backend/internal/domain/order"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/domain/storefront"
	"go.uber.org/zap"
)

const (
	recentProductsLimit = 5
	recentOrdersLimit   = 5
	recentActivityLimit = 10
)

// StoreServiceConfig wires the store service dependencies
type StoreServiceConfig struct {
	Stores storefront.MiniStoreRepository
	Users  identity.UserRepository
	Orders order.OrderRepository
	Events shared.EventPublisher
	Logger *zap.Logger
}

// StoreService manages mini stores for the admin, the public directory and
// the legacy routes
type StoreService struct {
	stores storefront.MiniStoreRepository
	users  identity.UserRepository
	orders order.OrderRepository
	events shared.EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

// NewStoreService creates a new StoreService
func NewStoreService(cfg StoreServiceConfig) *StoreService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreService{
		stores: cfg.Stores,
		users:  cfg.Users,
		orders: cfg.Orders,
		events: cfg.Events,
		logger: logger,
		now:    time.Now,
	}
}

// CreateStore opens a store and its sub-admin account in one transaction
func (s *StoreService) CreateStore(ctx context.Context, req CreateStoreRequest) (*CreateStoreResult, error) {
	displayName := strings.TrimSpace(req.DisplayName)
	email := identity.NormalizeEmail(req.Email)
	rawSlug := strings.TrimSpace(req.Slug)
	if displayName == "" || email == "" || req.Password == "" || rawSlug == "" {
		return nil, shared.InvalidInput("Display name, slug, email and password are required")
	}

	slug := storefront.NormalizeSlug(rawSlug)
	if storefront.IsReservedSlug(slug) {
		return nil, shared.InvalidInput("Slug is reserved")
	}
	taken, err := s.stores.SlugExists(ctx, slug, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.InvalidInput("Slug already exists. Choose a different one.")
	}
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	store, err := storefront.NewMiniStore(slug, displayName)
	if err != nil {
		return nil, err
	}
	store.Bio = req.Bio
	return s.open(ctx, store, displayName, email, req.Password)
}

// CreateLegacy opens a store through the older endpoint. The slug falls back
// to the display name, then to store-<ms>, and is made unique with -N.
func (s *StoreService) CreateLegacy(ctx context.Context, req LegacyCreateRequest) (*CreateStoreResult, error) {
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		return nil, shared.InvalidInput("displayName required")
	}
	email := identity.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, shared.InvalidInput("email and password required")
	}

	base := storefront.NormalizeSlug(req.Slug)
	if base == "" {
		base = storefront.NormalizeSlug(displayName)
	}
	if storefront.IsReservedSlug(base) {
		base = storefront.FallbackSlug(s.now())
	}
	slug, err := s.uniqueSlug(ctx, base)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	store, err := storefront.NewMiniStore(slug, displayName)
	if err != nil {
		return nil, err
	}
	store.Bio = req.Bio
	store.AvatarURL = req.AvatarURL
	store.BannerURL = req.BannerURL
	return s.open(ctx, store, displayName, email, req.Password)
}

// ListStores returns a page of stores for the admin, newest first
func (s *StoreService) ListStores(ctx context.Context, req ListStoresRequest) (*StoreListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = storefront.DefaultAdminPageSize
	}
	stores, total, err := s.stores.List(ctx, storefront.StoreFilter{
		Search:   strings.TrimSpace(req.Search),
		IsActive: req.IsActive,
		Page:     req.Page,
		Limit:    req.Limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]StoreResponse, len(stores))
	for i, store := range stores {
		out[i] = ToStoreResponse(store)
	}
	return &StoreListResponse{Stores: out, Pagination: newPagination(req.Page, req.Limit, total)}, nil
}

// GetStore returns a store with its curated products
func (s *StoreService) GetStore(ctx context.Context, id uuid.UUID) (*StoreResponse, error) {
	store, err := loadStore(ctx, s.stores, id)
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

// UpdateStore changes the slug and profile fields of a store
func (s *StoreService) UpdateStore(ctx context.Context, id uuid.UUID, req UpdateStoreRequest) (*StoreResponse, error) {
	store, err := loadStore(ctx, s.stores, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" && strings.TrimSpace(*req.Slug) != store.Slug {
		slug := storefront.NormalizeSlug(*req.Slug)
		if slug == "" {
			return nil, shared.InvalidInput("Slug cannot be empty")
		}
		if slug != store.Slug {
			taken, err := s.stores.SlugExists(ctx, slug, store.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, shared.InvalidInput("Slug already exists")
			}
			if err := store.Rename(slug); err != nil {
				return nil, err
			}
		}
	}
	store.UpdateProfile(req.profile())

	if err := s.stores.Update(ctx, store); err != nil {
		return nil, err
	}
	s.logger.Info("Mini store updated", zap.String("store_id", store.ID.String()), zap.String("slug", store.Slug))
	resp := ToStoreResponse(store)
	return &resp, nil
}

// DeleteStore removes a store together with its sub-admin
func (s *StoreService) DeleteStore(ctx context.Context, id uuid.UUID) error {
	if _, err := loadStore(ctx, s.stores, id); err != nil {
		return err
	}
	if err := s.stores.DeleteWithOwner(ctx, id); err != nil {
		return translateStoreErr(err)
	}
	s.logger.Info("Mini store deleted", zap.String("store_id", id.String()))
	return nil
}

// DeleteLegacy removes only the store; the sub-admin account is kept
func (s *StoreService) DeleteLegacy(ctx context.Context, id uuid.UUID) error {
	if _, err := loadStore(ctx, s.stores, id); err != nil {
		return err
	}
	if err := s.stores.Delete(ctx, id); err != nil {
		return translateStoreErr(err)
	}
	s.logger.Info("Mini store deleted (legacy)", zap.String("store_id", id.String()))
	return nil
}

// ToggleStore flips the active flag and returns the new state
func (s *StoreService) ToggleStore(ctx context.Context, id uuid.UUID) (bool, error) {
	store, err := loadStore(ctx, s.stores, id)
	if err != nil {
		return false, err
	}
	active := store.Toggle()
	if err := s.stores.Update(ctx, store); err != nil {
		return false, err
	}
	s.logger.Info("Mini store toggled", zap.String("store_id", id.String()), zap.Bool("is_active", active))
	return active, nil
}

// Activity summarizes a store: product and order counts, the sub-admin's
// last login and the latest product and order events
func (s *StoreService) Activity(ctx context.Context, id uuid.UUID) (*ActivityResponse, error) {
	store, err := loadStore(ctx, s.stores, id)
	if err != nil {
		return nil, err
	}

	resp := &ActivityResponse{TotalProducts: len(store.ProductIDs), RecentActivity: []ActivityEntry{}}
	if resp.TotalOrders, err = s.orders.CountContainingProducts(ctx, store.ProductIDs); err != nil {
		return nil, err
	}

	owner, err := s.users.FindByMiniStore(ctx, store.ID)
	switch {
	case err == nil:
		seen := owner.LastSeen()
		resp.LastLogin = &seen
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	products, err := s.stores.Products(ctx, store.ID, 0)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(products, func(a, b *catalog.Product) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	for _, p := range products[:min(len(products), recentProductsLimit)] {
		resp.RecentActivity = append(resp.RecentActivity, ActivityEntry{
			Action:    ActivityProductCreated,
			Timestamp: p.CreatedAt,
			Details:   map[string]any{"name": p.Name, "id": p.ID},
		})
	}

	orders, err := s.orders.FindContainingProducts(ctx, order.StoreOrderFilter{
		ProductIDs: store.ProductIDs,
		Limit:      recentOrdersLimit,
	})
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		resp.RecentActivity = append(resp.RecentActivity, ActivityEntry{
			Action:    ActivityOrder,
			Timestamp: o.CreatedAt,
			Details:   map[string]any{"id": o.ID, "status": string(o.Status)},
		})
	}

	slices.SortStableFunc(resp.RecentActivity, func(a, b ActivityEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if len(resp.RecentActivity) > recentActivityLimit {
		resp.RecentActivity = resp.RecentActivity[:recentActivityLimit]
	}
	return resp, nil
}

// PublicList returns the store directory. With all set the list includes
// inactive stores and is not capped.
func (s *StoreService) PublicList(ctx context.Context, limit int, all bool) ([]PublicStoreSummary, error) {
	filter := storefront.PublicFilter{IncludeInactive: true}
	if !all {
		if limit <= 0 {
			limit = storefront.DefaultPublicListLimit
		}
		filter = storefront.PublicFilter{Limit: limit}
	}
	stores, err := s.stores.ListPublic(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]PublicStoreSummary, len(stores))
	for i, store := range stores {
		out[i] = toPublicSummary(store)
	}
	return out, nil
}

// PublicBySlug resolves an active store page. Reserved slugs never resolve.
// A productLimit outside 1..60 means the full curation up to 60 products.
func (s *StoreService) PublicBySlug(ctx context.Context, slug string, productLimit int) (*PublicStoreResponse, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if storefront.IsReservedSlug(slug) {
		return nil, shared.NotFound("Not a mini store")
	}
	store, err := s.stores.FindActiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Store not found")
		}
		return nil, err
	}

	if productLimit <= 0 || productLimit > storefront.MaxPublicProductLimit {
		productLimit = storefront.MaxPublicProductLimit
	}
	products, err := s.stores.Products(ctx, store.ID, productLimit)
	if err != nil {
		return nil, err
	}
	out := make([]PublicProduct, 0, len(products))
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		out = append(out, toPublicProduct(p))
	}
	return &PublicStoreResponse{PublicStoreSummary: toPublicSummary(store), Products: out}, nil
}

// LegacyStore resolves an active store with its full curation for the
// older /admin/mini-store endpoint
func (s *StoreService) LegacyStore(ctx context.Context, slug string) (*StoreResponse, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if storefront.IsReservedSlug(slug) {
		return nil, shared.NotFound("Not a mini store")
	}
	store, err := s.stores.FindActiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Store not found")
		}
		return nil, err
	}
	products, err := s.stores.Products(ctx, store.ID, 0)
	if err != nil {
		return nil, err
	}
	resp := toStoreDetail(store, products)
	return &resp, nil
}

func (s *StoreService) open(ctx context.Context, store *storefront.MiniStore, name, email, password string) (*CreateStoreResult, error) {
	owner, err := identity.NewSubAdmin(name, email, password, store.ID)
	if err != nil {
		return nil, err
	}
	if err := s.stores.CreateWithOwner(ctx, store, owner); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.InvalidInput("Slug or email already in use")
		}
		return nil, err
	}

	if err := shared.PublishPending(ctx, s.events, store); err != nil {
		s.logger.Warn("Failed to publish store events", zap.String("store_id", store.ID.String()), zap.Error(err))
	}
	s.logger.Info("Mini store created",
		zap.String("store_id", store.ID.String()),
		zap.String("slug", store.Slug),
		zap.String("subadmin_id", owner.ID.String()))
	return &CreateStoreResult{Store: ToStoreResponse(store), SubAdmin: toSubAdminResponse(owner)}, nil
}

func (s *StoreService) ensureEmailFree(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return shared.InvalidInput("Email already registered")
	}
	return nil
}

func (s *StoreService) uniqueSlug(ctx context.Context, base string) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		taken, err := s.stores.SlugExists(ctx, candidate, uuid.Nil)
		if err != nil {
			return "", fmt.Errorf("check store slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func loadStore(ctx context.Context, stores storefront.MiniStoreRepository, id uuid.UUID) (*storefront.MiniStore, error) {
	if id == uuid.Nil {
		return nil, shared.NotFound("Store not found")
	}
	store, err := stores.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return store, nil
}

func translateStoreErr(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("Store not found")
	}
	return err
}
