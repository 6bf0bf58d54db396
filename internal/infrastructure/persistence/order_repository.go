package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/order"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create stores the order and its lines
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return translateError(r.db.WithContext(ctx).Create(models.OrderModelFromDomain(o)).Error)
}

// Update persists status, payment flag and gateway references
func (r *GormOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return affectedOne(r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]any{
			"status":            o.Status,
			"payment":           o.Payment,
			"stripe_session_id": o.StripeSessionID,
			"razorpay_order_id": o.RazorpayOrderID,
			"updated_at":        time.Now(),
		}))
}

// MarkPaid sets Paid only on a row that is not Paid yet. It reports whether
// this call changed the row.
func (r *GormOrderRepository) MarkPaid(ctx context.Context, o *order.Order) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status <> ?", o.ID, order.StatusPaid).
		Updates(map[string]any{
			"status":     order.StatusPaid,
			"payment":    true,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected == 1, nil
}

// FindByID finds an order by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByStripeSession finds the order created for a Stripe checkout session
func (r *GormOrderRepository) FindByStripeSession(ctx context.Context, sessionID string) (*order.Order, error) {
	if sessionID == "" {
		return nil, shared.ErrNotFound
	}
	return r.first(ctx, "stripe_session_id = ?", sessionID)
}

// FindByRazorpayOrder finds the order created for a Razorpay order
func (r *GormOrderRepository) FindByRazorpayOrder(ctx context.Context, razorpayOrderID string) (*order.Order, error) {
	if razorpayOrderID == "" {
		return nil, shared.ErrNotFound
	}
	return r.first(ctx, "razorpay_order_id = ?", razorpayOrderID)
}

// FindAll returns every order, newest first, with the customer projection
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	var rows []models.OrderModel
	if err := r.withCustomer(r.withItems(r.db.WithContext(ctx))).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

// FindByUser returns a customer's orders, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*order.Order, error) {
	var rows []models.OrderModel
	if err := r.withItems(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

// FindContainingProducts returns orders with at least one line for the
// given products, newest first
func (r *GormOrderRepository) FindContainingProducts(ctx context.Context, filter order.StoreOrderFilter) ([]*order.Order, error) {
	if len(filter.ProductIDs) == 0 {
		return []*order.Order{}, nil
	}
	query := r.withCustomer(r.withItems(r.db.WithContext(ctx))).
		Where("id IN (?)", r.containingSubquery(ctx, filter.ProductIDs)).
		Order("created_at DESC")
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []models.OrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

// CountContainingProducts counts orders with at least one line for the given products
func (r *GormOrderRepository) CountContainingProducts(ctx context.Context, productIDs []uuid.UUID) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id IN (?)", r.containingSubquery(ctx, productIDs)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) first(ctx context.Context, query string, args ...any) (*order.Order, error) {
	var model models.OrderModel
	if err := r.withItems(r.db.WithContext(ctx)).Where(query, args...).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

func (r *GormOrderRepository) containingSubquery(ctx context.Context, productIDs []uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.OrderItemModel{}).
		Select("DISTINCT order_id").
		Where("product_id IN ?", productIDs)
}

func (r *GormOrderRepository) withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}

func (r *GormOrderRepository) withCustomer(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "email")
	})
}

func toOrders(rows []models.OrderModel) []*order.Order {
	orders := make([]*order.Order, len(rows))
	for i := range rows {
		orders[i] = rows[i].ToDomain()
	}
	return orders
}
