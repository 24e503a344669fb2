package repository

import (
	"context"

	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/entity"
)

// OrderRepository defines the persistence operations for orders and
// their items. Mutating operations that touch both an item and the
// parent order's total (AddItem, RemoveItem) must execute atomically in
// the implementation so concurrent mutations of the same order cannot
// leave a stale total.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	// GetByID returns the order with its items loaded.
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	GetItem(ctx context.Context, itemID int64) (*entity.OrderItem, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.Order, error)
	ListAll(ctx context.Context) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status entity.OrderStatus) error
	// AddItem inserts the item and persists the recomputed order total
	// in the same transaction. The item ID is filled in on success.
	AddItem(ctx context.Context, item *entity.OrderItem) (total float64, err error)
	// RemoveItem deletes the item and persists the recomputed total of
	// its parent order in the same transaction. It returns the number
	// of items remaining on the order and the new total.
	RemoveItem(ctx context.Context, itemID, orderID int64) (remaining int, total float64, err error)
}
