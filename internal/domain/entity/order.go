package entity

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusFinalized OrderStatus = "FINALIZED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Order is the aggregate root for the order domain. It owns its Items
// (cascade delete) and carries a derived Total that must always equal
// TotalValue(Items) at rest.
//
// OwnerName duplicates the owner's display name as captured at creation
// time; it is kept even if the user record is later renamed.
type Order struct {
	ID        int64
	UserID    int64
	OwnerName string
	Status    OrderStatus
	Total     float64
	Items     []OrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is one line entry within an order. An item belongs to
// exactly one order for its entire lifetime.
type OrderItem struct {
	ID        int64
	OrderID   int64
	Name      string
	UnitValue float64
	Weight    float64
	Quantity  int
	Flavor    string
}

// NewOrder returns a fresh order in PENDING status with zero total.
func NewOrder(userID int64, ownerName string) *Order {
	return &Order{
		UserID:    userID,
		OwnerName: ownerName,
		Status:    StatusPending,
		Total:     0,
	}
}

// TotalValue computes the order total as the sum of unit value times
// quantity over the given items. Recomputation is always full, never
// incremental.
func TotalValue(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.UnitValue * float64(it.Quantity)
	}
	return total
}

// RecomputeTotal refreshes the derived Total from the current Items.
func (o *Order) RecomputeTotal() {
	o.Total = TotalValue(o.Items)
}

// Transition moves the order to the target status. Terminal states are
// not enforced: a FINALIZED order can still be cancelled and vice
// versa. Any future guard belongs here and nowhere else.
func (o *Order) Transition(target OrderStatus) error {
	o.Status = target
	return nil
}
