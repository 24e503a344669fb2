package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/entity"
	repo "github.com/victorbrunner12/fast-api-pizzaria/internal/domain/repository"
)

type OrderRepository struct {
	mu         sync.Mutex
	nextID     int64
	nextItemID int64
	orders     map[int64]*entity.Order
	items      map[int64]*entity.OrderItem
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		nextID:     1,
		nextItemID: 1,
		orders:     make(map[int64]*entity.Order),
		items:      make(map[int64]*entity.OrderItem),
	}
}

func (r *OrderRepository) Create(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.nextID
	r.nextID++
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	cp := *o
	cp.Items = nil
	r.orders[o.ID] = &cp
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *o
	cp.Items = r.itemsOf(id)
	return &cp, nil
}

func (r *OrderRepository) GetItem(_ context.Context, itemID int64) (*entity.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[itemID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *OrderRepository) ListByUser(_ context.Context, userID int64) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Order, 0)
	for _, o := range r.orders {
		if o.UserID != userID {
			continue
		}
		cp := *o
		cp.Items = r.itemsOf(o.ID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *OrderRepository) ListAll(_ context.Context) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Order, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		cp.Items = r.itemsOf(o.ID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, orderID int64, status entity.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	_ = o.Transition(status)
	o.UpdatedAt = time.Now()
	return nil
}

func (r *OrderRepository) AddItem(_ context.Context, item *entity.OrderItem) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[item.OrderID]
	if !ok {
		return 0, repo.ErrNotFound
	}
	item.ID = r.nextItemID
	r.nextItemID++
	cp := *item
	r.items[item.ID] = &cp
	o.Total = entity.TotalValue(r.itemsOf(o.ID))
	o.UpdatedAt = time.Now()
	return o.Total, nil
}

func (r *OrderRepository) RemoveItem(_ context.Context, itemID, orderID int64) (int, float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[itemID]; !ok {
		return 0, 0, repo.ErrNotFound
	}
	o, ok := r.orders[orderID]
	if !ok {
		return 0, 0, repo.ErrNotFound
	}
	delete(r.items, itemID)
	remaining := r.itemsOf(orderID)
	o.Total = entity.TotalValue(remaining)
	o.UpdatedAt = time.Now()
	return len(remaining), o.Total, nil
}

// itemsOf must be called with the lock held.
func (r *OrderRepository) itemsOf(orderID int64) []entity.OrderItem {
	out := make([]entity.OrderItem, 0)
	for _, it := range r.items {
		if it.OrderID == orderID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var _ repo.OrderRepository = (*OrderRepository)(nil)
