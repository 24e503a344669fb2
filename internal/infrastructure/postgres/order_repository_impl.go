package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/entity"
	repo "github.com/victorbrunner12/fast-api-pizzaria/internal/domain/repository"
)

// OrderRepository persists orders and their items. AddItem and
// RemoveItem take the order's row lock, then run the item mutation and
// the total update in one transaction, so two concurrent mutations of
// the same order serialize and cannot commit a stale total.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `id, user_id, owner_name, COALESCE(status, ''), total, created_at, updated_at`

const itemColumns = `id, order_id, name, unit_value, weight, quantity, flavor`

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO orders (user_id, owner_name, status, total)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, o.UserID, o.OwnerName, o.Status, o.Total)
	return row.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	o := &entity.Order{}
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err := scanOrder(row, o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	items, err := r.itemsForOrder(ctx, r.pool, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepository) GetItem(ctx context.Context, itemID int64) (*entity.OrderItem, error) {
	it := &entity.OrderItem{}
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM order_items WHERE id = $1`, itemID)
	if err := row.Scan(&it.ID, &it.OrderID, &it.Name, &it.UnitValue, &it.Weight, &it.Quantity, &it.Flavor); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]entity.Order, error) {
	return r.list(ctx, `SELECT ` + orderColumns + ` FROM orders ORDER BY id`)
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]entity.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]entity.Order, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var o entity.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return orders, nil
	}

	// Load all items in one round trip and group by order.
	itemRows, err := r.pool.Query(ctx, `SELECT `+itemColumns+` FROM order_items WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	byOrder := make(map[int64][]entity.OrderItem, len(ids))
	for itemRows.Next() {
		var it entity.OrderItem
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.Name, &it.UnitValue, &it.Weight, &it.Quantity, &it.Flavor); err != nil {
			return nil, err
		}
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status entity.OrderStatus) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE orders SET status = $1, updated_at = now() WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) AddItem(ctx context.Context, item *entity.OrderItem) (float64, error) {
	var total float64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockOrder(ctx, tx, item.OrderID); err != nil {
			return err
		}
		row := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, name, unit_value, weight, quantity, flavor)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, item.OrderID, item.Name, item.UnitValue, item.Weight, item.Quantity, item.Flavor)
		if err := row.Scan(&item.ID); err != nil {
			return err
		}
		var err error
		total, _, err = r.recomputeTotal(ctx, tx, item.OrderID)
		return err
	})
	return total, err
}

func (r *OrderRepository) RemoveItem(ctx context.Context, itemID, orderID int64) (int, float64, error) {
	var (
		remaining int
		total     float64
	)
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockOrder(ctx, tx, orderID); err != nil {
			return err
		}
		res, err := tx.Exec(ctx, `DELETE FROM order_items WHERE id = $1`, itemID)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return repo.ErrNotFound
		}
		total, remaining, err = r.recomputeTotal(ctx, tx, orderID)
		return err
	})
	return remaining, total, err
}

// lockOrder takes the order's row lock for the rest of the
// transaction. Under READ COMMITTED a transaction that reads the item
// list before holding this lock can compute a total from a stale
// snapshot and overwrite a concurrent commit, so every item mutation
// locks first, then reads.
func lockOrder(ctx context.Context, tx pgx.Tx, orderID int64) error {
	var id int64
	if err := tx.QueryRow(ctx, `SELECT id FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		return err
	}
	return nil
}

// recomputeTotal re-derives the order total from the items currently on
// the order and persists it, all inside the caller's transaction. The
// caller must already hold the order row lock via lockOrder.
func (r *OrderRepository) recomputeTotal(ctx context.Context, tx pgx.Tx, orderID int64) (float64, int, error) {
	items, err := r.itemsForOrder(ctx, tx, orderID)
	if err != nil {
		return 0, 0, err
	}

	total := entity.TotalValue(items)
	if _, err := tx.Exec(ctx, `UPDATE orders SET total = $1, updated_at = now() WHERE id = $2`, total, orderID); err != nil {
		return 0, 0, err
	}
	return total, len(items), nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *OrderRepository) itemsForOrder(ctx context.Context, q querier, orderID int64) ([]entity.OrderItem, error) {
	rows, err := q.Query(ctx, `SELECT `+itemColumns+` FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entity.OrderItem, 0)
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Name, &it.UnitValue, &it.Weight, &it.Quantity, &it.Flavor); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type orderScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row orderScanner, o *entity.Order) error {
	return row.Scan(&o.ID, &o.UserID, &o.OwnerName, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt)
}

var _ repo.OrderRepository = (*OrderRepository)(nil)
