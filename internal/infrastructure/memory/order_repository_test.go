package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/entity"
	repo "github.com/victorbrunner12/fast-api-pizzaria/internal/domain/repository"
)

func TestOrderRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewOrderRepository()

	o := entity.NewOrder(1, "Maria")
	if err := r.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.ID == 0 {
		t.Fatalf("no id assigned")
	}

	total, err := r.AddItem(ctx, &entity.OrderItem{
		OrderID: o.ID, Name: "Pizza", Flavor: "Pepperoni", UnitValue: 10, Weight: 0.5, Quantity: 2,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if total != 20 {
		t.Fatalf("total = %v, want 20", total)
	}

	soda := &entity.OrderItem{OrderID: o.ID, Name: "Refrigerante", Flavor: "Cola", UnitValue: 3.5, Weight: 2, Quantity: 2}
	if total, err = r.AddItem(ctx, soda); err != nil || total != 27 {
		t.Fatalf("add soda: total=%v err=%v", total, err)
	}

	got, err := r.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Items) != 2 || got.Total != 27 {
		t.Fatalf("loaded order: %d items, total %v", len(got.Items), got.Total)
	}

	remaining, total, err := r.RemoveItem(ctx, soda.ID, o.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if remaining != 1 || total != 20 {
		t.Fatalf("after remove: remaining=%d total=%v", remaining, total)
	}

	if err := r.UpdateStatus(ctx, o.ID, entity.StatusFinalized); err != nil {
		t.Fatalf("update status: %v", err)
	}
	got, _ = r.GetByID(ctx, o.ID)
	if got.Status != entity.StatusFinalized {
		t.Fatalf("status = %v", got.Status)
	}
}

func TestOrderRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	r := NewOrderRepository()

	if _, err := r.GetByID(ctx, 1); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("get missing: %v", err)
	}
	if _, err := r.GetItem(ctx, 1); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("get missing item: %v", err)
	}
	if _, err := r.AddItem(ctx, &entity.OrderItem{OrderID: 1}); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("add to missing order: %v", err)
	}
	if err := r.UpdateStatus(ctx, 1, entity.StatusCancelled); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("update missing: %v", err)
	}
}

func TestOrderRepositoryListing(t *testing.T) {
	ctx := context.Background()
	r := NewOrderRepository()

	for _, uid := range []int64{1, 1, 2} {
		o := entity.NewOrder(uid, "x")
		if err := r.Create(ctx, o); err != nil {
			t.Fatal(err)
		}
	}

	mine, err := r.ListByUser(ctx, 1)
	if err != nil || len(mine) != 2 {
		t.Fatalf("list by user: %v (%d)", err, len(mine))
	}
	all, err := r.ListAll(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("list all: %v (%d)", err, len(all))
	}
	// deterministic order
	if all[0].ID > all[1].ID || all[1].ID > all[2].ID {
		t.Fatalf("listing not sorted by id")
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	u := &entity.User{Name: "Maria", Email: "maria@example.com", Password: "x", Active: true}
	if err := r.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Gender != entity.DefaultGender {
		t.Fatalf("gender default = %q", u.Gender)
	}

	dup := &entity.User{Name: "Other", Email: "maria@example.com", Password: "x"}
	if err := r.Create(ctx, dup); !errors.Is(err, repo.ErrDuplicateEmail) {
		t.Fatalf("duplicate: %v", err)
	}

	byEmail, err := r.GetByEmail(ctx, "maria@example.com")
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("get by email: %v", err)
	}
	if _, err := r.GetByID(ctx, 999); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("missing user: %v", err)
	}
	if n, _ := r.Count(ctx); n != 1 {
		t.Fatalf("count = %d", n)
	}
}
