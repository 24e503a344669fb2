package application

import (
	"context"
	"errors"
	"testing"

	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/entity"
	"github.com/victorbrunner12/fast-api-pizzaria/internal/infrastructure/memory"
)

func newOrderService() (*OrderService, *memory.UserRepository) {
	users := memory.NewUserRepository()
	orders := memory.NewOrderRepository()
	return NewOrderService(orders, users, nil, nil, nil, ""), users
}

func seedUser(t *testing.T, users *memory.UserRepository, name string, admin bool) *entity.User {
	t.Helper()
	u := &entity.User{Name: name, Email: name + "@example.com", Password: "x", Admin: admin, Active: true}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

func TestCreateOrderRequiresSelf(t *testing.T) {
	ctx := context.Background()
	s, users := newOrderService()
	owner := seedUser(t, users, "maria", false)
	admin := seedUser(t, users, "root", true)

	o, err := s.CreateOrder(ctx, owner, owner.ID, owner.Name)
	if err != nil {
		t.Fatalf("create own order: %v", err)
	}
	if o.Status != entity.StatusPending || o.Total != 0 {
		t.Fatalf("new order: status=%v total=%v", o.Status, o.Total)
	}

	// even administrators may not open orders on behalf of someone else
	if _, err := s.CreateOrder(ctx, admin, owner.ID, owner.Name); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("admin creating for another user: %v", err)
	}
	if _, err := s.CreateOrder(ctx, nil, owner.ID, owner.Name); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("nil actor: %v", err)
	}
}

func TestAddAndRemoveItemRecomputesTotal(t *testing.T) {
	ctx := context.Background()
	s, users := newOrderService()
	owner := seedUser(t, users, "maria", false)

	o, err := s.CreateOrder(ctx, owner, owner.ID, owner.Name)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	pizza, total, err := s.AddItem(ctx, owner, o.ID, ItemInput{
		Name: "Pizza", Flavor: "Pepperoni", UnitValue: 10.0, Weight: 0.5, Quantity: 2,
	})
	if err != nil {
		t.Fatalf("add pizza: %v", err)
	}
	if total != 20.0 {
		t.Fatalf("total after pizza = %v, want 20.0", total)
	}

	_, total, err = s.AddItem(ctx, owner, o.ID, ItemInput{
		Name: "Refrigerante", Flavor: "Cola", UnitValue: 3.5, Weight: 2.0, Quantity: 2,
	})
	if err != nil {
		t.Fatalf("add soda: %v", err)
	}
	if total != 27.0 {
		t.Fatalf("total after soda = %v, want 27.0", total)
	}

	remaining, refreshed, err := s.RemoveItem(ctx, owner, pizza.ID)
	if err != nil {
		t.Fatalf("remove pizza: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("remaining = %d, want 1", remaining)
	}
	if refreshed.Total != 7.0 {
		t.Fatalf("total after removal = %v, want 7.0", refreshed.Total)
	}
}

func TestItemAccessControl(t *testing.T) {
	ctx := context.Background()
	s, users := newOrderService()
	owner := seedUser(t, users, "maria", false)
	stranger := seedUser(t, users, "joao", false)
	admin := seedUser(t, users, "root", true)

	o, _ := s.CreateOrder(ctx, owner, owner.ID, owner.Name)
	item, _, err := s.AddItem(ctx, owner, o.ID, ItemInput{
		Name: "Pizza", Flavor: "Calabresa", UnitValue: 12.0, Weight: 0.5, Quantity: 1,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, _, err := s.AddItem(ctx, stranger, o.ID, ItemInput{
		Name: "Pizza", Flavor: "Mussarela", UnitValue: 9.0, Weight: 0.5, Quantity: 1,
	}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("stranger add: %v", err)
	}
	if _, _, err := s.RemoveItem(ctx, stranger, item.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("stranger remove: %v", err)
	}

	// admins may manage items of any order
	if _, _, err := s.AddItem(ctx, admin, o.ID, ItemInput{
		Name: "Refrigerante", Flavor: "Guaraná", UnitValue: 4.0, Weight: 2.0, Quantity: 1,
	}); err != nil {
		t.Fatalf("admin add: %v", err)
	}
}

func TestNotFoundPaths(t *testing.T) {
	ctx := context.Background()
	s, users := newOrderService()
	owner := seedUser(t, users, "maria", false)

	if _, err := s.Get(ctx, owner, 999); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("get missing order: %v", err)
	}
	if _, _, err := s.AddItem(ctx, owner, 999, ItemInput{Name: "x", Flavor: "y", UnitValue: 1, Weight: 1, Quantity: 1}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("add to missing order: %v", err)
	}
	if _, _, err := s.RemoveItem(ctx, owner, 999); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("remove missing item: %v", err)
	}
	if _, err := s.Cancel(ctx, owner, 999); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("cancel missing order: %v", err)
	}
}

func TestStatusTransitions(t *testing.T) {
	ctx := context.Background()
	s, users := newOrderService()
	owner := seedUser(t, users, "maria", false)
	admin := seedUser(t, users, "root", true)

	o, _ := s.CreateOrder(ctx, owner, owner.ID, owner.Name)

	got, err := s.Finalize(ctx, admin, o.ID)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if got.Status != entity.StatusFinalized {
		t.Fatalf("status = %v, want FINALIZED", got.Status)
	}

	// no terminal-state guard: finalized orders may still be cancelled
	got, err = s.Cancel(ctx, owner, o.ID)
	if err != nil {
		t.Fatalf("cancel after finalize: %v", err)
	}
	if got.Status != entity.StatusCancelled {
		t.Fatalf("status = %v, want CANCELLED", got.Status)
	}

	stranger := seedUser(t, users, "joao", false)
	if _, err := s.Finalize(ctx, stranger, o.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("stranger finalize: %v", err)
	}
}

func TestListAuthorization(t *testing.T) {
	ctx := context.Background()
	s, users := newOrderService()
	maria := seedUser(t, users, "maria", false)
	joao := seedUser(t, users, "joao", false)
	admin := seedUser(t, users, "root", true)

	if _, err := s.CreateOrder(ctx, maria, maria.ID, maria.Name); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateOrder(ctx, joao, joao.ID, joao.Name); err != nil {
		t.Fatal(err)
	}

	// the check fires before any repository query
	if _, err := s.ListForUser(ctx, joao, maria.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("cross-user list: %v", err)
	}

	own, err := s.ListForUser(ctx, maria, maria.ID)
	if err != nil || len(own) != 1 {
		t.Fatalf("own list: %v (%d orders)", err, len(own))
	}

	all, err := s.ListAll(ctx, admin)
	if err != nil || len(all) != 2 {
		t.Fatalf("admin list all: %v (%d orders)", err, len(all))
	}
	if _, err := s.ListAll(ctx, maria); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-admin list all: %v", err)
	}

	admins, err := s.ListForUser(ctx, admin, joao.ID)
	if err != nil || len(admins) != 1 {
		t.Fatalf("admin list for user: %v (%d orders)", err, len(admins))
	}
}

func TestSearchOrdersAdminOnly(t *testing.T) {
	ctx := context.Background()
	s, users := newOrderService()
	maria := seedUser(t, users, "maria", false)
	admin := seedUser(t, users, "root", true)

	if _, err := s.SearchOrders(ctx, maria, "maria", 10); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-admin search: %v", err)
	}
	// without a configured search backend the result is empty, not an error
	hits, err := s.SearchOrders(ctx, admin, "maria", 10)
	if err != nil {
		t.Fatalf("admin search: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("hits = %d, want 0", len(hits))
	}
}
