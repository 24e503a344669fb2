package policy

import (
	"testing"

	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/entity"
)

func TestCanAccess(t *testing.T) {
	owner := &entity.User{ID: 1}
	admin := &entity.User{ID: 2, Admin: true}
	stranger := &entity.User{ID: 3}
	order := &entity.Order{ID: 10, UserID: 1}

	cases := []struct {
		name  string
		actor *entity.User
		want  bool
	}{
		{"owner", owner, true},
		{"admin", admin, true},
		{"stranger", stranger, false},
		{"nil actor", nil, false},
	}
	for _, tc := range cases {
		if got := CanAccess(tc.actor, order); got != tc.want {
			t.Errorf("%s: CanAccess = %v, want %v", tc.name, got, tc.want)
		}
	}

	if CanAccess(admin, nil) {
		t.Errorf("nil order must be denied")
	}
}

func TestCanManageAccounts(t *testing.T) {
	if !CanManageAccounts(&entity.User{ID: 2, Admin: true}) {
		t.Errorf("admin must manage accounts")
	}
	if CanManageAccounts(&entity.User{ID: 1}) {
		t.Errorf("regular user must not manage accounts")
	}
	if CanManageAccounts(nil) {
		t.Errorf("nil actor must not manage accounts")
	}
}

func TestCanListUserOrders(t *testing.T) {
	owner := &entity.User{ID: 1}
	admin := &entity.User{ID: 2, Admin: true}

	if !CanListUserOrders(owner, 1) {
		t.Errorf("user must list own orders")
	}
	if CanListUserOrders(owner, 2) {
		t.Errorf("user must not list another user's orders")
	}
	if !CanListUserOrders(admin, 1) {
		t.Errorf("admin must list any user's orders")
	}
	if CanListUserOrders(nil, 1) {
		t.Errorf("nil actor must be denied")
	}
}
