// Package policy is the single place where access decisions are made.
// Handlers and services must consult it instead of inlining admin or
// ownership checks.
package policy

import "github.com/victorbrunner12/fast-api-pizzaria/internal/domain/entity"

// CanAccess reports whether the actor may view or mutate the given
// order. Administrators bypass the ownership check. It applies
// uniformly to view, cancel, finalize, add-item and remove-item.
func CanAccess(actor *entity.User, order *entity.Order) bool {
	if actor == nil || order == nil {
		return false
	}
	return actor.Admin || actor.ID == order.UserID
}

// CanManageAccounts reports whether the actor may create accounts with
// the administrator flag set.
func CanManageAccounts(actor *entity.User) bool {
	return actor != nil && actor.Admin
}

// CanListUserOrders reports whether the actor may list the orders of
// the given user. Checked before any query is issued.
func CanListUserOrders(actor *entity.User, userID int64) bool {
	if actor == nil {
		return false
	}
	return actor.Admin || actor.ID == userID
}
