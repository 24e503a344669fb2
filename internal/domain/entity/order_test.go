package entity

import "testing"

func TestTotalValue(t *testing.T) {
	items := []OrderItem{
		{Name: "Pizza", Flavor: "Pepperoni", UnitValue: 10.0, Quantity: 2},
		{Name: "Refrigerante", Flavor: "Cola", UnitValue: 3.5, Quantity: 2},
	}
	if got := TotalValue(items); got != 27.0 {
		t.Fatalf("total = %v, want 27.0", got)
	}
	if got := TotalValue(nil); got != 0 {
		t.Fatalf("empty total = %v, want 0", got)
	}
}

func TestRecomputeTotal(t *testing.T) {
	o := NewOrder(1, "Maria")
	if o.Status != StatusPending || o.Total != 0 {
		t.Fatalf("new order: status=%v total=%v", o.Status, o.Total)
	}

	o.Items = []OrderItem{
		{Name: "Pizza", Flavor: "Pepperoni", UnitValue: 10.0, Quantity: 2},
		{Name: "Refrigerante", Flavor: "Cola", UnitValue: 3.5, Quantity: 2},
	}
	o.RecomputeTotal()
	if o.Total != 27.0 {
		t.Fatalf("total = %v, want 27.0", o.Total)
	}

	// remove the pizza, total must be fully re-derived
	o.Items = o.Items[1:]
	o.RecomputeTotal()
	if o.Total != 7.0 {
		t.Fatalf("total after removal = %v, want 7.0", o.Total)
	}

	o.Items = nil
	o.RecomputeTotal()
	if o.Total != 0 {
		t.Fatalf("total after clearing = %v, want 0", o.Total)
	}
}

func TestTransitionIsPermissive(t *testing.T) {
	o := NewOrder(1, "Maria")
	steps := []OrderStatus{StatusFinalized, StatusCancelled, StatusPending, StatusCancelled, StatusFinalized}
	for _, s := range steps {
		if err := o.Transition(s); err != nil {
			t.Fatalf("transition to %v: %v", s, err)
		}
		if o.Status != s {
			t.Fatalf("status = %v, want %v", o.Status, s)
		}
	}
}
