package core

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestMenuFiltering(t *testing.T) {
	svc := NewCatalogService(0)
	defer svc.Close()

	if got := len(svc.Menu("All")); got != 5 {
		t.Errorf("Menu(All) returned %d items, want 5", got)
	}
	if got := len(svc.Menu("")); got != 5 {
		t.Errorf("Menu(empty) returned %d items, want 5", got)
	}

	vegan := svc.Menu("Vegan")
	if len(vegan) != 1 || vegan[0].Name != "Tofu Vegetable Stir-fry" {
		t.Errorf("Menu(Vegan) = %+v", vegan)
	}

	// Tags count as categories for filtering purposes.
	keto := svc.Menu("Keto")
	if len(keto) != 1 || keto[0].ID != 2 {
		t.Errorf("Menu(Keto) = %+v", keto)
	}

	if got := svc.Menu("Molecular Gastronomy"); len(got) != 0 {
		t.Errorf("Menu(unknown) = %+v, want empty", got)
	}
}

func TestCategoriesOrder(t *testing.T) {
	svc := NewCatalogService(0)
	defer svc.Close()

	want := []string{"All", "High Protein", "Low Carb", "Vegan", "Breakfast"}
	if got := svc.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestMarkAddedExpires(t *testing.T) {
	svc := NewCatalogService(20 * time.Millisecond)
	defer svc.Close()

	if err := svc.MarkAdded(1); err != nil {
		t.Fatalf("MarkAdded: %v", err)
	}
	if err := svc.MarkAdded(3); err != nil {
		t.Fatalf("MarkAdded: %v", err)
	}
	if got := svc.RecentlyAdded(); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("RecentlyAdded() = %v, want [1 3]", got)
	}

	waitFor(t, time.Second, func() bool { return len(svc.RecentlyAdded()) == 0 })
}

func TestMarkAddedUnknownItem(t *testing.T) {
	svc := NewCatalogService(0)
	defer svc.Close()

	if err := svc.MarkAdded(99); !errors.Is(err, ErrMenuItemNotFound) {
		t.Errorf("MarkAdded(99) error = %v, want ErrMenuItemNotFound", err)
	}
}

func TestSelectMembership(t *testing.T) {
	svc := NewCatalogService(0)
	defer svc.Close()

	if got := svc.ActiveMembership(); got != "quarterly" {
		t.Errorf("default active pass = %q, want quarterly", got)
	}

	if err := svc.SelectMembership("annual"); err != nil {
		t.Fatalf("SelectMembership: %v", err)
	}
	if got := svc.ActiveMembership(); got != "annual" {
		t.Errorf("active pass = %q, want annual", got)
	}

	if err := svc.SelectMembership("lifetime"); !errors.Is(err, ErrMembershipNotFound) {
		t.Errorf("SelectMembership(lifetime) error = %v, want ErrMembershipNotFound", err)
	}
}

func TestMembershipOrderFollowsActivePass(t *testing.T) {
	svc := NewCatalogService(0)
	defer svc.Close()

	ids := func() []string {
		var out []string
		for _, p := range svc.MembershipOrder() {
			out = append(out, p.ID)
		}
		return out
	}

	// Default active is quarterly, the middle of the list. Its neighbours
	// tie on distance; catalog order breaks the tie.
	if got := ids(); !reflect.DeepEqual(got, []string{"quarterly", "monthly", "annual"}) {
		t.Errorf("order with quarterly active = %v", got)
	}

	if err := svc.SelectMembership("annual"); err != nil {
		t.Fatalf("SelectMembership: %v", err)
	}
	if got := ids(); !reflect.DeepEqual(got, []string{"annual", "quarterly", "monthly"}) {
		t.Errorf("order with annual active = %v", got)
	}
}

func TestCatalogCloseStopsMarkers(t *testing.T) {
	svc := NewCatalogService(time.Hour)

	if err := svc.MarkAdded(1); err != nil {
		t.Fatalf("MarkAdded: %v", err)
	}
	svc.Close()

	if got := svc.RecentlyAdded(); len(got) != 0 {
		t.Errorf("RecentlyAdded() after Close = %v, want empty", got)
	}
	// MarkAdded after Close is a silent no-op.
	if err := svc.MarkAdded(1); err != nil {
		t.Errorf("MarkAdded after Close = %v, want nil", err)
	}
	if got := svc.RecentlyAdded(); len(got) != 0 {
		t.Errorf("RecentlyAdded() after post-Close add = %v, want empty", got)
	}
}
