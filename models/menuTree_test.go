package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func demoCategories() []*MenuCategory {
	return []*MenuCategory{
		{ID: 1, RestaurantId: "r1", Name: "Antipasti", SortOrder: 0},
		{ID: 2, RestaurantId: "r1", Name: "Primi", SortOrder: 1},
	}
}

func TestAssembleTreeOrderingAndEmptyCategory(t *testing.T) {
	items := []*MenuItem{
		{ID: 10, CategoryId: 1, Name: "Bruschetta", PriceAmount: decimal.NewFromFloat(6.5), PriceCurrency: "EUR"},
	}

	tree := assembleTree(demoCategories(), items, map[int][]Allergen{})

	if len(tree.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(tree.Categories))
	}
	if tree.Categories[0].Name != "Antipasti" {
		t.Fatalf("categories out of order: %q first", tree.Categories[0].Name)
	}
	if len(tree.Categories[0].Items) != 1 {
		t.Fatalf("expected 1 item in Antipasti, got %d", len(tree.Categories[0].Items))
	}
	if tree.Categories[1].Items == nil || len(tree.Categories[1].Items) != 0 {
		t.Fatalf("empty category must have an empty, non-nil item list")
	}
}

func TestAssembleTreePreservesItemOrderWithinCategory(t *testing.T) {
	// already ordered by (sort_order, id), as the DB returns them
	items := []*MenuItem{
		{ID: 12, CategoryId: 1, Name: "Carpaccio", SortOrder: 0},
		{ID: 15, CategoryId: 1, Name: "Caprese", SortOrder: 0},
		{ID: 11, CategoryId: 1, Name: "Olive", SortOrder: 2},
	}

	tree := assembleTree(demoCategories(), items, map[int][]Allergen{})

	got := make([]string, 0, 3)
	for _, leaf := range tree.Categories[0].Items {
		got = append(got, leaf.Name)
	}
	want := []string{"Carpaccio", "Caprese", "Olive"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item order = %v, want %v", got, want)
		}
	}
}

func TestAssembleTreeSkipsDanglingItems(t *testing.T) {
	items := []*MenuItem{
		{ID: 10, CategoryId: 1, Name: "Bruschetta"},
		{ID: 20, CategoryId: 99, Name: "Orphan"},
	}

	tree := assembleTree(demoCategories(), items, map[int][]Allergen{})

	if len(tree.Categories[0].Items) != 1 {
		t.Fatalf("expected the valid item to survive")
	}
	if len(tree.Skipped) != 1 || tree.Skipped[0].Kind != "menu_item" || tree.Skipped[0].Id != 20 {
		t.Fatalf("dangling item not reported: %+v", tree.Skipped)
	}
}

func TestAssembleTreeAttachesAllergens(t *testing.T) {
	items := []*MenuItem{
		{ID: 10, CategoryId: 1, Name: "Bruschetta"},
		{ID: 11, CategoryId: 1, Name: "Olive"},
	}
	allergens := map[int][]Allergen{
		10: {{ID: 1, Name: "Glutine"}},
	}

	tree := assembleTree(demoCategories(), items, allergens)

	if len(tree.Categories[0].Items[0].Allergens) != 1 {
		t.Fatalf("allergen set missing")
	}
	if tree.Categories[0].Items[1].Allergens == nil || len(tree.Categories[0].Items[1].Allergens) != 0 {
		t.Fatalf("item without allergens must carry an empty, non-nil set")
	}
}

func TestMenuTreeMarshalsEmptyListsNotNull(t *testing.T) {
	tree := assembleTree(demoCategories(), nil, nil)

	raw, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), `"items":null`) {
		t.Fatalf("empty item lists must marshal as [], got: %s", raw)
	}
	if !strings.Contains(string(raw), `"items":[]`) {
		t.Fatalf("expected empty item lists in payload: %s", raw)
	}
}
