package models

import (
	"context"
)

// MenuTree is the nested structure served to the public view:
// restaurant -> categories -> items -> allergens.
type MenuTree struct {
	Restaurant *Restaurant     `json:"restaurant"`
	Template   *Template       `json:"template"`
	Categories []*MenuBranch   `json:"categories"`
	Skipped    []SkippedRecord `json:"-"`
}

type MenuBranch struct {
	MenuCategory
	Items []*MenuLeaf `json:"items"`
}

type MenuLeaf struct {
	MenuItem
	Price string `json:"price"`
}

// SkippedRecord names a dangling reference the assembler dropped instead of
// failing the tree. Callers decide whether to log or alert.
type SkippedRecord struct {
	Kind string `json:"kind"`
	Id   int    `json:"id"`
}

// AssembleMenu builds the complete menu tree for a restaurant. The categories
// and the items within each category come back in (sort_order, id) order.
// Empty categories keep an empty (non-nil) item list. An unknown restaurant id
// fails the whole operation with RecordNotFound; dangling joins are skipped
// and reported via Skipped.
func AssembleMenu(ctx context.Context, restaurantId string) (*MenuTree, error) {
	restaurant, err := GetRestaurant(ctx, restaurantId)
	if err != nil {
		return nil, err
	}

	template, err := ResolveTemplate(ctx, restaurant.TemplateId)
	if err != nil {
		return nil, err
	}

	categories, err := GetOrderedCategories(ctx, restaurantId)
	if err != nil {
		return nil, err
	}
	items, err := GetOrderedItems(ctx, restaurantId)
	if err != nil {
		return nil, err
	}

	itemIds := make([]int, 0, len(items))
	for _, item := range items {
		itemIds = append(itemIds, item.ID)
	}
	allergensByItem, err := GetAllergensByItem(ctx, itemIds)
	if err != nil {
		return nil, err
	}

	tree := assembleTree(categories, items, allergensByItem)
	tree.Restaurant = restaurant
	tree.Template = template
	return tree, nil
}

// assembleTree buckets pre-ordered items into their pre-ordered categories.
// Both inputs are already sorted (sort_order, id), so bucketing preserves the
// display order. Items pointing at a category that is gone are skipped.
func assembleTree(categories []*MenuCategory, items []*MenuItem, allergensByItem map[int][]Allergen) *MenuTree {
	tree := &MenuTree{
		Categories: make([]*MenuBranch, 0, len(categories)),
		Skipped:    []SkippedRecord{},
	}

	branchByCategory := make(map[int]*MenuBranch, len(categories))
	for _, category := range categories {
		branch := &MenuBranch{
			MenuCategory: *category,
			Items:        []*MenuLeaf{},
		}
		branchByCategory[category.ID] = branch
		tree.Categories = append(tree.Categories, branch)
	}

	for _, item := range items {
		branch, ok := branchByCategory[item.CategoryId]
		if !ok {
			// category deleted under us: drop the item, keep the tree
			tree.Skipped = append(tree.Skipped, SkippedRecord{Kind: "menu_item", Id: item.ID})
			continue
		}
		allergens, ok := allergensByItem[item.ID]
		if !ok {
			allergens = []Allergen{}
		}
		leaf := &MenuLeaf{MenuItem: *item}
		leaf.Allergens = allergens
		leaf.Price = leaf.FormattedPrice()
		branch.Items = append(branch.Items, leaf)
	}

	return tree
}
