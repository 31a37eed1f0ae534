package planner

import "sort"

// ShoppingRow is one (food name, quantity) pair read from a plan's meals.
type ShoppingRow struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ShoppingList maps a food name to the total quantity needed for a plan.
type ShoppingList map[string]int

type ShoppingItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// AggregateShoppingList sums quantities per food name. Day and meal type are
// not part of the key and names are compared as stored.
func AggregateShoppingList(rows []ShoppingRow) ShoppingList {
	list := make(ShoppingList, len(rows))
	for _, r := range rows {
		list[r.Name] += r.Quantity
	}
	return list
}

// Items returns the list sorted by food name.
func (l ShoppingList) Items() []ShoppingItem {
	items := make([]ShoppingItem, 0, len(l))
	for name, qty := range l {
		items = append(items, ShoppingItem{Name: name, Quantity: qty})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}
