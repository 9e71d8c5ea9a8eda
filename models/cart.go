package models

// CartItem lives in memory (and in the Redis mirror), never in SQL.
// Quantity is always >= 1; an item decremented to zero is removed from the
// cart instead.
type CartItem struct {
	Item     FoodItem `json:"item"`
	Quantity int      `json:"quantity"`
}
