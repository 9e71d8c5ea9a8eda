package cartControllers

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/renus-code/QuickBite/events"
	"github.com/renus-code/QuickBite/models"
)

// TaxRate applied on top of the cart subtotal at read time.
const TaxRate = 0.13

const (
	maxRecentSearches = 5
	mirrorTimeout     = 2 * time.Second
)

// Engine owns the in-memory carts, one per user email. Mutations republish
// the full snapshot to the hub and mirror it to Redis fire-and-forget; the
// mirror is a cache and its failures never fail the in-memory operation.
type Engine struct {
	mu    sync.Mutex
	carts map[string][]models.CartItem

	rdb *redis.Client // optional
	hub *events.Hub   // optional
}

func NewEngine(rdb *redis.Client, hub *events.Hub) *Engine {
	return &Engine{
		carts: make(map[string][]models.CartItem),
		rdb:   rdb,
		hub:   hub,
	}
}

// AddToCart increments the quantity of an existing entry or appends a new
// one with quantity 1.
func (e *Engine) AddToCart(email string, item models.FoodItem) {
	e.Add(email, item, 1)
}

// Add merges qty units of item into the cart. Used by AddToCart and by
// order reconstruction.
func (e *Engine) Add(email string, item models.FoodItem, qty int) {
	if qty < 1 {
		return
	}
	e.mu.Lock()
	cart := e.carts[email]
	found := false
	for i := range cart {
		if cart[i].Item.ID == item.ID {
			cart[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, models.CartItem{Item: item, Quantity: qty})
	}
	e.carts[email] = cart
	snapshot := copyItems(cart)
	e.mu.Unlock()

	e.publish(email, snapshot)
}

// IncreaseQuantity increments the matching entry; no-op if absent.
func (e *Engine) IncreaseQuantity(email, itemID string) {
	e.mu.Lock()
	cart := e.carts[email]
	changed := false
	for i := range cart {
		if cart[i].Item.ID == itemID {
			cart[i].Quantity++
			changed = true
			break
		}
	}
	snapshot := copyItems(cart)
	e.mu.Unlock()

	if changed {
		e.publish(email, snapshot)
	}
}

// DecreaseQuantity decrements the matching entry, removing it entirely when
// the quantity would reach zero; no-op if absent.
func (e *Engine) DecreaseQuantity(email, itemID string) {
	e.mu.Lock()
	cart := e.carts[email]
	changed := false
	for i := range cart {
		if cart[i].Item.ID != itemID {
			continue
		}
		if cart[i].Quantity > 1 {
			cart[i].Quantity--
		} else {
			cart = append(cart[:i], cart[i+1:]...)
		}
		changed = true
		break
	}
	e.carts[email] = cart
	snapshot := copyItems(cart)
	e.mu.Unlock()

	if changed {
		e.publish(email, snapshot)
	}
}

func (e *Engine) ClearCart(email string) {
	e.mu.Lock()
	delete(e.carts, email)
	e.mu.Unlock()

	e.publish(email, []models.CartItem{})
}

// Items returns a copy of the user's cart.
func (e *Engine) Items(email string) []models.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyItems(e.carts[email])
}

// Totals derives subtotal, tax and total from the current cart. Nothing is
// stored; the values are recomputed on every read.
func (e *Engine) Totals(email string) (subtotal, tax, total float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ci := range e.carts[email] {
		subtotal += ci.Item.Price * float64(ci.Quantity)
	}
	tax = subtotal * TaxRate
	total = subtotal + tax
	return
}

// Restore loads the mirrored snapshot for a user, typically once after
// login. A missing or stale mirror is not an error.
func (e *Engine) Restore(ctx context.Context, email string) {
	if e.rdb == nil {
		return
	}
	data, err := e.rdb.Get(ctx, cartKey(email)).Bytes()
	if err != nil {
		return
	}
	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return
	}
	e.mu.Lock()
	e.carts[email] = items
	e.mu.Unlock()
}

func (e *Engine) publish(email string, snapshot []models.CartItem) {
	e.hub.Publish("cart."+email, snapshot)
	if e.rdb == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		data, err := json.Marshal(snapshot)
		if err != nil {
			return
		}
		if err := e.rdb.Set(ctx, cartKey(email), data, 0).Err(); err != nil {
			log.Printf("cart mirror write failed for %s: %v", email, err)
		}
	}()
}

func copyItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}

func cartKey(email string) string {
	return "cart:" + email
}
