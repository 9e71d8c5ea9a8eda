package cartControllers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renus-code/QuickBite/events"
	"github.com/renus-code/QuickBite/models"
)

func testItem(id, name string, price float64) models.FoodItem {
	return models.FoodItem{ID: id, Name: name, Price: price}
}

func TestAddToCart(t *testing.T) {
	e := NewEngine(nil, nil)

	e.AddToCart("bob@x.com", testItem("1", "Pizza", 10))
	e.AddToCart("bob@x.com", testItem("1", "Pizza", 10))
	e.AddToCart("bob@x.com", testItem("2", "Pad Thai", 12.5))

	items := e.Items("bob@x.com")
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Pizza", items[0].Item.Name)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestQuantityInvariant(t *testing.T) {
	e := NewEngine(nil, nil)
	email := "bob@x.com"

	e.AddToCart(email, testItem("1", "Pizza", 10))
	e.IncreaseQuantity(email, "1")
	e.DecreaseQuantity(email, "1")
	assert.Equal(t, 1, e.Items(email)[0].Quantity)

	// Decreasing a quantity-1 entry removes it entirely.
	e.DecreaseQuantity(email, "1")
	assert.Empty(t, e.Items(email))

	// No entry is ever observed with quantity <= 0.
	for i := 0; i < 10; i++ {
		e.DecreaseQuantity(email, "1")
	}
	assert.Empty(t, e.Items(email))
}

func TestMutationsOnAbsentItemAreNoOps(t *testing.T) {
	e := NewEngine(nil, nil)

	e.IncreaseQuantity("bob@x.com", "nope")
	e.DecreaseQuantity("bob@x.com", "nope")
	assert.Empty(t, e.Items("bob@x.com"))
}

func TestTotals(t *testing.T) {
	e := NewEngine(nil, nil)
	email := "bob@x.com"

	e.AddToCart(email, testItem("1", "Pizza", 10))
	e.AddToCart(email, testItem("1", "Pizza", 10))
	e.AddToCart(email, testItem("2", "Pad Thai", 5))

	subtotal, tax, total := e.Totals(email)
	assert.InDelta(t, 25.0, subtotal, 1e-9)
	assert.InDelta(t, 25.0*TaxRate, tax, 1e-9)
	assert.InDelta(t, 25.0*1.13, total, 1e-9)
}

func TestClearCart(t *testing.T) {
	e := NewEngine(nil, nil)
	e.AddToCart("bob@x.com", testItem("1", "Pizza", 10))
	e.ClearCart("bob@x.com")
	assert.Empty(t, e.Items("bob@x.com"))

	_, _, total := e.Totals("bob@x.com")
	assert.Zero(t, total)
}

func TestCartsAreScopedPerUser(t *testing.T) {
	e := NewEngine(nil, nil)
	e.AddToCart("bob@x.com", testItem("1", "Pizza", 10))
	assert.Empty(t, e.Items("alice@x.com"))
}

func TestEveryMutationPublishesSnapshot(t *testing.T) {
	hub := events.NewHub()
	sub := hub.Subscribe()
	e := NewEngine(nil, hub)

	e.AddToCart("bob@x.com", testItem("1", "Pizza", 10))
	e.IncreaseQuantity("bob@x.com", "1")
	e.ClearCart("bob@x.com")

	var got []events.Event
	for i := 0; i < 3; i++ {
		select {
		case ev := <-sub:
			got = append(got, ev)
		case <-time.After(time.Second):
			t.Fatalf("expected 3 snapshots, got %d", len(got))
		}
	}
	assert.Equal(t, "cart.bob@x.com", got[0].Topic)

	// The last snapshot reflects the cleared cart.
	items, ok := got[2].Payload.([]models.CartItem)
	require.True(t, ok)
	assert.Empty(t, items)
}

func TestMirrorAndRestore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	e := NewEngine(rdb, nil)
	email := "bob@x.com"

	e.AddToCart(email, testItem("1", "Pizza", 10))

	// The mirror write is fire-and-forget.
	assert.Eventually(t, func() bool {
		data, err := mr.Get("cart:" + email)
		if err != nil {
			return false
		}
		var items []models.CartItem
		return json.Unmarshal([]byte(data), &items) == nil && len(items) == 1
	}, time.Second, 10*time.Millisecond)

	// A fresh engine restores from the mirror.
	fresh := NewEngine(rdb, nil)
	fresh.Restore(context.Background(), email)
	items := fresh.Items(email)
	require.Len(t, items, 1)
	assert.Equal(t, "Pizza", items[0].Item.Name)
}

func TestMirrorFailureDoesNotFailMutation(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	e := NewEngine(rdb, nil)
	e.AddToCart("bob@x.com", testItem("1", "Pizza", 10))
	assert.Len(t, e.Items("bob@x.com"), 1)
}

func TestRecentSearches(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	e := NewEngine(rdb, nil)
	ctx := context.Background()
	email := "bob@x.com"

	for _, q := range []string{"pizza", "pad thai", "pizza", "ramen", "sushi", "tacos", "curry"} {
		e.RecordSearch(ctx, email, q)
	}

	got := e.RecentSearches(ctx, email)
	// Distinct, capped at 5, newest first; the repeated "pizza" moved up.
	assert.Equal(t, []string{"curry", "tacos", "sushi", "ramen", "pizza"}, got)

	e.ClearRecentSearches(ctx, email)
	assert.Empty(t, e.RecentSearches(ctx, email))
}
