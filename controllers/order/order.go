package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	cartControllers "github.com/renus-code/QuickBite/controllers/cart"
	"github.com/renus-code/QuickBite/events"
	"github.com/renus-code/QuickBite/models"
	"github.com/renus-code/QuickBite/mq"
)

var (
	ErrEmptyCart     = errors.New("cannot place an empty order")
	ErrOrderNotFound = errors.New("order not found")
)

// Manager converts cart snapshots into persisted orders and advances each
// one through the fixed status sequence on a timer. Every transition is
// persisted and published before the next delay starts. Concurrent orders
// advance independently.
type Manager struct {
	DB        *gorm.DB
	Cart      *cartControllers.Engine
	Hub       *events.Hub
	Publisher *mq.Publisher

	// PhaseDelay is the pause between status transitions; GraceDelay is how
	// long the terminal message stays visible before it is cleared.
	PhaseDelay time.Duration
	GraceDelay time.Duration

	// ctx bounds all advancement goroutines; cancelling it stops further
	// persistence without touching rows already written.
	ctx context.Context
}

func NewManager(ctx context.Context, db *gorm.DB, cart *cartControllers.Engine, hub *events.Hub, pub *mq.Publisher, phase, grace time.Duration) *Manager {
	return &Manager{
		DB:         db,
		Cart:       cart,
		Hub:        hub,
		Publisher:  pub,
		PhaseDelay: phase,
		GraceDelay: grace,
		ctx:        ctx,
	}
}

// PlaceOrder snapshots the user's cart into an order, persists it, clears
// the cart and starts the status advancement task. The item list and total
// are immutable from here on; only the status column changes.
func (m *Manager) PlaceOrder(ctx context.Context, email, address, payment string) (*models.Order, error) {
	items := m.Cart.Items(email)
	if len(items) == 0 {
		m.Hub.Publish("order.status", statusPayload(email, 0, "Cannot place an empty order."))
		return nil, ErrEmptyCart
	}

	var (
		display models.StringList
		lines   []models.OrderLine
		total   float64
	)
	for _, ci := range items {
		display = append(display, fmt.Sprintf("%s (x%d)", ci.Item.Name, ci.Quantity))
		lines = append(lines, models.OrderLine{
			FoodID:    ci.Item.ID,
			Name:      ci.Item.Name,
			UnitPrice: ci.Item.Price,
			Quantity:  ci.Quantity,
			ImageURL:  ci.Item.ImageURL,
		})
		total += ci.Item.Price * float64(ci.Quantity)
	}
	total += total * cartControllers.TaxRate

	order := models.Order{
		OrderRef:        generateOrderRef(),
		UserEmail:       email,
		Items:           display,
		LineItems:       lines,
		TotalPrice:      total,
		Status:          models.OrderStatusPlaced,
		ShippingAddress: address,
		PaymentMethod:   payment,
		CreatedAt:       time.Now(),
	}
	if err := m.DB.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	m.Cart.ClearCart(email)
	m.Hub.Publish("order.status", statusPayload(email, order.ID, "Order placed successfully!"))
	if err := m.Publisher.PublishJSON(ctx, "order.placed", order); err != nil {
		log.Printf("publish order.placed for #%d: %v", order.ID, err)
	}

	go m.advance(order.ID, email, order.Status)

	return &order, nil
}

// advance walks the remaining status sequence for one order, sleeping
// between transitions. The conditional update keeps the sequence monotonic
// even if another writer touched the row.
func (m *Manager) advance(orderID uint, email string, from models.OrderStatus) {
	cur := from
	for {
		next, ok := cur.Next()
		if !ok {
			break
		}
		select {
		case <-m.ctx.Done():
			return
		case <-time.After(m.PhaseDelay):
		}

		res := m.DB.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, cur).
			Update("status", next)
		if res.Error != nil {
			log.Printf("advance order #%d to %s: %v", orderID, next, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			// Row no longer in the expected state, stop driving it.
			return
		}

		m.Hub.Publish("order.status", statusPayload(email, orderID, statusMessage(next)))
		if err := m.Publisher.PublishJSON(m.ctx, "order.status."+string(next), map[string]interface{}{
			"order_id": orderID, "status": next,
		}); err != nil {
			log.Printf("publish order.status for #%d: %v", orderID, err)
		}
		cur = next
	}

	// Keep the terminal message visible for a moment, then clear it.
	select {
	case <-m.ctx.Done():
		return
	case <-time.After(m.GraceDelay):
	}
	m.Hub.Publish("order.status", statusPayload(email, orderID, ""))
}

// Reorder rebuilds cart entries from a previous order's structured line
// items. Quantities and the unit prices captured at purchase time are
// restored as-is.
func (m *Manager) Reorder(email string, orderID uint) error {
	var order models.Order
	err := m.DB.Preload("LineItems").
		Where("id = ? AND user_email = ?", orderID, email).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("load order: %w", err)
	}

	for _, line := range order.LineItems {
		m.Cart.Add(email, models.FoodItem{
			ID:       line.FoodID,
			Name:     line.Name,
			Price:    line.UnitPrice,
			ImageURL: line.ImageURL,
		}, line.Quantity)
	}
	return nil
}

// RecentOrders lists a user's orders, newest first.
func (m *Manager) RecentOrders(email string) ([]models.Order, error) {
	var orders []models.Order
	err := m.DB.Preload("LineItems").
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func statusMessage(s models.OrderStatus) string {
	switch s {
	case models.OrderStatusDelivered:
		return "Your order has been delivered. Enjoy!"
	default:
		return fmt.Sprintf("Your order is now: %s", s)
	}
}

func statusPayload(email string, orderID uint, msg string) map[string]interface{} {
	return map[string]interface{}{
		"user_email": email,
		"order_id":   orderID,
		"message":    msg,
	}
}

// generateOrderRef returns a unique human-sortable reference, e.g.
// 20250908130500-<uuid4>.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
