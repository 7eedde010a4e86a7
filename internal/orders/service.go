package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderflow/internal/events"
	"orderflow/internal/metrics"
	"orderflow/internal/products"
)

// Sentinel errors the handlers map to HTTP statuses.
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("some product was not found")
	ErrNoProducts      = errors.New("order must contain at least one product")
)

// Service orchestrates the order lifecycle: resolve products, persist,
// publish the lifecycle event.
type Service struct {
	store   *Store
	catalog *products.Store
	bus     *events.Publisher
	metrics *metrics.Emitter
	log     *zap.Logger
	nowFunc func() time.Time
	newID   func() string
}

// NewService creates a Service with all dependencies injected.
func NewService(store *Store, catalog *products.Store, bus *events.Publisher, emitter *metrics.Emitter, log *zap.Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		bus:     bus,
		metrics: emitter,
		log:     log,
		nowFunc: time.Now,
		newID:   uuid.NewString,
	}
}

// Create resolves the requested products, persists the order, then publishes
// the CREATED event. Any catalog or store failure aborts before a write; a
// publish failure after the write is the one accepted partial failure — the
// order is durable, the event is lost, and the gap is logged and counted.
func (s *Service) Create(ctx context.Context, in CreateOrderInput) (OrderResponse, error) {
	if len(in.ProductIDs) == 0 {
		return OrderResponse{}, ErrNoProducts
	}

	resolved, err := s.catalog.GetByIDs(ctx, in.ProductIDs)
	if err != nil {
		return OrderResponse{}, fmt.Errorf("resolve products: %w", err)
	}
	if len(resolved) != len(in.ProductIDs) {
		return OrderResponse{}, ErrProductNotFound
	}

	order := buildOrder(in, resolved, s.newID(), s.nowFunc())

	if err := s.store.Create(ctx, order); err != nil {
		return OrderResponse{}, fmt.Errorf("persist order: %w", err)
	}

	s.publishEvent(ctx, events.OrderCreated, order, in.RequestID)

	s.log.Info("order created",
		zap.String("order_id", order.OrderID),
		zap.String("email", order.Email),
		zap.Float64("total_price", order.Billing.TotalPrice))
	return toResponse(order), nil
}

// Get returns one order, or ErrOrderNotFound.
func (s *Service) Get(ctx context.Context, email, orderID string) (OrderResponse, error) {
	order, err := s.store.Get(ctx, email, orderID)
	if err != nil {
		return OrderResponse{}, fmt.Errorf("fetch order: %w", err)
	}
	if order == nil {
		return OrderResponse{}, ErrOrderNotFound
	}
	return toResponse(*order), nil
}

// ListByEmail returns every order under one customer partition.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]OrderResponse, error) {
	orders, err := s.store.QueryByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return toResponses(orders), nil
}

// ListAll returns every order in the store.
func (s *Service) ListAll(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.store.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return toResponses(orders), nil
}

// Delete removes the order and publishes the DELETED event with the deleted
// snapshot. A missing order returns ErrOrderNotFound and publishes nothing.
func (s *Service) Delete(ctx context.Context, email, orderID, requestID string) (OrderResponse, error) {
	order, err := s.store.Delete(ctx, email, orderID)
	if err != nil {
		return OrderResponse{}, fmt.Errorf("delete order: %w", err)
	}
	if order == nil {
		return OrderResponse{}, ErrOrderNotFound
	}

	s.publishEvent(ctx, events.OrderDeleted, *order, requestID)

	s.log.Info("order deleted",
		zap.String("order_id", order.OrderID),
		zap.String("email", order.Email))
	return toResponse(*order), nil
}

// buildOrder assembles the order from the request and the resolved catalog
// records. Line items keep the request order and snapshot the price observed
// now; later catalog changes never touch the order.
func buildOrder(in CreateOrderInput, resolved []products.Product, orderID string, now time.Time) Order {
	byID := make(map[string]products.Product, len(resolved))
	for _, p := range resolved {
		byID[p.ID] = p
	}

	items := make([]OrderItem, 0, len(in.ProductIDs))
	var totalPrice float64
	for _, id := range in.ProductIDs {
		p := byID[id]
		totalPrice += p.Price
		items = append(items, OrderItem{Code: p.Code, Price: p.Price})
	}

	return Order{
		Email:     in.Email,
		OrderID:   orderID,
		CreatedAt: now.UnixMilli(),
		Products:  items,
		Billing: Billing{
			Payment:    in.Payment,
			TotalPrice: totalPrice,
		},
		Shipping: in.Shipping,
	}
}

func (s *Service) publishEvent(ctx context.Context, eventType events.EventType, order Order, requestID string) {
	codes := make([]string, 0, len(order.Products))
	for _, item := range order.Products {
		codes = append(codes, item.Code)
	}

	messageID, err := s.bus.Publish(ctx, eventType, events.OrderEvent{
		Email:   order.Email,
		OrderID: order.OrderID,
		Shipping: events.ShippingInfo{
			Type:    string(order.Shipping.Type),
			Carrier: string(order.Shipping.Carrier),
		},
		Billing: events.BillingInfo{
			Payment:    string(order.Billing.Payment),
			TotalPrice: order.Billing.TotalPrice,
		},
		ProductCodes: codes,
		RequestID:    requestID,
	})
	if err != nil {
		// The order write already committed. Not rolled back: the event log
		// is an audit trail, not the system of record.
		s.log.Warn("order persisted but event publish failed",
			zap.String("order_id", order.OrderID),
			zap.String("event_type", string(eventType)),
			zap.String("request_id", requestID),
			zap.Error(err))
		s.metrics.EventPublishFailure(ctx, string(eventType))
		return
	}

	s.log.Info("order event sent",
		zap.String("order_id", order.OrderID),
		zap.String("event_type", string(eventType)),
		zap.String("message_id", messageID))
}

func toResponses(orders []Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, toResponse(o))
	}
	return result
}
