package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meridian-be/internal/cache"
	"meridian-be/internal/logger"
	"meridian-be/internal/metrics"
	"meridian-be/internal/notify"
	"meridian-be/internal/product"
	"meridian-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	// CreateOrderFromPayment converts a verified payment confirmation into a
	// durable order. Exactly one order exists per payment reference once it
	// returns, no matter how many times it is called.
	CreateOrderFromPayment(ctx context.Context, input PaymentInput) (*Order, error)
	FindByPaymentReference(ctx context.Context, ref string) (*Order, error)
	GetOrderDetail(ctx context.Context, orderID string) (*Order, error)
}

type service struct {
	repo       Repository
	stock      product.Repository
	cache      cache.Invalidator
	dispatcher notify.Dispatcher
	metrics    *metrics.Fulfillment
}

func NewService(
	repo Repository,
	stock product.Repository,
	inv cache.Invalidator,
	dispatcher notify.Dispatcher,
	m *metrics.Fulfillment,
) Service {
	if m == nil {
		m = metrics.NewFulfillment()
	}
	return &service{
		repo:       repo,
		stock:      stock,
		cache:      inv,
		dispatcher: dispatcher,
		metrics:    m,
	}
}

func (s *service) CreateOrderFromPayment(ctx context.Context, input PaymentInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrderFromPayment"),
		zap.String("payment_reference", input.PaymentReference),
		zap.Int("item_count", len(input.Items)),
	)

	timer := metrics.StartTimer()

	if err := validateInput(input); err != nil {
		log.Warn("invalid payment input", zap.Error(err))
		return nil, err
	}

	// 1. Idempotency fast path. Advisory only: the unique constraint on
	// payment_reference is the authoritative guard.
	existing, err := s.repo.FindByPaymentReference(ctx, input.PaymentReference)
	if err != nil {
		return nil, fmt.Errorf("failed to look up payment reference: %w", err)
	}
	if existing != nil {
		s.metrics.DuplicateHits.Inc()
		log.Info("order already exists for payment reference, returning existing",
			zap.String("order_id", existing.ID),
		)
		return existing, nil
	}

	// 2. Pre-validate availability for every line before opening a transaction.
	// Fails fast on obviously-doomed requests; the in-transaction re-check
	// handles the race window this leaves open.
	for _, item := range input.Items {
		chk, err := s.stock.CheckAvailability(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to check stock for %s: %w", item.ProductID, err)
		}
		if !chk.Available {
			s.metrics.StockRejections.Inc()
			log.Warn("stock validation failed", zap.String("reason", chk.Message))

			name := chk.ProductName
			if name == "" {
				name = item.ProductID
			}
			return nil, &product.InsufficientStockError{
				Product:   name,
				Available: chk.CurrentStock,
				Requested: item.Quantity,
			}
		}
	}

	o := buildOrder(input)

	// 3. Atomic unit of work: order row, item snapshots and stock decrements
	// commit together or not at all.
	outcome, err := s.repo.CreateFromPayment(ctx, o)
	if err != nil {
		var stockErr *product.InsufficientStockError
		if errors.As(err, &stockErr) {
			s.metrics.StockRejections.Inc()
			log.Warn("stock depleted inside transaction", zap.Error(err))
			return nil, err
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if outcome == ConflictExisting {
		// A concurrent attempt with the same reference won the race. Our
		// transaction rolled back without touching stock; return the winner.
		s.metrics.DuplicateHits.Inc()
		log.Info("payment reference already fulfilled by concurrent attempt")

		winner, err := s.repo.FindByPaymentReference(ctx, input.PaymentReference)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch winning order: %w", err)
		}
		if winner == nil {
			return nil, fmt.Errorf("order for %s vanished after conflict", input.PaymentReference)
		}
		return winner, nil
	}

	s.metrics.OrdersCreated.Inc()
	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.Float64("total", o.Total),
		zap.Duration("duration", timer.Duration()),
	)

	// 4. Post-commit side effects. Strictly after commit, always best-effort.
	s.invalidateCaches(ctx, o)
	s.dispatchNotifications(ctx, o)

	return o, nil
}

func (s *service) FindByPaymentReference(ctx context.Context, ref string) (*Order, error) {
	if ref == "" {
		return nil, ErrEmptyReference
	}

	o, err := s.repo.FindByPaymentReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) GetOrderDetail(ctx context.Context, orderID string) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

func validateInput(input PaymentInput) error {
	if input.PaymentReference == "" {
		return ErrEmptyReference
	}
	if len(input.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return ErrInvalidItem
		}
	}
	return nil
}

func buildOrder(input PaymentInput) *Order {
	o := &Order{
		ID:               uuid.NewString(),
		OrderNumber:      utils.GenerateOrderNumber(),
		PaymentReference: input.PaymentReference,
		Total:            input.Total,
		PaymentStatus:    PaymentSucceeded,
		PaymentMethod:    "stripe",
		Status:           StatusProcessing,
		CustomerID:       input.CustomerID,
		CustomerEmail:    input.CustomerEmail,
		CustomerName:     input.CustomerName,
		CreatedAt:        time.Now().UTC(),
	}

	for _, item := range input.Items {
		o.Items = append(o.Items, OrderItem{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return o
}

func (s *service) invalidateCaches(ctx context.Context, o *Order) {
	log := logger.FromCtx(ctx)

	for _, item := range o.Items {
		if err := s.cache.InvalidateProduct(ctx, item.ProductID); err != nil {
			log.Warn("failed to invalidate product cache",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
		}
	}

	if err := s.cache.InvalidateOrders(ctx); err != nil {
		log.Warn("failed to invalidate order cache", zap.Error(err))
	}
}

func (s *service) dispatchNotifications(ctx context.Context, o *Order) {
	log := logger.FromCtx(ctx).With(zap.String("order_id", o.ID))
	notice := toNotice(o)

	if err := s.dispatcher.NotifyCustomer(ctx, notice); err != nil {
		log.Warn("failed to send order confirmation", zap.Error(err))
	}
	if err := s.dispatcher.NotifyOperator(ctx, notice); err != nil {
		log.Warn("failed to send operator alert", zap.Error(err))
	}
}
