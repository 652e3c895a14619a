package payments

import (
	"context"
	"log/slog"

	"github.com/saasrevops/revenue-gateway/internal"
	"github.com/saasrevops/revenue-gateway/internal/cache"
)

const (
	EventPaymentChanged = "payments.payment.changed"
)

const (
	keyPayments = "payments.payments"
)

type ClientAPI interface {
	ListPayments(ctx context.Context, status string) ([]Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
	AllocatePayment(ctx context.Context, paymentID string, dto AllocatePaymentDTO) ([]Allocation, error)
	CreateRefund(ctx context.Context, paymentID string, dto CreateRefundDTO) (*Refund, error)
}

type Service struct {
	client ClientAPI
	store  *cache.Store
	bus    *cache.Bus
	logger *slog.Logger
}

func NewService(client ClientAPI, store *cache.Store, bus *cache.Bus, logger *slog.Logger) *Service {
	s := &Service{
		client: client,
		store:  store,
		bus:    bus,
		logger: logger,
	}
	s.registerInvalidations()
	return s
}

func (s *Service) registerInvalidations() {
	s.bus.Subscribe(EventPaymentChanged, func(ctx context.Context, ev cache.Event) {
		s.store.InvalidatePrefix(cache.Key(keyPayments, "list"))
		s.store.Invalidate(cache.Key(keyPayments, "detail", ev.ResourceID))
	})
}

func (s *Service) ListPayments(ctx context.Context, status string) ([]Payment, error) {
	return cache.Fetch(ctx, s.store, cache.Key(keyPayments, "list", status), func(ctx context.Context) ([]Payment, error) {
		return s.client.ListPayments(ctx, status)
	})
}

func (s *Service) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	return cache.Fetch(ctx, s.store, cache.Key(keyPayments, "detail", paymentID), func(ctx context.Context) (*Payment, error) {
		return s.client.GetPayment(ctx, paymentID)
	})
}

// AllocatePayment submits allocation lines as entered. Whether the amounts
// fit the payment's unallocated balance is the platform's rule.
func (s *Service) AllocatePayment(ctx context.Context, paymentID string, dto AllocatePaymentDTO) ([]Allocation, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	allocations, err := s.client.AllocatePayment(ctx, paymentID, dto)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventPaymentChanged, ResourceID: paymentID})
	s.logger.Info("payment allocated", "payment_id", paymentID, "lines", len(dto.Lines))
	return allocations, nil
}

func (s *Service) CreateRefund(ctx context.Context, paymentID string, dto CreateRefundDTO) (*Refund, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	refund, err := s.client.CreateRefund(ctx, paymentID, dto)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventPaymentChanged, ResourceID: paymentID})
	s.logger.Info("refund created", "payment_id", paymentID, "refund_id", refund.ID, "amount_cents", dto.AmountCents)
	return refund, nil
}
