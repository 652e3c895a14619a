package revenue

import (
	"context"
	"log/slog"

	"github.com/saasrevops/revenue-gateway/internal"
	"github.com/saasrevops/revenue-gateway/internal/cache"
)

const (
	EventQuoteChanged    = "revenue.quote.changed"
	EventQuoteAccepted   = "revenue.quote.accepted"
	EventContractChanged = "revenue.contract.changed"
)

const (
	keyQuotes    = "revenue.quotes"
	keyOrders    = "revenue.orders"
	keyContracts = "revenue.contracts"
)

type ClientAPI interface {
	ListQuotes(ctx context.Context, status string) ([]Quote, error)
	GetQuote(ctx context.Context, quoteID string) (*Quote, error)
	CreateQuote(ctx context.Context, dto CreateQuoteDTO) (*Quote, error)
	SendQuote(ctx context.Context, quoteID string) (*Quote, error)
	AcceptQuote(ctx context.Context, quoteID string) (*Quote, error)
	ListOrders(ctx context.Context, status string) ([]Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	ListContracts(ctx context.Context, status string) ([]Contract, error)
	GetContract(ctx context.Context, contractID string) (*Contract, error)
	CreateContract(ctx context.Context, dto CreateContractDTO) (*Contract, error)
	ActivateContract(ctx context.Context, contractID string) (*Contract, error)
	TerminateContract(ctx context.Context, contractID string, dto TerminateContractDTO) (*Contract, error)
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

// registerInvalidations declares which cached reads each mutation stales.
// Accepting a quote also stales the order lists: the platform creates the
// order from the accepted quote.
func (s *Service) registerInvalidations() {
	s.bus.Subscribe(EventQuoteChanged, func(ctx context.Context, ev cache.Event) {
		s.store.InvalidatePrefix(cache.Key(keyQuotes, "list"))
		s.store.Invalidate(cache.Key(keyQuotes, "detail", ev.ResourceID))
	})
	s.bus.Subscribe(EventQuoteAccepted, func(ctx context.Context, ev cache.Event) {
		s.store.InvalidatePrefix(cache.Key(keyQuotes, "list"))
		s.store.Invalidate(cache.Key(keyQuotes, "detail", ev.ResourceID))
		s.store.InvalidatePrefix(cache.Key(keyOrders, "list"))
	})
	s.bus.Subscribe(EventContractChanged, func(ctx context.Context, ev cache.Event) {
		s.store.InvalidatePrefix(cache.Key(keyContracts, "list"))
		s.store.Invalidate(cache.Key(keyContracts, "detail", ev.ResourceID))
	})
}

// ListQuotes passes the status filter upstream and keys the cache by it, so
// each filtered view is its own entry.
func (s *Service) ListQuotes(ctx context.Context, status string) ([]Quote, error) {
	return cache.Fetch(ctx, s.store, cache.Key(keyQuotes, "list", status), func(ctx context.Context) ([]Quote, error) {
		return s.client.ListQuotes(ctx, status)
	})
}

func (s *Service) GetQuote(ctx context.Context, quoteID string) (*Quote, error) {
	return cache.Fetch(ctx, s.store, cache.Key(keyQuotes, "detail", quoteID), func(ctx context.Context) (*Quote, error) {
		return s.client.GetQuote(ctx, quoteID)
	})
}

func (s *Service) CreateQuote(ctx context.Context, dto CreateQuoteDTO) (*Quote, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	quote, err := s.client.CreateQuote(ctx, dto)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventQuoteChanged, ResourceID: quote.ID})
	s.logger.Info("quote created", "quote_id", quote.ID, "customer_id", quote.CustomerID, "total_cents", quote.TotalCents)
	return quote, nil
}

func (s *Service) SendQuote(ctx context.Context, quoteID string) (*Quote, error) {
	quote, err := s.client.SendQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventQuoteChanged, ResourceID: quoteID})
	s.logger.Info("quote sent", "quote_id", quoteID)
	return quote, nil
}

func (s *Service) AcceptQuote(ctx context.Context, quoteID string) (*Quote, error) {
	quote, err := s.client.AcceptQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventQuoteAccepted, ResourceID: quoteID})
	s.logger.Info("quote accepted", "quote_id", quoteID)
	return quote, nil
}

func (s *Service) ListOrders(ctx context.Context, status string) ([]Order, error) {
	return cache.Fetch(ctx, s.store, cache.Key(keyOrders, "list", status), func(ctx context.Context) ([]Order, error) {
		return s.client.ListOrders(ctx, status)
	})
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	return cache.Fetch(ctx, s.store, cache.Key(keyOrders, "detail", orderID), func(ctx context.Context) (*Order, error) {
		return s.client.GetOrder(ctx, orderID)
	})
}

func (s *Service) ListContracts(ctx context.Context, status string) ([]Contract, error) {
	return cache.Fetch(ctx, s.store, cache.Key(keyContracts, "list", status), func(ctx context.Context) ([]Contract, error) {
		return s.client.ListContracts(ctx, status)
	})
}

func (s *Service) GetContract(ctx context.Context, contractID string) (*Contract, error) {
	return cache.Fetch(ctx, s.store, cache.Key(keyContracts, "detail", contractID), func(ctx context.Context) (*Contract, error) {
		return s.client.GetContract(ctx, contractID)
	})
}

func (s *Service) CreateContract(ctx context.Context, dto CreateContractDTO) (*Contract, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	contract, err := s.client.CreateContract(ctx, dto)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventContractChanged, ResourceID: contract.ID})
	s.logger.Info("contract created", "contract_id", contract.ID, "customer_id", contract.CustomerID)
	return contract, nil
}

func (s *Service) ActivateContract(ctx context.Context, contractID string) (*Contract, error) {
	contract, err := s.client.ActivateContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventContractChanged, ResourceID: contractID})
	s.logger.Info("contract activated", "contract_id", contractID)
	return contract, nil
}

func (s *Service) TerminateContract(ctx context.Context, contractID string, dto TerminateContractDTO) (*Contract, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	contract, err := s.client.TerminateContract(ctx, contractID, dto)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventContractChanged, ResourceID: contractID})
	s.logger.Info("contract terminated", "contract_id", contractID, "reason", dto.Reason)
	return contract, nil
}
