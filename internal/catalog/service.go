package catalog

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/saasrevops/revenue-gateway/internal"
	"github.com/saasrevops/revenue-gateway/internal/cache"
)

const (
	EventProductChanged   = "catalog.product.changed"
	EventPricebookChanged = "catalog.pricebook.changed"
	EventPricebookDeleted = "catalog.pricebook.deleted"
)

const (
	keyProducts   = "catalog.products"
	keyPricebooks = "catalog.pricebooks"
)

type ClientAPI interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	CreateProduct(ctx context.Context, dto CreateProductDTO) (*Product, error)
	UpdateProduct(ctx context.Context, productID string, dto UpdateProductDTO) (*Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	ListPricebooks(ctx context.Context) ([]Pricebook, error)
	GetPricebook(ctx context.Context, pricebookID string) (*Pricebook, error)
	CreatePricebook(ctx context.Context, dto CreatePricebookDTO) (*Pricebook, error)
	UpdatePricebook(ctx context.Context, pricebookID string, dto UpdatePricebookDTO) (*Pricebook, error)
	DeletePricebook(ctx context.Context, pricebookID string) error
	CreatePricebookItem(ctx context.Context, pricebookID string, dto CreatePricebookItemDTO) (*PricebookItem, error)
}

type Service struct {
	client ClientAPI
	store  *cache.Store
	bus    *cache.Bus
	logger *slog.Logger

	// sessionItems holds the pricebook item lists built up over this
	// process's lifetime, keyed by pricebook ID. They are not cache
	// entries: the platform has no item list endpoint to refetch from,
	// so they must neither expire nor be evicted.
	itemsMu      sync.Mutex
	sessionItems map[string][]PricebookItem
}

func NewService(client ClientAPI, store *cache.Store, bus *cache.Bus, logger *slog.Logger) *Service {
	s := &Service{
		client:       client,
		store:        store,
		bus:          bus,
		logger:       logger,
		sessionItems: make(map[string][]PricebookItem),
	}
	s.registerInvalidations()
	return s
}

func (s *Service) registerInvalidations() {
	s.bus.Subscribe(EventProductChanged, func(ctx context.Context, ev cache.Event) {
		s.store.InvalidatePrefix(cache.Key(keyProducts, "list"))
		s.store.Invalidate(cache.Key(keyProducts, "detail", ev.ResourceID))
	})
	s.bus.Subscribe(EventPricebookChanged, func(ctx context.Context, ev cache.Event) {
		s.store.InvalidatePrefix(cache.Key(keyPricebooks, "list"))
		s.store.Invalidate(cache.Key(keyPricebooks, "detail", ev.ResourceID))
	})
	s.bus.Subscribe(EventPricebookDeleted, func(ctx context.Context, ev cache.Event) {
		s.store.InvalidatePrefix(cache.Key(keyPricebooks, "list"))
		s.store.Invalidate(cache.Key(keyPricebooks, "detail", ev.ResourceID))
		// the session-held item list for the deleted pricebook goes too
		s.itemsMu.Lock()
		delete(s.sessionItems, ev.ResourceID)
		s.itemsMu.Unlock()
	})
}

// ListProducts returns all products, narrowed by a case-insensitive
// substring match on name or SKU when search is non-empty.
func (s *Service) ListProducts(ctx context.Context, search string) ([]Product, error) {
	products, err := cache.Fetch(ctx, s.store, cache.Key(keyProducts, "list"), s.client.ListProducts)
	if err != nil {
		return nil, err
	}

	if search == "" {
		return products, nil
	}

	needle := strings.ToLower(search)
	filtered := make([]Product, 0, len(products))
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.Name), needle) ||
			strings.Contains(strings.ToLower(product.SKU), needle) {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}

func (s *Service) GetProduct(ctx context.Context, productID string) (*Product, error) {
	return cache.Fetch(ctx, s.store, cache.Key(keyProducts, "detail", productID), func(ctx context.Context) (*Product, error) {
		return s.client.GetProduct(ctx, productID)
	})
}

func (s *Service) CreateProduct(ctx context.Context, dto CreateProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	product, err := s.client.CreateProduct(ctx, dto)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventProductChanged, ResourceID: product.ID})
	s.logger.Info("product created", "product_id", product.ID, "sku", product.SKU)
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, productID string, dto UpdateProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	product, err := s.client.UpdateProduct(ctx, productID, dto)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventProductChanged, ResourceID: productID})
	return product, nil
}

// DeleteProduct submits the delete as-is. Whether a product may be removed
// (referenced by a pricebook, on an open quote) is the platform's rule; a
// refusal surfaces as the upstream error.
func (s *Service) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.client.DeleteProduct(ctx, productID); err != nil {
		return err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventProductChanged, ResourceID: productID})
	s.logger.Info("product deleted", "product_id", productID)
	return nil
}

func (s *Service) ListPricebooks(ctx context.Context) ([]Pricebook, error) {
	return cache.Fetch(ctx, s.store, cache.Key(keyPricebooks, "list"), s.client.ListPricebooks)
}

func (s *Service) GetPricebook(ctx context.Context, pricebookID string) (*Pricebook, error) {
	return cache.Fetch(ctx, s.store, cache.Key(keyPricebooks, "detail", pricebookID), func(ctx context.Context) (*Pricebook, error) {
		return s.client.GetPricebook(ctx, pricebookID)
	})
}

func (s *Service) CreatePricebook(ctx context.Context, dto CreatePricebookDTO) (*Pricebook, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	pricebook, err := s.client.CreatePricebook(ctx, dto)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventPricebookChanged, ResourceID: pricebook.ID})
	s.logger.Info("pricebook created", "pricebook_id", pricebook.ID)
	return pricebook, nil
}

func (s *Service) UpdatePricebook(ctx context.Context, pricebookID string, dto UpdatePricebookDTO) (*Pricebook, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	pricebook, err := s.client.UpdatePricebook(ctx, pricebookID, dto)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventPricebookChanged, ResourceID: pricebookID})
	return pricebook, nil
}

func (s *Service) DeletePricebook(ctx context.Context, pricebookID string) error {
	if err := s.client.DeletePricebook(ctx, pricebookID); err != nil {
		return err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventPricebookDeleted, ResourceID: pricebookID})
	s.logger.Info("pricebook deleted", "pricebook_id", pricebookID)
	return nil
}

// CreatePricebookItem submits the item and appends it to the in-process
// list for its pricebook. The platform has no item list endpoint, so this
// list is the only view the gateway can offer.
func (s *Service) CreatePricebookItem(ctx context.Context, pricebookID string, dto CreatePricebookItemDTO) (*PricebookItem, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	item, err := s.client.CreatePricebookItem(ctx, pricebookID, dto)
	if err != nil {
		return nil, err
	}

	s.itemsMu.Lock()
	s.sessionItems[pricebookID] = append(s.sessionItems[pricebookID], *item)
	s.itemsMu.Unlock()

	s.logger.Info("pricebook item created",
		"pricebook_id", pricebookID,
		"product_id", item.ProductID,
		"billing_period", item.BillingPeriod)
	return item, nil
}

// ListPricebookItems returns the items created through this process for the
// given pricebook. Items created elsewhere, or before the last restart, are
// not visible; callers must treat the list as partial.
func (s *Service) ListPricebookItems(ctx context.Context, pricebookID string) ([]PricebookItem, error) {
	s.itemsMu.Lock()
	defer s.itemsMu.Unlock()

	items := make([]PricebookItem, len(s.sessionItems[pricebookID]))
	copy(items, s.sessionItems[pricebookID])
	return items, nil
}
