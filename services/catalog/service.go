package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MarcGrol/agentcommerce/lib/mycache"
	"github.com/MarcGrol/agentcommerce/lib/myerrors"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
	"github.com/MarcGrol/agentcommerce/lib/mypubsub"
	"github.com/MarcGrol/agentcommerce/lib/myqueue"
	"github.com/MarcGrol/agentcommerce/lib/mystore"
	"github.com/MarcGrol/agentcommerce/lib/mytime"
	"github.com/MarcGrol/agentcommerce/lib/myuuid"
	"github.com/MarcGrol/agentcommerce/services/adapters"
	"github.com/MarcGrol/agentcommerce/services/checkout/checkoutevents"
)

const (
	cachePrefix       = "catalog:"
	activeProductsKey = cachePrefix + "products"
	syncPageSize      = 100
	defaultLimit      = 20
	maxLimit          = 100
)

type Service struct {
	store   mystore.Store[Product]
	cache   mycache.Cache
	tenants TenantResolver
	queue   myqueue.TaskQueuer
	pubsub  mypubsub.PubSub
	baseURL string
	nower   mytime.Nower
	uuider  myuuid.UUIDer
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[Product], cache mycache.Cache, tenants TenantResolver, queue myqueue.TaskQueuer, pubsub mypubsub.PubSub, baseURL string, nower mytime.Nower, uuider myuuid.UUIDer) *Service {
	return &Service{
		store:   store,
		cache:   cache,
		tenants: tenants,
		queue:   queue,
		pubsub:  pubsub,
		baseURL: baseURL,
		nower:   nower,
		uuider:  uuider,
		logger:  mylog.New("catalog"),
	}
}

// Search filters the active products of the tenant, ordered by title.
func (s *Service) Search(c context.Context, tenantID string, query SearchQuery) (Page, error) {
	products, err := s.activeProducts(c, tenantID)
	if err != nil {
		return Page{}, err
	}

	matches := []Product{}
	for _, p := range products {
		if query.matches(p) {
			matches = append(matches, p)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Title < matches[j].Title
	})

	limit := query.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)
	offset := max(query.Offset, 0)

	pageOfProducts := []Product{}
	if offset < len(matches) {
		pageOfProducts = matches[offset:min(offset+limit, len(matches))]
	}

	return Page{
		Products: pageOfProducts,
		Total:    len(matches),
		Limit:    limit,
		Offset:   offset,
		HasMore:  offset+limit < len(matches),
	}, nil
}

func (q SearchQuery) matches(p Product) bool {
	if q.Query != "" {
		text := strings.ToLower(p.Title + " " + p.Description + " " + strings.Join(p.Tags, " "))
		if !strings.Contains(text, strings.ToLower(q.Query)) {
			return false
		}
	}
	if q.Category != "" && !strings.EqualFold(p.ProductType, q.Category) {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	return true
}

func (s *Service) activeProducts(c context.Context, tenantID string) ([]Product, error) {
	products, err := mycache.GetOrLoad(c, s.cache, tenantID, activeProductsKey, mycache.DefaultTTL, func() ([]Product, error) {
		return s.store.Query(c, []mystore.Filter{
			{Field: "TenantID", Compare: "=", Value: tenantID},
			{Field: "Status", Compare: "=", Value: string(adapters.ProductStatusActive)},
		}, "Title")
	})
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error fetching products: %s", err))
	}
	return products, nil
}

// LookupActive finds an active product of the tenant by sku, falling back to id.
func (s *Service) LookupActive(c context.Context, tenantID string, id string, sku string) (Product, bool, error) {
	if sku != "" {
		product, found, err := s.lookup(c, tenantID, "SKU", sku)
		if err != nil || found {
			return product, found, err
		}
	}
	if id != "" {
		return s.lookup(c, tenantID, "ID", id)
	}
	return Product{}, false, nil
}

func (s *Service) lookup(c context.Context, tenantID string, field string, value string) (Product, bool, error) {
	products, err := s.store.Query(c, []mystore.Filter{
		{Field: "TenantID", Compare: "=", Value: tenantID},
		{Field: field, Compare: "=", Value: value},
		{Field: "Status", Compare: "=", Value: string(adapters.ProductStatusActive)},
	}, "")
	if err != nil {
		return Product{}, false, myerrors.NewInternalError(fmt.Errorf("error looking up product by %s: %s", field, err))
	}
	if len(products) == 0 {
		return Product{}, false, nil
	}
	return products[0], true, nil
}

// SyncFromAdapter copies the full platform catalog into the store.
// Products that disappeared from the platform are marked deleted.
func (s *Service) SyncFromAdapter(c context.Context, tenantID string) (adapters.SyncResult, error) {
	start := s.nower.Now()

	tenant, err := s.tenants.Get(c, tenantID)
	if err != nil {
		return adapters.SyncResult{}, err
	}
	adapter := s.tenants.AdapterFor(c, tenant)

	s.logger.Log(c, tenantID, mylog.SeverityInfo, "Start catalog sync of tenant %s from %s", tenantID, adapter.Platform())

	fetched := []adapters.Product{}
	for offset := 0; ; offset += syncPageSize {
		page, err := adapter.GetProducts(c, adapters.ProductQuery{Limit: syncPageSize, Offset: offset})
		if err != nil {
			return adapters.SyncResult{}, myerrors.NewUnavailableError(fmt.Errorf("error fetching products from %s: %s", adapter.Platform(), err))
		}
		fetched = append(fetched, page.Data...)
		if !page.HasMore || len(page.Data) == 0 {
			break
		}
	}

	result := adapters.SyncResult{Errors: []adapters.SyncError{}}
	err = s.store.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent
		result = adapters.SyncResult{Errors: []adapters.SyncError{}}

		existing, err := s.store.Query(c, []mystore.Filter{{Field: "TenantID", Compare: "=", Value: tenantID}}, "")
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		previous := map[string]Product{}
		for _, p := range existing {
			previous[p.ID] = p
		}

		now := s.nower.Now()
		seen := map[string]bool{}
		for _, p := range fetched {
			product := fromAdapterProduct(tenantID, p, now)
			if old, found := previous[product.ID]; found {
				product.CreatedAt = old.CreatedAt
				result.Updated++
			} else {
				result.Created++
			}
			seen[product.ID] = true

			err = s.store.Put(c, product.ID, product)
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, adapters.SyncError{ExternalID: product.ExternalID, Error: err.Error()})
			}
		}

		for id, old := range previous {
			if seen[id] || old.Status == adapters.ProductStatusDeleted {
				continue
			}
			old.Status = adapters.ProductStatusDeleted
			old.UpdatedAt = now
			err = s.store.Put(c, id, old)
			if err != nil {
				return myerrors.NewInternalError(err)
			}
			result.Deleted++
		}
		return nil
	})
	if err != nil {
		return adapters.SyncResult{}, err
	}

	s.invalidate(c, tenantID)

	result.Duration = s.nower.Now().Sub(start)

	s.logger.Log(c, tenantID, mylog.SeverityInfo, "Catalog sync of tenant %s done: created:%d, updated:%d, deleted:%d, failed:%d",
		tenantID, result.Created, result.Updated, result.Deleted, result.Failed)

	return result, nil
}

func (s *Service) invalidate(c context.Context, tenantID string) {
	err := s.cache.InvalidatePrefix(c, tenantID, cachePrefix)
	if err != nil {
		s.logger.Log(c, tenantID, mylog.SeverityWarn, "Error invalidating catalog cache: %s", err)
	}
}

// ScheduleSync queues a catalog sync that is delivered back on the sync task endpoint.
func (s *Service) ScheduleSync(c context.Context, tenantID string) error {
	taskUID := s.uuider.Create()
	err := s.queue.Enqueue(c, myqueue.Task{
		UID:            taskUID,
		WebhookURLPath: syncTaskPath(tenantID),
		Payload:        []byte{},
	})
	if err != nil {
		return fmt.Errorf("error queueing catalog sync of tenant %s: %s", tenantID, err)
	}

	s.logger.Log(c, tenantID, mylog.SeverityDebug, "Queued catalog sync %s", taskUID)

	return nil
}

func syncTaskPath(tenantID string) string {
	return fmt.Sprintf("/tasks/catalog/%s/sync", tenantID)
}

func (s *Service) Subscribe(c context.Context) error {
	err := s.pubsub.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", checkoutevents.TopicName, err)
	}

	err = s.pubsub.Subscribe(c, checkoutevents.TopicName, s.baseURL+"/catalog/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", checkoutevents.TopicName, err)
	}
	return nil
}

// OnCheckoutActivity drops cached stock levels once an order consumed inventory.
func (s *Service) OnCheckoutActivity(c context.Context, topic string, event checkoutevents.CheckoutActivity) error {
	if event.Type != checkoutevents.OrderCreatedType && event.Type != checkoutevents.CheckoutCompletedType {
		return nil
	}

	s.logger.Log(c, event.CheckoutID, mylog.SeverityDebug, "Checkout %s consumed stock of tenant %s", event.CheckoutID, event.TenantID)
	s.invalidate(c, event.TenantID)

	return nil
}
