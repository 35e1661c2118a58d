package adapters

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MarcGrol/agentcommerce/lib/mymoney"
	"github.com/MarcGrol/agentcommerce/lib/mytime"
	"github.com/MarcGrol/agentcommerce/lib/myuuid"
)

const mockShopName = "Mock Store"

// mockAdapter is a fully working in-memory platform used for demos and tests.
// Every instance owns its own copy of the catalog, orders and reservations.
type mockAdapter struct {
	connection
	mutex              sync.Mutex
	products           []Product
	orders             map[string]Order
	inventoryOverrides map[string]int
	reservations       *reservationLedger
	nower              mytime.Nower
	uuider             myuuid.UUIDer
}

func NewMock(nower mytime.Nower, uuider myuuid.UUIDer) Adapter {
	return newMock(nower, uuider)
}

func newMock(nower mytime.Nower, uuider myuuid.UUIDer) *mockAdapter {
	a := &mockAdapter{
		products:           mockCatalog(),
		orders:             map[string]Order{},
		inventoryOverrides: map[string]int{},
		reservations:       newReservationLedger(nower, uuider),
		nower:              nower,
		uuider:             uuider,
	}
	a.markConnected()
	return a
}

func (a *mockAdapter) Platform() Platform {
	return PlatformMock
}

func (a *mockAdapter) Version() string {
	return "1.0.0"
}

func (a *mockAdapter) Connect(c context.Context, credentials Credentials) (ConnectionResult, error) {
	return a.connect(c, credentials, func(c context.Context, credentials Credentials) (ConnectionResult, error) {
		return ConnectionResult{ShopName: mockShopName}, nil
	})
}

func (a *mockAdapter) Disconnect(c context.Context) error {
	a.disconnect()
	return nil
}

func (a *mockAdapter) TestConnection(c context.Context) (ConnectionResult, error) {
	return a.testConnection(c, func(c context.Context) (ConnectionResult, error) {
		return ConnectionResult{ShopName: mockShopName}, nil
	})
}

func (a *mockAdapter) GetProducts(c context.Context, query ProductQuery) (ProductPage, error) {
	a.mutex.Lock()
	filtered := applyQuery(a.products, query)
	a.mutex.Unlock()

	if query.OrderBy != "" {
		sortProducts(filtered, query.OrderBy, query.OrderDir)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := max(query.Offset, 0)

	return ProductPage{
		Data:    page(filtered, offset, limit),
		Total:   len(filtered),
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < len(filtered),
	}, nil
}

func (a *mockAdapter) GetProduct(c context.Context, id string) (Product, bool, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	for _, p := range a.products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return Product{}, false, nil
}

func (a *mockAdapter) GetProductBySKU(c context.Context, sku string) (Product, bool, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	p, found := a.productBySKU(sku)
	return p, found, nil
}

func (a *mockAdapter) productBySKU(sku string) (Product, bool) {
	for _, p := range a.products {
		if p.SKU == sku {
			return p, true
		}
	}
	for _, p := range a.products {
		for _, v := range p.Variants {
			if v.SKU == sku {
				return p, true
			}
		}
	}
	return Product{}, false
}

func (a *mockAdapter) SearchProducts(c context.Context, query string, filters ProductFilters) ([]Product, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	q := strings.ToLower(query)
	result := []Product{}
	for _, p := range a.products {
		text := strings.ToLower(strings.Join([]string{p.Title, p.Description, strings.Join(p.Tags, " "), p.ProductType, p.Vendor}, " "))
		if strings.Contains(text, q) && matchesFilters(p, filters) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (a *mockAdapter) SyncProducts(c context.Context) (SyncResult, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return SyncResult{
		Updated: len(a.products),
		Errors:  []SyncError{},
	}, nil
}

func (a *mockAdapter) CheckInventory(c context.Context, sku string) (InventoryStatus, error) {
	a.mutex.Lock()
	product, found := a.productBySKU(sku)
	if !found {
		a.mutex.Unlock()
		return InventoryStatus{SKU: sku, Quantity: 0, Available: false, Policy: InventoryPolicyDeny}, nil
	}
	quantity := a.stockLevel(product, sku)
	a.mutex.Unlock()

	available := quantity - a.reservations.reserved(sku)

	return InventoryStatus{
		SKU:       sku,
		Quantity:  available,
		Available: available > 0,
		Policy:    product.InventoryPolicy,
	}, nil
}

// stockLevel returns the override when orders consumed stock, the catalog level otherwise.
func (a *mockAdapter) stockLevel(product Product, sku string) int {
	if override, exists := a.inventoryOverrides[sku]; exists {
		return override
	}
	for _, v := range product.Variants {
		if v.SKU == sku {
			return v.InventoryQuantity
		}
	}
	return product.InventoryQuantity
}

// ReserveInventory keeps the catalog locked while the ledger checks and records the hold.
func (a *mockAdapter) ReserveInventory(c context.Context, sku string, quantity int, ttl time.Duration) (Reservation, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	stock := 0
	product, found := a.productBySKU(sku)
	if found {
		stock = a.stockLevel(product, sku)
	}
	return a.reservations.reserve(sku, quantity, stock, ttl)
}

func (a *mockAdapter) ReleaseInventory(c context.Context, reservationID string) error {
	a.reservations.release(reservationID)
	return nil
}

func (a *mockAdapter) CreateOrder(c context.Context, checkout CheckoutSnapshot) (Order, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	now := a.nower.Now()
	orderID := myuuid.Prefixed("ord", a.uuider.Create())

	items := make([]OrderItem, 0, len(checkout.Items))
	for _, item := range checkout.Items {
		items = append(items, OrderItem{
			ID:           myuuid.Prefixed("oi", a.uuider.Create()),
			ProductID:    item.ProductID,
			SKU:          item.SKU,
			Title:        item.Title,
			Price:        item.Price,
			Quantity:     item.Quantity,
			VariantID:    item.VariantID,
			VariantTitle: item.VariantTitle,
			LineTotal:    mymoney.Round2(item.Price * float64(item.Quantity)),
		})
	}

	email := checkout.Email
	if email == "" {
		email = "guest@example.com"
	}
	address := Address{}
	if checkout.ShippingAddress != nil {
		address = *checkout.ShippingAddress
	}

	order := Order{
		ID:                orderID,
		CheckoutID:        checkout.ID,
		ExternalID:        orderID,
		OrderNumber:       "MK-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)),
		Status:            OrderStatusConfirmed,
		Items:             items,
		Email:             email,
		ShippingAddress:   address,
		ShippingMethod:    checkout.ShippingMethod,
		ShippingCost:      checkout.ShippingCost,
		Subtotal:          checkout.Subtotal,
		TaxAmount:         checkout.TaxAmount,
		TotalAmount:       checkout.TotalAmount,
		Currency:          checkout.Currency,
		PaymentMethod:     checkout.PaymentMethod,
		PaymentReference:  myuuid.Prefixed("pay", a.uuider.Create()),
		FulfillmentStatus: "UNFULFILLED",
		Source:            "agentix",
		Protocol:          checkout.Protocol,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	for _, item := range checkout.Items {
		current := 0
		if product, found := a.productBySKU(item.SKU); found {
			current = a.stockLevel(product, item.SKU)
		}
		a.inventoryOverrides[item.SKU] = max(0, current-item.Quantity)
	}

	a.orders[order.ID] = order

	return order, nil
}

func (a *mockAdapter) GetOrder(c context.Context, id string) (Order, bool, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	order, found := a.orders[id]
	return order, found, nil
}

func (a *mockAdapter) UpdateOrderStatus(c context.Context, id string, status OrderStatus) (Order, error) {
	return a.modifyOrder(id, func(o *Order) {
		o.Status = status
	})
}

func (a *mockAdapter) CancelOrder(c context.Context, id string, reason string) (Order, error) {
	return a.modifyOrder(id, func(o *Order) {
		o.Status = OrderStatusCancelled
		o.Notes = reason
	})
}

func (a *mockAdapter) modifyOrder(id string, modify func(o *Order)) (Order, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	order, found := a.orders[id]
	if !found {
		return Order{}, fmt.Errorf("order %s not found", id)
	}
	modify(&order)
	order.UpdatedAt = a.nower.Now()
	a.orders[id] = order

	return order, nil
}

func (a *mockAdapter) GetShippingRates(c context.Context, checkout CheckoutSnapshot) ([]ShippingMethod, error) {
	return mockShippingMethods(), nil
}

func (a *mockAdapter) RegisterWebhooks(c context.Context, callbackURL string) ([]WebhookRegistration, error) {
	return []WebhookRegistration{}, nil
}

func (a *mockAdapter) HandleWebhook(c context.Context, payload []byte, signature string) (WebhookResult, error) {
	return WebhookResult{Event: "unknown", Processed: false}, nil
}

func applyQuery(products []Product, query ProductQuery) []Product {
	ids := toSet(query.IDs)
	skus := toSet(query.SKUs)
	q := strings.ToLower(query.Query)

	result := []Product{}
	for _, p := range products {
		if q != "" {
			text := strings.ToLower(strings.Join([]string{p.Title, p.Description, strings.Join(p.Tags, " ")}, " "))
			if !strings.Contains(text, q) {
				continue
			}
		}
		if !matchesFilters(p, ProductFilters{Category: query.Category, MinPrice: query.MinPrice, MaxPrice: query.MaxPrice, InStock: query.InStock}) {
			continue
		}
		if len(ids) > 0 && !ids[p.ID] {
			continue
		}
		if len(skus) > 0 && !skus[p.SKU] {
			continue
		}
		result = append(result, p)
	}
	return result
}

func matchesFilters(p Product, filters ProductFilters) bool {
	if filters.Category != "" && !inCategory(p, filters.Category) {
		return false
	}
	if filters.MinPrice != nil && p.Price < *filters.MinPrice {
		return false
	}
	if filters.MaxPrice != nil && p.Price > *filters.MaxPrice {
		return false
	}
	if filters.InStock && p.InventoryQuantity <= 0 {
		return false
	}
	if filters.Vendor != "" && !strings.EqualFold(p.Vendor, filters.Vendor) {
		return false
	}
	if len(filters.Tags) > 0 && !hasAnyTag(p, filters.Tags) {
		return false
	}
	return true
}

func inCategory(p Product, category string) bool {
	if strings.EqualFold(p.ProductType, category) {
		return true
	}
	for _, t := range p.Tags {
		if strings.EqualFold(t, category) {
			return true
		}
	}
	return false
}

func hasAnyTag(p Product, tags []string) bool {
	for _, want := range tags {
		for _, t := range p.Tags {
			if strings.EqualFold(t, want) {
				return true
			}
		}
	}
	return false
}

func sortProducts(products []Product, orderBy string, orderDir string) {
	descending := strings.EqualFold(orderDir, "desc")
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if descending {
			a, b = b, a
		}
		switch orderBy {
		case "title":
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case "price":
			return a.Price < b.Price
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return false
		}
	})
}

func page[T any](all []T, offset int, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := min(offset+limit, len(all))
	return all[offset:end]
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
