package adapters

import (
	"context"
	"fmt"
	"time"
)

// unimplemented provides the data operations of a platform whose integration only covers the connection.
// Every method is an extension point for a future platform client.
type unimplemented struct {
	name string
}

func (u unimplemented) fail(operation string) error {
	return fmt.Errorf("%s.%s: %w", u.name, operation, ErrNotImplemented)
}

func (u unimplemented) GetProducts(c context.Context, query ProductQuery) (ProductPage, error) {
	return ProductPage{}, u.fail("GetProducts")
}

func (u unimplemented) GetProduct(c context.Context, id string) (Product, bool, error) {
	return Product{}, false, u.fail("GetProduct")
}

func (u unimplemented) GetProductBySKU(c context.Context, sku string) (Product, bool, error) {
	return Product{}, false, u.fail("GetProductBySKU")
}

func (u unimplemented) SearchProducts(c context.Context, query string, filters ProductFilters) ([]Product, error) {
	return nil, u.fail("SearchProducts")
}

func (u unimplemented) SyncProducts(c context.Context) (SyncResult, error) {
	return SyncResult{}, u.fail("SyncProducts")
}

func (u unimplemented) CheckInventory(c context.Context, sku string) (InventoryStatus, error) {
	return InventoryStatus{}, u.fail("CheckInventory")
}

func (u unimplemented) ReserveInventory(c context.Context, sku string, quantity int, ttl time.Duration) (Reservation, error) {
	return Reservation{}, u.fail("ReserveInventory")
}

func (u unimplemented) ReleaseInventory(c context.Context, reservationID string) error {
	return u.fail("ReleaseInventory")
}

func (u unimplemented) CreateOrder(c context.Context, checkout CheckoutSnapshot) (Order, error) {
	return Order{}, u.fail("CreateOrder")
}

func (u unimplemented) GetOrder(c context.Context, id string) (Order, bool, error) {
	return Order{}, false, u.fail("GetOrder")
}

func (u unimplemented) UpdateOrderStatus(c context.Context, id string, status OrderStatus) (Order, error) {
	return Order{}, u.fail("UpdateOrderStatus")
}

func (u unimplemented) CancelOrder(c context.Context, id string, reason string) (Order, error) {
	return Order{}, u.fail("CancelOrder")
}

func (u unimplemented) GetShippingRates(c context.Context, checkout CheckoutSnapshot) ([]ShippingMethod, error) {
	return nil, u.fail("GetShippingRates")
}

func (u unimplemented) RegisterWebhooks(c context.Context, callbackURL string) ([]WebhookRegistration, error) {
	return nil, u.fail("RegisterWebhooks")
}

func (u unimplemented) HandleWebhook(c context.Context, payload []byte, signature string) (WebhookResult, error) {
	return WebhookResult{}, u.fail("HandleWebhook")
}
