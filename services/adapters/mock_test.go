package adapters

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/agentcommerce/lib/mytime"
	"github.com/MarcGrol/agentcommerce/lib/myuuid"
)

func TestMockAdapter(t *testing.T) {

	t.Run("Connected on creation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupMock(t, ctrl)

		// when
		result, err := adapter.TestConnection(ctx)

		// then
		assert.NoError(t, err)
		assert.True(t, adapter.IsConnected())
		assert.Equal(t, "Mock Store", result.ShopName)
		assert.Equal(t, PlatformMock, adapter.Platform())
	})

	t.Run("Disconnected adapter fails connection test", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupMock(t, ctrl)
		_ = adapter.Disconnect(ctx)

		// when
		_, err := adapter.TestConnection(ctx)

		// then
		assert.ErrorIs(t, err, ErrNotConnected)
	})

	t.Run("Page through products", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupMock(t, ctrl)

		// when
		page, err := adapter.GetProducts(ctx, ProductQuery{Limit: 3, Offset: 6, OrderBy: "title"})

		// then
		assert.NoError(t, err)
		assert.Equal(t, 8, page.Total)
		assert.Len(t, page.Data, 2)
		assert.False(t, page.HasMore)
		assert.Equal(t, "Trail Running Shoes", page.Data[0].Title)
		assert.Equal(t, "Waterproof Rain Jacket", page.Data[1].Title)
	})

	t.Run("Filter products on category and price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupMock(t, ctrl)
		maxPrice := 25.0

		// when
		page, err := adapter.GetProducts(ctx, ProductQuery{Category: "apparel", MaxPrice: &maxPrice})

		// then
		assert.NoError(t, err)
		assert.Equal(t, 1, page.Total)
		assert.Equal(t, "TSHIRT-CLASSIC", page.Data[0].SKU)
	})

	t.Run("Lookup product by variant sku", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupMock(t, ctrl)

		// when
		product, found, err := adapter.GetProductBySKU(ctx, "TSHIRT-CLASSIC-M")

		// then
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "prod_001", product.ID)
	})

	t.Run("Search on vendor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupMock(t, ctrl)

		// when
		products, err := adapter.SearchProducts(ctx, "coastline", ProductFilters{})

		// then
		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, "SUN-BAMBOO", products[0].SKU)
	})

	t.Run("Reservation lowers available stock until released", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupMock(t, ctrl)

		// when
		reservation, err := adapter.ReserveInventory(ctx, "BEANIE-MERINO", 3, 0)
		assert.NoError(t, err)
		status, err := adapter.CheckInventory(ctx, "BEANIE-MERINO")

		// then
		assert.NoError(t, err)
		assert.Equal(t, 1, status.Quantity)
		assert.Equal(t, mytime.ExampleTime.Add(DefaultReservationTTL), reservation.ExpiresAt)

		// when
		_ = adapter.ReleaseInventory(ctx, reservation.ID)
		status, _ = adapter.CheckInventory(ctx, "BEANIE-MERINO")

		// then
		assert.Equal(t, 4, status.Quantity)
	})

	t.Run("Reservation beyond stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupMock(t, ctrl)

		// when
		_, err := adapter.ReserveInventory(ctx, "BEANIE-MERINO", 5, time.Minute)

		// then
		assert.EqualError(t, err, "insufficient stock for BEANIE-MERINO: requested 5, available 4")
	})

	t.Run("Concurrent reservations never oversell", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupMock(t, ctrl)
		succeeded := atomic.Int64{}
		wg := sync.WaitGroup{}

		// when
		for i := 0; i < 64; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := adapter.ReserveInventory(ctx, "SHOE-TRAIL", 5, time.Minute)
				if err == nil {
					succeeded.Add(1)
				}
			}()
		}
		wg.Wait()
		status, err := adapter.CheckInventory(ctx, "SHOE-TRAIL")

		// then
		assert.NoError(t, err)
		assert.Equal(t, int64(7), succeeded.Load())
		assert.Equal(t, 0, status.Quantity)
		assert.False(t, status.Available)
	})

	t.Run("Unknown sku cannot be reserved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupMock(t, ctrl)

		// when
		_, err := adapter.ReserveInventory(ctx, "NOPE", 1, time.Minute)

		// then
		assert.EqualError(t, err, "insufficient stock for NOPE: requested 1, available 0")
	})

	t.Run("Unknown sku is unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupMock(t, ctrl)

		// when
		status, err := adapter.CheckInventory(ctx, "NOPE")

		// then
		assert.NoError(t, err)
		assert.False(t, status.Available)
		assert.Equal(t, InventoryPolicyDeny, status.Policy)
	})

	t.Run("Create order consumes stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupMock(t, ctrl)

		// when
		order, err := adapter.CreateOrder(ctx, CheckoutSnapshot{
			ID:       "chk_1",
			Protocol: "ACP",
			Items: []CheckoutItem{
				{ProductID: "prod_003", SKU: "BOTTLE-INS-750", Title: "Insulated Water Bottle", Price: 19.99, Quantity: 3},
			},
			Subtotal:    59.97,
			TotalAmount: 59.97,
			Currency:    "USD",
		})

		// then
		assert.NoError(t, err)
		assert.Equal(t, OrderStatusConfirmed, order.Status)
		assert.Equal(t, "guest@example.com", order.Email)
		assert.Equal(t, 59.97, order.Items[0].LineTotal)
		assert.Equal(t, "chk_1", order.CheckoutID)

		status, _ := adapter.CheckInventory(ctx, "BOTTLE-INS-750")
		assert.Equal(t, 197, status.Quantity)

		got, found, _ := adapter.GetOrder(ctx, order.ID)
		assert.True(t, found)
		assert.Equal(t, order.OrderNumber, got.OrderNumber)
	})

	t.Run("Cancel order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupMock(t, ctrl)
		order, _ := adapter.CreateOrder(ctx, CheckoutSnapshot{Items: []CheckoutItem{{SKU: "SHOE-TRAIL", Price: 89.99, Quantity: 1}}})

		// when
		cancelled, err := adapter.CancelOrder(ctx, order.ID, "changed my mind")

		// then
		assert.NoError(t, err)
		assert.Equal(t, OrderStatusCancelled, cancelled.Status)
		assert.Equal(t, "changed my mind", cancelled.Notes)
	})

	t.Run("Update status of unknown order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupMock(t, ctrl)

		// when
		_, err := adapter.UpdateOrderStatus(ctx, "ord_x", OrderStatusShipped)

		// then
		assert.EqualError(t, err, "order ord_x not found")
	})

	t.Run("Shipping rates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupMock(t, ctrl)

		// when
		rates, err := adapter.GetShippingRates(ctx, CheckoutSnapshot{})

		// then
		assert.NoError(t, err)
		assert.Len(t, rates, 3)
		assert.Equal(t, "standard", rates[0].ID)
		assert.Equal(t, 5.0, rates[0].Price)
	})
}

func setupMock(t *testing.T, ctrl *gomock.Controller) (context.Context, Adapter, *myuuid.MockUUIDer) {
	c := context.TODO()

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	counter := 0
	uuider := myuuid.NewMockUUIDer(ctrl)
	uuider.EXPECT().Create().DoAndReturn(func() string {
		counter++
		return fmt.Sprintf("00000000-0000-0000-0000-%012d", counter)
	}).AnyTimes()

	return c, NewMock(nower, uuider), uuider
}
