package checkout

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/agentcommerce/lib/myerrors"
	"github.com/MarcGrol/agentcommerce/lib/mymetrics"
	"github.com/MarcGrol/agentcommerce/lib/mypublisher"
	"github.com/MarcGrol/agentcommerce/lib/mystore"
	"github.com/MarcGrol/agentcommerce/lib/mytime"
	"github.com/MarcGrol/agentcommerce/lib/myuuid"
	"github.com/MarcGrol/agentcommerce/services/adapters"
	"github.com/MarcGrol/agentcommerce/services/catalog"
	"github.com/MarcGrol/agentcommerce/services/checkout/checkoutevents"
	"github.com/MarcGrol/agentcommerce/services/tenant"
)

var (
	acme  = tenant.Tenant{ID: "tnt_acme", Name: "Acme", Platform: adapters.PlatformMock, Status: tenant.StatusActive}
	other = tenant.Tenant{ID: "tnt_other", Name: "Other", Platform: adapters.PlatformMock, Status: tenant.StatusActive}

	fixtures = []catalog.Product{
		{ID: "prod_bottle", TenantID: acme.ID, SKU: "BOTTLE-INS-750", Title: "Insulated Water Bottle", Price: 19.99, Status: adapters.ProductStatusActive},
		{ID: "prod_shirt", TenantID: acme.ID, SKU: "TSHIRT-CLASSIC", Title: "Classic Cotton T-Shirt", Price: 24.99, Status: adapters.ProductStatusActive},
		{ID: "prod_ten", TenantID: acme.ID, SKU: "ITEM-10", Title: "Ten Dollar Item", Price: 10.00, Status: adapters.ProductStatusActive},
	}

	address = adapters.Address{Name: "Jane Doe", Address1: "1 Main St", City: "Springfield", State: "IL", Zip: "62701", Country: "US"}
)

func TestStateMachine(t *testing.T) {
	t.Run("Terminal states have no way out", func(t *testing.T) {
		for _, from := range []Status{StatusCompleted, StatusCancelled, StatusExpired} {
			for _, to := range AllStatuses {
				assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
			}
			assert.True(t, from.IsTerminal())
		}
	})

	t.Run("Only listed transitions are allowed", func(t *testing.T) {
		allowed := 0
		for _, from := range AllStatuses {
			for _, to := range AllStatuses {
				if CanTransition(from, to) {
					allowed++
				}
			}
		}
		assert.Equal(t, 17, allowed)
		assert.True(t, CanTransition(StatusFailed, StatusPaymentPending))
		assert.False(t, CanTransition(StatusFailed, StatusCompleted))
		assert.False(t, CanTransition(StatusItemsAdded, StatusCompleted))
	})

	t.Run("Walks forward as far as the data allows", func(t *testing.T) {
		assert.Equal(t, StatusPaymentPending, advance(StatusItemsAdded, false, true))
		assert.Equal(t, StatusItemsAdded, advance(StatusItemsAdded, true, false))
		assert.Equal(t, StatusItemsAdded, advance(StatusCreated, true, false))
		assert.Equal(t, StatusPaymentPending, advance(StatusPaymentPending, true, true))
		assert.Equal(t, StatusPaymentPending, advance(StatusFailed, false, true))
	})
}

func TestTotals(t *testing.T) {
	t.Run("Subtotal first, total last", func(t *testing.T) {
		// given
		lineItems := lineItemsOf([]Item{{ID: "li_1", Price: 19.99, Quantity: 1}})

		// when
		totals := BuildTotals(lineItems, &ShippingOption{ID: "standard", Title: "Standard Shipping", Amount: 500})

		// then
		assert.Equal(t, []Total{
			{Type: TotalSubtotal, DisplayText: "Subtotal", Amount: 1999},
			{Type: TotalFulfillment, DisplayText: "Standard Shipping", Amount: 500},
			{Type: TotalTotal, DisplayText: "Total", Amount: 2499},
		}, totals)
	})

	t.Run("Zero amounts are omitted", func(t *testing.T) {
		// when
		totals := BuildTotals(lineItemsOf([]Item{{ID: "li_1", Price: 10, Quantity: 3}}), nil)

		// then
		assert.Equal(t, []Total{
			{Type: TotalSubtotal, DisplayText: "Subtotal", Amount: 3000},
			{Type: TotalTotal, DisplayText: "Total", Amount: 3000},
		}, totals)
	})

	t.Run("Line amounts are in cents", func(t *testing.T) {
		// when
		lineItems := lineItemsOf([]Item{{ID: "li_1", Price: 24.99, Quantity: 2}})

		// then
		assert.Equal(t, int64(2499), lineItems[0].UnitAmount)
		assert.Equal(t, int64(4998), lineItems[0].BaseAmount)
		assert.Equal(t, int64(4998), lineItems[0].Total)
	})

	t.Run("Huge amounts do not wrap negative", func(t *testing.T) {
		// given
		lineItems := []LineItem{{Subtotal: math.MaxInt64 - 10}, {Subtotal: 100}}

		// when
		totals := BuildTotals(lineItems, &ShippingOption{ID: "standard", Amount: 500})

		// then
		assert.Equal(t, int64(math.MaxInt64), AmountOf(totals, TotalSubtotal))
		assert.Equal(t, int64(math.MaxInt64), AmountOf(totals, TotalTotal))
	})
}

func TestCreate(t *testing.T) {
	t.Run("Items only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, _ := setup(t, ctrl)

		// when
		view, err := s.Create(ctx, acme, ProtocolACP, CreateRequest{
			Items:    []ItemRef{{SKU: "BOTTLE-INS-750", Quantity: 1}},
			Buyer:    &Buyer{FirstName: "Jane", Email: "jane@example.com"},
			Metadata: map[string]string{"campaign": "spring"},
		})
		s.Drain()

		// then
		assert.NoError(t, err)
		assert.Equal(t, "chk_000000020000000000000000", view.Checkout.ID)
		assert.Equal(t, StatusItemsAdded, view.Checkout.Status)
		assert.Equal(t, "standard", view.Checkout.ShippingMethod)
		assert.Equal(t, mytime.ExampleTime.Add(30*time.Minute), view.Checkout.ExpiresAt)
		assert.Equal(t, []Total{
			{Type: TotalSubtotal, DisplayText: "Subtotal", Amount: 1999},
			{Type: TotalFulfillment, DisplayText: "Standard Shipping", Amount: 500},
			{Type: TotalTotal, DisplayText: "Total", Amount: 2499},
		}, view.Totals)
		assert.Len(t, view.Options, 3)

		stored := stores.checkouts.Items[view.Checkout.ID]
		assert.Equal(t, 24.99, stored.TotalAmount)
		assert.Equal(t, 5.0, stored.ShippingCost)
		assert.Equal(t, "jane@example.com", stored.Email)
		assert.Equal(t, "spring", stored.MetadataValue("campaign"))
		assert.Equal(t, "Jane", stored.MetadataValue(metaBuyerFirstName))

		assert.Equal(t, []string{checkoutevents.CheckoutCreatedType}, eventTypes(stores))
	})

	t.Run("With address skips to payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, _, _ := setup(t, ctrl)

		// when
		view, err := s.Create(ctx, acme, ProtocolACP, CreateRequest{
			Items:            []ItemRef{{ID: "prod_shirt", Quantity: 2}},
			Address:          &address,
			ShippingOptionID: "express",
		})
		s.Drain()

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusPaymentPending, view.Checkout.Status)
		assert.Equal(t, "express", view.Selected.ID)
		assert.Equal(t, int64(4998+1500), AmountOf(view.Totals, TotalTotal))
	})

	t.Run("Unknown items are dropped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, _, _ := setup(t, ctrl)

		// when
		view, err := s.Create(ctx, acme, ProtocolACP, CreateRequest{
			Items: []ItemRef{{SKU: "NOPE", Quantity: 1}, {SKU: "ITEM-10", Quantity: 1}},
		})
		s.Drain()

		// then
		assert.NoError(t, err)
		assert.Len(t, view.LineItems, 1)
		assert.Equal(t, "ITEM-10", view.LineItems[0].SKU)
	})

	t.Run("No known items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, _ := setup(t, ctrl)

		// when
		_, err := s.Create(ctx, acme, ProtocolUCP, CreateRequest{
			Items: []ItemRef{{ID: "nope", Quantity: 1}},
		})
		s.Drain()

		// then
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHTTPStatus(err))
		assert.Equal(t, myerrors.CodeInvalidItems, myerrors.GetCode(err))
		assert.Equal(t, "No valid products found", myerrors.GetMessage(err))
		assert.Empty(t, stores.checkouts.Items)
	})

	t.Run("Quantity too large", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, _ := setup(t, ctrl)

		// when
		_, err := s.Create(ctx, acme, ProtocolACP, CreateRequest{
			Items:   []ItemRef{{SKU: "BOTTLE-INS-750", Quantity: 5e15}},
			Address: &address,
		})
		s.Drain()

		// then
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHTTPStatus(err))
		assert.Equal(t, myerrors.CodeInvalidItems, myerrors.GetCode(err))
		assert.Empty(t, stores.checkouts.Items)
	})

	t.Run("Lines that overflow together", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, _ := setup(t, ctrl)
		half := int(maxItemsCents/1000) / 2

		// when
		_, err := s.Create(ctx, acme, ProtocolUCP, CreateRequest{
			Items: []ItemRef{{SKU: "ITEM-10", Quantity: half + 1}, {SKU: "ITEM-10", Quantity: half + 1}},
		})
		s.Drain()

		// then
		assert.Equal(t, myerrors.CodeInvalidItems, myerrors.GetCode(err))
		assert.Empty(t, stores.checkouts.Items)
	})

	t.Run("Platform without shipping rates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, _, platforms := setup(t, ctrl)
		failing := adapters.NewMockAdapter(ctrl)
		failing.EXPECT().Platform().Return(adapters.PlatformMock).AnyTimes()
		failing.EXPECT().GetShippingRates(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("timeout")).AnyTimes()
		platforms.adapter = failing

		// when
		view, err := s.Create(ctx, acme, ProtocolACP, CreateRequest{
			Items: []ItemRef{{SKU: "ITEM-10", Quantity: 1}},
		})
		s.Drain()

		// then
		assert.NoError(t, err)
		assert.Empty(t, view.Options)
		assert.Nil(t, view.Selected)
		assert.Equal(t, int64(1000), AmountOf(view.Totals, TotalTotal))
	})
}

func TestGet(t *testing.T) {
	t.Run("Repeated reads are identical", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, _, _ := setup(t, ctrl)
		created := create(t, ctx, s, ProtocolACP, nil)

		// when
		first, err1 := s.Get(ctx, acme, ProtocolACP, created.Checkout.ID)
		second, err2 := s.Get(ctx, acme, ProtocolACP, created.Checkout.ID)
		s.Drain()

		// then
		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.Equal(t, first, second)
		assert.Equal(t, created.Totals, first.Totals)
		assert.Equal(t, created.LineItems, first.LineItems)
	})

	t.Run("Not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, _, _ := setup(t, ctrl)

		// when
		_, err := s.Get(ctx, acme, ProtocolACP, "chk_unknown")

		// then
		assert.Equal(t, http.StatusNotFound, myerrors.GetHTTPStatus(err))
		assert.Equal(t, "Checkout 'chk_unknown' not found", myerrors.GetMessage(err))
	})

	t.Run("Other tenant cannot see checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, _, _ := setup(t, ctrl)
		created := create(t, ctx, s, ProtocolACP, nil)

		// when
		_, err := s.Get(ctx, other, ProtocolACP, created.Checkout.ID)

		// then
		assert.Equal(t, http.StatusNotFound, myerrors.GetHTTPStatus(err))
	})

	t.Run("Cart is not visible as checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, _, _ := setup(t, ctrl)
		created := create(t, ctx, s, ProtocolUCP, nil)

		// when
		_, err := s.Get(ctx, acme, ProtocolACP, created.Checkout.ID)

		// then
		assert.Equal(t, http.StatusNotFound, myerrors.GetHTTPStatus(err))
	})
}

func TestUpdate(t *testing.T) {
	t.Run("Address moves to payment pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, _ := setup(t, ctrl)
		created := create(t, ctx, s, ProtocolACP, nil)

		// when
		view, err := s.Update(ctx, acme, ProtocolACP, created.Checkout.ID, UpdateRequest{
			Address:          &address,
			ShippingOptionID: "overnight",
		})
		s.Drain()

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusPaymentPending, view.Checkout.Status)
		assert.Equal(t, "overnight", view.Checkout.ShippingMethod)
		assert.Equal(t, 29.99, stores.checkouts.Items[created.Checkout.ID].ShippingCost)
		assert.Equal(t, int64(1000+2999), AmountOf(view.Totals, TotalTotal))
		assert.Equal(t, []string{checkoutevents.CheckoutCreatedType, checkoutevents.CheckoutUpdatedType}, eventTypes(stores))
	})

	t.Run("Items replace previous items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, _, _ := setup(t, ctrl)
		created := create(t, ctx, s, ProtocolACP, nil)

		// when
		view, err := s.Update(ctx, acme, ProtocolACP, created.Checkout.ID, UpdateRequest{
			Items: []ItemRef{{SKU: "TSHIRT-CLASSIC", Quantity: 3}},
		})
		s.Drain()

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusItemsAdded, view.Checkout.Status)
		assert.Len(t, view.LineItems, 1)
		assert.Equal(t, "TSHIRT-CLASSIC", view.LineItems[0].SKU)
		assert.Equal(t, int64(7497), AmountOf(view.Totals, TotalSubtotal))
	})

	t.Run("Quantity too large keeps previous items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, _ := setup(t, ctrl)
		created := create(t, ctx, s, ProtocolACP, nil)

		// when
		_, err := s.Update(ctx, acme, ProtocolACP, created.Checkout.ID, UpdateRequest{
			Items: []ItemRef{{SKU: "TSHIRT-CLASSIC", Quantity: 5e15}},
		})
		s.Drain()

		// then
		assert.Equal(t, myerrors.CodeInvalidItems, myerrors.GetCode(err))
		assert.Equal(t, created.Checkout.Items, stores.checkouts.Items[created.Checkout.ID].Items)
	})

	t.Run("No option is picked without a choice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, platforms := setup(t, ctrl)
		quoting := platforms.adapter
		failing := adapters.NewMockAdapter(ctrl)
		failing.EXPECT().Platform().Return(adapters.PlatformMock).AnyTimes()
		failing.EXPECT().GetShippingRates(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("timeout")).AnyTimes()
		platforms.adapter = failing
		created := create(t, ctx, s, ProtocolACP, nil)
		assert.Empty(t, created.Checkout.ShippingMethod)
		platforms.adapter = quoting

		// when
		view, err := s.Update(ctx, acme, ProtocolACP, created.Checkout.ID, UpdateRequest{Address: &address})
		s.Drain()

		// then
		assert.NoError(t, err)
		assert.Len(t, view.Options, 3)
		assert.Nil(t, view.Selected)
		assert.Empty(t, stores.checkouts.Items[created.Checkout.ID].ShippingMethod)
		assert.Equal(t, AmountOf(view.Totals, TotalSubtotal), AmountOf(view.Totals, TotalTotal))

		// when
		view, err = s.Update(ctx, acme, ProtocolACP, created.Checkout.ID, UpdateRequest{ShippingOptionID: "express"})
		s.Drain()

		// then
		assert.NoError(t, err)
		assert.Equal(t, "express", view.Checkout.ShippingMethod)
		assert.NotNil(t, view.Selected)
	})

	t.Run("Closed checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, _, _ := setup(t, ctrl)
		created := create(t, ctx, s, ProtocolUCP, nil)
		_, err := s.Cancel(ctx, acme, ProtocolUCP, created.Checkout.ID)
		assert.NoError(t, err)

		// when
		_, err = s.Update(ctx, acme, ProtocolUCP, created.Checkout.ID, UpdateRequest{Address: &address})
		s.Drain()

		// then
		assert.Equal(t, http.StatusConflict, myerrors.GetHTTPStatus(err))
		assert.Equal(t, myerrors.CodeCartClosed, myerrors.GetCode(err))
		assert.Equal(t, "Cannot update a closed cart", myerrors.GetMessage(err))
	})
}

func TestExpiry(t *testing.T) {
	t.Run("Expired checkout stays expired", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, _ := setup(t, ctrl)
		created := create(t, ctx, s, ProtocolACP, &address)
		stores.clock.advance(31 * time.Minute)

		// when
		_, err := s.Update(ctx, acme, ProtocolACP, created.Checkout.ID, UpdateRequest{ShippingOptionID: "express"})

		// then
		assert.Equal(t, http.StatusConflict, myerrors.GetHTTPStatus(err))
		assert.Equal(t, myerrors.CodeCheckoutExpired, myerrors.GetCode(err))
		assert.Equal(t, StatusExpired, stores.checkouts.Items[created.Checkout.ID].Status)

		// when
		view, err := s.Get(ctx, acme, ProtocolACP, created.Checkout.ID)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusExpired, view.Checkout.Status)

		// when
		_, err = s.Update(ctx, acme, ProtocolACP, created.Checkout.ID, UpdateRequest{ShippingOptionID: "express"})

		// then
		assert.Equal(t, myerrors.CodeCheckoutClosed, myerrors.GetCode(err))

		// when
		_, err = s.Complete(ctx, acme, ProtocolACP, created.Checkout.ID, "spt_123")
		s.Drain()

		// then
		assert.Equal(t, myerrors.CodeCheckoutExpired, myerrors.GetCode(err))
		assert.Equal(t, StatusExpired, stores.checkouts.Items[created.Checkout.ID].Status)
		assert.Equal(t, []string{checkoutevents.CheckoutCreatedType, checkoutevents.CheckoutExpiredType}, eventTypes(stores))
	})

	t.Run("Read expires checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, _ := setup(t, ctrl)
		created := create(t, ctx, s, ProtocolUCP, nil)
		stores.clock.advance(30*time.Minute + time.Second)

		// when
		view, err := s.Get(ctx, acme, ProtocolUCP, created.Checkout.ID)
		s.Drain()

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusExpired, view.Checkout.Status)
	})

	t.Run("Not expired at the deadline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, _ := setup(t, ctrl)
		created := create(t, ctx, s, ProtocolACP, nil)
		stores.clock.advance(30 * time.Minute)

		// when
		view, err := s.Get(ctx, acme, ProtocolACP, created.Checkout.ID)
		s.Drain()

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusItemsAdded, view.Checkout.Status)
	})
}

func TestComplete(t *testing.T) {
	t.Run("Not ready for payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, _ := setup(t, ctrl)
		created := create(t, ctx, s, ProtocolACP, nil)

		// when
		_, err := s.Complete(ctx, acme, ProtocolACP, created.Checkout.ID, "spt_123")
		s.Drain()

		// then
		assert.Equal(t, http.StatusConflict, myerrors.GetHTTPStatus(err))
		assert.Equal(t, myerrors.CodeInvalidState, myerrors.GetCode(err))
		assert.Equal(t, "Cannot complete checkout in 'ITEMS_ADDED' status", myerrors.GetMessage(err))
		assert.Empty(t, stores.orders.Items)
	})

	t.Run("Invalid payment token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, _ := setup(t, ctrl)
		created := create(t, ctx, s, ProtocolACP, &address)

		// when
		completion, err := s.Complete(ctx, acme, ProtocolACP, created.Checkout.ID, "tok_123")
		s.Drain()

		// then
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHTTPStatus(err))
		assert.Equal(t, myerrors.CodeInvalidPayment, myerrors.GetCode(err))
		assert.Equal(t, "Invalid payment token. Token must start with 'spt_'.", myerrors.GetMessage(err))
		assert.Equal(t, StatusPaymentPending, completion.View.Checkout.Status)
		assert.Equal(t, StatusPaymentPending, stores.checkouts.Items[created.Checkout.ID].Status)
		assert.Empty(t, stores.orders.Items)
	})

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, platforms := setup(t, ctrl)
		platform := adapters.NewMockAdapter(ctrl)
		platform.EXPECT().Platform().Return(adapters.PlatformMock).AnyTimes()
		platform.EXPECT().GetShippingRates(gomock.Any(), gomock.Any()).Return([]adapters.ShippingMethod{}, nil).AnyTimes()
		platform.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(adapters.Order{ID: "platform-1"}, nil)
		platforms.adapter = platform
		created := create(t, ctx, s, ProtocolACP, &address)

		// when
		completion, err := s.Complete(ctx, acme, ProtocolACP, created.Checkout.ID, "spt_123")
		s.Drain()

		// then
		assert.NoError(t, err)
		assert.True(t, completion.OrderCreated)
		assert.Equal(t, StatusCompleted, completion.View.Checkout.Status)

		stored := stores.checkouts.Items[created.Checkout.ID]
		assert.Equal(t, StatusCompleted, stored.Status)
		assert.Equal(t, PaymentStatusCaptured, stored.PaymentStatus)
		assert.Equal(t, "card", stored.PaymentMethod)
		assert.Equal(t, "spt_123", stored.PaymentToken)
		assert.Equal(t, mytime.ExampleTime, stored.CompletedAt)

		assert.Len(t, stores.orders.Items, 1)
		order := stores.orders.Items[completion.Order.ID]
		assert.Equal(t, 10.00, order.TotalAmount)
		assert.Len(t, order.Items, 1)
		assert.Equal(t, created.Checkout.ID, order.CheckoutID)
		assert.Equal(t, created.Checkout.OrderNumber(), order.OrderNumber)
		assert.Equal(t, "acp", order.Source)
		assert.Equal(t, adapters.OrderStatusConfirmed, order.Status)
		assert.Equal(t, "platform-1", order.PlatformOrderID)

		assert.ElementsMatch(t, []string{
			checkoutevents.CheckoutCreatedType,
			checkoutevents.OrderCreatedType,
			checkoutevents.CheckoutCompletedType,
		}, eventTypes(stores))

		// when
		_, err = s.Complete(ctx, acme, ProtocolACP, created.Checkout.ID, "spt_123")

		// then
		assert.Equal(t, myerrors.CodeInvalidState, myerrors.GetCode(err))
		assert.Len(t, stores.orders.Items, 1)
	})

	t.Run("Platform refuses order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, platforms := setup(t, ctrl)
		platform := adapters.NewMockAdapter(ctrl)
		platform.EXPECT().Platform().Return(adapters.PlatformMock).AnyTimes()
		platform.EXPECT().GetShippingRates(gomock.Any(), gomock.Any()).Return([]adapters.ShippingMethod{}, nil).AnyTimes()
		platform.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(adapters.Order{}, fmt.Errorf("platform down"))
		platforms.adapter = platform
		created := create(t, ctx, s, ProtocolUCP, &address)

		// when
		completion, err := s.Complete(ctx, acme, ProtocolUCP, created.Checkout.ID, "spt_123")
		s.Drain()

		// then
		assert.NoError(t, err)
		assert.True(t, completion.OrderCreated)
		assert.Equal(t, "", stores.orders.Items[completion.Order.ID].PlatformOrderID)
		assert.Equal(t, "ucp", stores.orders.Items[completion.Order.ID].Source)
	})
}

func TestCancel(t *testing.T) {
	t.Run("Cancel once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, _ := setup(t, ctrl)
		created := create(t, ctx, s, ProtocolACP, nil)

		// when
		view, err := s.Cancel(ctx, acme, ProtocolACP, created.Checkout.ID)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusCancelled, view.Checkout.Status)
		assert.Equal(t, mytime.ExampleTime, stores.checkouts.Items[created.Checkout.ID].CancelledAt)

		// when
		_, err = s.Cancel(ctx, acme, ProtocolACP, created.Checkout.ID)
		s.Drain()

		// then
		assert.Equal(t, myerrors.CodeInvalidState, myerrors.GetCode(err))
		assert.Equal(t, "Cannot cancel checkout in 'CANCELLED' status", myerrors.GetMessage(err))
	})

	t.Run("Expired checkout cannot be cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, s, stores, _ := setup(t, ctrl)
		created := create(t, ctx, s, ProtocolACP, nil)
		stores.clock.advance(time.Hour)

		// when
		_, err := s.Cancel(ctx, acme, ProtocolACP, created.Checkout.ID)
		s.Drain()

		// then
		assert.Equal(t, myerrors.CodeInvalidState, myerrors.GetCode(err))
		assert.Equal(t, StatusExpired, stores.checkouts.Items[created.Checkout.ID].Status)
	})
}

func TestGetOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// given
	ctx, s, _, _ := setup(t, ctrl)
	created := create(t, ctx, s, ProtocolUCP, &address)
	completion, err := s.Complete(ctx, acme, ProtocolUCP, created.Checkout.ID, "spt_abc")
	s.Drain()
	assert.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		// when
		order, err := s.GetOrder(ctx, acme, ProtocolUCP, completion.Order.ID)

		// then
		assert.NoError(t, err)
		assert.Equal(t, created.Checkout.ID, order.CheckoutID)
		assert.Equal(t, "spt_abc", order.PaymentReference)
	})

	t.Run("Other tenant", func(t *testing.T) {
		// when
		_, err := s.GetOrder(ctx, other, ProtocolUCP, completion.Order.ID)

		// then
		assert.Equal(t, http.StatusNotFound, myerrors.GetHTTPStatus(err))
		assert.Equal(t, fmt.Sprintf("Order '%s' not found", completion.Order.ID), myerrors.GetMessage(err))
	})
}

func create(t *testing.T, c context.Context, s *Service, protocol Protocol, shipTo *adapters.Address) View {
	view, err := s.Create(c, acme, protocol, CreateRequest{
		Items:   []ItemRef{{SKU: "ITEM-10", Quantity: 1}},
		Address: shipTo,
	})
	assert.NoError(t, err)
	s.Drain()
	return view
}

func eventTypes(stores *testStores) []string {
	result := []string{}
	ids := []string{}
	for id := range stores.events.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		result = append(result, stores.events.Items[id].Type)
	}
	return result
}

type testClock struct {
	sync.Mutex
	now time.Time
}

func (c *testClock) get() time.Time {
	c.Lock()
	defer c.Unlock()
	return c.now
}

func (c *testClock) advance(d time.Duration) {
	c.Lock()
	defer c.Unlock()
	c.now = c.now.Add(d)
}

type testStores struct {
	checkouts *mystore.InMemoryStore[Checkout]
	orders    *mystore.InMemoryStore[Order]
	events    *mystore.InMemoryStore[CheckoutEvent]
	clock     *testClock
}

// platformHolder hands out the mock platform unless a test swaps in its own adapter.
type platformHolder struct {
	adapter adapters.Adapter
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *Service, *testStores, *platformHolder) {
	c := context.TODO()

	clock := &testClock{now: mytime.ExampleTime}
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().DoAndReturn(clock.get).AnyTimes()

	counter := atomic.Int64{}
	uuider := myuuid.NewMockUUIDer(ctrl)
	uuider.EXPECT().Create().DoAndReturn(func() string {
		return fmt.Sprintf("%08d-0000-0000-0000-000000000000", counter.Add(1))
	}).AnyTimes()

	products := NewMockProductLookup(ctrl)
	products.EXPECT().LookupActive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(c context.Context, tenantID string, id string, sku string) (catalog.Product, bool, error) {
			for _, p := range fixtures {
				if p.TenantID == tenantID && sku != "" && p.SKU == sku {
					return p, true, nil
				}
			}
			for _, p := range fixtures {
				if p.TenantID == tenantID && id != "" && p.ID == id {
					return p, true, nil
				}
			}
			return catalog.Product{}, false, nil
		}).AnyTimes()

	holder := &platformHolder{adapter: adapters.NewMock(nower, myuuid.RealUUIDer{})}
	resolver := NewMockAdapterResolver(ctrl)
	resolver.EXPECT().AdapterFor(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, t tenant.Tenant) adapters.Adapter {
		return holder.adapter
	}).AnyTimes()

	publisher := mypublisher.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any()).Return(nil).AnyTimes()

	checkouts, _, _ := mystore.NewInMemoryStore[Checkout](c)
	orders, _, _ := mystore.NewInMemoryStore[Order](c)
	events, _, _ := mystore.NewInMemoryStore[CheckoutEvent](c)

	s := NewService(checkouts, orders, events, products, resolver, publisher, mymetrics.New(), 30, nower, uuider)

	return c, s, &testStores{checkouts: checkouts, orders: orders, events: events, clock: clock}, holder
}
