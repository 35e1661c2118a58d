package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/agentcommerce/lib/myhttpclient"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
	"github.com/MarcGrol/agentcommerce/lib/mytime"
	"github.com/MarcGrol/agentcommerce/lib/myuuid"
)

const vendureAPI = "https://demo.vendure.io/shop-api"

const searchResult = `{"data":{"search":{"totalItems":3,"items":[
	{"productId":"1","productName":"Laptop","slug":"laptop","sku":"L2201308","productVariantId":"1","priceWithTax":{"value":155880},"currencyCode":"USD"},
	{"productId":"2","productName":"Tablet","slug":"tablet","sku":"TB-1","productVariantId":7,"priceWithTax":{"min":32999,"max":44999},"currencyCode":"USD"},
	{"productId":"3","productName":"Cable","slug":"cable","sku":"CB-1","productVariantId":"9","priceWithTax":{"value":999},"currencyCode":"USD","productAsset":{"preview":"https://img/cable.png"}}
]}}}`

func TestVendureAdapter(t *testing.T) {

	t.Run("Connect probes the search api", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, sender := setupVendure(t, ctrl)
		sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, req myhttpclient.Request) (myhttpclient.Response, error) {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, vendureAPI, req.URL)
			assert.Equal(t, "my-channel", req.Headers["vendure-token"])
			return okResponse(searchResult), nil
		})

		// when
		result, err := adapter.Connect(ctx, Credentials{APIURL: vendureAPI, ChannelToken: "my-channel"})

		// then
		assert.NoError(t, err)
		assert.True(t, adapter.IsConnected())
		assert.Equal(t, vendureAPI, result.ShopName)
	})

	t.Run("Connect fails on graphql error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, sender := setupVendure(t, ctrl)
		sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(okResponse(`{"errors":[{"message":"channel not found"}]}`), nil)

		// when
		_, err := adapter.Connect(ctx, Credentials{APIURL: vendureAPI})

		// then
		assert.EqualError(t, err, "failed to connect to vendure at https://demo.vendure.io/shop-api: vendure graphql error: channel not found")
		assert.False(t, adapter.IsConnected())
	})

	t.Run("Not connected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupVendure(t, ctrl)

		// when
		_, err := adapter.GetProducts(ctx, ProductQuery{})

		// then
		assert.ErrorIs(t, err, ErrNotConnected)
	})

	t.Run("Get products converts minor units and filters on price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, sender := setupVendure(t, ctrl)
		sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(okResponse(searchResult), nil).Times(2)
		_, err := adapter.Connect(ctx, Credentials{APIURL: vendureAPI})
		assert.NoError(t, err)
		maxPrice := 500.0

		// when
		page, err := adapter.GetProducts(ctx, ProductQuery{MaxPrice: &maxPrice, Limit: 10})

		// then
		assert.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		assert.Len(t, page.Data, 2)
		assert.Equal(t, "Tablet", page.Data[0].Title)
		assert.Equal(t, 329.99, page.Data[0].Price)
		assert.Equal(t, 9.99, page.Data[1].Price)
		assert.Equal(t, "https://img/cable.png", page.Data[1].Images[0].URL)
	})

	t.Run("Session token is reused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, sender := setupVendure(t, ctrl)
		withSession := okResponse(searchResult)
		withSession.Headers.Set("vendure-auth-token", "session-1")
		gomock.InOrder(
			sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(withSession, nil),
			sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, req myhttpclient.Request) (myhttpclient.Response, error) {
				assert.Equal(t, "Bearer session-1", req.Headers["Authorization"])
				return okResponse(searchResult), nil
			}),
		)
		_, err := adapter.Connect(ctx, Credentials{APIURL: vendureAPI})
		assert.NoError(t, err)

		// when
		_, err = adapter.SearchProducts(ctx, "", ProductFilters{})

		// then
		assert.NoError(t, err)
	})

	t.Run("Non 2xx response", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, sender := setupVendure(t, ctrl)
		gomock.InOrder(
			sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(okResponse(searchResult), nil),
			sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(myhttpclient.Response{StatusCode: http.StatusBadGateway, Headers: http.Header{}, Body: []byte("bad gateway")}, nil),
		)
		_, err := adapter.Connect(ctx, Credentials{APIURL: vendureAPI})
		assert.NoError(t, err)

		// when
		_, err = adapter.SyncProducts(ctx)

		// then
		assert.EqualError(t, err, "vendure responded with http-status 502: bad gateway")
	})

	t.Run("Create order replays checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, sender := setupVendure(t, ctrl)
		operations := []string{}
		sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, req myhttpclient.Request) (myhttpclient.Response, error) {
			gql := graphQLRequest{}
			_ = json.Unmarshal(req.Body, &gql)
			switch gql.Query {
			case vendureSearchProducts:
				operations = append(operations, "search")
				return okResponse(searchResult), nil
			case vendureAddItemToOrder:
				operations = append(operations, "addItem")
				assert.Equal(t, "1", gql.Variables["productVariantId"])
				return okResponse(`{"data":{"addItemToOrder":{"__typename":"Order","id":"42"}}}`), nil
			case vendureSetCustomer:
				operations = append(operations, "setCustomer")
				input := gql.Variables["input"].(map[string]any)
				assert.Equal(t, "Jane", input["firstName"])
				assert.Equal(t, "van Dijk", input["lastName"])
				return okResponse(`{"data":{"setCustomerForOrder":{"__typename":"Order","id":"42"}}}`), nil
			case vendureSetShippingAddress:
				operations = append(operations, "setAddress")
				input := gql.Variables["input"].(map[string]any)
				assert.Equal(t, "US", input["countryCode"])
				return okResponse(`{"data":{"setOrderShippingAddress":{"__typename":"Order","id":"42"}}}`), nil
			case vendureSetShippingMethod:
				operations = append(operations, "setShipping")
				return okResponse(`{"data":{"setOrderShippingMethod":{"__typename":"Order","id":"42"}}}`), nil
			case vendureTransitionToArrangingPayment:
				operations = append(operations, "transition")
				return okResponse(`{"data":{"transitionOrderToState":{"__typename":"Order","id":"42","state":"ArrangingPayment"}}}`), nil
			case vendureAddPayment:
				operations = append(operations, "addPayment")
				return okResponse(`{"data":{"addPaymentToOrder":{"__typename":"Order","id":"42","code":"XYZ123","state":"PaymentSettled",
					"currencyCode":"USD","totalWithTax":156380,"subTotalWithTax":155880,"shippingWithTax":500,
					"lines":[{"id":"5","quantity":1,"linePriceWithTax":155880,"productVariant":{"id":"1","name":"Laptop 13 inch","sku":"L2201308","priceWithTax":155880}}],
					"customer":{"emailAddress":"jane@example.com"}}}}`), nil
			}
			t.Fatalf("unexpected query %s", gql.Query)
			return myhttpclient.Response{}, nil
		}).AnyTimes()
		_, err := adapter.Connect(ctx, Credentials{APIURL: vendureAPI})
		assert.NoError(t, err)

		// when
		order, err := adapter.CreateOrder(ctx, CheckoutSnapshot{
			ID:              "chk_1",
			Protocol:        "UCP",
			Items:           []CheckoutItem{{SKU: "L2201308", Quantity: 1, Price: 1558.80}},
			Email:           "jane@example.com",
			ShippingAddress: &Address{Name: "Jane van Dijk", Address1: "1 Main St", City: "Springfield", State: "IL", Zip: "62701"},
			ShippingMethod:  "1",
		})

		// then
		assert.NoError(t, err)
		assert.Equal(t, []string{"search", "search", "addItem", "setCustomer", "setAddress", "setShipping", "transition", "addPayment"}, operations)
		assert.Equal(t, "XYZ123", order.OrderNumber)
		assert.Equal(t, OrderStatusConfirmed, order.Status)
		assert.Equal(t, 1563.80, order.TotalAmount)
		assert.Equal(t, 5.0, order.ShippingCost)
		assert.Equal(t, "chk_1", order.CheckoutID)
		assert.Equal(t, "UCP", order.Protocol)
		assert.Len(t, order.Items, 1)
	})

	t.Run("Mutation error result", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, sender := setupVendure(t, ctrl)
		gomock.InOrder(
			sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(okResponse(searchResult), nil),
			sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(okResponse(`{"data":{"addItemToOrder":{"__typename":"InsufficientStockError","errorCode":"INSUFFICIENT_STOCK_ERROR","message":"Only 2 items were added"}}}`), nil),
		)
		_, err := adapter.Connect(ctx, Credentials{APIURL: vendureAPI})
		assert.NoError(t, err)

		// when
		_, err = adapter.CreateOrder(ctx, CheckoutSnapshot{Items: []CheckoutItem{{SKU: "L2201308", VariantID: "1", Quantity: 5}}})

		// then
		assert.EqualError(t, err, "vendure mutation error: Only 2 items were added (INSUFFICIENT_STOCK_ERROR)")
	})

	t.Run("Shipping rates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, sender := setupVendure(t, ctrl)
		gomock.InOrder(
			sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(okResponse(searchResult), nil),
			sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(okResponse(`{"data":{"eligibleShippingMethods":[{"id":"1","name":"Standard","description":"3 days","price":500,"priceWithTax":600}]}}`), nil),
		)
		_, err := adapter.Connect(ctx, Credentials{APIURL: vendureAPI})
		assert.NoError(t, err)

		// when
		rates, err := adapter.GetShippingRates(ctx, CheckoutSnapshot{})

		// then
		assert.NoError(t, err)
		assert.Equal(t, []ShippingMethod{{ID: "1", Title: "Standard", Description: "3 days", Price: 6.0, Currency: "USD"}}, rates)
	})

	t.Run("Order status requires admin api", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, adapter, _ := setupVendure(t, ctrl)

		// when
		_, err := adapter.UpdateOrderStatus(ctx, "42", OrderStatusShipped)

		// then
		assert.ErrorIs(t, err, ErrNotImplemented)
	})
}

func okResponse(body string) myhttpclient.Response {
	return myhttpclient.Response{
		StatusCode: http.StatusOK,
		Headers:    http.Header{},
		Body:       []byte(body),
	}
}

func setupVendure(t *testing.T, ctrl *gomock.Controller) (context.Context, Adapter, *myhttpclient.MockHTTPSender) {
	c := context.TODO()

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	uuider := myuuid.NewMockUUIDer(ctrl)
	uuider.EXPECT().Create().Return("11111111-2222-3333-4444-555555555555").AnyTimes()
	sender := myhttpclient.NewMockHTTPSender(ctrl)

	return c, NewVendure(sender, nower, uuider, mylog.New("vendure")), sender
}
