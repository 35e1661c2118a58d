package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MarcGrol/agentcommerce/lib/myhttpclient"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
	"github.com/MarcGrol/agentcommerce/lib/mymoney"
	"github.com/MarcGrol/agentcommerce/lib/mytime"
	"github.com/MarcGrol/agentcommerce/lib/myuuid"
)

const vendureSessionHeader = "vendure-auth-token"

// vendureAdapter uses the Vendure Shop GraphQL API.
// Vendure amounts are in minor units and converted to major units on the way in.
type vendureAdapter struct {
	connection
	sender       myhttpclient.HTTPSender
	reservations *reservationLedger
	nower        mytime.Nower
	logger       mylog.Logger

	sessionMutex sync.Mutex
	apiURL       string
	bearerToken  string
	channelToken string
}

func NewVendure(sender myhttpclient.HTTPSender, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) Adapter {
	return &vendureAdapter{
		sender:       sender,
		reservations: newReservationLedger(nower, uuider),
		nower:        nower,
		logger:       logger,
	}
}

func (a *vendureAdapter) Platform() Platform {
	return PlatformVendure
}

func (a *vendureAdapter) Version() string {
	return "1.0.0"
}

func (a *vendureAdapter) Connect(c context.Context, credentials Credentials) (ConnectionResult, error) {
	return a.connect(c, credentials, func(c context.Context, credentials Credentials) (ConnectionResult, error) {
		a.sessionMutex.Lock()
		a.apiURL = credentials.APIURL
		a.bearerToken = credentials.AuthToken
		a.channelToken = credentials.ChannelToken
		a.sessionMutex.Unlock()

		err := a.gql(c, vendureSearchProducts, map[string]any{"term": "", "take": 1}, &vendureSearchResponse{})
		if err != nil {
			return ConnectionResult{}, fmt.Errorf("failed to connect to vendure at %s: %s", credentials.APIURL, err)
		}
		return ConnectionResult{ShopName: credentials.APIURL}, nil
	})
}

func (a *vendureAdapter) Disconnect(c context.Context) error {
	a.sessionMutex.Lock()
	a.apiURL = ""
	a.bearerToken = ""
	a.channelToken = ""
	a.sessionMutex.Unlock()

	a.disconnect()
	return nil
}

func (a *vendureAdapter) TestConnection(c context.Context) (ConnectionResult, error) {
	return a.testConnection(c, func(c context.Context) (ConnectionResult, error) {
		err := a.gql(c, vendureSearchProducts, map[string]any{"term": "", "take": 1}, &vendureSearchResponse{})
		if err != nil {
			return ConnectionResult{}, err
		}
		return ConnectionResult{ShopName: a.currentCredentials().APIURL}, nil
	})
}

func (a *vendureAdapter) GetProducts(c context.Context, query ProductQuery) (ProductPage, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := max(query.Offset, 0)

	resp := vendureSearchResponse{}
	err := a.gql(c, vendureSearchProducts, map[string]any{"term": query.Query, "take": limit + offset + 10}, &resp)
	if err != nil {
		return ProductPage{}, err
	}

	// the search api cannot filter on price
	items := filterOnPrice(resp.Search.Items, query.MinPrice, query.MaxPrice)

	products := make([]Product, 0, len(items))
	for _, item := range page(items, offset, limit) {
		products = append(products, item.toProduct(a.nower.Now()))
	}

	return ProductPage{
		Data:    products,
		Total:   resp.Search.TotalItems,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < resp.Search.TotalItems,
	}, nil
}

func (a *vendureAdapter) GetProduct(c context.Context, id string) (Product, bool, error) {
	resp := vendureProductResponse{}
	err := a.gql(c, vendureGetProductByID, map[string]any{"id": id}, &resp)
	if err != nil {
		// not an id, try it as slug
		err = a.gql(c, vendureGetProductBySlug, map[string]any{"slug": id}, &resp)
		if err != nil {
			return Product{}, false, err
		}
	}
	if resp.Product == nil {
		return Product{}, false, nil
	}
	return resp.Product.toProduct(a.nower.Now()), true, nil
}

func (a *vendureAdapter) GetProductBySKU(c context.Context, sku string) (Product, bool, error) {
	match, found, err := a.searchBySKU(c, sku)
	if err != nil || !found {
		return Product{}, false, err
	}

	resp := vendureProductResponse{}
	err = a.gql(c, vendureGetProductBySlug, map[string]any{"slug": match.Slug}, &resp)
	if err != nil {
		return Product{}, false, err
	}
	if resp.Product == nil {
		return Product{}, false, nil
	}
	return resp.Product.toProduct(a.nower.Now()), true, nil
}

func (a *vendureAdapter) searchBySKU(c context.Context, sku string) (vendureSearchItem, bool, error) {
	resp := vendureSearchResponse{}
	err := a.gql(c, vendureSearchProducts, map[string]any{"term": sku, "take": 10}, &resp)
	if err != nil {
		return vendureSearchItem{}, false, err
	}
	for _, item := range resp.Search.Items {
		if item.SKU == sku {
			return item, true, nil
		}
	}
	return vendureSearchItem{}, false, nil
}

func (a *vendureAdapter) SearchProducts(c context.Context, query string, filters ProductFilters) ([]Product, error) {
	resp := vendureSearchResponse{}
	err := a.gql(c, vendureSearchProducts, map[string]any{"term": query, "take": 50}, &resp)
	if err != nil {
		return nil, err
	}

	items := filterOnPrice(resp.Search.Items, filters.MinPrice, filters.MaxPrice)
	products := make([]Product, 0, len(items))
	for _, item := range items {
		products = append(products, item.toProduct(a.nower.Now()))
	}
	return products, nil
}

func (a *vendureAdapter) SyncProducts(c context.Context) (SyncResult, error) {
	start := a.nower.Now()

	resp := vendureSearchResponse{}
	err := a.gql(c, vendureSearchProducts, map[string]any{"term": "", "take": 100}, &resp)
	if err != nil {
		return SyncResult{}, err
	}

	return SyncResult{
		Updated:  len(resp.Search.Items),
		Errors:   []SyncError{},
		Duration: a.nower.Now().Sub(start),
	}, nil
}

func (a *vendureAdapter) CheckInventory(c context.Context, sku string) (InventoryStatus, error) {
	product, stock, found, err := a.stockLevel(c, sku)
	if err != nil {
		return InventoryStatus{}, err
	}
	if !found {
		return InventoryStatus{SKU: sku, Quantity: 0, Available: false, Policy: InventoryPolicyDeny}, nil
	}

	quantity := stock - a.reservations.reserved(sku)

	return InventoryStatus{
		SKU:       sku,
		Quantity:  quantity,
		Available: quantity > 0,
		Policy:    product.InventoryPolicy,
	}, nil
}

// stockLevel is the platform quantity of sku before local holds.
func (a *vendureAdapter) stockLevel(c context.Context, sku string) (Product, int, bool, error) {
	product, found, err := a.GetProductBySKU(c, sku)
	if err != nil || !found {
		return Product{}, 0, found, err
	}

	stock := product.InventoryQuantity
	for _, v := range product.Variants {
		if v.SKU == sku {
			stock = v.InventoryQuantity
		}
	}
	return product, stock, true, nil
}

func (a *vendureAdapter) ReserveInventory(c context.Context, sku string, quantity int, ttl time.Duration) (Reservation, error) {
	_, stock, _, err := a.stockLevel(c, sku)
	if err != nil {
		return Reservation{}, err
	}
	return a.reservations.reserve(sku, quantity, stock, ttl)
}

func (a *vendureAdapter) ReleaseInventory(c context.Context, reservationID string) error {
	a.reservations.release(reservationID)
	return nil
}

// CreateOrder replays the checkout on the active order of the session and pays it.
func (a *vendureAdapter) CreateOrder(c context.Context, checkout CheckoutSnapshot) (Order, error) {
	for _, item := range checkout.Items {
		variantID := item.VariantID
		if variantID == "" {
			match, found, err := a.searchBySKU(c, item.SKU)
			if err != nil {
				return Order{}, err
			}
			if !found {
				return Order{}, fmt.Errorf("could not resolve variant for SKU %s", item.SKU)
			}
			variantID = string(match.ProductVariantID)
		}

		resp := struct {
			AddItemToOrder vendureMutationResult `json:"addItemToOrder"`
		}{}
		err := a.mutate(c, vendureAddItemToOrder, map[string]any{"productVariantId": variantID, "quantity": item.Quantity}, &resp, &resp.AddItemToOrder)
		if err != nil {
			return Order{}, err
		}
	}

	if checkout.Email != "" {
		firstName, lastName := "Guest", ""
		if checkout.ShippingAddress != nil {
			if names := strings.Fields(checkout.ShippingAddress.Name); len(names) > 0 {
				firstName, lastName = names[0], strings.Join(names[1:], " ")
			}
		}
		resp := struct {
			SetCustomerForOrder vendureMutationResult `json:"setCustomerForOrder"`
		}{}
		err := a.mutate(c, vendureSetCustomer, map[string]any{"input": map[string]any{
			"emailAddress": checkout.Email,
			"firstName":    firstName,
			"lastName":     lastName,
		}}, &resp, &resp.SetCustomerForOrder)
		if err != nil {
			return Order{}, err
		}
	}

	if checkout.ShippingAddress != nil {
		address := *checkout.ShippingAddress
		fullName := address.Name
		if fullName == "" {
			fullName = "Guest"
		}
		countryCode := address.Country
		if countryCode == "" {
			countryCode = "US"
		}
		resp := struct {
			SetOrderShippingAddress vendureMutationResult `json:"setOrderShippingAddress"`
		}{}
		err := a.mutate(c, vendureSetShippingAddress, map[string]any{"input": map[string]any{
			"fullName":    fullName,
			"streetLine1": address.Address1,
			"streetLine2": address.Address2,
			"city":        address.City,
			"province":    address.State,
			"postalCode":  address.Zip,
			"countryCode": countryCode,
		}}, &resp, &resp.SetOrderShippingAddress)
		if err != nil {
			return Order{}, err
		}
	}

	if checkout.ShippingMethod != "" {
		resp := struct {
			SetOrderShippingMethod vendureMutationResult `json:"setOrderShippingMethod"`
		}{}
		err := a.mutate(c, vendureSetShippingMethod, map[string]any{"shippingMethodId": []string{checkout.ShippingMethod}}, &resp, &resp.SetOrderShippingMethod)
		if err != nil {
			return Order{}, err
		}
	}

	transition := struct {
		TransitionOrderToState vendureMutationResult `json:"transitionOrderToState"`
	}{}
	err := a.mutate(c, vendureTransitionToArrangingPayment, nil, &transition, &transition.TransitionOrderToState)
	if err != nil {
		return Order{}, err
	}

	paymentMethod := checkout.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "standard-payment"
	}
	payment := struct {
		AddPaymentToOrder vendureMutationResult `json:"addPaymentToOrder"`
	}{}
	err = a.mutate(c, vendureAddPayment, map[string]any{"input": map[string]any{
		"method":   paymentMethod,
		"metadata": map[string]string{"checkoutId": checkout.ID},
	}}, &payment, &payment.AddPaymentToOrder)
	if err != nil {
		return Order{}, err
	}

	return payment.AddPaymentToOrder.vendureOrder.toOrder(&checkout, a.nower.Now()), nil
}

// GetOrder can only see the active order of the current session.
func (a *vendureAdapter) GetOrder(c context.Context, id string) (Order, bool, error) {
	resp := struct {
		ActiveOrder *vendureOrder `json:"activeOrder"`
	}{}
	err := a.gql(c, vendureGetActiveOrder, nil, &resp)
	if err != nil {
		return Order{}, false, err
	}
	if resp.ActiveOrder == nil || string(resp.ActiveOrder.ID) != id {
		return Order{}, false, nil
	}
	return resp.ActiveOrder.toOrder(nil, a.nower.Now()), true, nil
}

func (a *vendureAdapter) UpdateOrderStatus(c context.Context, id string, status OrderStatus) (Order, error) {
	return Order{}, fmt.Errorf("VendureAdapter.UpdateOrderStatus: requires admin API: %w", ErrNotImplemented)
}

func (a *vendureAdapter) CancelOrder(c context.Context, id string, reason string) (Order, error) {
	return Order{}, fmt.Errorf("VendureAdapter.CancelOrder: requires admin API: %w", ErrNotImplemented)
}

func (a *vendureAdapter) GetShippingRates(c context.Context, checkout CheckoutSnapshot) ([]ShippingMethod, error) {
	resp := struct {
		EligibleShippingMethods []struct {
			ID           vendureID `json:"id"`
			Name         string    `json:"name"`
			Description  string    `json:"description"`
			PriceWithTax int64     `json:"priceWithTax"`
		} `json:"eligibleShippingMethods"`
	}{}
	err := a.gql(c, vendureGetShippingMethods, nil, &resp)
	if err != nil {
		return nil, err
	}

	methods := make([]ShippingMethod, 0, len(resp.EligibleShippingMethods))
	for _, m := range resp.EligibleShippingMethods {
		methods = append(methods, ShippingMethod{
			ID:          string(m.ID),
			Title:       m.Name,
			Description: m.Description,
			Price:       mymoney.CentsToDollars(m.PriceWithTax),
			Currency:    "USD",
		})
	}
	return methods, nil
}

// RegisterWebhooks is a no-op: Vendure emits events through server plugins.
func (a *vendureAdapter) RegisterWebhooks(c context.Context, callbackURL string) ([]WebhookRegistration, error) {
	return []WebhookRegistration{}, nil
}

func (a *vendureAdapter) HandleWebhook(c context.Context, payload []byte, signature string) (WebhookResult, error) {
	return WebhookResult{Event: "unknown", Processed: false}, nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (a *vendureAdapter) gql(c context.Context, query string, variables map[string]any, into any) error {
	a.sessionMutex.Lock()
	apiURL, bearerToken, channelToken := a.apiURL, a.bearerToken, a.channelToken
	a.sessionMutex.Unlock()

	if apiURL == "" {
		return fmt.Errorf("VendureAdapter: %w, call Connect first", ErrNotConnected)
	}

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("error marshalling graphql request: %s", err)
	}

	headers := map[string]string{}
	if bearerToken != "" {
		headers["Authorization"] = "Bearer " + bearerToken
	}
	if channelToken != "" {
		headers["vendure-token"] = channelToken
	}

	resp, err := a.sender.Send(c, myhttpclient.Request{
		Method:  http.MethodPost,
		URL:     apiURL,
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		return err
	}

	// the shop api hands out a session token that identifies the active order
	if token := resp.Headers.Get(vendureSessionHeader); token != "" && token != bearerToken {
		a.sessionMutex.Lock()
		a.bearerToken = token
		a.sessionMutex.Unlock()
		a.logger.Log(c, apiURL, mylog.SeverityDebug, "Vendure session token rotated")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("vendure responded with http-status %d: %s", resp.StatusCode, truncate(resp.Body, 200))
	}

	result := graphQLResponse{}
	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return fmt.Errorf("error parsing graphql response: %s", err)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("vendure graphql error: %s", result.Errors[0].Message)
	}
	if into == nil || len(result.Data) == 0 {
		return nil
	}

	err = json.Unmarshal(result.Data, into)
	if err != nil {
		return fmt.Errorf("error parsing graphql data: %s", err)
	}
	return nil
}

func (a *vendureAdapter) mutate(c context.Context, query string, variables map[string]any, into any, result *vendureMutationResult) error {
	err := a.gql(c, query, variables, into)
	if err != nil {
		return err
	}
	if result.Typename != "Order" {
		return fmt.Errorf("vendure mutation error: %s (%s)", result.Message, result.ErrorCode)
	}
	return nil
}

func truncate(body []byte, size int) string {
	if len(body) <= size {
		return string(body)
	}
	return string(body[:size]) + "..."
}

// vendureID accepts ids serialized as string or number.
type vendureID string

func (id *vendureID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	*id = vendureID(bytes.Trim(data, `"`))
	return nil
}

type vendurePrice struct {
	Value *int64 `json:"value"`
	Min   *int64 `json:"min"`
}

func (p vendurePrice) dollars() float64 {
	switch {
	case p.Value != nil:
		return mymoney.CentsToDollars(*p.Value)
	case p.Min != nil:
		return mymoney.CentsToDollars(*p.Min)
	default:
		return 0
	}
}

type vendureSearchItem struct {
	ProductID          vendureID    `json:"productId"`
	ProductName        string       `json:"productName"`
	Slug               string       `json:"slug"`
	Description        string       `json:"description"`
	CurrencyCode       string       `json:"currencyCode"`
	PriceWithTax       vendurePrice `json:"priceWithTax"`
	ProductVariantID   vendureID    `json:"productVariantId"`
	ProductVariantName string       `json:"productVariantName"`
	SKU                string       `json:"sku"`
	ProductAsset       *struct {
		Preview string `json:"preview"`
	} `json:"productAsset"`
}

type vendureSearchResponse struct {
	Search struct {
		TotalItems int                 `json:"totalItems"`
		Items      []vendureSearchItem `json:"items"`
	} `json:"search"`
}

func filterOnPrice(items []vendureSearchItem, minPrice *float64, maxPrice *float64) []vendureSearchItem {
	result := []vendureSearchItem{}
	for _, item := range items {
		if minPrice != nil && item.PriceWithTax.dollars() < *minPrice {
			continue
		}
		if maxPrice != nil && item.PriceWithTax.dollars() > *maxPrice {
			continue
		}
		result = append(result, item)
	}
	return result
}

func (item vendureSearchItem) toProduct(now time.Time) Product {
	images := []Image{}
	if item.ProductAsset != nil {
		images = append(images, Image{URL: item.ProductAsset.Preview, Alt: item.ProductName})
	}
	currency := item.CurrencyCode
	if currency == "" {
		currency = "USD"
	}

	return Product{
		ID:              string(item.ProductID),
		ExternalID:      string(item.ProductID),
		SKU:             item.SKU,
		Title:           item.ProductName,
		Description:     item.Description,
		Price:           item.PriceWithTax.dollars(),
		Currency:        currency,
		Images:          images,
		InventoryPolicy: InventoryPolicyDeny,
		TrackInventory:  true,
		Tags:            []string{},
		Status:          ProductStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

type vendureProduct struct {
	ID          vendureID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Variants    []struct {
		ID           vendureID `json:"id"`
		Name         string    `json:"name"`
		SKU          string    `json:"sku"`
		PriceWithTax int64     `json:"priceWithTax"`
		CurrencyCode string    `json:"currencyCode"`
		StockLevel   string    `json:"stockLevel"`
	} `json:"variants"`
	FeaturedAsset *struct {
		Preview string `json:"preview"`
	} `json:"featuredAsset"`
	Assets []struct {
		Preview string `json:"preview"`
	} `json:"assets"`
}

type vendureProductResponse struct {
	Product *vendureProduct `json:"product"`
}

func (p vendureProduct) toProduct(now time.Time) Product {
	variants := []Variant{}
	for _, v := range p.Variants {
		// stock levels are numbers or named levels like IN_STOCK depending on the server config
		quantity, _ := strconv.Atoi(v.StockLevel)
		variants = append(variants, Variant{
			ID:                string(v.ID),
			SKU:               v.SKU,
			Title:             v.Name,
			Price:             mymoney.CentsToDollars(v.PriceWithTax),
			InventoryQuantity: quantity,
		})
	}

	images := []Image{}
	if p.FeaturedAsset != nil {
		images = append(images, Image{URL: p.FeaturedAsset.Preview, Alt: p.Name})
	}
	for _, asset := range p.Assets {
		images = append(images, Image{URL: asset.Preview, Alt: p.Name})
	}

	product := Product{
		ID:              string(p.ID),
		ExternalID:      string(p.ID),
		Title:           p.Name,
		Description:     p.Description,
		Currency:        "USD",
		Images:          images,
		InventoryPolicy: InventoryPolicyDeny,
		TrackInventory:  true,
		Tags:            []string{},
		Status:          ProductStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if len(variants) > 0 {
		product.SKU = variants[0].SKU
		product.Price = variants[0].Price
		product.InventoryQuantity = variants[0].InventoryQuantity
		if p.Variants[0].CurrencyCode != "" {
			product.Currency = p.Variants[0].CurrencyCode
		}
	}
	if len(variants) > 1 {
		product.Variants = variants
	}
	return product
}

type vendureOrder struct {
	ID              vendureID `json:"id"`
	Code            string    `json:"code"`
	State           string    `json:"state"`
	CurrencyCode    string    `json:"currencyCode"`
	TotalWithTax    int64     `json:"totalWithTax"`
	SubTotalWithTax int64     `json:"subTotalWithTax"`
	ShippingWithTax int64     `json:"shippingWithTax"`
	Lines           []struct {
		ID               vendureID `json:"id"`
		Quantity         int       `json:"quantity"`
		LinePriceWithTax int64     `json:"linePriceWithTax"`
		ProductVariant   struct {
			ID           vendureID `json:"id"`
			Name         string    `json:"name"`
			SKU          string    `json:"sku"`
			PriceWithTax int64     `json:"priceWithTax"`
		} `json:"productVariant"`
	} `json:"lines"`
	ShippingAddress *struct {
		FullName    string `json:"fullName"`
		StreetLine1 string `json:"streetLine1"`
		StreetLine2 string `json:"streetLine2"`
		City        string `json:"city"`
		Province    string `json:"province"`
		PostalCode  string `json:"postalCode"`
		CountryCode string `json:"countryCode"`
	} `json:"shippingAddress"`
	ShippingLines []struct {
		ShippingMethod struct {
			ID   vendureID `json:"id"`
			Name string    `json:"name"`
		} `json:"shippingMethod"`
	} `json:"shippingLines"`
	Customer *struct {
		EmailAddress string `json:"emailAddress"`
	} `json:"customer"`
}

type vendureMutationResult struct {
	vendureOrder
	Typename  string `json:"__typename"`
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func (o vendureOrder) toOrder(checkout *CheckoutSnapshot, now time.Time) Order {
	orderID := string(o.ID)

	items := []OrderItem{}
	for _, line := range o.Lines {
		items = append(items, OrderItem{
			ID:        string(line.ID),
			ProductID: string(line.ProductVariant.ID),
			SKU:       line.ProductVariant.SKU,
			Title:     line.ProductVariant.Name,
			Price:     mymoney.CentsToDollars(line.ProductVariant.PriceWithTax),
			Quantity:  line.Quantity,
			LineTotal: mymoney.CentsToDollars(line.LinePriceWithTax),
		})
	}

	order := Order{
		ID:                orderID,
		ExternalID:        orderID,
		OrderNumber:       o.Code,
		Status:            vendureOrderStatus(o.State),
		Items:             items,
		ShippingCost:      mymoney.CentsToDollars(o.ShippingWithTax),
		Subtotal:          mymoney.CentsToDollars(o.SubTotalWithTax),
		TotalAmount:       mymoney.CentsToDollars(o.TotalWithTax),
		Currency:          o.CurrencyCode,
		FulfillmentStatus: "UNFULFILLED",
		Source:            "agentix",
		Protocol:          "ACP",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if o.Code != "" {
		order.ExternalID = o.Code
	}
	if order.Currency == "" {
		order.Currency = "USD"
	}
	if o.ShippingAddress != nil {
		order.ShippingAddress = Address{
			Name:     o.ShippingAddress.FullName,
			Address1: o.ShippingAddress.StreetLine1,
			Address2: o.ShippingAddress.StreetLine2,
			City:     o.ShippingAddress.City,
			State:    o.ShippingAddress.Province,
			Zip:      o.ShippingAddress.PostalCode,
			Country:  o.ShippingAddress.CountryCode,
		}
	}
	if len(o.ShippingLines) > 0 {
		order.ShippingMethod = o.ShippingLines[0].ShippingMethod.Name
	}
	if o.Customer != nil {
		order.Email = o.Customer.EmailAddress
	}
	if checkout != nil {
		order.CheckoutID = checkout.ID
		order.PaymentMethod = checkout.PaymentMethod
		if checkout.Protocol != "" {
			order.Protocol = checkout.Protocol
		}
		if order.Email == "" {
			order.Email = checkout.Email
		}
	}
	return order
}

func vendureOrderStatus(state string) OrderStatus {
	switch state {
	case "PaymentAuthorized", "PaymentSettled":
		return OrderStatusConfirmed
	case "Shipped":
		return OrderStatusShipped
	case "Delivered":
		return OrderStatusDelivered
	case "Cancelled":
		return OrderStatusCancelled
	default:
		return OrderStatusPending
	}
}
