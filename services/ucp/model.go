package ucp

import (
	"encoding/base64"
	"strconv"
	"time"

	"github.com/MarcGrol/agentcommerce/lib/mymoney"
	"github.com/MarcGrol/agentcommerce/services/adapters"
	"github.com/MarcGrol/agentcommerce/services/catalog"
	"github.com/MarcGrol/agentcommerce/services/checkout"
	"github.com/MarcGrol/agentcommerce/services/tenant"
)

const (
	capabilityVersion = "1.0"
	defaultPageSize   = 20
)

type cartItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=10000"`
}

type shippingAddress struct {
	RecipientName  string `json:"recipient_name" validate:"required"`
	StreetAddress  string `json:"street_address" validate:"required"`
	StreetAddress2 string `json:"street_address_2,omitempty"`
	City           string `json:"city" validate:"required"`
	Region         string `json:"region" validate:"required"`
	PostalCode     string `json:"postal_code" validate:"required"`
	CountryCode    string `json:"country_code" validate:"required,min=2,max=3"`
	Phone          string `json:"phone,omitempty"`
}

type createCartRequest struct {
	Items []cartItemInput `json:"items" validate:"required,min=1,dive"`
}

type updateCartRequest struct {
	Items            []cartItemInput  `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	ShippingAddress  *shippingAddress `json:"shipping_address,omitempty"`
	ShippingMethodID string           `json:"shipping_method_id,omitempty"`
}

type createOrderRequest struct {
	CartID       string `json:"cart_id" validate:"required"`
	PaymentToken string `json:"payment_token" validate:"required"`
}

type catalogQuery struct {
	Q         string `json:"q" form:"q"`
	Query     string `json:"query" form:"query"`
	Category  string `json:"category" form:"category"`
	MinPrice  *int64 `json:"min_price" form:"min_price" validate:"omitempty,min=0"`
	MaxPrice  *int64 `json:"max_price" form:"max_price" validate:"omitempty,min=0"`
	PageSize  int    `json:"page_size" form:"page_size" validate:"omitempty,min=1,max=100"`
	PageToken string `json:"page_token" form:"page_token"`
}

func itemRefsOf(items []cartItemInput) []checkout.ItemRef {
	if items == nil {
		return nil
	}
	refs := make([]checkout.ItemRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, checkout.ItemRef{ID: item.ProductID, VariantID: item.VariantID, Quantity: item.Quantity})
	}
	return refs
}

func (a *shippingAddress) toAddress() *adapters.Address {
	if a == nil {
		return nil
	}
	return &adapters.Address{
		Name:     a.RecipientName,
		Address1: a.StreetAddress,
		Address2: a.StreetAddress2,
		City:     a.City,
		State:    a.Region,
		Zip:      a.PostalCode,
		Country:  a.CountryCode,
		Phone:    a.Phone,
	}
}

func shippingAddressOf(a adapters.Address) *shippingAddress {
	if a.IsEmpty() {
		return nil
	}
	return &shippingAddress{
		RecipientName:  a.Name,
		StreetAddress:  a.Address1,
		StreetAddress2: a.Address2,
		City:           a.City,
		Region:         a.State,
		PostalCode:     a.Zip,
		CountryCode:    a.Country,
		Phone:          a.Phone,
	}
}

// encodePageToken and decodePageToken hide the offset from callers.
func encodePageToken(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

func decodePageToken(token string) int {
	if token == "" {
		return 0
	}
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0
	}
	offset, err := strconv.Atoi(string(decoded))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

func (q catalogQuery) toSearchQuery() catalog.SearchQuery {
	query := catalog.SearchQuery{
		Query:    q.Q,
		Category: q.Category,
		Limit:    q.PageSize,
		Offset:   decodePageToken(q.PageToken),
	}
	if query.Query == "" {
		query.Query = q.Query
	}
	if query.Limit == 0 {
		query.Limit = defaultPageSize
	}
	if q.MinPrice != nil {
		minPrice := mymoney.CentsToDollars(*q.MinPrice)
		query.MinPrice = &minPrice
	}
	if q.MaxPrice != nil {
		maxPrice := mymoney.CentsToDollars(*q.MaxPrice)
		query.MaxPrice = &maxPrice
	}
	return query
}

type money struct {
	Amount       int64  `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

type capabilitiesResponse struct {
	Merchant            merchant     `json:"merchant"`
	Capabilities        []capability `json:"capabilities"`
	SupportedCurrencies []string     `json:"supported_currencies"`
	SupportedCountries  []string     `json:"supported_countries"`
}

type merchant struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type capability struct {
	Type    string `json:"type"`
	Version string `json:"version"`
}

func capabilitiesOf(t tenant.Tenant) capabilitiesResponse {
	name := t.CompanyName
	if name == "" {
		name = t.Name
	}
	return capabilitiesResponse{
		Merchant: merchant{
			Name:        name,
			Description: "Products from " + name + " via Agentix",
		},
		Capabilities: []capability{
			{Type: "catalog", Version: capabilityVersion},
			{Type: "cart", Version: capabilityVersion},
			{Type: "checkout", Version: capabilityVersion},
			{Type: "order_tracking", Version: capabilityVersion},
		},
		SupportedCurrencies: []string{"USD"},
		SupportedCountries:  []string{"US"},
	}
}

type catalogResponse struct {
	Items         []catalogItem `json:"items"`
	NextPageToken string        `json:"next_page_token,omitempty"`
	TotalResults  int           `json:"total_results"`
}

type catalogItem struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	URL          string  `json:"url,omitempty"`
	Images       []image `json:"images"`
	Price        money   `json:"price"`
	Availability string  `json:"availability"`
	Category     string  `json:"category,omitempty"`
	Brand        string  `json:"brand,omitempty"`
}

type image struct {
	URL     string `json:"url"`
	AltText string `json:"alt_text,omitempty"`
}

func availabilityOf(p catalog.Product) string {
	if p.InventoryQuantity > 0 {
		return "in_stock"
	}
	if p.InventoryPolicy == adapters.InventoryPolicyContinue {
		return "preorder"
	}
	return "out_of_stock"
}

func catalogResponseOf(page catalog.Page) catalogResponse {
	resp := catalogResponse{
		Items:        []catalogItem{},
		TotalResults: page.Total,
	}
	for _, p := range page.Products {
		item := catalogItem{
			ID:           p.ID,
			Title:        p.Title,
			Description:  p.Description,
			URL:          p.ExternalURL,
			Images:       []image{},
			Price:        money{Amount: mymoney.DollarsToCents(p.Price), CurrencyCode: p.Currency},
			Availability: availabilityOf(p),
			Category:     p.ProductType,
			Brand:        p.Vendor,
		}
		for _, img := range p.Images {
			item.Images = append(item.Images, image{URL: img.URL, AltText: img.Alt})
		}
		resp.Items = append(resp.Items, item)
	}
	if page.HasMore {
		resp.NextPageToken = encodePageToken(page.Offset + page.Limit)
	}
	return resp
}

type cartResponse struct {
	ID                       string           `json:"id"`
	Status                   string           `json:"status"`
	Items                    []cartItem       `json:"items"`
	Subtotal                 money            `json:"subtotal"`
	Tax                      money            `json:"tax"`
	Shipping                 money            `json:"shipping"`
	Total                    money            `json:"total"`
	ShippingAddress          *shippingAddress `json:"shipping_address,omitempty"`
	AvailableShippingMethods []shippingMethod `json:"available_shipping_methods"`
	SelectedShippingMethodID string           `json:"selected_shipping_method_id,omitempty"`
}

type cartItem struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	Title     string `json:"title"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	UnitPrice money  `json:"unit_price"`
	LineTotal money  `json:"line_total"`
}

type shippingMethod struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description,omitempty"`
	Price             money  `json:"price"`
	EstimatedDelivery string `json:"estimated_delivery,omitempty"`
}

func cartStatusOf(status checkout.Status) string {
	switch status {
	case checkout.StatusPaymentPending:
		return "ready"
	case checkout.StatusCompleted:
		return "completed"
	case checkout.StatusCancelled, checkout.StatusExpired:
		return "cancelled"
	default:
		return "open"
	}
}

func cartResponseOf(view checkout.View) cartResponse {
	co := view.Checkout
	amount := func(cents int64) money {
		return money{Amount: cents, CurrencyCode: co.Currency}
	}

	resp := cartResponse{
		ID:                       co.ID,
		Status:                   cartStatusOf(co.Status),
		Items:                    []cartItem{},
		Subtotal:                 amount(checkout.AmountOf(view.Totals, checkout.TotalSubtotal)),
		Tax:                      amount(checkout.AmountOf(view.Totals, checkout.TotalTax)),
		Shipping:                 amount(checkout.AmountOf(view.Totals, checkout.TotalFulfillment)),
		Total:                    amount(checkout.AmountOf(view.Totals, checkout.TotalTotal)),
		ShippingAddress:          shippingAddressOf(co.ShippingAddress),
		AvailableShippingMethods: []shippingMethod{},
		SelectedShippingMethodID: co.ShippingMethod,
	}
	for _, li := range view.LineItems {
		resp.Items = append(resp.Items, cartItem{
			ID:        li.ID,
			ProductID: li.ProductID,
			VariantID: li.VariantID,
			Title:     li.Title,
			SKU:       li.SKU,
			Quantity:  li.Quantity,
			UnitPrice: amount(li.UnitAmount),
			LineTotal: amount(li.Total),
		})
	}
	for _, o := range view.Options {
		method := shippingMethod{
			ID:                o.ID,
			Title:             o.Title,
			Price:             amount(o.Amount),
			EstimatedDelivery: o.EstimatedDays,
		}
		if o.EstimatedDays != "" {
			method.Description = o.EstimatedDays + " delivery"
		}
		resp.AvailableShippingMethods = append(resp.AvailableShippingMethods, method)
	}
	return resp
}

type orderResponse struct {
	ID              string          `json:"id"`
	CartID          string          `json:"cart_id"`
	Status          string          `json:"status"`
	OrderNumber     string          `json:"order_number"`
	Items           []cartItem      `json:"items"`
	Subtotal        money           `json:"subtotal"`
	Tax             money           `json:"tax"`
	Shipping        money           `json:"shipping"`
	Total           money           `json:"total"`
	ShippingAddress shippingAddress `json:"shipping_address"`
	Tracking        *tracking       `json:"tracking,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type tracking struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number"`
	TrackingURL    string `json:"tracking_url"`
}

func orderStatusOf(status adapters.OrderStatus) string {
	switch status {
	case adapters.OrderStatusConfirmed:
		return "confirmed"
	case adapters.OrderStatusProcessing:
		return "processing"
	case adapters.OrderStatusShipped:
		return "shipped"
	case adapters.OrderStatusDelivered:
		return "delivered"
	case adapters.OrderStatusCancelled, adapters.OrderStatusRefunded:
		return "cancelled"
	default:
		return "pending"
	}
}

func orderResponseOf(order checkout.Order) orderResponse {
	amount := func(dollars float64) money {
		return money{Amount: mymoney.DollarsToCents(dollars), CurrencyCode: order.Currency}
	}

	orderNumber := order.OrderNumber
	if orderNumber == "" {
		orderNumber = order.ExternalID
	}

	resp := orderResponse{
		ID:          order.ID,
		CartID:      order.CheckoutID,
		Status:      orderStatusOf(order.Status),
		OrderNumber: orderNumber,
		Items:       []cartItem{},
		Subtotal:    amount(order.Subtotal),
		Tax:         amount(order.TaxAmount),
		Shipping:    amount(order.ShippingCost),
		Total:       amount(order.TotalAmount),
		CreatedAt:   order.CreatedAt,
	}
	if address := shippingAddressOf(order.ShippingAddress); address != nil {
		resp.ShippingAddress = *address
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, cartItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Title:     item.Title,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: amount(item.Price),
			LineTotal: amount(item.LineTotal),
		})
	}
	if order.TrackingNumber != "" && order.TrackingURL != "" {
		carrier := order.ShippingMethod
		if carrier == "" {
			carrier = "Unknown"
		}
		resp.Tracking = &tracking{Carrier: carrier, TrackingNumber: order.TrackingNumber, TrackingURL: order.TrackingURL}
	}
	return resp
}
