package acp

import (
	"fmt"
	"strings"

	"github.com/MarcGrol/agentcommerce/lib/mymoney"
	"github.com/MarcGrol/agentcommerce/services/adapters"
	"github.com/MarcGrol/agentcommerce/services/catalog"
	"github.com/MarcGrol/agentcommerce/services/checkout"
)

const (
	lowStockThreshold = 5
	termsOfUseURL     = "https://agentix.com/terms"
	privacyPolicyURL  = "https://agentix.com/privacy"
)

// Requests

type itemInput struct {
	ID       string `json:"id,omitempty" validate:"required_without=SKU"`
	SKU      string `json:"sku,omitempty" validate:"required_without=ID"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=10000"`
}

type buyer struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type address struct {
	Name       string `json:"name" validate:"required"`
	LineOne    string `json:"line_one" validate:"required"`
	LineTwo    string `json:"line_two,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	Country    string `json:"country" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
}

type createCheckoutRequest struct {
	Items               []itemInput    `json:"items" validate:"required,min=1,dive"`
	Buyer               *buyer         `json:"buyer,omitempty"`
	FulfillmentAddress  *address       `json:"fulfillment_address,omitempty"`
	FulfillmentOptionID string         `json:"fulfillment_option_id,omitempty"`
	Metadata            map[string]any `json:"metadata,omitempty"`
}

type updateCheckoutRequest struct {
	Items               []itemInput `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	Buyer               *buyer      `json:"buyer,omitempty"`
	FulfillmentAddress  *address    `json:"fulfillment_address,omitempty"`
	FulfillmentOptionID string      `json:"fulfillment_option_id,omitempty"`
}

type completeCheckoutRequest struct {
	PaymentToken paymentToken `json:"payment_token" validate:"required"`
}

type paymentToken struct {
	Type  string `json:"type" validate:"required,oneof=stripe_spt"`
	Token string `json:"token" validate:"required"`
}

type productsQuery struct {
	Query    string `json:"query" form:"query"`
	Category string `json:"category" form:"category"`
	MinPrice *int64 `json:"min_price" form:"min_price" validate:"omitempty,min=0"`
	MaxPrice *int64 `json:"max_price" form:"max_price" validate:"omitempty,min=0"`
	Limit    int    `json:"limit" form:"limit" validate:"omitempty,min=1,max=100"`
	Offset   int    `json:"offset" form:"offset" validate:"omitempty,min=0"`
}

func itemRefsOf(items []itemInput) []checkout.ItemRef {
	if items == nil {
		return nil
	}
	refs := make([]checkout.ItemRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, checkout.ItemRef{ID: item.ID, SKU: item.SKU, Quantity: item.Quantity})
	}
	return refs
}

func (b *buyer) toBuyer() *checkout.Buyer {
	if b == nil {
		return nil
	}
	return &checkout.Buyer{FirstName: b.FirstName, LastName: b.LastName, Email: b.Email, Phone: b.PhoneNumber}
}

func (a *address) toAddress() *adapters.Address {
	if a == nil {
		return nil
	}
	return &adapters.Address{
		Name:     a.Name,
		Address1: a.LineOne,
		Address2: a.LineTwo,
		City:     a.City,
		State:    a.State,
		Zip:      a.PostalCode,
		Country:  a.Country,
	}
}

func metadataOf(metadata map[string]any) map[string]string {
	result := map[string]string{}
	for k, v := range metadata {
		if s, ok := v.(string); ok {
			result[k] = s
			continue
		}
		if v != nil {
			result[k] = fmt.Sprint(v)
		}
	}
	return result
}

func (q productsQuery) toSearchQuery() catalog.SearchQuery {
	query := catalog.SearchQuery{
		Query:    q.Query,
		Category: q.Category,
		Limit:    q.Limit,
		Offset:   q.Offset,
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

// Responses, amounts in cents

type checkoutResponse struct {
	ID                  string              `json:"id"`
	Status              string              `json:"status"`
	Currency            string              `json:"currency"`
	Buyer               *buyer              `json:"buyer,omitempty"`
	PaymentProvider     paymentProvider     `json:"payment_provider"`
	LineItems           []lineItem          `json:"line_items"`
	FulfillmentAddress  *address            `json:"fulfillment_address,omitempty"`
	FulfillmentOptions  []fulfillmentOption `json:"fulfillment_options"`
	FulfillmentOptionID string              `json:"fulfillment_option_id,omitempty"`
	Totals              []total             `json:"totals"`
	Messages            []message           `json:"messages"`
	Links               []link              `json:"links"`
}

type paymentProvider struct {
	Provider                string   `json:"provider"`
	SupportedPaymentMethods []string `json:"supported_payment_methods"`
}

type lineItem struct {
	ID         string  `json:"id"`
	Item       itemRef `json:"item"`
	BaseAmount int64   `json:"base_amount"`
	Discount   int64   `json:"discount"`
	Subtotal   int64   `json:"subtotal"`
	Tax        int64   `json:"tax"`
	Total      int64   `json:"total"`
}

type itemRef struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type fulfillmentOption struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Carrier  string `json:"carrier,omitempty"`
	Subtotal int64  `json:"subtotal"`
	Tax      int64  `json:"tax"`
	Total    int64  `json:"total"`
}

type total struct {
	Type        string `json:"type"`
	DisplayText string `json:"display_text"`
	Amount      int64  `json:"amount"`
}

type message struct {
	Type        string `json:"type"`
	Code        string `json:"code,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Content     string `json:"content"`
}

type link struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

func infoMessage(content string) message {
	return message{Type: "info", ContentType: "plain", Content: content}
}

func paymentDeclinedMessage(content string) message {
	return message{Type: "error", Code: "payment_declined", ContentType: "plain", Content: content}
}

// statusOf maps onto the coarser ACP statuses.
func statusOf(status checkout.Status) string {
	switch status {
	case checkout.StatusPaymentPending:
		return "ready_for_payment"
	case checkout.StatusCompleted:
		return "completed"
	case checkout.StatusCancelled, checkout.StatusExpired:
		return "canceled"
	default:
		return "not_ready_for_payment"
	}
}

func checkoutResponseOf(view checkout.View, messages ...message) checkoutResponse {
	co := view.Checkout

	resp := checkoutResponse{
		ID:       co.ID,
		Status:   statusOf(co.Status),
		Currency: strings.ToLower(co.Currency),
		PaymentProvider: paymentProvider{
			Provider:                "stripe",
			SupportedPaymentMethods: []string{"card"},
		},
		LineItems:           []lineItem{},
		FulfillmentOptions:  []fulfillmentOption{},
		FulfillmentOptionID: co.ShippingMethod,
		Totals:              []total{},
		Messages:            []message{},
		Links: []link{
			{Type: "terms_of_use", URL: termsOfUseURL},
			{Type: "privacy_policy", URL: privacyPolicyURL},
		},
	}

	if co.Email != "" {
		b, _ := co.Buyer()
		resp.Buyer = &buyer{FirstName: b.FirstName, LastName: b.LastName, Email: b.Email, PhoneNumber: b.Phone}
	}
	if co.HasAddress() {
		a := co.ShippingAddress
		resp.FulfillmentAddress = &address{
			Name:       a.Name,
			LineOne:    a.Address1,
			LineTwo:    a.Address2,
			City:       a.City,
			State:      a.State,
			Country:    a.Country,
			PostalCode: a.Zip,
		}
	}
	for _, li := range view.LineItems {
		resp.LineItems = append(resp.LineItems, lineItem{
			ID:         li.ID,
			Item:       itemRef{ID: li.ProductID, Quantity: li.Quantity},
			BaseAmount: li.BaseAmount,
			Discount:   li.Discount,
			Subtotal:   li.Subtotal,
			Tax:        li.Tax,
			Total:      li.Total,
		})
	}
	for _, o := range view.Options {
		option := fulfillmentOption{
			Type:     "shipping",
			ID:       o.ID,
			Title:    o.Title,
			Carrier:  o.Carrier,
			Subtotal: o.Amount,
			Tax:      0,
			Total:    o.Amount,
		}
		if o.EstimatedDays != "" {
			option.Subtitle = o.EstimatedDays + " days"
		}
		resp.FulfillmentOptions = append(resp.FulfillmentOptions, option)
	}
	for _, t := range view.Totals {
		resp.Totals = append(resp.Totals, total{Type: t.Type, DisplayText: t.DisplayText, Amount: t.Amount})
	}
	resp.Messages = append(resp.Messages, messages...)

	return resp
}

type productsResponse struct {
	Products []product `json:"products"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
	HasMore  bool      `json:"has_more"`
}

type product struct {
	ID             string    `json:"id"`
	SKU            string    `json:"sku"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Price          int64     `json:"price"`
	CompareAtPrice *int64    `json:"compare_at_price,omitempty"`
	Currency       string    `json:"currency"`
	Images         []image   `json:"images"`
	Inventory      inventory `json:"inventory"`
	Category       string    `json:"category,omitempty"`
}

type image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

type inventory struct {
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

func inventoryStatusOf(quantity int) string {
	switch {
	case quantity <= 0:
		return "out_of_stock"
	case quantity <= lowStockThreshold:
		return "low_stock"
	default:
		return "in_stock"
	}
}

func productsResponseOf(page catalog.Page) productsResponse {
	resp := productsResponse{
		Products: []product{},
		Total:    page.Total,
		Limit:    page.Limit,
		Offset:   page.Offset,
		HasMore:  page.HasMore,
	}
	for _, p := range page.Products {
		item := product{
			ID:          p.ID,
			SKU:         p.SKU,
			Title:       p.Title,
			Description: p.Description,
			Price:       mymoney.DollarsToCents(p.Price),
			Currency:    strings.ToLower(p.Currency),
			Images:      []image{},
			Inventory:   inventory{Quantity: p.InventoryQuantity, Status: inventoryStatusOf(p.InventoryQuantity)},
			Category:    p.ProductType,
		}
		if p.CompareAtPrice > 0 {
			compareAtPrice := mymoney.DollarsToCents(p.CompareAtPrice)
			item.CompareAtPrice = &compareAtPrice
		}
		for _, img := range p.Images {
			item.Images = append(item.Images, image{URL: img.URL, Alt: img.Alt})
		}
		resp.Products = append(resp.Products, item)
	}
	return resp
}
