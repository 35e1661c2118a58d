package checkout

import (
	"strings"
	"time"

	"github.com/MarcGrol/agentcommerce/lib/mymoney"
	"github.com/MarcGrol/agentcommerce/services/adapters"
)

type Protocol string

const (
	ProtocolACP Protocol = "ACP"
	ProtocolUCP Protocol = "UCP"
)

type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "PENDING"
	PaymentStatusAuthorized        PaymentStatus = "AUTHORIZED"
	PaymentStatusCaptured          PaymentStatus = "CAPTURED"
	PaymentStatusFailed            PaymentStatus = "FAILED"
	PaymentStatusRefunded          PaymentStatus = "REFUNDED"
	PaymentStatusPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

const (
	defaultCurrency    = "USD"
	paymentMethodCard  = "card"
	paymentTokenPrefix = "spt_"
	metaBuyerFirstName = "buyer_first_name"
	metaBuyerLastName  = "buyer_last_name"
	metaBuyerPhone     = "buyer_phone"
)

type KeyValue struct {
	Key   string
	Value string
}

// Item is a line of a checkout. Price and title are copied from the catalog.
type Item struct {
	ID        string
	ProductID string
	SKU       string
	Title     string
	Price     float64
	Quantity  int
	VariantID string
	LineTotal float64
}

// Checkout is shared by both protocols; Protocol tells which surface owns it.
// Amounts are in dollars. Zero timestamps mean "not happened".
type Checkout struct {
	ID              string
	TenantID        string
	Protocol        Protocol
	ExternalID      string
	Status          Status
	Items           []Item
	Email           string
	Metadata        []KeyValue
	ShippingAddress adapters.Address
	ShippingMethod  string
	ShippingCost    float64
	Subtotal        float64
	DiscountAmount  float64
	TaxAmount       float64
	TotalAmount     float64
	Currency        string
	PaymentToken    string `datastore:",noindex"`
	PaymentStatus   PaymentStatus
	PaymentMethod   string
	ExpiresAt       time.Time
	CompletedAt     time.Time
	CancelledAt     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (co Checkout) HasAddress() bool {
	return !co.ShippingAddress.IsEmpty()
}

func (co Checkout) MetadataValue(key string) string {
	for _, kv := range co.Metadata {
		if kv.Key == key {
			return kv.Value
		}
	}
	return ""
}

// SetMetadata overwrites key; an empty value removes it.
func (co *Checkout) SetMetadata(key string, value string) {
	metadata := make([]KeyValue, 0, len(co.Metadata)+1)
	replaced := false
	for _, kv := range co.Metadata {
		if kv.Key != key {
			metadata = append(metadata, kv)
			continue
		}
		replaced = true
		if value != "" {
			metadata = append(metadata, KeyValue{Key: key, Value: value})
		}
	}
	if !replaced && value != "" {
		metadata = append(metadata, KeyValue{Key: key, Value: value})
	}
	co.Metadata = metadata
}

type Buyer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Buyer is rebuilt from the email and the buyer metadata.
func (co Checkout) Buyer() (Buyer, bool) {
	buyer := Buyer{
		FirstName: co.MetadataValue(metaBuyerFirstName),
		LastName:  co.MetadataValue(metaBuyerLastName),
		Email:     co.Email,
		Phone:     co.MetadataValue(metaBuyerPhone),
	}
	return buyer, buyer != Buyer{}
}

func (co *Checkout) applyBuyer(buyer Buyer) {
	if buyer.Email != "" {
		co.Email = buyer.Email
	}
	for _, kv := range []KeyValue{
		{Key: metaBuyerFirstName, Value: buyer.FirstName},
		{Key: metaBuyerLastName, Value: buyer.LastName},
		{Key: metaBuyerPhone, Value: buyer.Phone},
	} {
		if kv.Value != "" {
			co.SetMetadata(kv.Key, kv.Value)
		}
	}
}

func (co Checkout) OrderNumber() string {
	return orderNumber(co.ID)
}

// orderNumber uses the first 8 characters of the random part of the checkout id.
func orderNumber(checkoutID string) string {
	random := checkoutID
	if idx := strings.Index(checkoutID, "_"); idx >= 0 {
		random = checkoutID[idx+1:]
	}
	if len(random) > 8 {
		random = random[:8]
	}
	return "ORD-" + strings.ToUpper(random)
}

func (co Checkout) snapshot() adapters.CheckoutSnapshot {
	items := make([]adapters.CheckoutItem, 0, len(co.Items))
	for _, item := range co.Items {
		items = append(items, adapters.CheckoutItem{
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			VariantID: item.VariantID,
		})
	}

	var address *adapters.Address
	if co.HasAddress() {
		a := co.ShippingAddress
		address = &a
	}

	return adapters.CheckoutSnapshot{
		ID:              co.ID,
		TenantID:        co.TenantID,
		Protocol:        string(co.Protocol),
		Items:           items,
		Email:           co.Email,
		ShippingAddress: address,
		ShippingMethod:  co.ShippingMethod,
		ShippingCost:    co.ShippingCost,
		Subtotal:        co.Subtotal,
		TaxAmount:       co.TaxAmount,
		TotalAmount:     co.TotalAmount,
		Currency:        co.Currency,
		PaymentMethod:   co.PaymentMethod,
	}
}

// CheckoutEvent is an audit record; it is never read back by the engine.
type CheckoutEvent struct {
	ID         string
	CheckoutID string
	TenantID   string
	Protocol   Protocol
	Type       string
	Data       []KeyValue
	CreatedAt  time.Time
}

type OrderItem struct {
	ID        string
	ProductID string
	SKU       string
	Title     string
	Price     float64
	Quantity  int
	VariantID string
	LineTotal float64
}

// Order is the immutable copy of a completed checkout.
type Order struct {
	ID                string
	TenantID          string
	CheckoutID        string
	ExternalID        string
	OrderNumber       string
	Status            adapters.OrderStatus
	Items             []OrderItem
	Email             string
	ShippingAddress   adapters.Address
	ShippingMethod    string
	ShippingCost      float64
	Subtotal          float64
	DiscountAmount    float64
	TaxAmount         float64
	TotalAmount       float64
	Currency          string
	PaymentMethod     string
	PaymentReference  string `datastore:",noindex"`
	FulfillmentStatus string
	TrackingNumber    string
	TrackingURL       string `datastore:",noindex"`
	Source            string
	Protocol          Protocol
	PlatformOrderID   string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func newOrder(co Checkout, orderID string, externalID string, itemIDs func() string, now time.Time) Order {
	items := make([]OrderItem, 0, len(co.Items))
	for _, item := range co.Items {
		items = append(items, OrderItem{
			ID:        itemIDs(),
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			VariantID: item.VariantID,
			LineTotal: item.LineTotal,
		})
	}

	return Order{
		ID:               orderID,
		TenantID:         co.TenantID,
		CheckoutID:       co.ID,
		ExternalID:       externalID,
		OrderNumber:      co.OrderNumber(),
		Status:           adapters.OrderStatusConfirmed,
		Items:            items,
		Email:            co.Email,
		ShippingAddress:  co.ShippingAddress,
		ShippingMethod:   co.ShippingMethod,
		ShippingCost:     co.ShippingCost,
		Subtotal:         co.Subtotal,
		DiscountAmount:   co.DiscountAmount,
		TaxAmount:        co.TaxAmount,
		TotalAmount:      co.TotalAmount,
		Currency:         co.Currency,
		PaymentMethod:    co.PaymentMethod,
		PaymentReference: co.PaymentToken,
		Source:           strings.ToLower(string(co.Protocol)),
		Protocol:         co.Protocol,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func cents(dollars float64) int64 {
	return mymoney.DollarsToCents(dollars)
}
