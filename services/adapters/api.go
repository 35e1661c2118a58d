package adapters

import (
	"context"
	"errors"
	"time"
)

type Platform string

const (
	PlatformShopify     Platform = "SHOPIFY"
	PlatformWooCommerce Platform = "WOOCOMMERCE"
	PlatformVendure     Platform = "VENDURE"
	PlatformCustom      Platform = "CUSTOM"
	PlatformMock        Platform = "MOCK"
)

const DefaultReservationTTL = 15 * time.Minute

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrNotConnected   = errors.New("not connected")
)

// Credentials is the decrypted platform configuration of a tenant.
// Each platform only uses its own subset of the fields.
type Credentials struct {
	// shopify
	Shop        string `json:"shop,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
	Scope       string `json:"scope,omitempty"`
	// woocommerce
	StoreURL       string `json:"storeUrl,omitempty"`
	ConsumerKey    string `json:"consumerKey,omitempty"`
	ConsumerSecret string `json:"consumerSecret,omitempty"`
	// vendure
	APIURL       string `json:"apiUrl,omitempty"`
	AuthToken    string `json:"authToken,omitempty"`
	ChannelToken string `json:"channelToken,omitempty"`
}

func (c Credentials) IsEmpty() bool {
	return c == Credentials{}
}

type ConnectionResult struct {
	ShopName string
	Plan     string
}

type InventoryPolicy string

const (
	InventoryPolicyDeny     InventoryPolicy = "DENY"
	InventoryPolicyContinue InventoryPolicy = "CONTINUE"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusArchived ProductStatus = "ARCHIVED"
	ProductStatusDeleted  ProductStatus = "DELETED"
)

type Image struct {
	URL      string
	Alt      string
	Position int
}

type Variant struct {
	ID                string
	SKU               string
	Title             string
	Price             float64
	CompareAtPrice    *float64
	InventoryQuantity int
}

// Product as exposed by the platform. Prices are in major units.
type Product struct {
	ID                string
	ExternalID        string
	ExternalURL       string
	SKU               string
	Title             string
	Description       string
	Price             float64
	CompareAtPrice    *float64
	Currency          string
	Images            []Image
	InventoryQuantity int
	InventoryPolicy   InventoryPolicy
	TrackInventory    bool
	ProductType       string
	Vendor            string
	Tags              []string
	Variants          []Variant
	Status            ProductStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ProductQuery struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	InStock  bool
	IDs      []string
	SKUs     []string
	Limit    int
	Offset   int
	// OrderBy is one of title, price, created_at, updated_at
	OrderBy  string
	OrderDir string
}

type ProductFilters struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	InStock  bool
	Vendor   string
	Tags     []string
}

type ProductPage struct {
	Data    []Product
	Total   int
	Limit   int
	Offset  int
	HasMore bool
}

type SyncError struct {
	ExternalID string
	Error      string
}

type SyncResult struct {
	Created  int
	Updated  int
	Deleted  int
	Failed   int
	Errors   []SyncError
	Duration time.Duration
}

type InventoryStatus struct {
	SKU       string
	Quantity  int
	Available bool
	Policy    InventoryPolicy
}

type Reservation struct {
	ID        string
	SKU       string
	Quantity  int
	ExpiresAt time.Time
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
)

type Address struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
	Phone    string `json:"phone,omitempty"`
}

func (a Address) IsEmpty() bool {
	return a == Address{}
}

type CheckoutItem struct {
	ProductID    string
	SKU          string
	Title        string
	Price        float64
	Quantity     int
	VariantID    string
	VariantTitle string
}

// CheckoutSnapshot is what an adapter needs to know about a checkout to quote or place an order.
type CheckoutSnapshot struct {
	ID              string
	TenantID        string
	Protocol        string
	Items           []CheckoutItem
	Email           string
	ShippingAddress *Address
	ShippingMethod  string
	ShippingCost    float64
	Subtotal        float64
	TaxAmount       float64
	TotalAmount     float64
	Currency        string
	PaymentMethod   string
}

type OrderItem struct {
	ID           string
	ProductID    string
	SKU          string
	Title        string
	Price        float64
	Quantity     int
	VariantID    string
	VariantTitle string
	LineTotal    float64
}

// Order as known by the platform.
type Order struct {
	ID                string
	CheckoutID        string
	ExternalID        string
	OrderNumber       string
	Status            OrderStatus
	Items             []OrderItem
	Email             string
	ShippingAddress   Address
	ShippingMethod    string
	ShippingCost      float64
	Subtotal          float64
	TaxAmount         float64
	TotalAmount       float64
	Currency          string
	PaymentMethod     string
	PaymentReference  string
	FulfillmentStatus string
	TrackingNumber    string
	TrackingURL       string
	Source            string
	Protocol          string
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ShippingMethod struct {
	ID            string
	Title         string
	Description   string
	Carrier       string
	Price         float64
	Currency      string
	EstimatedDays string
}

type WebhookRegistration struct {
	ID    string
	Topic string
	URL   string
}

type WebhookResult struct {
	Event     string
	Processed bool
	Data      map[string]string
}

// Adapter is the uniform contract towards an e-commerce platform.
// Callers never branch on the concrete platform.
//
//go:generate mockgen -source=api.go -package adapters -destination adapter_mock.go Adapter
type Adapter interface {
	Platform() Platform
	Version() string

	Connect(c context.Context, credentials Credentials) (ConnectionResult, error)
	Disconnect(c context.Context) error
	TestConnection(c context.Context) (ConnectionResult, error)
	IsConnected() bool

	GetProducts(c context.Context, query ProductQuery) (ProductPage, error)
	GetProduct(c context.Context, id string) (Product, bool, error)
	GetProductBySKU(c context.Context, sku string) (Product, bool, error)
	SearchProducts(c context.Context, query string, filters ProductFilters) ([]Product, error)
	SyncProducts(c context.Context) (SyncResult, error)

	CheckInventory(c context.Context, sku string) (InventoryStatus, error)
	ReserveInventory(c context.Context, sku string, quantity int, ttl time.Duration) (Reservation, error)
	ReleaseInventory(c context.Context, reservationID string) error

	CreateOrder(c context.Context, checkout CheckoutSnapshot) (Order, error)
	GetOrder(c context.Context, id string) (Order, bool, error)
	UpdateOrderStatus(c context.Context, id string, status OrderStatus) (Order, error)
	CancelOrder(c context.Context, id string, reason string) (Order, error)

	GetShippingRates(c context.Context, checkout CheckoutSnapshot) ([]ShippingMethod, error)

	RegisterWebhooks(c context.Context, callbackURL string) ([]WebhookRegistration, error)
	HandleWebhook(c context.Context, payload []byte, signature string) (WebhookResult, error)
}
