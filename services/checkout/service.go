package checkout

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/MarcGrol/agentcommerce/lib/myerrors"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
	"github.com/MarcGrol/agentcommerce/lib/mypublisher"
	"github.com/MarcGrol/agentcommerce/lib/mystore"
	"github.com/MarcGrol/agentcommerce/lib/mytime"
	"github.com/MarcGrol/agentcommerce/lib/myuuid"
	"github.com/MarcGrol/agentcommerce/services/adapters"
	"github.com/MarcGrol/agentcommerce/services/checkout/checkoutevents"
	"github.com/MarcGrol/agentcommerce/services/tenant"
)

const newCheckout = "NEW"

type Service struct {
	checkouts     mystore.Store[Checkout]
	orders        mystore.Store[Order]
	events        mystore.Store[CheckoutEvent]
	products      ProductLookup
	adapters      AdapterResolver
	publisher     mypublisher.Publisher
	observer      TransitionObserver
	expiryMinutes int
	nower         mytime.Nower
	uuider        myuuid.UUIDer
	logger        mylog.Logger
	background    sync.WaitGroup
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(checkouts mystore.Store[Checkout], orders mystore.Store[Order], events mystore.Store[CheckoutEvent],
	products ProductLookup, adapters AdapterResolver, publisher mypublisher.Publisher, observer TransitionObserver,
	expiryMinutes int, nower mytime.Nower, uuider myuuid.UUIDer) *Service {
	return &Service{
		checkouts:     checkouts,
		orders:        orders,
		events:        events,
		products:      products,
		adapters:      adapters,
		publisher:     publisher,
		observer:      observer,
		expiryMinutes: expiryMinutes,
		nower:         nower,
		uuider:        uuider,
		logger:        mylog.New("checkout"),
	}
}

func (s *Service) CreateTopics(c context.Context) error {
	return s.publisher.CreateTopic(c, checkoutevents.TopicName)
}

// View is everything a protocol needs to render a checkout.
type View struct {
	Checkout  Checkout
	LineItems []LineItem
	Options   []ShippingOption
	Selected  *ShippingOption
	Totals    []Total
}

type CreateRequest struct {
	Items            []ItemRef
	Buyer            *Buyer
	Address          *adapters.Address
	ShippingOptionID string
	Metadata         map[string]string
}

// UpdateRequest leaves fields that are nil or empty untouched. Items, when present, replace all items.
type UpdateRequest struct {
	Items            []ItemRef
	Buyer            *Buyer
	Address          *adapters.Address
	ShippingOptionID string
}

type Completion struct {
	View         View
	Order        Order
	OrderCreated bool
}

func (s *Service) Create(c context.Context, t tenant.Tenant, protocol Protocol, req CreateRequest) (View, error) {
	words := vocabularyOf(protocol)

	adapter := s.adapters.AdapterFor(c, t)

	items, err := s.buildItems(c, t.ID, req.Items)
	if err != nil {
		return View{}, err
	}
	if len(items) == 0 {
		return View{}, myerrors.NewInvalidItemsError(fmt.Errorf("%s", words.invalidItems))
	}

	now := s.nower.Now()
	co := Checkout{
		ID:        myuuid.Prefixed("chk", s.uuider.Create()),
		TenantID:  t.ID,
		Protocol:  protocol,
		Status:    StatusItemsAdded,
		Items:     items,
		Metadata:  []KeyValue{},
		Currency:  defaultCurrency,
		ExpiresAt: mytime.MinutesFromNow(now, s.expiryMinutes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, key := range sortedKeys(req.Metadata) {
		co.SetMetadata(key, req.Metadata[key])
	}
	if req.Buyer != nil {
		co.applyBuyer(*req.Buyer)
	}
	if req.Address != nil && !req.Address.IsEmpty() {
		// single call checkouts skip the shipping step
		co.ShippingAddress = *req.Address
		co.Status = StatusPaymentPending
	}

	options := s.shippingOptions(c, adapter, co)
	co.ShippingMethod = req.ShippingOptionID
	if co.ShippingMethod == "" && len(options) > 0 {
		co.ShippingMethod = options[0].ID
	}
	selected := findOption(options, co.ShippingMethod)
	co.applyTotals(BuildTotals(lineItemsOf(co.Items), selected), selected)

	err = s.save(c, co)
	if err != nil {
		return View{}, err
	}

	s.logger.Log(c, co.ID, mylog.SeverityInfo, "Created %s checkout %s for tenant %s", protocol, co.ID, t.ID)

	s.transitioned(co, newCheckout)
	s.record(c, co, checkoutevents.CheckoutCreatedType, map[string]string{
		"itemCount": strconv.Itoa(len(items)),
	})

	return s.view(co, options), nil
}

func (s *Service) Get(c context.Context, t tenant.Tenant, protocol Protocol, id string) (View, error) {
	co, _, err := s.load(c, t, protocol, id)
	if err != nil {
		return View{}, err
	}

	return s.view(co, s.shippingOptions(c, s.adapters.AdapterFor(c, t), co)), nil
}

func (s *Service) Update(c context.Context, t tenant.Tenant, protocol Protocol, id string, req UpdateRequest) (View, error) {
	words := vocabularyOf(protocol)

	co, justExpired, err := s.load(c, t, protocol, id)
	if err != nil {
		return View{}, err
	}
	if justExpired {
		return View{}, words.expiredError()
	}
	if co.Status.IsTerminal() {
		return View{}, myerrors.NewConflictError(words.closedCode, fmt.Errorf("%s", words.closedMessage))
	}

	adapter := s.adapters.AdapterFor(c, t)
	from := co.Status

	if req.Items != nil {
		items, err := s.buildItems(c, t.ID, req.Items)
		if err != nil {
			return View{}, err
		}
		if len(items) == 0 {
			return View{}, myerrors.NewInvalidItemsError(fmt.Errorf("%s", words.invalidItems))
		}
		co.Items = items
	}
	if req.Buyer != nil {
		co.applyBuyer(*req.Buyer)
	}
	if req.Address != nil && !req.Address.IsEmpty() {
		co.ShippingAddress = *req.Address
	}
	if req.ShippingOptionID != "" {
		co.ShippingMethod = req.ShippingOptionID
	}

	// only an explicit or earlier choice selects an option here
	options := s.shippingOptions(c, adapter, co)
	selected := findOption(options, co.ShippingMethod)

	co.Status = advance(from, req.Items != nil, co.HasAddress())
	co.applyTotals(BuildTotals(lineItemsOf(co.Items), selected), selected)
	co.UpdatedAt = s.nower.Now()

	err = s.save(c, co)
	if err != nil {
		return View{}, err
	}

	s.transitioned(co, string(from))
	s.record(c, co, checkoutevents.CheckoutUpdatedType, map[string]string{
		"hasNewItems":   strconv.FormatBool(req.Items != nil),
		"hasNewAddress": strconv.FormatBool(req.Address != nil),
	})

	return s.view(co, options), nil
}

// Complete captures the payment and materializes the order.
// A malformed token results in an INVALID_PAYMENT error together with the untouched checkout.
func (s *Service) Complete(c context.Context, t tenant.Tenant, protocol Protocol, id string, paymentToken string) (Completion, error) {
	words := vocabularyOf(protocol)

	co, justExpired, err := s.load(c, t, protocol, id)
	if err != nil {
		return Completion{}, err
	}
	if justExpired || co.Status == StatusExpired {
		return Completion{}, words.expiredError()
	}
	if !CanTransition(co.Status, StatusCompleted) {
		return Completion{}, myerrors.NewInvalidStateError(fmt.Errorf(words.cannotComplete, co.Status))
	}

	adapter := s.adapters.AdapterFor(c, t)

	if !strings.HasPrefix(paymentToken, paymentTokenPrefix) {
		return Completion{View: s.view(co, s.shippingOptions(c, adapter, co))},
			myerrors.NewInvalidPaymentError(fmt.Errorf("Invalid payment token. Token must start with '%s'.", paymentTokenPrefix))
	}

	now := s.nower.Now()
	from := co.Status
	co.Status = StatusCompleted
	co.PaymentToken = paymentToken
	co.PaymentStatus = PaymentStatusCaptured
	co.PaymentMethod = paymentMethodCard
	co.CompletedAt = now
	co.UpdatedAt = now

	err = s.save(c, co)
	if err != nil {
		return Completion{}, err
	}
	s.transitioned(co, string(from))

	completion := Completion{}
	order, err := s.materialize(c, co)
	if err != nil {
		// the checkout stays completed
		s.logger.Log(c, co.ID, mylog.SeverityError, "Error creating order from checkout %s: %s", co.ID, err)
	} else {
		completion.Order = order
		completion.OrderCreated = true
		s.record(c, co, checkoutevents.OrderCreatedType, map[string]string{"orderId": order.ID})
		s.pushOrder(c, adapter, co, order)
	}

	s.record(c, co, checkoutevents.CheckoutCompletedType, map[string]string{"paymentMethod": paymentMethodCard})

	completion.View = s.view(co, s.shippingOptions(c, adapter, co))

	return completion, nil
}

func (s *Service) Cancel(c context.Context, t tenant.Tenant, protocol Protocol, id string) (View, error) {
	words := vocabularyOf(protocol)

	co, _, err := s.load(c, t, protocol, id)
	if err != nil {
		return View{}, err
	}
	if !CanTransition(co.Status, StatusCancelled) {
		return View{}, myerrors.NewInvalidStateError(fmt.Errorf(words.cannotCancel, co.Status))
	}

	now := s.nower.Now()
	from := co.Status
	co.Status = StatusCancelled
	co.CancelledAt = now
	co.UpdatedAt = now

	err = s.save(c, co)
	if err != nil {
		return View{}, err
	}

	s.transitioned(co, string(from))
	s.record(c, co, checkoutevents.CheckoutCancelledType, map[string]string{})

	return s.view(co, s.shippingOptions(c, s.adapters.AdapterFor(c, t), co)), nil
}

func (s *Service) GetOrder(c context.Context, t tenant.Tenant, protocol Protocol, id string) (Order, error) {
	order, found, err := s.orders.Get(c, id)
	if err != nil {
		return Order{}, myerrors.NewInternalError(err)
	}
	if !found || order.TenantID != t.ID || order.Protocol != protocol {
		return Order{}, myerrors.NewNotFoundError(fmt.Errorf("Order '%s' not found", id))
	}
	return order, nil
}

// Drain waits until pending audit writes and platform pushes have finished.
func (s *Service) Drain() {
	s.background.Wait()
}

// load fetches the checkout of the tenant and expires it when its deadline passed.
func (s *Service) load(c context.Context, t tenant.Tenant, protocol Protocol, id string) (Checkout, bool, error) {
	var co Checkout
	var from Status
	justExpired := false

	err := s.checkouts.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent
		justExpired = false

		existing, found, err := s.checkouts.Get(c, id)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found || existing.TenantID != t.ID || existing.Protocol != protocol {
			return myerrors.NewNotFoundError(fmt.Errorf("%s '%s' not found", vocabularyOf(protocol).noun, id))
		}
		co = existing

		now := s.nower.Now()
		if co.Status.IsTerminal() || !mytime.IsExpired(now, co.ExpiresAt) {
			return nil
		}

		from = co.Status
		co.Status = StatusExpired
		co.UpdatedAt = now
		err = s.checkouts.Put(c, co.ID, co)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		justExpired = true

		return nil
	})
	if err != nil {
		return Checkout{}, false, err
	}

	if justExpired {
		s.logger.Log(c, co.ID, mylog.SeverityInfo, "Checkout %s expired at %s", co.ID, co.ExpiresAt)
		s.transitioned(co, string(from))
		s.record(c, co, checkoutevents.CheckoutExpiredType, map[string]string{"previousStatus": string(from)})
	}

	return co, justExpired, nil
}

func (s *Service) save(c context.Context, co Checkout) error {
	return s.checkouts.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent
		err := s.checkouts.Put(c, co.ID, co)
		if err != nil {
			s.logger.Log(c, co.ID, mylog.SeverityError, "Error storing checkout %s of tenant %s: %s", co.ID, co.TenantID, err)
			return myerrors.NewInternalError(err)
		}
		return nil
	})
}

func (s *Service) materialize(c context.Context, co Checkout) (Order, error) {
	order := newOrder(co,
		myuuid.Prefixed("ord", s.uuider.Create()),
		myuuid.Prefixed("ord", s.uuider.Create()),
		func() string { return myuuid.Prefixed("oi", s.uuider.Create()) },
		s.nower.Now())

	err := s.orders.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent
		return s.orders.Put(c, order.ID, order)
	})
	if err != nil {
		return Order{}, err
	}

	s.logger.Log(c, co.ID, mylog.SeverityInfo, "Created order %s (%s) from checkout %s", order.ID, order.OrderNumber, co.ID)

	return order, nil
}

// pushOrder hands the order to the platform in the background; failures are only logged.
func (s *Service) pushOrder(c context.Context, adapter adapters.Adapter, co Checkout, order Order) {
	s.goBackground(c, func(c context.Context) {
		platformOrder, err := adapter.CreateOrder(c, co.snapshot())
		if err != nil {
			s.logger.Log(c, co.ID, mylog.SeverityWarn, "Error pushing order %s to %s: %s", order.ID, adapter.Platform(), err)
			return
		}

		err = s.orders.RunInTransaction(c, func(c context.Context) error {
			// must be idempotent
			stored, found, err := s.orders.Get(c, order.ID)
			if err != nil || !found {
				return fmt.Errorf("order %s not readable: %v", order.ID, err)
			}
			stored.PlatformOrderID = platformOrder.ID
			stored.UpdatedAt = s.nower.Now()
			return s.orders.Put(c, stored.ID, stored)
		})
		if err != nil {
			s.logger.Log(c, co.ID, mylog.SeverityWarn, "Error linking order %s to platform order %s: %s", order.ID, platformOrder.ID, err)
		}
	})
}

func (s *Service) shippingOptions(c context.Context, adapter adapters.Adapter, co Checkout) []ShippingOption {
	methods, err := adapter.GetShippingRates(c, co.snapshot())
	if err != nil {
		s.logger.Log(c, co.ID, mylog.SeverityWarn, "Error fetching shipping rates from %s: %s", adapter.Platform(), err)
		return []ShippingOption{}
	}
	return shippingOptionsOf(methods)
}

func (s *Service) view(co Checkout, options []ShippingOption) View {
	lineItems := lineItemsOf(co.Items)
	selected := selectedOption(co, options)
	return View{
		Checkout:  co,
		LineItems: lineItems,
		Options:   options,
		Selected:  selected,
		Totals:    BuildTotals(lineItems, selected),
	}
}

// selectedOption falls back to the stored shipping cost when the platform no longer quotes the method.
func selectedOption(co Checkout, options []ShippingOption) *ShippingOption {
	selected := findOption(options, co.ShippingMethod)
	if selected == nil && co.ShippingCost > 0 {
		selected = &ShippingOption{ID: co.ShippingMethod, Title: "Shipping", Amount: cents(co.ShippingCost), Currency: co.Currency}
	}
	return selected
}

func (s *Service) transitioned(co Checkout, from string) {
	if s.observer == nil || from == string(co.Status) {
		return
	}
	s.observer.CheckoutTransition(from, string(co.Status), string(co.Protocol))
}

// record appends to the audit log and publishes the activity without blocking the caller.
func (s *Service) record(c context.Context, co Checkout, eventType string, data map[string]string) {
	event := CheckoutEvent{
		ID:         myuuid.Prefixed("evt", s.uuider.Create()),
		CheckoutID: co.ID,
		TenantID:   co.TenantID,
		Protocol:   co.Protocol,
		Type:       eventType,
		Data:       []KeyValue{},
		CreatedAt:  s.nower.Now(),
	}
	for _, key := range sortedKeys(data) {
		event.Data = append(event.Data, KeyValue{Key: key, Value: data[key]})
	}

	s.goBackground(c, func(c context.Context) {
		err := s.events.RunInTransaction(c, func(c context.Context) error {
			// must be idempotent
			err := s.events.Put(c, event.ID, event)
			if err != nil {
				return err
			}

			return s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutActivity{
				EventID:    event.ID,
				CheckoutID: event.CheckoutID,
				TenantID:   event.TenantID,
				Protocol:   string(event.Protocol),
				Type:       event.Type,
				Data:       data,
			})
		})
		if err != nil {
			s.logger.Log(c, co.ID, mylog.SeverityError, "Error recording %s of checkout %s: %s", eventType, co.ID, err)
		}
	})
}

func (s *Service) goBackground(c context.Context, f func(c context.Context)) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		f(context.WithoutCancel(c))
	}()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
