package checkout

type Status string

const (
	StatusCreated        Status = "CREATED"
	StatusItemsAdded     Status = "ITEMS_ADDED"
	StatusShippingSet    Status = "SHIPPING_SET"
	StatusPaymentPending Status = "PAYMENT_PENDING"
	StatusCompleted      Status = "COMPLETED"
	StatusCancelled      Status = "CANCELLED"
	StatusExpired        Status = "EXPIRED"
	StatusFailed         Status = "FAILED"
)

var AllStatuses = []Status{
	StatusCreated,
	StatusItemsAdded,
	StatusShippingSet,
	StatusPaymentPending,
	StatusCompleted,
	StatusCancelled,
	StatusExpired,
	StatusFailed,
}

var transitions = map[Status][]Status{
	StatusCreated:        {StatusItemsAdded, StatusCancelled, StatusExpired},
	StatusItemsAdded:     {StatusShippingSet, StatusItemsAdded, StatusCancelled, StatusExpired},
	StatusShippingSet:    {StatusPaymentPending, StatusShippingSet, StatusCancelled, StatusExpired},
	StatusPaymentPending: {StatusCompleted, StatusFailed, StatusCancelled, StatusExpired},
	StatusCompleted:      {},
	StatusCancelled:      {},
	StatusExpired:        {},
	StatusFailed:         {StatusPaymentPending, StatusCancelled},
}

// CanTransition reports whether the table allows moving from one status to the other.
func CanTransition(from Status, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
}

// advance walks forward as far as the supplied data allows, never backwards.
func advance(current Status, itemsSupplied bool, hasAddress bool) Status {
	next := current
	if itemsSupplied && CanTransition(next, StatusItemsAdded) {
		next = StatusItemsAdded
	}
	if hasAddress && CanTransition(next, StatusShippingSet) {
		next = StatusShippingSet
	}
	if hasAddress && CanTransition(next, StatusPaymentPending) {
		next = StatusPaymentPending
	}
	return next
}
