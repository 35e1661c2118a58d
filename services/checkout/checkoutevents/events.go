package checkoutevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MarcGrol/agentcommerce/lib/myerrors"
	"github.com/MarcGrol/agentcommerce/lib/myevents"
)

const (
	TopicName = "checkout"

	CheckoutCreatedType   = "CHECKOUT_CREATED"
	CheckoutUpdatedType   = "CHECKOUT_UPDATED"
	CheckoutCompletedType = "CHECKOUT_COMPLETED"
	CheckoutCancelledType = "CHECKOUT_CANCELLED"
	CheckoutExpiredType   = "CHECKOUT_EXPIRED"
	OrderCreatedType      = "ORDER_CREATED"

	checkoutActivityName = TopicName + ".activity"
)

type CheckoutEventService interface {
	Subscribe(c context.Context) error
	OnCheckoutActivity(c context.Context, topic string, event CheckoutActivity) error
}

func DispatchEvent(c context.Context, reader io.Reader, service CheckoutEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case checkoutActivityName:
		{
			event := CheckoutActivity{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCheckoutActivity(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("unknown event type %s", envelope.EventTypeName))
	}
}

// CheckoutActivity mirrors one row of the checkout audit log.
type CheckoutActivity struct {
	EventID    string
	CheckoutID string
	TenantID   string
	Protocol   string
	Type       string
	Data       map[string]string
}

func (e CheckoutActivity) GetEventTypeName() string {
	return checkoutActivityName
}

func (e CheckoutActivity) GetAggregateName() string {
	return e.CheckoutID
}
