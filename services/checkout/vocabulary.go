package checkout

import (
	"fmt"

	"github.com/MarcGrol/agentcommerce/lib/myerrors"
)

// vocabulary holds the nouns and codes a protocol uses to report engine errors.
type vocabulary struct {
	noun           string
	closedCode     string
	closedMessage  string
	expiredCode    string
	invalidItems   string
	cannotComplete string
	cannotCancel   string
}

var vocabularies = map[Protocol]vocabulary{
	ProtocolACP: {
		noun:           "Checkout",
		closedCode:     myerrors.CodeCheckoutClosed,
		closedMessage:  "Cannot update a completed, cancelled, or expired checkout",
		expiredCode:    myerrors.CodeCheckoutExpired,
		invalidItems:   "No valid products found for the given items",
		cannotComplete: "Cannot complete checkout in '%s' status",
		cannotCancel:   "Cannot cancel checkout in '%s' status",
	},
	ProtocolUCP: {
		noun:           "Cart",
		closedCode:     myerrors.CodeCartClosed,
		closedMessage:  "Cannot update a closed cart",
		expiredCode:    myerrors.CodeCartExpired,
		invalidItems:   "No valid products found",
		cannotComplete: "Cannot create order from cart in '%s' status",
		cannotCancel:   "Cannot cancel cart in '%s' status",
	},
}

func vocabularyOf(protocol Protocol) vocabulary {
	words, found := vocabularies[protocol]
	if !found {
		return vocabularies[ProtocolACP]
	}
	return words
}

func (v vocabulary) expiredError() error {
	return myerrors.NewConflictError(v.expiredCode, fmt.Errorf("%s has expired", v.noun))
}
