package checkout

import (
	"math"

	"github.com/MarcGrol/agentcommerce/lib/mymoney"
	"github.com/MarcGrol/agentcommerce/services/adapters"
)

const (
	TotalSubtotal    = "subtotal"
	TotalDiscount    = "discount"
	TotalFulfillment = "fulfillment"
	TotalTax         = "tax"
	TotalTotal       = "total"
)

type Total struct {
	Type        string
	DisplayText string
	Amount      int64
}

// ShippingOption is a shipping method as quoted by the platform, in cents.
type ShippingOption struct {
	ID            string
	Title         string
	Description   string
	Carrier       string
	EstimatedDays string
	Amount        int64
	Currency      string
}

func shippingOptionsOf(methods []adapters.ShippingMethod) []ShippingOption {
	options := make([]ShippingOption, 0, len(methods))
	for _, m := range methods {
		options = append(options, ShippingOption{
			ID:            m.ID,
			Title:         m.Title,
			Description:   m.Description,
			Carrier:       m.Carrier,
			EstimatedDays: m.EstimatedDays,
			Amount:        cents(m.Price),
			Currency:      m.Currency,
		})
	}
	return options
}

func findOption(options []ShippingOption, id string) *ShippingOption {
	if id == "" {
		return nil
	}
	for i := range options {
		if options[i].ID == id {
			return &options[i]
		}
	}
	return nil
}

// BuildTotals emits subtotal first and total last. Discount, fulfillment and tax only appear when non-zero.
func BuildTotals(lineItems []LineItem, selected *ShippingOption) []Total {
	subtotal, discount, tax := int64(0), int64(0), int64(0)
	for _, li := range lineItems {
		subtotal = addCents(subtotal, li.Subtotal)
		discount = addCents(discount, li.Discount)
		tax = addCents(tax, li.Tax)
	}
	fulfillment := int64(0)
	fulfillmentText := "Shipping"
	if selected != nil {
		fulfillment = selected.Amount
		if selected.Title != "" {
			fulfillmentText = selected.Title
		}
	}

	totals := []Total{{Type: TotalSubtotal, DisplayText: "Subtotal", Amount: subtotal}}
	if discount > 0 {
		totals = append(totals, Total{Type: TotalDiscount, DisplayText: "Discount", Amount: -discount})
	}
	if fulfillment > 0 {
		totals = append(totals, Total{Type: TotalFulfillment, DisplayText: fulfillmentText, Amount: fulfillment})
	}
	if tax > 0 {
		totals = append(totals, Total{Type: TotalTax, DisplayText: "Tax", Amount: tax})
	}
	totals = append(totals, Total{Type: TotalTotal, DisplayText: "Total", Amount: addCents(addCents(subtotal-discount, tax), fulfillment)})

	return totals
}

// addCents saturates at math.MaxInt64 instead of wrapping to a negative amount.
func addCents(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// AmountOf returns 0 for a total type that is absent.
func AmountOf(totals []Total, totalType string) int64 {
	for _, t := range totals {
		if t.Type == totalType {
			return t.Amount
		}
	}
	return 0
}

// applyTotals stores the totals on the checkout in dollars.
func (co *Checkout) applyTotals(totals []Total, selected *ShippingOption) {
	co.Subtotal = mymoney.CentsToDollars(AmountOf(totals, TotalSubtotal))
	co.DiscountAmount = mymoney.CentsToDollars(-AmountOf(totals, TotalDiscount))
	co.TaxAmount = mymoney.CentsToDollars(AmountOf(totals, TotalTax))
	co.ShippingCost = 0
	if selected != nil {
		co.ShippingCost = mymoney.CentsToDollars(selected.Amount)
	}
	co.TotalAmount = mymoney.CentsToDollars(AmountOf(totals, TotalTotal))
}
