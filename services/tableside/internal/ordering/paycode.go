package ordering

import (
	"fmt"
	"net/url"
)

// PayeeDetails identifies the merchant account a payable code settles to.
type PayeeDetails struct {
	VPA      string
	Name     string
	Currency string
}

// BuildPayableCode renders a UPI deep link for the given amount in minor
// currency units. The output is deterministic: url.Values encodes keys in
// sorted order, so the same inputs always produce the same code.
func BuildPayableCode(payee PayeeDetails, amount int64) string {
	currency := payee.Currency
	if currency == "" {
		currency = "INR"
	}

	values := url.Values{}
	values.Set("pa", payee.VPA)
	values.Set("pn", payee.Name)
	values.Set("am", fmt.Sprintf("%d.%02d", amount/100, amount%100))
	values.Set("cu", currency)

	return "upi://pay?" + values.Encode()
}
