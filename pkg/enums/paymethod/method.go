package paymethod

import "strings"

type Method struct {
	Name string
}

func (m Method) Code() string {
	return m.Name
}

func (m Method) Label() string {
	parts := strings.Split(m.Name, "_")
	for i := range parts {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, " ")
}

// RequiresPayableCode reports whether the method goes through the
// scannable payable-code step before settlement.
func (m Method) RequiresPayableCode() bool {
	return m.Name == Methods.ScanToPay.Name
}

type Enum struct {
	ScanToPay   Method
	CashOnTable Method
	CardPayment Method
}

var Methods = Enum{
	ScanToPay:   Method{Name: "scan_to_pay"},
	CashOnTable: Method{Name: "cash_on_table"},
	CardPayment: Method{Name: "card"},
}

var All = []Method{
	Methods.ScanToPay,
	Methods.CashOnTable,
	Methods.CardPayment,
}

// ByName returns the method for a given name, or nil if not found
func ByName(name string) *Method {
	for _, m := range All {
		if m.Name == name {
			return &m
		}
	}
	return nil
}
