package paymethod

import "testing"

func TestByName(t *testing.T) {
	tests := []struct {
		name     string
		lookup   string
		wantNil  bool
		wantCode string
	}{
		{
			name:     "scanToPay",
			lookup:   "scan_to_pay",
			wantCode: "scan_to_pay",
		},
		{
			name:     "cashOnTable",
			lookup:   "cash_on_table",
			wantCode: "cash_on_table",
		},
		{
			name:     "card",
			lookup:   "card",
			wantCode: "card",
		},
		{
			name:    "unknown",
			lookup:  "cheque",
			wantNil: true,
		},
		{
			name:    "empty",
			lookup:  "",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ByName(tt.lookup)
			if tt.wantNil {
				if got != nil {
					t.Errorf("ByName(%q) = %v, want nil", tt.lookup, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ByName(%q) = nil, want %q", tt.lookup, tt.wantCode)
			}
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %q, want %q", got.Code(), tt.wantCode)
			}
		})
	}
}

func TestRequiresPayableCode(t *testing.T) {
	if !Methods.ScanToPay.RequiresPayableCode() {
		t.Error("ScanToPay should require the payable-code step")
	}
	if Methods.CashOnTable.RequiresPayableCode() {
		t.Error("CashOnTable should not require the payable-code step")
	}
	if Methods.CardPayment.RequiresPayableCode() {
		t.Error("CardPayment should not require the payable-code step")
	}
}

func TestLabel(t *testing.T) {
	if got := Methods.ScanToPay.Label(); got != "Scan To Pay" {
		t.Errorf("Label() = %q, want %q", got, "Scan To Pay")
	}
	if got := Methods.CardPayment.Label(); got != "Card" {
		t.Errorf("Label() = %q, want %q", got, "Card")
	}
}
