package orders

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateCreateOrder validates an order submission. An order with no items
// is rejected outright: empty submissions are stopped client-side, so one
// arriving here means a buggy or hostile caller.
func ValidateCreateOrder(req OrderCreateRequest) []ValidationError {
	var errs []ValidationError

	if len(req.Items) == 0 {
		errs = append(errs, ValidationError{Field: "items", Message: "at least one item is required"})
	}

	for itemID, qty := range req.Items {
		if qty < 1 {
			errs = append(errs, ValidationError{Field: "items", Message: "quantity for item " + itemID + " must be at least 1"})
		}
	}

	if req.TotalAmount < 0 {
		errs = append(errs, ValidationError{Field: "total_amount", Message: "total amount cannot be negative"})
	}

	if !paymentMethodKnown(req.PaymentMethod) {
		errs = append(errs, ValidationError{Field: "payment_method", Message: "unknown payment method: " + req.PaymentMethod})
	}

	return errs
}
