package ordering

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tablesideclub/tableside/pkg/enums/paymethod"
)

// State is the checkout position for one table session.
type State string

const (
	// StateCartReview: the diner is browsing the menu and editing the cart.
	StateCartReview State = "cart_review"
	// StateMethodSelection: checkout has begun, a payment method is being chosen.
	StateMethodSelection State = "method_selection"
	// StatePayableCodeDisplay: a scan-to-pay code is on screen awaiting payment.
	StatePayableCodeDisplay State = "payable_code_display"
	// StateSettled: payment confirmed and the order submitted. Terminal.
	StateSettled State = "settled"
	// StateCancelled: the session was abandoned before settling. Terminal.
	StateCancelled State = "cancelled"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrUnknownItem          = errors.New("unknown menu item")
	ErrUnknownMethod        = errors.New("unknown payment method")
	ErrNoMethodSelected     = errors.New("no payment method selected")
	ErrInvalidTransition    = errors.New("action not allowed in current state")
	ErrSettlementInProgress = errors.New("settlement already in progress")
)

// OrderSubmission is the payload handed to the order store on settlement.
type OrderSubmission struct {
	TableNumber   string
	Items         map[string]int
	TotalAmount   int64
	PaymentMethod string
}

// OrderSubmitter delivers a settled order to the order store.
type OrderSubmitter interface {
	Submit(ctx context.Context, sub OrderSubmission) (orderID string, err error)
}

// DefaultSettleDelay approximates the payment provider round trip for
// methods settled on the spot.
const DefaultSettleDelay = 2 * time.Second

// Checkout drives one table's cart through payment to a submitted order.
//
// All methods are safe for concurrent use. During settlement the lock is
// released while the submission is in flight; the settling flag keeps a
// second confirmation from starting a duplicate submission in the meantime.
type Checkout struct {
	mu          sync.Mutex
	state       State
	cart        *Cart
	table       string
	prices      map[string]int64
	method      *paymethod.Method
	payableCode string
	orderID     string
	settling    bool

	submitter   OrderSubmitter
	payee       PayeeDetails
	settleDelay time.Duration
}

// NewCheckout starts a session in cart review. The price list is the menu
// snapshot taken when the table entered; carts are priced against it for
// the life of the session.
func NewCheckout(table string, prices map[string]int64, submitter OrderSubmitter, payee PayeeDetails) *Checkout {
	return &Checkout{
		state:       StateCartReview,
		cart:        NewCart(),
		table:       table,
		prices:      prices,
		submitter:   submitter,
		payee:       payee,
		settleDelay: DefaultSettleDelay,
	}
}

// SetSettleDelay overrides the simulated settlement delay.
func (c *Checkout) SetSettleDelay(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settleDelay = d
}

// AddItem puts one more of the item in the cart. Only valid while the cart
// is still under review.
func (c *Checkout) AddItem(itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCartReview {
		return ErrInvalidTransition
	}
	if _, known := c.prices[itemID]; !known {
		return ErrUnknownItem
	}
	c.cart.Add(itemID)
	return nil
}

// RemoveItem takes one of the item out of the cart.
func (c *Checkout) RemoveItem(itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCartReview {
		return ErrInvalidTransition
	}
	c.cart.Remove(itemID)
	return nil
}

// Begin moves from cart review to method selection. An empty cart is
// refused here, before anything leaves the process.
func (c *Checkout) Begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCartReview {
		return ErrInvalidTransition
	}
	if c.cart.Empty() {
		return ErrEmptyCart
	}
	c.state = StateMethodSelection
	return nil
}

// SelectMethod records the payment method. Scan-to-pay moves straight to
// the payable code display; other methods stay in method selection until
// confirmed.
func (c *Checkout) SelectMethod(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateMethodSelection && c.state != StatePayableCodeDisplay {
		return ErrInvalidTransition
	}
	if c.settling {
		return ErrSettlementInProgress
	}

	method := paymethod.ByName(name)
	if method == nil {
		return ErrUnknownMethod
	}

	c.method = method
	if method.RequiresPayableCode() {
		c.payableCode = BuildPayableCode(c.payee, c.cart.TotalAmount(c.prices))
		c.state = StatePayableCodeDisplay
	} else {
		c.payableCode = ""
		c.state = StateMethodSelection
	}
	return nil
}

// Confirm settles the payment and submits the order. Exactly one
// submission happens per settled session: a confirmation arriving while
// another is still settling is refused, and a failed submission returns
// the session to method selection with the cart untouched.
func (c *Checkout) Confirm(ctx context.Context) (string, error) {
	c.mu.Lock()

	if c.settling {
		c.mu.Unlock()
		return "", ErrSettlementInProgress
	}
	if c.state != StateMethodSelection && c.state != StatePayableCodeDisplay {
		c.mu.Unlock()
		return "", ErrInvalidTransition
	}
	if c.method == nil {
		c.mu.Unlock()
		return "", ErrNoMethodSelected
	}
	if c.cart.Empty() {
		c.mu.Unlock()
		return "", ErrEmptyCart
	}

	sub := OrderSubmission{
		TableNumber:   c.table,
		Items:         c.cart.Items(),
		TotalAmount:   c.cart.TotalAmount(c.prices),
		PaymentMethod: c.method.Name,
	}
	delay := c.settleDelay
	c.settling = true
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			c.abortSettlement()
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	orderID, err := c.submitter.Submit(ctx, sub)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.settling = false
	if err != nil {
		c.state = StateMethodSelection
		return "", err
	}

	c.orderID = orderID
	c.cart.Clear()
	c.state = StateSettled
	return orderID, nil
}

func (c *Checkout) abortSettlement() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settling = false
	c.state = StateMethodSelection
}

// CancelCheckout returns to cart review with the cart intact.
func (c *Checkout) CancelCheckout() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.settling {
		return ErrSettlementInProgress
	}
	if c.state != StateMethodSelection && c.state != StatePayableCodeDisplay {
		return ErrInvalidTransition
	}
	c.state = StateCartReview
	c.method = nil
	c.payableCode = ""
	return nil
}

// Abandon closes the session. Settled sessions stay settled.
func (c *Checkout) Abandon() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSettled {
		return
	}
	c.state = StateCancelled
}

// Snapshot is a consistent read of the whole checkout for rendering.
type Snapshot struct {
	State          State      `json:"state"`
	Table          string     `json:"table"`
	Lines          []CartLine `json:"lines"`
	TotalItemCount int        `json:"total_item_count"`
	TotalAmount    int64      `json:"total_amount"`
	PaymentMethod  string     `json:"payment_method,omitempty"`
	PayableCode    string     `json:"payable_code,omitempty"`
	OrderID        string     `json:"order_id,omitempty"`
	Settling       bool       `json:"settling"`
}

func (c *Checkout) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:          c.state,
		Table:          c.table,
		Lines:          c.cart.Lines(),
		TotalItemCount: c.cart.TotalItemCount(),
		TotalAmount:    c.cart.TotalAmount(c.prices),
		PayableCode:    c.payableCode,
		OrderID:        c.orderID,
		Settling:       c.settling,
	}
	if c.method != nil {
		snap.PaymentMethod = c.method.Name
	}
	return snap
}

func (c *Checkout) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
