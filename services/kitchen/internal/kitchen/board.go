package kitchen

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/appetiteclub/apt"

	"github.com/tablesideclub/tableside/services/kitchen/internal/orderstore"
)

// Phase is the board's display state.
type Phase string

const (
	// PhaseLoading: the first fetch has not finished yet.
	PhaseLoading Phase = "loading"
	// PhaseIdle: the board is showing the active orders, possibly none.
	PhaseIdle Phase = "idle"
	// PhaseError: the first fetch failed and nothing has ever been shown.
	PhaseError Phase = "error"
)

// DefaultPollInterval is how often the board reconciles against the order
// store.
const DefaultPollInterval = 5 * time.Second

// DisplayLine is one dish row on a ticket, with the name resolved.
type DisplayLine struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DisplayOrder is one ticket on the board.
type DisplayOrder struct {
	ID            string        `json:"id"`
	TableNumber   string        `json:"table_number"`
	Lines         []DisplayLine `json:"lines"`
	TotalAmount   int64         `json:"total_amount"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// BoardView is a consistent snapshot of the board for rendering.
type BoardView struct {
	Phase     Phase          `json:"phase"`
	Orders    []DisplayOrder `json:"orders"`
	LastError string         `json:"last_error,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Board maintains the kitchen's view of active orders by polling the order
// store. Once orders have been shown, a failed poll never blanks the
// board: the last known good set stays up until the store answers again.
type Board struct {
	mu        sync.RWMutex
	phase     Phase
	orders    []DisplayOrder
	lastErr   string
	updatedAt time.Time

	store        orderstore.Client
	names        *MenuNameCache
	logger       apt.Logger
	pollInterval time.Duration

	refreshCh   chan struct{}
	subscribers map[string]chan BoardView
	subMu       sync.Mutex

	cancel context.CancelFunc
	done   chan struct{}
}

func NewBoard(store orderstore.Client, names *MenuNameCache, logger apt.Logger) *Board {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Board{
		phase:        PhaseLoading,
		store:        store,
		names:        names,
		logger:       logger,
		pollInterval: DefaultPollInterval,
		refreshCh:    make(chan struct{}, 1),
		subscribers:  make(map[string]chan BoardView),
	}
}

// SetPollInterval overrides the reconciliation interval.
func (b *Board) SetPollInterval(d time.Duration) {
	b.pollInterval = d
}

// Start warms the name cache, performs the initial fetch, and launches the
// polling loop.
func (b *Board) Start(ctx context.Context) error {
	if b.names != nil {
		if err := b.names.WarmUp(ctx); err != nil {
			b.logger.Info("menu name cache warm-up failed, names resolve lazily", "error", err)
		}
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.done = make(chan struct{})

	b.fetch(ctx)

	go b.loop(loopCtx)
	return nil
}

// Stop halts the polling loop.
func (b *Board) Stop(ctx context.Context) error {
	if b.cancel == nil {
		return nil
	}
	b.cancel()

	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("board did not stop in time: %w", ctx.Err())
	}
}

func (b *Board) loop(ctx context.Context) {
	defer close(b.done)

	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.fetch(ctx)
		case <-b.refreshCh:
			b.fetch(ctx)
		}
	}
}

// Refresh requests an off-schedule fetch. It never blocks; if a refresh is
// already queued the request folds into it.
func (b *Board) Refresh() {
	select {
	case b.refreshCh <- struct{}{}:
	default:
	}
}

// MarkReady completes an order at the store and refetches immediately so
// the removal is visible in the very next snapshot.
func (b *Board) MarkReady(ctx context.Context, orderID string) error {
	if err := b.store.Complete(ctx, orderID); err != nil {
		return err
	}
	b.fetch(ctx)
	return nil
}

func (b *Board) fetch(ctx context.Context) {
	active, err := b.store.ListActive(ctx)
	if err != nil {
		b.mu.Lock()
		if b.phase == PhaseLoading {
			b.phase = PhaseError
		}
		b.lastErr = err.Error()
		b.mu.Unlock()
		b.logger.Error("cannot fetch active orders", "error", err)
		return
	}

	orders := make([]DisplayOrder, 0, len(active))
	for _, o := range active {
		orders = append(orders, b.toDisplayOrder(o))
	}

	b.mu.Lock()
	b.phase = PhaseIdle
	b.orders = orders
	b.lastErr = ""
	b.updatedAt = time.Now()
	view := b.view()
	b.mu.Unlock()

	b.broadcast(view)
}

func (b *Board) toDisplayOrder(o orderstore.ActiveOrder) DisplayOrder {
	lines := make([]DisplayLine, 0, len(o.Items))
	for itemID, qty := range o.Items {
		name := UnknownItemName
		if b.names != nil {
			name = b.names.Name(itemID)
		}
		lines = append(lines, DisplayLine{ItemID: itemID, Name: name, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Name != lines[j].Name {
			return lines[i].Name < lines[j].Name
		}
		return lines[i].ItemID < lines[j].ItemID
	})

	return DisplayOrder{
		ID:            o.ID,
		TableNumber:   o.TableNumber,
		Lines:         lines,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
	}
}

// view builds a snapshot. Callers must hold at least a read lock.
func (b *Board) view() BoardView {
	orders := make([]DisplayOrder, len(b.orders))
	copy(orders, b.orders)
	return BoardView{
		Phase:     b.phase,
		Orders:    orders,
		LastError: b.lastErr,
		UpdatedAt: b.updatedAt,
	}
}

// Snapshot returns the current board state.
func (b *Board) Snapshot() BoardView {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.view()
}

// Subscribe registers a listener for board updates. Slow listeners miss
// intermediate snapshots rather than stalling the poll loop.
func (b *Board) Subscribe(subscriberID string) <-chan BoardView {
	ch := make(chan BoardView, 4)

	b.subMu.Lock()
	defer b.subMu.Unlock()
	b.subscribers[subscriberID] = ch
	return ch
}

func (b *Board) Unsubscribe(subscriberID string) {
	b.subMu.Lock()
	defer b.subMu.Unlock()

	if ch, found := b.subscribers[subscriberID]; found {
		close(ch)
		delete(b.subscribers, subscriberID)
	}
}

func (b *Board) broadcast(view BoardView) {
	b.subMu.Lock()
	defer b.subMu.Unlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- view:
		default:
		}
	}
}
