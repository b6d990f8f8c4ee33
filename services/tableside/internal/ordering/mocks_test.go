package ordering

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockSubmitter counts submissions and can be told to fail.
type MockSubmitter struct {
	mu          sync.Mutex
	submissions []OrderSubmission

	SubmitFunc func(ctx context.Context, sub OrderSubmission) (string, error)
}

func NewMockSubmitter() *MockSubmitter {
	return &MockSubmitter{}
}

func (m *MockSubmitter) Submit(ctx context.Context, sub OrderSubmission) (string, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, sub)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions = append(m.submissions, sub)
	return uuid.New().String(), nil
}

func (m *MockSubmitter) Submissions() []OrderSubmission {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]OrderSubmission, len(m.submissions))
	copy(out, m.submissions)
	return out
}

func (m *MockSubmitter) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.submissions)
}

// FailingSubmitter always refuses the submission.
type FailingSubmitter struct{}

func (f *FailingSubmitter) Submit(ctx context.Context, sub OrderSubmission) (string, error) {
	return "", fmt.Errorf("order service unavailable")
}

func testPrices() map[string]int64 {
	return map[string]int64{
		"item-chai":  49,
		"item-fries": 90,
		"item-pizza": 250,
	}
}

func testPayee() PayeeDetails {
	return PayeeDetails{VPA: "backyards@upi", Name: "Backyards", Currency: "INR"}
}

func newTestCheckout(submitter OrderSubmitter) *Checkout {
	co := NewCheckout("4", testPrices(), submitter, testPayee())
	co.SetSettleDelay(0)
	return co
}
