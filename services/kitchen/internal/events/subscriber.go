package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/tablesideclub/tableside/pkg/event"
	"github.com/tablesideclub/tableside/services/kitchen/internal/kitchen"
)

// OrderLifecycleSubscriber nudges the board when orders are created or
// completed elsewhere, so displays update ahead of the next poll. The poll
// loop remains the source of truth; missing an event only costs latency.
type OrderLifecycleSubscriber struct {
	subscriber events.Subscriber
	board      *kitchen.Board
	logger     apt.Logger
}

func NewOrderLifecycleSubscriber(
	subscriber events.Subscriber,
	board *kitchen.Board,
	logger apt.Logger,
) *OrderLifecycleSubscriber {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &OrderLifecycleSubscriber{
		subscriber: subscriber,
		board:      board,
		logger:     logger,
	}
}

func (s *OrderLifecycleSubscriber) Start(ctx context.Context) error {
	s.logger.Info("Starting OrderLifecycleSubscriber for topic: " + event.OrdersTopic)

	if err := s.subscriber.Subscribe(ctx, event.OrdersTopic, s.handleEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", event.OrdersTopic, err)
	}

	s.logger.Info("OrderLifecycleSubscriber started successfully")
	return nil
}

func (s *OrderLifecycleSubscriber) handleEvent(ctx context.Context, msg []byte) error {
	var header struct {
		EventType string `json:"event_type"`
	}
	if err := json.Unmarshal(msg, &header); err != nil {
		s.logger.Errorf("Failed to unmarshal event: %v", err)
		return nil
	}

	switch header.EventType {
	case event.EventOrderCreated, event.EventOrderCompleted:
		s.board.Refresh()
	default:
		s.logger.Infof("Unknown event type: %s", header.EventType)
	}

	return nil
}
