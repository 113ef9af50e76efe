package messaging

import (
	"context"

	"github.com/feral-file/ff-infusion/internal/domain"
)

// EventHandler is called for every event received from the broker.
// Returning an error asks for a redelivery.
type EventHandler func(ctx context.Context, event domain.Event) error

// Subscriber defines the interface for consuming engine events
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// Subscribe delivers events to the handler until ctx is cancelled
	Subscribe(ctx context.Context, handler EventHandler) error
	// Close closes the connection and cleans up resources
	Close()
}
