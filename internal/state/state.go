package state

import (
	"context"

	"helios/internal/catalog"
	"helios/internal/cms"
	"helios/internal/stream"
	"helios/internal/webhook"
)

// Notifier delivers inquiry notifications to a chat channel
type Notifier interface {
	Notify(ctx context.Context, payload webhook.Payload) error
}

// State represents the application state with all dependencies
type State struct {
	Catalog  *catalog.Catalog
	CMS      *cms.Client
	Notifier Notifier
	Stream   stream.Stream
}

// New creates a new State instance with the built-in catalog
func New() *State {
	return &State{
		Catalog: catalog.Default(),
	}
}

// Close closes all connections and cleans up resources
func (s *State) Close() error {
	var lastErr error

	// Close stream
	if s.Stream != nil {
		if err := s.Stream.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
