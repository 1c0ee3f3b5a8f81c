// Package stream publishes inquiry lifecycle events to a message stream.
package stream

import (
	"context"
	"time"
)

// Event types emitted by the inquiry pipeline.
const (
	EventInquiryReceived  = "inquiry.received"
	EventInquiryForwarded = "inquiry.forwarded"
	EventInquiryRejected  = "inquiry.rejected"
)

// Event is a single inquiry lifecycle event
type Event struct {
	Type        string    `json:"type"`
	InquiryID   string    `json:"inquiryId"`
	InquiryType string    `json:"inquiryType,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Stream is the event publishing interface
type Stream interface {
	// Publish publishes an event under a subject
	Publish(ctx context.Context, subject string, event Event) error

	// HealthCheck verifies the stream backend is reachable
	HealthCheck(ctx context.Context) error

	// Close releases the underlying connection
	Close() error
}
