package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSStream implements the Stream interface using NATS JetStream
type NATSStream struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewNATS connects to NATS and ensures the events stream exists.
func NewNATS(url string) (*NATSStream, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	s := &NATSStream{
		conn: conn,
		js:   js,
	}

	if err := s.initStreams(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize streams: %w", err)
	}

	return s, nil
}

// initStreams creates the inquiry events stream if it does not exist
func (s *NATSStream) initStreams() error {
	config := nats.StreamConfig{
		Name:     "HELIOS_EVENTS",
		Subjects: []string{"helios.inquiries.*"},
		Storage:  nats.FileStorage,
		MaxAge:   24 * time.Hour,
	}

	_, err := s.js.StreamInfo(config.Name)
	if err != nil {
		// Stream doesn't exist, create it
		_, err = s.js.AddStream(&config)
		if err != nil {
			return fmt.Errorf("failed to create stream %s: %w", config.Name, err)
		}
	}

	return nil
}

// Publish publishes an event to a subject
func (s *NATSStream) Publish(ctx context.Context, subject string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = s.js.Publish(subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// HealthCheck verifies the NATS connection and JetStream availability
func (s *NATSStream) HealthCheck(ctx context.Context) error {
	if s.conn.Status() != nats.CONNECTED {
		return fmt.Errorf("NATS connection not healthy")
	}

	_, err := s.js.AccountInfo()
	if err != nil {
		return fmt.Errorf("JetStream not available: %w", err)
	}

	return nil
}

// Close closes the NATS connection
func (s *NATSStream) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	return nil
}
