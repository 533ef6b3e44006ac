package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/startlistclub/flightjournal/internal/domain"
)

const (
	SubjectExerciseApplied = "training.exercise.applied"
)

// NATSPublisher publishes training events to a JetStream stream
type NATSPublisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewNATSPublisher connects and creates the stream if it does not exist
func NewNATSPublisher(url, stream string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("flightjournal"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to get JetStream context: %w", err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     stream,
		Subjects: []string{"training.>"},
		Storage:  nats.FileStorage,
		MaxAge:   30 * 24 * time.Hour,
	})
	if err != nil && !strings.Contains(err.Error(), "stream name already in use") {
		nc.Close()
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}

	return &NATSPublisher{
		conn: nc,
		js:   js,
	}, nil
}

// PublishExerciseApplied publishes the event with its id as dedup key
func (p *NATSPublisher) PublishExerciseApplied(ctx context.Context, event *domain.ExerciseAppliedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = p.js.Publish(SubjectExerciseApplied, data,
		nats.Context(ctx),
		nats.MsgId(event.AppliedExerciseID),
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close drains the connection
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		if err := p.conn.Drain(); err != nil {
			log.Printf("Error draining NATS connection: %v", err)
		}
	}
}

// NoopPublisher drops events. Used while NATS_URL is unset.
type NoopPublisher struct{}

func (NoopPublisher) PublishExerciseApplied(ctx context.Context, event *domain.ExerciseAppliedEvent) error {
	return nil
}
