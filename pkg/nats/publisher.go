package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"retro-board-be/pkg/events"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	StreamName    = "RETRO_EVENTS"
	SubjectPrefix = "retro"

	HeaderEventType = "Retro-Event-Type"

	// JetStream drops a repeated Nats-Msg-Id published within this window.
	duplicateWindow = 2 * time.Minute
)

// Subject returns the subject an event type is published on.
func Subject(eventType string) string {
	return fmt.Sprintf("%s.%s", SubjectPrefix, eventType)
}

// Publisher sends insight events to a JetStream stream.
type Publisher struct {
	nc *nats.Conn
	js jetstream.JetStream
}

var _ events.Publisher = (*Publisher)(nil)

func NewPublisher(url string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("retro-insight"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, StreamConfig())
	if err != nil {
		// the stream may be managed elsewhere; publishing still works if it exists
		log.Printf("Warn: Failed to ensure stream '%s': %v", StreamName, err)
	}

	return &Publisher{nc: nc, js: js}, nil
}

// StreamConfig describes the stream every insight event lands in.
func StreamConfig() jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:       StreamName,
		Subjects:   []string{SubjectPrefix + ".>"},
		Storage:    jetstream.FileStorage,
		Retention:  jetstream.LimitsPolicy,
		Duplicates: duplicateWindow,
	}
}

// NewMessage builds the JetStream message for an event.
func NewMessage(event events.Event) (*nats.Msg, error) {
	data, err := json.Marshal(events.NewEnvelope(event))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := nats.NewMsg(Subject(event.EventType()))
	msg.Data = data
	msg.Header.Set(HeaderEventType, event.EventType())
	msg.Header.Set(nats.MsgIdHdr, uuid.NewString())
	return msg, nil
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	msg, err := NewMessage(event)
	if err != nil {
		return err
	}

	if _, err := p.js.PublishMsg(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", msg.Subject, err)
	}
	return nil
}

// Close closes the NATS connection. Publishes are acknowledged synchronously,
// so nothing is in flight once Publish has returned.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
