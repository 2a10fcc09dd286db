package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// GoChannelPublisher publishes every event on a single watermill topic.
type GoChannelPublisher struct {
	pubSub *gochannel.GoChannel
	topic  string
}

// NewGoChannelBus builds the in-process bus. Publish blocks until every
// subscriber has acked, so a publisher that exits right after publishing
// never drops the event.
func NewGoChannelBus(logger watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, logger)
}

func NewGoChannelPublisher(pubSub *gochannel.GoChannel, topic string) *GoChannelPublisher {
	return &GoChannelPublisher{pubSub: pubSub, topic: topic}
}

func (p *GoChannelPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(NewEnvelope(event))
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)
	if err := p.pubSub.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event to topic %s: %w", p.topic, err)
	}
	return nil
}
