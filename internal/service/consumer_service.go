package service

import (
	"context"
	"encoding/json"

	"retro-board-be/internal/entity"
	"retro-board-be/internal/pkg/logger"
	"retro-board-be/internal/repository/specification"
	"retro-board-be/internal/repository/unitofwork"
	"retro-board-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IConsumerService drains the in-process event topic and writes an audit log line per event.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope events.Envelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Error("EventAudit", "Failed to unmarshal event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		msg.Ack() // redelivery cannot fix a bad payload
		return
	}

	details := map[string]interface{}{
		"message_id":  msg.UUID,
		"occurred_at": envelope.OccurredAt,
	}
	for k, v := range envelope.Data {
		details[k] = v
	}

	if envelope.Type == events.TypeActionItemsGenerated {
		if total, ok := cs.countActions(ctx, envelope.Data); ok {
			details["actions_total"] = total
		}
	}

	cs.logger.Info("EventAudit", envelope.Type, details)
	msg.Ack()
}

// countActions reports how many action notes the retrospective holds after the event.
func (cs *consumerService) countActions(ctx context.Context, data map[string]interface{}) (int64, bool) {
	raw, _ := data["retrospective_id"].(string)
	retrospectiveId, err := uuid.Parse(raw)
	if err != nil {
		return 0, false
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.RetrospectiveItemRepository().Count(ctx,
		specification.ByRetrospectiveID{RetrospectiveID: retrospectiveId},
		specification.ByCategory{Category: entity.CategoryActions},
	)
	if err != nil {
		cs.logger.Warn("EventAudit", "Failed to count action items", map[string]interface{}{
			"retrospective_id": raw,
			"error":            err.Error(),
		})
		return 0, false
	}
	return total, true
}
