package service

import (
	"context"
	"encoding/json"

	"ai-claims-be/internal/dto"
	"ai-claims-be/internal/entity"
	"ai-claims-be/internal/pkg/logger"
	"ai-claims-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub              *gochannel.GoChannel
	topicName           string
	ingestionRepository contract.IngestionRepository
	logger              logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	ingestionRepository contract.IngestionRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:              pubSub,
		topicName:           topicName,
		ingestionRepository: ingestionRepository,
		logger:              log,
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
	var payload dto.PublishDocumentIngestedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal ingestion event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("consumer", "Document ingested", map[string]interface{}{
		"source": payload.Source,
		"chunks": payload.Chunks,
	})

	// The audit trail needs a database; without one we only log.
	if cs.ingestionRepository == nil {
		msg.Ack()
		return
	}

	record := &entity.IngestionRecord{
		Source: payload.Source,
		Chunks: payload.Chunks,
	}
	if err := cs.ingestionRepository.Create(ctx, record); err != nil {
		cs.logger.Error("consumer", "Failed to record ingestion", map[string]interface{}{
			"source": payload.Source,
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
