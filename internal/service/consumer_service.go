package service

import (
	"context"
	"encoding/json"

	"grant-assist-be/internal/dto"
	"grant-assist-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	ConsumeProcessDocument(ctx context.Context) error
}

type consumerService struct {
	topicName       string
	pubSub          *gochannel.GoChannel
	documentService IDocumentService
	sysLogger       logger.ILogger
}

func NewConsumerService(
	topicName string,
	pubSub *gochannel.GoChannel,
	documentService IDocumentService,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		topicName:       topicName,
		pubSub:          pubSub,
		documentService: documentService,
		sysLogger:       sysLogger,
	}
}

// ConsumeProcessDocument drains the processing topic until ctx is cancelled.
// Every message is acked regardless of outcome; a failed document stays
// unprocessed and can be re-uploaded.
func (cs *consumerService) ConsumeProcessDocument(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
			msg.Ack()
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishProcessDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.sysLogger.Error("consumer", "Malformed processing message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	if err := cs.documentService.Process(ctx, payload.DocumentId); err != nil {
		cs.sysLogger.Error("consumer", "Document processing failed", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
			"error":       err.Error(),
		})
		return
	}
}
