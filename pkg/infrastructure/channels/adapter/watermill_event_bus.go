package adapter

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/mateusmacedo/go-busstation/pkg/application"
	"github.com/mateusmacedo/go-busstation/pkg/domain"
	watermillAdapter "github.com/mateusmacedo/go-busstation/pkg/infrastructure/watermill/adapter"
)

const (
	MetadataEventName  = "event_name"
	MetadataOccurredAt = "occurred_at"
)

// NewGoChannelPubSub cria o broker em memória usado entre os componentes do processo.
func NewGoChannelPubSub(logger application.AppLogger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{}, watermillAdapter.NewWatermillLoggerAdapter(logger))
}

// WatermillEventPublisher publica eventos de domínio em tópicos com o nome do evento.
type WatermillEventPublisher[D any] struct {
	publisher message.Publisher
	logger    application.AppLogger
}

func NewWatermillEventPublisher[D any](publisher message.Publisher, logger application.AppLogger) *WatermillEventPublisher[D] {
	return &WatermillEventPublisher[D]{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *WatermillEventPublisher[D]) Publish(ctx context.Context, event domain.Event[D]) error {
	eventName := event.EventName()

	payload, err := application.MarshalPayload(event.Payload())
	if err != nil {
		application.LogError(ctx, p.logger, "error marshalling event payload", err, map[string]interface{}{
			"event_name": eventName,
		})
		return err
	}

	msg := message.NewMessage(event.EventID(), payload)
	msg.Metadata.Set(MetadataEventName, eventName)
	msg.Metadata.Set(MetadataOccurredAt, event.OccurredAt().Format(time.RFC3339))
	msg.SetContext(ctx)

	if err := p.publisher.Publish(eventName, msg); err != nil {
		application.LogError(ctx, p.logger, "error publishing event", err, map[string]interface{}{
			"event_name": eventName,
		})
		return err
	}

	application.LogDebug(ctx, p.logger, "event published", map[string]interface{}{
		"event_name": eventName,
		"event_id":   event.EventID(),
	})
	return nil
}
