package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tnqbao/gau-storage-gateway/entity"
	"github.com/tnqbao/gau-storage-gateway/infra"
	"github.com/tnqbao/gau-storage-gateway/infra/produce"
)

// IncidentRecorder persists one incident row. Satisfied by the incident
// repository; narrowed to an interface so message handling is testable without
// a broker or a database.
type IncidentRecorder interface {
	Create(ctx context.Context, incident *entity.Incident) error
}

// IncidentConsumer drains the incident queue and records each report. It only
// observes: nothing here touches object rows or blobs, so a recorded incident
// never mutates the state it describes.
type IncidentConsumer struct {
	channel  *amqp.Channel
	infra    *infra.Infra
	recorder IncidentRecorder
}

func NewIncidentConsumer(channel *amqp.Channel, infra *infra.Infra, recorder IncidentRecorder) *IncidentConsumer {
	return &IncidentConsumer{
		channel:  channel,
		infra:    infra,
		recorder: recorder,
	}
}

func (c *IncidentConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.IncidentQueue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register incident consumer: %w", err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Incident Consumer] Started listening on queue: %s", produce.IncidentQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.infra.Logger.InfoWithContextf(ctx, "[Incident Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.infra.Logger.WarningWithContextf(ctx, "[Incident Consumer] Channel closed")
					return
				}
				c.handleIncident(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *IncidentConsumer) handleIncident(ctx context.Context, msg amqp.Delivery) {
	incident, err := DecodeIncident(msg.Body)
	if err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Incident Consumer] Failed to unmarshal message: %v", err)
		_ = msg.Nack(false, false)
		return
	}

	maxRetries := 3
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = c.recorder.Create(ctx, incident)
		if err == nil {
			c.infra.Logger.InfoWithContextf(ctx, "[Incident Consumer] Recorded %s incident for key: %s", incident.Kind, incident.Key)
			_ = msg.Ack(false)
			return
		}

		c.infra.Logger.ErrorWithContextf(ctx, err, "[Incident Consumer] Attempt %d/%d failed: %v", attempt, maxRetries, err)

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				c.infra.Logger.WarningWithContextf(ctx, "[Incident Consumer] Shutdown during retry, requeueing message")
				_ = msg.Nack(false, true)
				return
			case <-time.After(time.Duration(attempt) * 2 * time.Second):
			}
		}
	}

	c.infra.Logger.ErrorWithContextf(ctx, err, "[Incident Consumer] Failed after %d attempts, requeueing message", maxRetries)
	_ = msg.Nack(false, true)
}

// DecodeIncident turns one queue payload into an incident row.
func DecodeIncident(body []byte) (*entity.Incident, error) {
	var payload produce.IncidentMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.Kind == "" {
		return nil, fmt.Errorf("incident message has no kind")
	}

	return &entity.Incident{
		Kind:       payload.Kind,
		Bucket:     payload.Bucket,
		ObjectName: payload.ObjectName,
		Key:        payload.Key,
		Detail:     payload.Detail,
	}, nil
}
