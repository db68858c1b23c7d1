package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	IncidentQueue      = "gateway.incident"
	IncidentExchange   = "gateway.exchange"
	IncidentRoutingKey = "gateway.incident"
)

// IncidentMessage reports a dual-write disagreement between the metadata store
// and the blob store. Consumers record these; nothing downstream mutates
// object state in response.
type IncidentMessage struct {
	Kind       string `json:"kind"`        // "missing_blob" or "orphan_blob"
	Bucket     string `json:"bucket"`      // bucket name as requested
	ObjectName string `json:"object_name"` // object name within the bucket
	Key        string `json:"key"`         // derived blob key
	Detail     string `json:"detail"`      // human-readable cause
	Timestamp  int64  `json:"timestamp"`
}

// IncidentService handles publishing incident messages
type IncidentService struct {
	channel *amqp.Channel
}

func InitIncidentService(channel *amqp.Channel) *IncidentService {
	service := &IncidentService{
		channel: channel,
	}

	// Declare exchange
	err := channel.ExchangeDeclare(
		IncidentExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Incident exchange: " + err.Error())
	}

	// Declare queue
	_, err = channel.QueueDeclare(
		IncidentQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare Incident queue: " + err.Error())
	}

	// Bind queue to exchange
	err = channel.QueueBind(
		IncidentQueue,
		IncidentRoutingKey,
		IncidentExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind Incident queue: " + err.Error())
	}

	return service
}

// PublishIncident publishes an incident message to the queue
func (s *IncidentService) PublishIncident(ctx context.Context, msg IncidentMessage) error {
	msg.Timestamp = time.Now().Unix()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		IncidentExchange,
		IncidentRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
}
