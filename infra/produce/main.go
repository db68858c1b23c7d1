package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	IncidentService *IncidentService
}

var produceInstance *Produce

func InitProduce(channel *amqp.Channel) *Produce {
	if produceInstance != nil {
		return produceInstance
	}

	incidentService := InitIncidentService(channel)
	if incidentService == nil {
		panic("Failed to initialize Incident service")
	}

	produceInstance = &Produce{
		IncidentService: incidentService,
	}

	return produceInstance
}

func GetProduce() *Produce {
	if produceInstance == nil {
		panic("Produce not initialized. Call InitProduce() first.")
	}
	return produceInstance
}
