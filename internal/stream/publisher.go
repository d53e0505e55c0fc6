package stream

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Publisher adapts the Kafka stream to the domain's event contract.
// Every publish is asynchronous and best-effort: a broker outage is
// logged and otherwise ignored, so no state transition ever waits on or
// rolls back over a notification.
type Publisher struct {
	stream *KafkaStream
	logger *slog.Logger
}

func NewPublisher(stream *KafkaStream, logger *slog.Logger) *Publisher {
	return &Publisher{
		stream: stream,
		logger: logger,
	}
}

// Envelope is the wire format on both event topics. Kind carries the
// transition name; Payload is the transition-specific body.
type Envelope struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}

func (p *Publisher) Publish(eventKind string, payload any) {
	go func() {
		message, err := json.Marshal(&Envelope{Kind: eventKind, Payload: payload})
		if err != nil {
			p.logger.Error("failed to encode event", "kind", eventKind, "error", err)
			return
		}

		topic := ClaimEventsTopic
		if strings.HasPrefix(eventKind, "mentor.") {
			topic = MentorEventsTopic
		}

		if err := p.stream.ProduceMessage(topic, string(message)); err != nil {
			p.logger.Error("failed to publish event", "kind", eventKind, "topic", topic, "error", err)
		}
	}()
}
