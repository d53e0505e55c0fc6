package worker

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/rudovey/workpay/internal/domain"
	"github.com/rudovey/workpay/internal/stream"
)

// NotifyMentorEvents announces bindings and dissolutions to both sides
// of the mentorship.
func (wk *Worker) NotifyMentorEvents() {
	consumer, err := wk.KafkaStream.CreateConsumer(&stream.StreamConsumer{
		GroupId: mentorNotifyGroupID,
		Topic:   stream.MentorEventsTopic,
	})

	if err != nil {
		log.Fatalf("Error creating consumer: %v", err)
	}
	for {
		event := consumer.Poll(100) // Poll every 100ms
		switch e := event.(type) {
		case *kafka.Message:
			log.Printf("Mentor event received on %s: %s\n", e.TopicPartition, string(e.Value))

			var envelope eventEnvelope
			if err := json.Unmarshal(e.Value, &envelope); err != nil {
				log.Printf("Error decoding mentor event: %v", err)
				continue
			}

			var mentorEvent domain.MentorEvent
			if err := json.Unmarshal(envelope.Payload, &mentorEvent); err != nil {
				log.Printf("Error decoding mentor payload: %v", err)
				continue
			}

			switch envelope.Kind {
			case domain.EventMentorBound:
				wk.notifyWorker(mentorEvent.MenteeID, fmt.Sprintf(
					"You are now mentored by worker %d. Your share is %d%% while the mentorship lasts.",
					mentorEvent.MentorID, domain.MentoredWorkerPercent,
				))
				wk.notifyWorker(mentorEvent.MentorID, fmt.Sprintf(
					"Worker %d joined you as a mentee.", mentorEvent.MenteeID,
				))
			case domain.EventMentorUnbound:
				wk.notifyWorker(mentorEvent.MenteeID, fmt.Sprintf(
					"Your mentorship has ended. Your share is back to %d%%.",
					domain.DefaultWorkerPercent,
				))
				wk.notifyWorker(mentorEvent.MentorID, fmt.Sprintf(
					"Worker %d is no longer your mentee.", mentorEvent.MenteeID,
				))
			default:
				log.Printf("Unknown mentor event kind: %s", envelope.Kind)
			}
		case kafka.Error:
			log.Printf("Error: %v\n", e)
		default:
			// Handle other events if needed
		}
	}
}
