// Claim transitions are committed synchronously; the chat messages that
// announce them are not. This worker drains the claim events topic and
// messages whoever cares about each transition: admins hear about new
// claims, the claim's owner hears about pricing, rejection and payment.
package worker

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/rudovey/workpay/internal/domain"
	"github.com/rudovey/workpay/internal/stream"
)

type eventEnvelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

func (wk *Worker) NotifyClaimEvents() {
	consumer, err := wk.KafkaStream.CreateConsumer(&stream.StreamConsumer{
		GroupId: claimNotifyGroupID,
		Topic:   stream.ClaimEventsTopic,
	})

	if err != nil {
		log.Fatalf("Error creating consumer: %v", err)
	}
	for {
		event := consumer.Poll(100) // Poll every 100ms
		switch e := event.(type) {
		case *kafka.Message:
			log.Printf("Claim event received on %s: %s\n", e.TopicPartition, string(e.Value))

			var envelope eventEnvelope
			if err := json.Unmarshal(e.Value, &envelope); err != nil {
				log.Printf("Error decoding claim event: %v", err)
				continue
			}

			var claimEvent domain.ClaimEvent
			if err := json.Unmarshal(envelope.Payload, &claimEvent); err != nil {
				log.Printf("Error decoding claim payload: %v", err)
				continue
			}

			wk.dispatchClaimEvent(envelope.Kind, &claimEvent)
		case kafka.Error:
			log.Printf("Error: %v\n", e)
		default:
			// Handle other events if needed
		}
	}
}

func (wk *Worker) dispatchClaimEvent(kind string, event *domain.ClaimEvent) {
	switch kind {
	case domain.EventClaimSubmitted:
		wk.notifyAdmins(fmt.Sprintf(
			"New claim #%d from worker %d, direction %q. Waiting to be priced.",
			event.ClaimID, event.WorkerID, event.Direction,
		))
	case domain.EventClaimPriced:
		wk.notifyWorker(event.WorkerID, fmt.Sprintf(
			"Your claim #%d was priced at %s. Your share is %s (%d%%).",
			event.ClaimID,
			wk.Notifier.FormatAmount(event.Amount),
			wk.Notifier.FormatAmount(event.WorkerShare),
			event.Percent,
		))
	case domain.EventClaimRejected:
		wk.notifyWorker(event.WorkerID, fmt.Sprintf(
			"Your claim #%d was rejected: %s", event.ClaimID, event.RejectReason,
		))
	case domain.EventClaimPaid:
		wk.notifyWorker(event.WorkerID, fmt.Sprintf(
			"Claim #%d paid out. %s has been credited to your balance.",
			event.ClaimID,
			wk.Notifier.FormatAmount(event.WorkerShare),
		))
	default:
		log.Printf("Unknown claim event kind: %s", kind)
	}
}

func (wk *Worker) notifyWorker(workerID int64, text string) {
	worker, found, err := wk.DB.Worker().GetOne(workerID)
	if err != nil {
		log.Printf("Error loading worker %d for notification: %v", workerID, err)
		return
	}
	if !found || !worker.ChatID.Valid {
		return
	}

	if err := wk.Notifier.Send(worker.ChatID.Int64, text); err != nil {
		log.Printf("Error sending notification to worker %d: %v", workerID, err)
	}
}

func (wk *Worker) notifyAdmins(text string) {
	admins, err := wk.DB.Admin().GetAll()
	if err != nil {
		log.Printf("Error loading admins for notification: %v", err)
		return
	}

	for _, admin := range admins {
		wk.notifyWorker(admin.WorkerID, text)
	}
}
