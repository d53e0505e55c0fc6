package worker

import (
	"context"

	"github.com/rudovey/workpay/internal/notifier"
	"github.com/rudovey/workpay/internal/repository"
	"github.com/rudovey/workpay/internal/stream"
)

// Workers consume the event topics and fan the transitions out as chat
// notifications. They run for the lifetime of the process; a dropped
// message costs a notification, never a state change.
type Worker struct {
	KafkaStream *stream.KafkaStream
	DB          repository.Database
	Notifier    *notifier.TelegramNotifier
	Ctx         context.Context
}

const (
	// claimNotifyGroupID is used for workers that turn claim lifecycle events into chat messages
	claimNotifyGroupID = "claim-notify-group"

	// mentorNotifyGroupID is used for workers that announce mentorship changes to both sides
	mentorNotifyGroupID = "mentor-notify-group"
)

// Our workers typically need access to the database and kafka event stream.
// Worker-specific dependencies can be passed as argument to the worker.
func New(wk *Worker) *Worker {
	return &Worker{
		KafkaStream: wk.KafkaStream,
		DB:          wk.DB,
		Notifier:    wk.Notifier,
		Ctx:         wk.Ctx,
	}
}
