// Package background runs periodic maintenance jobs.
package background

import (
	"context"
	"log"
	"time"

	"schedulerapi/internal/repositories"

	"github.com/go-co-op/gocron/v2"
)

// retentionWindow is how long cancelled appointments are kept before the
// nightly purge removes them.
const retentionWindow = 90 * 24 * time.Hour

// JobScheduler manages background jobs.
type JobScheduler struct {
	scheduler       gocron.Scheduler
	appointmentRepo repositories.AppointmentRepository
}

func NewJobScheduler(appointmentRepo repositories.AppointmentRepository) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:       scheduler,
		appointmentRepo: appointmentRepo,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.purgeCancelledAppointments),
		gocron.WithName("cancelled-appointment-retention"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return js, nil
}

// Start starts the job scheduler.
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler.
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) purgeCancelledAppointments() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-retentionWindow)
	removed, err := js.appointmentRepo.DeleteCancelledBefore(ctx, cutoff)
	if err != nil {
		log.Printf("Failed to purge cancelled appointments: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Purged %d cancelled appointments older than %s", removed, cutoff.Format(time.RFC3339))
	}
}
