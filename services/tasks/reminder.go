package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"glowdesk/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// ReminderLead is how far ahead of the appointment the reminder fires.
const ReminderLead = time.Hour

// NewReminderTask builds the asynq task for an appointment reminder.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Scheduler enqueues reminder tasks on the shared asynq client.
type Scheduler struct {
	client *asynq.Client
}

// NewScheduler wraps an asynq client.
func NewScheduler(client *asynq.Client) *Scheduler {
	return &Scheduler{client: client}
}

// ScheduleForAppointment queues a reminder one hour before the appointment.
// An appointment starting sooner than that gets the reminder immediately.
func (s *Scheduler) ScheduleForAppointment(appointment *models.Appointment, phone string) error {
	payload := models.ReminderPayload{
		AppointmentID: appointment.ID,
		TenantID:      appointment.TenantID,
		Phone:         phone,
	}
	task, opts, err := NewReminderTask(payload, appointment.ScheduledAt.Add(-ReminderLead))
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder for appointment %s: %w", appointment.ID, err)
	}
	return nil
}
