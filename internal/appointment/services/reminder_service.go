package services

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/bitecare/clinic-backend/internal/wizard"
	"github.com/bitecare/clinic-backend/pkg/mailer"
	"github.com/bitecare/clinic-backend/pkg/utils"
)

// ReminderService mails patients with a confirmed appointment the day
// before their visit, and sweeps stale form drafts.
type ReminderService struct {
	DB     *sql.DB
	Mailer mailer.Mailer
	Drafts *wizard.SQLDraftStore
}

func NewReminderService(db *sql.DB, m mailer.Mailer, drafts *wizard.SQLDraftStore) *ReminderService {
	return &ReminderService{DB: db, Mailer: m, Drafts: drafts}
}

// StartCron schedules the reminder check every 15 minutes and the draft
// sweep once a day.
func (rs *ReminderService) StartCron() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	scheduler.Every(15).Minutes().Do(func() {
		if err := rs.SendReminders(context.Background()); err != nil {
			log.Printf("Error sending appointment reminders: %v", err)
		}
	})

	scheduler.Every(1).Day().At("03:00").Do(func() {
		n, err := rs.Drafts.ClearStale(7 * 24 * time.Hour)
		if err != nil {
			log.Printf("Error clearing stale drafts: %v", err)
			return
		}
		if n > 0 {
			log.Printf("Cleared %d stale form drafts", n)
		}
	})

	scheduler.StartAsync()
	return scheduler
}

// SendReminders mails every confirmed, un-reminded appointment scheduled
// for tomorrow.
func (rs *ReminderService) SendReminders(ctx context.Context) error {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	query := `
		SELECT a.ID_Appointment, a.Patient_Name, a.Branch,
		       DATE_FORMAT(a.Appointment_Date, '%Y-%m-%d'), a.Time_Slot, u.Email
		FROM Appointment a
		JOIN User u ON a.UID = u.UID
		WHERE a.Appointment_Date = ? AND a.Status = 'Confirmed'
		  AND a.Reminder_Sent = FALSE AND u.Is_Walk_In = FALSE
	`
	rows, err := rs.DB.QueryContext(ctx, query, tomorrow)
	if err != nil {
		return err
	}
	defer rows.Close()

	type reminder struct {
		id                                  int64
		name, branch, date, timeSlot, email string
	}
	var reminders []reminder
	for rows.Next() {
		var r reminder
		if err := rows.Scan(&r.id, &r.name, &r.branch, &r.date, &r.timeSlot, &r.email); err != nil {
			return err
		}
		reminders = append(reminders, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, r := range reminders {
		err := rs.Mailer.Send(ctx, mailer.TemplateAppointmentReminder, r.email, map[string]string{
			"patient_name": r.name,
			"branch":       r.branch,
			"date":         utils.FormatDisplayDate(r.date),
			"time_slot":    r.timeSlot,
		})
		if err != nil {
			log.Printf("reminder email for appointment %d failed: %v", r.id, err)
			continue
		}
		if _, err := rs.DB.ExecContext(ctx, "UPDATE Appointment SET Reminder_Sent = TRUE WHERE ID_Appointment = ?", r.id); err != nil {
			log.Printf("marking reminder for appointment %d failed: %v", r.id, err)
		}
	}
	return nil
}
