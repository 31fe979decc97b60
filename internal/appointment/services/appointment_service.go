package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bitecare/clinic-backend/internal/appointment/models"
	"github.com/bitecare/clinic-backend/internal/common/apperr"
	"github.com/bitecare/clinic-backend/internal/common/feed"
	"github.com/bitecare/clinic-backend/internal/wizard"
	"github.com/bitecare/clinic-backend/pkg/mailer"
	"github.com/bitecare/clinic-backend/pkg/utils"
)

type AppointmentService struct {
	DB     *sql.DB
	Mailer mailer.Mailer
	Feed   *feed.Feed[[]models.Appointment]
}

func NewAppointmentService(db *sql.DB, m mailer.Mailer, f *feed.Feed[[]models.Appointment]) *AppointmentService {
	return &AppointmentService{DB: db, Mailer: m, Feed: f}
}

const appointmentColumns = `
	ID_Appointment, UID, Patient_Name, Reason, Branch,
	DATE_FORMAT(Appointment_Date, '%Y-%m-%d'), Time_Slot, Status, Channel,
	Incident_Details, FollowUp_Details, Reminder_Sent, Created_At`

func scanAppointment(row interface{ Scan(...interface{}) error }) (*models.Appointment, error) {
	var a models.Appointment
	var incident, followUp []byte
	err := row.Scan(
		&a.ID, &a.UID, &a.PatientName, &a.Reason, &a.Branch,
		&a.Date, &a.TimeSlot, &a.Status, &a.Channel,
		&incident, &followUp, &a.ReminderSent, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(incident) > 0 {
		a.Incident = &models.IncidentDetails{}
		if err := json.Unmarshal(incident, a.Incident); err != nil {
			return nil, err
		}
	}
	if len(followUp) > 0 {
		a.FollowUp = &models.FollowUpDetails{}
		if err := json.Unmarshal(followUp, a.FollowUp); err != nil {
			return nil, err
		}
	}
	return &a, nil
}

// Snapshot reads the full appointment collection for the dashboard feed.
func (s *AppointmentService) Snapshot() ([]models.Appointment, error) {
	rows, err := s.DB.Query("SELECT " + appointmentColumns + " FROM Appointment ORDER BY Created_At DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// PublishSnapshot pushes the current collection to dashboard subscribers.
func (s *AppointmentService) PublishSnapshot() {
	if s.Feed == nil {
		return
	}
	snapshot, err := s.Snapshot()
	if err != nil {
		log.Printf("appointment snapshot failed: %v", err)
		s.Feed.Fail(err)
		return
	}
	s.Feed.Publish(snapshot)
}

// BookFor returns the booking wizard's submit target for one patient.
// Channel distinguishes online bookings from staff walk-in intake.
func (s *AppointmentService) BookFor(uid, patientName, email, channel string) wizard.SubmitFunc {
	return func(ctx context.Context, f wizard.Form) (map[string]string, error) {
		a := models.Appointment{
			UID:         uid,
			PatientName: patientName,
			Reason:      f["appointmentReason"],
			Branch:      f["branch"],
			Date:        f["date"],
			TimeSlot:    f["timeSlot"],
			Status:      models.StatusPending,
			Channel:     channel,
		}
		switch a.Reason {
		case models.ReasonNewIncident:
			a.Incident = &models.IncidentDetails{
				Exposures:    splitExposures(f["exposures"]),
				AnimalType:   f["animalType"],
				AnimalStatus: f["animalStatus"],
				HasAllergies: f["hasAllergies"] == "true",
				AllergyInfo:  f["allergyInfo"],
			}
		case models.ReasonFollowUp:
			a.FollowUp = &models.FollowUpDetails{
				PrimaryReason:     f["primaryReason"],
				NewConditionNotes: f["newConditionNotes"],
			}
		}

		id, err := s.insert(ctx, a)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, err)
		}

		if email != "" {
			err := s.Mailer.Send(ctx, mailer.TemplateAppointmentBooked, email, map[string]string{
				"patient_name": patientName,
				"branch":       a.Branch,
				"date":         utils.FormatDisplayDate(a.Date),
				"time_slot":    a.TimeSlot,
			})
			if err != nil {
				log.Printf("booking confirmation email failed: %v", err)
			}
		}

		s.PublishSnapshot()
		return map[string]string{"appointmentId": fmt.Sprintf("%d", id)}, nil
	}
}

// Create inserts an already-built appointment (walk-in intake path) and
// republishes the snapshot.
func (s *AppointmentService) Create(ctx context.Context, a models.Appointment) (int64, error) {
	id, err := s.insert(ctx, a)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInternal, err)
	}
	s.PublishSnapshot()
	return id, nil
}

func splitExposures(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (s *AppointmentService) insert(ctx context.Context, a models.Appointment) (int64, error) {
	var incident, followUp interface{}
	if a.Incident != nil {
		raw, err := json.Marshal(a.Incident)
		if err != nil {
			return 0, err
		}
		incident = raw
	}
	if a.FollowUp != nil {
		raw, err := json.Marshal(a.FollowUp)
		if err != nil {
			return 0, err
		}
		followUp = raw
	}
	query := `
		INSERT INTO Appointment
			(UID, Patient_Name, Reason, Branch, Appointment_Date, Time_Slot,
			 Status, Channel, Incident_Details, FollowUp_Details, Reminder_Sent, Created_At)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, FALSE, ?)
	`
	res, err := s.DB.ExecContext(ctx, query,
		a.UID, a.PatientName, a.Reason, a.Branch, a.Date, a.TimeSlot,
		string(a.Status), a.Channel, incident, followUp, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListByUser returns a patient's own appointments, newest first.
func (s *AppointmentService) ListByUser(uid string) ([]models.Appointment, error) {
	rows, err := s.DB.Query("SELECT "+appointmentColumns+" FROM Appointment WHERE UID = ? ORDER BY Created_At DESC", uid)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}
	defer rows.Close()

	var out []models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// UpdateStatus is the staff transition: parse (normalizing legacy
// spellings), write, republish.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id int64, rawStatus string) (models.Status, error) {
	status, err := models.ParseStatus(rawStatus)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeInvalidArgument, err)
	}
	res, err := s.DB.ExecContext(ctx, "UPDATE Appointment SET Status = ? WHERE ID_Appointment = ?", string(status), id)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeInternal, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return "", apperr.New(apperr.CodeInvalidArgument)
	}
	s.PublishSnapshot()
	return status, nil
}

// Cancel lets a patient cancel their own pending or confirmed appointment.
func (s *AppointmentService) Cancel(ctx context.Context, uid string, id int64) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE Appointment SET Status = ? WHERE ID_Appointment = ? AND UID = ? AND Status IN (?, ?)",
		string(models.StatusCancelled), id, uid, string(models.StatusPending), string(models.StatusConfirmed))
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodePermissionDenied)
	}
	s.PublishSnapshot()
	return nil
}
