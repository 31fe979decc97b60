package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	apptmodels "github.com/bitecare/clinic-backend/internal/appointment/models"
	apptservices "github.com/bitecare/clinic-backend/internal/appointment/services"
	authmodels "github.com/bitecare/clinic-backend/internal/auth/models"
	authservices "github.com/bitecare/clinic-backend/internal/auth/services"
	"github.com/bitecare/clinic-backend/internal/common/apperr"
	"github.com/bitecare/clinic-backend/internal/wizard"
	"github.com/bitecare/clinic-backend/pkg/blobstore"
	"github.com/bitecare/clinic-backend/pkg/mailer"
	"github.com/bitecare/clinic-backend/pkg/utils"
)

type PatientService struct {
	DB           *sql.DB
	Users        *authservices.AuthService
	Appointments *apptservices.AppointmentService
	Blobs        blobstore.Store
	Mailer       mailer.Mailer
}

func NewPatientService(db *sql.DB, users *authservices.AuthService, appointments *apptservices.AppointmentService, blobs blobstore.Store, m mailer.Mailer) *PatientService {
	return &PatientService{DB: db, Users: users, Appointments: appointments, Blobs: blobs, Mailer: m}
}

// profileColumns maps updatable form fields to their columns. Role, email,
// patient id, and the consent flags are deliberately not editable here.
var profileColumns = map[string]string{
	"firstName":      "First_Name",
	"middleName":     "Middle_Name",
	"lastName":       "Last_Name",
	"birthDate":      "Birth_Date",
	"sex":            "Sex",
	"address":        "Address",
	"city":           "City",
	"province":       "Province",
	"zipCode":        "Zip_Code",
	"phone":          "Phone",
	"emergencyName":  "Emergency_Name",
	"emergencyPhone": "Emergency_Phone",
}

// UpdateProfile shallow-merges the submitted fields into the user row.
// Unknown fields are ignored; nothing else on the record is touched.
func (s *PatientService) UpdateProfile(ctx context.Context, uid string, fields map[string]string) error {
	var sets []string
	var args []interface{}
	for field, value := range fields {
		col, ok := profileColumns[field]
		if !ok {
			continue
		}
		sets = append(sets, col+" = ?")
		args = append(args, value)
	}
	if len(sets) == 0 {
		return apperr.New(apperr.CodeInvalidArgument)
	}
	args = append(args, uid)

	res, err := s.DB.ExecContext(ctx, "UPDATE User SET "+strings.Join(sets, ", ")+" WHERE UID = ?", args...)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeUserNotFound)
	}
	s.Users.PublishSnapshot()
	return nil
}

// UploadPhoto stores the profile image under the record's namespace and
// saves the resulting path on the user row.
func (s *PatientService) UploadPhoto(ctx context.Context, uid, filename string, r io.Reader, size int64, progress blobstore.ProgressFunc) (string, error) {
	path := fmt.Sprintf("patients/%s/%d_%s", uid, time.Now().Unix(), filename)
	if err := s.Blobs.Upload(ctx, path, r, size, progress); err != nil {
		if ctx.Err() != nil {
			return "", apperr.Wrap(apperr.CodeStorageCanceled, err)
		}
		return "", apperr.Wrap(apperr.CodeInternal, err)
	}
	if _, err := s.DB.ExecContext(ctx, "UPDATE User SET Photo_Path = ? WHERE UID = ?", path, uid); err != nil {
		return "", apperr.Wrap(apperr.CodeInternal, err)
	}
	url, err := s.Blobs.DownloadURL(path)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeInternal, err)
	}
	s.Users.PublishSnapshot()
	return url, nil
}

// List returns all patient records for staff views. Contact details are
// masked: the list screen only needs enough to tell records apart.
func (s *PatientService) List() ([]authmodels.User, error) {
	snapshot, err := s.Users.Snapshot()
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}
	var patients []authmodels.User
	for _, u := range snapshot {
		if u.Role == "patient" {
			patients = append(patients, maskContact(u))
		}
	}
	return patients, nil
}

func maskContact(u authmodels.User) authmodels.User {
	u.Phone = utils.MaskPhone(u.Phone)
	u.Email = utils.MaskEmail(u.Email)
	u.EmergencyPhone = utils.MaskPhone(u.EmergencyPhone)
	return u
}

// RegisterWalkIn is the walk-in intake wizard's submit target: one patient
// record with a synthetic walkin_ uid, a generated temp password, and the
// first appointment booked at the desk.
func (s *PatientService) RegisterWalkIn(ctx context.Context, f wizard.Form) (map[string]string, error) {
	now := time.Now()
	uid := utils.GenerateWalkInUID(now)
	patientID := utils.GeneratePatientID(now)
	tempPassword := utils.GenerateTempPassword(f["lastName"], f["birthDate"])

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}

	var email interface{}
	if f["email"] != "" {
		email = f["email"]
	}

	query := `
		INSERT INTO User
			(UID, Email, Password, Role, First_Name, Middle_Name, Last_Name, Birth_Date, Sex,
			 Address, City, Province, Zip_Code, Phone, Emergency_Name, Emergency_Phone,
			 Patient_ID, Privacy_Consent, Disclosure_Consent, Email_Verified, Is_Walk_In, Created_At)
		VALUES (?, ?, ?, 'patient', ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, TRUE, FALSE, FALSE, TRUE, ?)
	`
	_, err = s.DB.ExecContext(ctx, query,
		uid, email, string(hash),
		f["firstName"], f["middleName"], f["lastName"], f["birthDate"], f["sex"],
		f["address"], f["city"], f["province"], f["zipCode"], f["phone"],
		f["emergencyName"], f["emergencyPhone"],
		patientID, now,
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}

	name := utils.JoinName(f["firstName"], f["middleName"], f["lastName"])
	appointment := apptmodels.Appointment{
		UID:         uid,
		PatientName: name,
		Reason:      f["appointmentReason"],
		Branch:      f["branch"],
		Date:        now.Format("2006-01-02"),
		TimeSlot:    f["timeSlot"],
		Status:      apptmodels.StatusConfirmed,
		Channel:     apptmodels.ChannelWalkIn,
	}
	if appointment.Reason == apptmodels.ReasonFollowUp {
		appointment.FollowUp = &apptmodels.FollowUpDetails{
			PrimaryReason:     f["primaryReason"],
			NewConditionNotes: f["newConditionNotes"],
		}
	}

	appointmentID, err := s.Appointments.Create(ctx, appointment)
	if err != nil {
		return nil, err
	}

	if f["email"] != "" {
		err := s.Mailer.Send(ctx, mailer.TemplateWalkInCredentials, f["email"], map[string]string{
			"patient_name":  name,
			"patient_id":    patientID,
			"temp_password": tempPassword,
		})
		if err != nil {
			log.Printf("walk-in credentials email failed: %v", err)
		}
	}

	s.Users.PublishSnapshot()
	return map[string]string{
		"uid":           uid,
		"patientId":     patientID,
		"appointmentId": fmt.Sprintf("%d", appointmentID),
	}, nil
}
