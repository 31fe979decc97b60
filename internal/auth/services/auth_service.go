package services

import (
	"context"
	"database/sql"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bitecare/clinic-backend/internal/auth/models"
	"github.com/bitecare/clinic-backend/internal/common/apperr"
	"github.com/bitecare/clinic-backend/internal/common/feed"
	"github.com/bitecare/clinic-backend/internal/validation"
	"github.com/bitecare/clinic-backend/internal/wizard"
	"github.com/bitecare/clinic-backend/pkg/mailer"
	"github.com/bitecare/clinic-backend/pkg/utils"
)

// recentLoginWindow bounds how old a session may be before password changes
// demand a fresh sign-in.
const recentLoginWindow = 5 * time.Minute

const userColumns = `
	UID, COALESCE(Email, ''), COALESCE(Password, ''), Role,
	First_Name, COALESCE(Middle_Name, ''), Last_Name,
	DATE_FORMAT(Birth_Date, '%Y-%m-%d'), Sex,
	Address, City, Province, Zip_Code, Phone,
	Emergency_Name, Emergency_Phone,
	Patient_ID, Privacy_Consent, Disclosure_Consent,
	COALESCE(Photo_Path, ''), Email_Verified, Is_Walk_In,
	Last_Login_At, Created_At`

type AuthService struct {
	DB       *sql.DB
	Mailer   mailer.Mailer
	BaseURL  string
	UserFeed *feed.Feed[[]models.User]
}

func NewAuthService(db *sql.DB, m mailer.Mailer, baseURL string, userFeed *feed.Feed[[]models.User]) *AuthService {
	return &AuthService{DB: db, Mailer: m, BaseURL: baseURL, UserFeed: userFeed}
}

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	var lastLogin sql.NullTime
	err := row.Scan(
		&u.UID, &u.Email, &u.PasswordHash, &u.Role,
		&u.FirstName, &u.MiddleName, &u.LastName,
		&u.BirthDate, &u.Sex,
		&u.Address, &u.City, &u.Province, &u.ZipCode, &u.Phone,
		&u.EmergencyName, &u.EmergencyPhone,
		&u.PatientID, &u.PrivacyConsent, &u.DisclosureConsent,
		&u.PhotoPath, &u.EmailVerified, &u.IsWalkIn,
		&lastLogin, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginAt = &t
	}
	return &u, nil
}

// GetUser loads one account record; the immutable session snapshot handed
// to handlers comes from here.
func (s *AuthService) GetUser(uid string) (*models.User, error) {
	row := s.DB.QueryRow("SELECT "+userColumns+" FROM User WHERE UID = ?", uid)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.CodeUserNotFound)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}
	return u, nil
}

// Snapshot reads the full user collection for the dashboard feed.
func (s *AuthService) Snapshot() ([]models.User, error) {
	rows, err := s.DB.Query("SELECT " + userColumns + " FROM User ORDER BY Created_At DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// PublishSnapshot pushes the current user collection to dashboard
// subscribers. Every user write funnels through this.
func (s *AuthService) PublishSnapshot() {
	if s.UserFeed == nil {
		return
	}
	snapshot, err := s.Snapshot()
	if err != nil {
		log.Printf("user snapshot failed: %v", err)
		s.UserFeed.Fail(err)
		return
	}
	s.UserFeed.Publish(snapshot)
}

// EmailExists is the wizard's pre-submission existence check.
func (s *AuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	var uid string
	err := s.DB.QueryRowContext(ctx, "SELECT UID FROM User WHERE Email = ?", email).Scan(&uid)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Register is the registration wizard's submit target: one insert, a
// verification email, and the generated identifiers for the finish screen.
func (s *AuthService) Register(ctx context.Context, f wizard.Form) (map[string]string, error) {
	if !validation.CheckPasswordStrength(f["password"]).OK() {
		return nil, apperr.New(apperr.CodeWeakPassword)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(f["password"]), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}

	now := time.Now()
	uid := utils.GenerateUID(now)
	patientID := utils.GeneratePatientID(now)

	query := `
		INSERT INTO User
			(UID, Email, Password, Role, First_Name, Middle_Name, Last_Name, Birth_Date, Sex,
			 Address, City, Province, Zip_Code, Phone, Emergency_Name, Emergency_Phone,
			 Patient_ID, Privacy_Consent, Disclosure_Consent, Email_Verified, Is_Walk_In, Created_At)
		VALUES (?, ?, ?, 'patient', ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, FALSE, FALSE, ?)
	`
	_, err = s.DB.ExecContext(ctx, query,
		uid, f["email"], string(hash),
		f["firstName"], f["middleName"], f["lastName"], f["birthDate"], f["sex"],
		f["address"], f["city"], f["province"], f["zipCode"], f["phone"],
		f["emergencyName"], f["emergencyPhone"],
		patientID, f["privacyConsent"] == "true", f["disclosureConsent"] == "true",
		now,
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}

	if err := s.sendVerificationEmail(ctx, uid, f["email"], f["firstName"]); err != nil {
		// The account exists; the user can re-request the email.
		log.Printf("verification email for %s failed: %v", uid, err)
	}

	s.PublishSnapshot()
	return map[string]string{"uid": uid, "patientId": patientID}, nil
}

func (s *AuthService) sendVerificationEmail(ctx context.Context, uid, email, firstName string) error {
	token, err := utils.GenerateLinkToken(uid, utils.LinkPurposeVerifyEmail, 24*time.Hour)
	if err != nil {
		return err
	}
	return s.Mailer.Send(ctx, mailer.TemplateVerifyEmail, email, map[string]string{
		"first_name": firstName,
		"verify_url": s.BaseURL + "/verify-email?token=" + token,
	})
}

// ResendVerification re-issues the verification email for a signed-in user.
func (s *AuthService) ResendVerification(ctx context.Context, uid string) error {
	u, err := s.GetUser(uid)
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return nil
	}
	return s.sendVerificationEmail(ctx, u.UID, u.Email, u.FirstName)
}

// Authenticate checks credentials and stamps Last_Login_At.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT "+userColumns+" FROM User WHERE Email = ?", email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.CodeUserNotFound)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}
	if u.IsWalkIn && u.PasswordHash == "" {
		return nil, apperr.New(apperr.CodeWrongPassword)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.CodeWrongPassword)
	}

	now := time.Now()
	if _, err := s.DB.ExecContext(ctx, "UPDATE User SET Last_Login_At = ? WHERE UID = ?", now, u.UID); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}
	u.LastLoginAt = &now
	return u, nil
}

// VerifyEmail consumes a verification link token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	uid, err := utils.ValidateLinkToken(token, utils.LinkPurposeVerifyEmail)
	if err != nil {
		return apperr.Wrap(apperr.CodeInvalidArgument, err)
	}
	res, err := s.DB.ExecContext(ctx, "UPDATE User SET Email_Verified = TRUE WHERE UID = ?", uid)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeUserNotFound)
	}
	return nil
}

// RequestPasswordReset emails a reset link. A missing account is reported
// as user-not-found so the form can show the fixed message.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	var uid, firstName string
	err := s.DB.QueryRowContext(ctx, "SELECT UID, First_Name FROM User WHERE Email = ?", email).Scan(&uid, &firstName)
	if err == sql.ErrNoRows {
		return apperr.New(apperr.CodeUserNotFound)
	}
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err)
	}
	token, err := utils.GenerateLinkToken(uid, utils.LinkPurposeResetPassword, time.Hour)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err)
	}
	return s.Mailer.Send(ctx, mailer.TemplateResetPassword, email, map[string]string{
		"first_name": firstName,
		"reset_url":  s.BaseURL + "/reset-password?token=" + token,
	})
}

// ResetPassword consumes a reset link token and sets the new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	uid, err := utils.ValidateLinkToken(token, utils.LinkPurposeResetPassword)
	if err != nil {
		return apperr.Wrap(apperr.CodeInvalidArgument, err)
	}
	return s.setPassword(ctx, uid, newPassword)
}

// UpdatePassword changes the password for a signed-in user. A stale session
// gets requires-recent-login, matching the identity provider contract.
func (s *AuthService) UpdatePassword(ctx context.Context, uid, currentPassword, newPassword string) error {
	u, err := s.GetUser(uid)
	if err != nil {
		return err
	}
	if u.LastLoginAt == nil || time.Since(*u.LastLoginAt) > recentLoginWindow {
		return apperr.New(apperr.CodeRequiresRecentLogin)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return apperr.New(apperr.CodeWrongPassword)
	}
	return s.setPassword(ctx, uid, newPassword)
}

func (s *AuthService) setPassword(ctx context.Context, uid, newPassword string) error {
	if !validation.CheckPasswordStrength(newPassword).OK() {
		return apperr.New(apperr.CodeWeakPassword)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err)
	}
	res, err := s.DB.ExecContext(ctx, "UPDATE User SET Password = ? WHERE UID = ?", string(hash), uid)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeUserNotFound)
	}
	return nil
}

// DeleteUser removes the account row. The staff deletion callable is the
// only caller.
func (s *AuthService) DeleteUser(ctx context.Context, uid string) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM User WHERE UID = ?", uid)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeUserNotFound)
	}
	s.PublishSnapshot()
	return nil
}
