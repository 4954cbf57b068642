// Package registration drives a signup request through its lifecycle:
//
//	pending_otp -> pending_approval -> approved | rejected
//
// Initiate creates a request (replacing any prior one for the same email),
// Verify advances it past the OTP gate, and Approve/Reject record the admin
// decision — Approve being the only place a User record is ever created from
// a request.
//
// State transitions commit before their notification is dispatched, so a
// mail failure leaves the record correctly advanced and recoverable (resend
// for the OTP, manual retry for the rest).
package registration

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/ramancoder123/dicideon/internals/auth"
	"github.com/ramancoder123/dicideon/internals/models"
	"github.com/ramancoder123/dicideon/internals/notify"

	"gorm.io/gorm"
)

// otpTTL is how long a verification code stays valid.
const otpTTL = 10 * time.Minute

// Service is the signup request state machine.
type Service struct {
	DB         *gorm.DB
	Dispatcher notify.Dispatcher
	// AdminEmail receives the new-request notification once an applicant
	// passes OTP verification.
	AdminEmail string
}

func NewService(db *gorm.DB, dispatcher notify.Dispatcher, adminEmail string) *Service {
	return &Service{DB: db, Dispatcher: dispatcher, AdminEmail: adminEmail}
}

// SignupForm carries an already format-validated submission. The service
// re-checks uniqueness itself; field-level validation belongs to the caller.
type SignupForm struct {
	Email            string
	UserID           string
	FirstName        string
	MiddleName       string
	LastName         string
	CountryCode      string
	ContactNumber    string
	DateOfBirth      string
	Gender           string
	OrganizationName string
	Country          string
	State            string
	City             string
	Password         string
}

// Initiate creates a pending_otp request for the form and emails the
// applicant a fresh code. A prior request for the same email — whatever its
// state — is replaced, which permanently invalidates its code.
//
// On a uniqueness conflict it returns a *ValidationError and alerts the
// owning accounts (best effort). On a mail failure it returns a
// *notify.NotificationError with the request already persisted, so the
// applicant can fall back to Resend. The returned time is the code expiry.
func (s *Service) Initiate(form SignupForm) (time.Time, error) {
	// Upsert-aware: the submitter's own active request never blocks a retry.
	messages, notifications, err := checkUniqueness(s.DB, form.Email, form.UserID, form.ContactNumber, true)
	if err != nil {
		return time.Time{}, err
	}
	if len(messages) > 0 {
		s.dispatchConflictAlerts(notifications)
		return time.Time{}, &ValidationError{Messages: messages}
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return time.Time{}, err
	}

	code, err := generateOTP()
	if err != nil {
		return time.Time{}, err
	}
	expiresAt := time.Now().Add(otpTTL)

	request := models.SignupRequest{
		RequestTimestamp: time.Now(),
		Status:           models.StatusPendingOTP,
		Email:            form.Email,
		UserID:           form.UserID,
		FirstName:        form.FirstName,
		MiddleName:       form.MiddleName,
		LastName:         form.LastName,
		CountryCode:      form.CountryCode,
		ContactNumber:    form.ContactNumber,
		DateOfBirth:      form.DateOfBirth,
		Gender:           form.Gender,
		OrganizationName: form.OrganizationName,
		Country:          form.Country,
		State:            form.State,
		City:             form.City,
		UserPassword:     hash,
		OTP:              code,
		OTPExpiresAt:     expiresAt,
	}

	// Upsert keyed by email: delete-then-create inside one transaction. The
	// email uniqueIndex remains the backstop for two submissions racing past
	// the check above.
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("email = ?", form.Email).Delete(&models.SignupRequest{}).Error; err != nil {
			return err
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		if isDuplicateErr(err) {
			return time.Time{}, &ValidationError{Messages: []string{msgEmailTaken}}
		}
		return time.Time{}, err
	}

	// Committed. A failure from here on is recoverable via Resend.
	if err := s.Dispatcher.Send(form.Email, notify.TemplateSignupOTP, map[string]string{"otp": code}); err != nil {
		return expiresAt, &notify.NotificationError{Err: err}
	}
	return expiresAt, nil
}

// Resend regenerates the code for an existing pending_otp request and emails
// it. The old code becomes permanently invalid. Returns (nil, nil) when no
// matching request exists — an expected outcome, not an error.
func (s *Service) Resend(email string) (*time.Time, error) {
	var req models.SignupRequest
	err := s.DB.Where("email = ? AND status = ?", email, models.StatusPendingOTP).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	code, err := generateOTP()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(otpTTL)

	err = s.DB.Model(&req).Updates(map[string]interface{}{
		"otp":            code,
		"otp_expires_at": expiresAt,
	}).Error
	if err != nil {
		return nil, err
	}

	if err := s.Dispatcher.Send(email, notify.TemplateSignupOTP, map[string]string{"otp": code}); err != nil {
		return &expiresAt, &notify.NotificationError{Err: err}
	}
	return &expiresAt, nil
}

// Verify checks the submitted code against a pending_otp request. On success
// the request advances to pending_approval, its OTP fields are cleared, and
// the admin is notified (best effort — the transition has already
// committed). Any mismatch — wrong state, wrong code, expired — returns
// false with no state change.
func (s *Service) Verify(email, code string) (bool, error) {
	var req models.SignupRequest
	err := s.DB.Where("email = ?", email).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if req.Status != models.StatusPendingOTP {
		return false, nil
	}
	if time.Now().After(req.OTPExpiresAt) {
		return false, nil
	}
	if !otpEqual(req.OTP, code) {
		return false, nil
	}

	err = s.DB.Model(&req).Updates(map[string]interface{}{
		"status":         models.StatusPendingApproval,
		"otp":            "",
		"otp_expires_at": time.Time{},
	}).Error
	if err != nil {
		return false, err
	}

	data := map[string]string{
		"email":             req.Email,
		"first_name":        req.FirstName,
		"last_name":         req.LastName,
		"user_id":           req.UserID,
		"organization_name": req.OrganizationName,
	}
	if err := s.Dispatcher.Send(s.AdminEmail, notify.TemplateAdminNotification, data); err != nil {
		log.Printf("Failed to notify admin about request from %s: %v", req.Email, err)
	}
	return true, nil
}

// Approve materializes a User from a pending_approval request and marks the
// request approved. The user insert and the status update commit together;
// the uniqueIndex on users — not the state check — is what makes a
// concurrent double-approve safe, surfacing as ErrDuplicateUser with the
// request left untouched for investigation.
func (s *Service) Approve(email string) error {
	req, err := s.pendingRequest(email)
	if err != nil {
		return err
	}

	user := models.User{
		Email:            req.Email,
		Username:         req.UserID,
		Password:         req.UserPassword,
		PhoneCode:        req.CountryCode,
		ContactNumber:    req.ContactNumber,
		Country:          req.Country,
		State:            req.State,
		City:             req.City,
		OrganizationName: req.OrganizationName,
		Gender:           req.Gender,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Model(&models.SignupRequest{}).
			Where("email = ?", email).
			Update("status", models.StatusApproved).Error
	})
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicateUser
		}
		return err
	}

	if err := s.Dispatcher.Send(req.Email, notify.TemplateApproval, map[string]string{"first_name": req.FirstName}); err != nil {
		return &notify.NotificationError{Err: err}
	}
	return nil
}

// Reject marks a pending_approval request rejected and notifies the
// applicant. No User is created.
func (s *Service) Reject(email string) error {
	req, err := s.pendingRequest(email)
	if err != nil {
		return err
	}
	return s.finalizeRejection(req, notify.TemplateRejection)
}

// HandleCorrupted is the administrative escape hatch for a request whose
// stored data failed integrity checks. It behaves like Reject but accepts
// any non-terminal state and asks the applicant to resubmit.
func (s *Service) HandleCorrupted(email string) error {
	var req models.SignupRequest
	err := s.DB.Where("email = ?", email).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRequestNotFound
	}
	if err != nil {
		return err
	}
	if req.IsTerminal() {
		return ErrInvalidState
	}
	return s.finalizeRejection(&req, notify.TemplateCorruptedRequest)
}

// PendingRequests lists requests awaiting an admin decision, newest first.
func (s *Service) PendingRequests() ([]models.SignupRequest, error) {
	var requests []models.SignupRequest
	err := s.DB.Where("status = ?", models.StatusPendingApproval).
		Order("request_timestamp DESC").
		Find(&requests).Error
	return requests, err
}

func (s *Service) pendingRequest(email string) (*models.SignupRequest, error) {
	var req models.SignupRequest
	err := s.DB.Where("email = ?", email).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusPendingApproval {
		return nil, ErrInvalidState
	}
	return &req, nil
}

func (s *Service) finalizeRejection(req *models.SignupRequest, template notify.Template) error {
	err := s.DB.Model(&models.SignupRequest{}).
		Where("email = ?", req.Email).
		Update("status", models.StatusRejected).Error
	if err != nil {
		return err
	}

	if err := s.Dispatcher.Send(req.Email, template, map[string]string{"first_name": req.FirstName}); err != nil {
		return &notify.NotificationError{Err: err}
	}
	return nil
}

// dispatchConflictAlerts warns the owners of conflicting values about the
// attempt. Failures are logged and swallowed — an alert must never block a
// signup response.
func (s *Service) dispatchConflictAlerts(notifications map[string]string) {
	for field, owner := range notifications {
		err := s.Dispatcher.Send(owner, notify.TemplateSecurityAlert, map[string]string{"attempted_field": field})
		if err != nil {
			log.Printf("Failed to send security alert for %s to %s: %v", field, owner, err)
		}
	}
}

// isDuplicateErr recognizes unique-constraint violations. TranslateError
// maps most of them to gorm.ErrDuplicatedKey; the message check covers
// sqlite drivers that slip through.
func isDuplicateErr(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
