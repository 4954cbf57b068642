// Package notify is the boundary between the core workflow and the outside
// world: given a recipient, a template id and a flat key-value context, it
// delivers a message. The core never sees transport details.
package notify

import (
	"errors"
	"fmt"
)

// Template identifies one of the message templates the service sends.
type Template string

const (
	TemplateSignupOTP         Template = "signup_otp"
	TemplateSecurityAlert     Template = "security_alert"
	TemplateAdminNotification Template = "admin_notification"
	TemplateApproval          Template = "approval"
	TemplateRejection         Template = "rejection"
	TemplateCorruptedRequest  Template = "corrupted_request"
	TemplatePasswordReset     Template = "password_reset"
)

// Dispatcher sends a templated message to a single recipient.
type Dispatcher interface {
	Send(recipient string, template Template, data map[string]string) error
	// Configured reports whether the dispatcher can reach its transport at
	// all. Callers may check it up front instead of discovering
	// ErrNotConfigured mid-operation.
	Configured() bool
}

// ErrNotConfigured means the transport credentials are missing. This is a
// server configuration issue, not a user error.
var ErrNotConfigured = errors.New("notify: email service is not configured on the server")

// SendError is a transient delivery failure.
type SendError struct {
	Recipient string
	Template  Template
	Err       error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("notify: failed to send %s to %s: %v", e.Template, e.Recipient, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// NotificationError reports a dispatch failure that happened after the
// triggering state change had already committed. The caller must not retry
// the whole operation — only the notification (e.g. via resend).
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification failed after commit: %v", e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }
