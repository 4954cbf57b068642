package notify

import "fmt"

// render builds the subject and plain-text body for a template. The data map
// is the flat key-value context supplied by the caller; missing keys render
// as empty strings, which every template tolerates.
func (m *Mailer) render(template Template, data map[string]string) (subject string, body string, err error) {
	app := m.Config.AppName

	switch template {
	case TemplateSignupOTP:
		subject = fmt.Sprintf("Your %s Verification Code", app)
		body = fmt.Sprintf(
			"Hello,\n\n"+
				"Thank you for signing up for %s! To complete your registration, please use the verification code below:\n\n"+
				"Verification Code: %s\n\n"+
				"This code will expire in %d minutes. If you did not request this email, please ignore it.\n\n"+
				"Best regards,\nThe %s Team",
			app, data["otp"], m.Config.CodeExp, app)

	case TemplateSecurityAlert:
		subject = fmt.Sprintf("Security Alert: Sign-Up Attempt on Your %s Account", app)
		body = fmt.Sprintf(
			"Hello,\n\n"+
				"Someone just tried to sign up for %s using the %s already associated with your account. "+
				"The attempt was blocked and no changes were made.\n\n"+
				"If this was not you, no action is needed. If you keep receiving these alerts, consider contacting support.\n\n"+
				"Best regards,\nThe %s Team",
			app, data["attempted_field"], app)

	case TemplateAdminNotification:
		subject = fmt.Sprintf("New %s Access Request from %s", app, data["email"])
		body = fmt.Sprintf(
			"A new access request is awaiting review.\n\n"+
				"Name: %s %s\n"+
				"Email: %s\n"+
				"User ID: %s\n"+
				"Organization: %s\n\n"+
				"Please review it in the admin dashboard.",
			data["first_name"], data["last_name"], data["email"], data["user_id"], data["organization_name"])

	case TemplateApproval:
		subject = fmt.Sprintf("Your %s Account Has Been Approved!", app)
		body = fmt.Sprintf(
			"Hello %s,\n\n"+
				"Good news — your %s access request has been approved. You can now log in with the credentials you chose during signup.\n\n"+
				"Best regards,\nThe %s Team",
			data["first_name"], app, app)

	case TemplateRejection:
		subject = fmt.Sprintf("An Update on Your %s Access Request", app)
		body = fmt.Sprintf(
			"Hello %s,\n\n"+
				"Thank you for your interest in %s. After review, we are unable to approve your access request at this time.\n\n"+
				"Best regards,\nThe %s Team",
			data["first_name"], app, app)

	case TemplateCorruptedRequest:
		subject = fmt.Sprintf("Action Required: Your %s Sign-Up Request", app)
		body = fmt.Sprintf(
			"Hello %s,\n\n"+
				"Unfortunately we could not process your %s sign-up request because some of its data failed our integrity checks. "+
				"Please submit a new request.\n\n"+
				"Best regards,\nThe %s Team",
			data["first_name"], app, app)

	case TemplatePasswordReset:
		subject = fmt.Sprintf("%s Password Reset", app)
		resetLink := fmt.Sprintf("%s?token=%s", m.Config.BaseURL, data["token"])
		body = fmt.Sprintf(
			"Hello,\n\n"+
				"We received a request to reset the password for your %s account. Use the link below within the next hour:\n\n"+
				"%s\n\n"+
				"If you did not request a reset, you can safely ignore this email — your password will not change.\n\n"+
				"Best regards,\nThe %s Team",
			app, resetLink, app)

	default:
		return "", "", fmt.Errorf("notify: unknown template %q", template)
	}

	return subject, body, nil
}
