package notify

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// SMTPConfig carries the mail transport settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	AppName  string
	// BaseURL of the frontend, used to build password reset links
	BaseURL string
	// CodeExp is the OTP validity window in minutes, quoted in email bodies
	CodeExp int
	// Timeout bounds the whole SMTP exchange
	Timeout time.Duration
}

// Mailer is the SMTP implementation of Dispatcher.
type Mailer struct {
	Config *SMTPConfig
}

var _ Dispatcher = (*Mailer)(nil)

func NewMailer(config *SMTPConfig) *Mailer {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	return &Mailer{Config: config}
}

// Configured reports whether sender credentials are present.
func (m *Mailer) Configured() bool {
	return m.Config.User != "" && m.Config.Password != ""
}

// Send renders the template and delivers it over SMTP.
func (m *Mailer) Send(recipient string, template Template, data map[string]string) error {
	if !m.Configured() {
		return ErrNotConfigured
	}

	subject, body, err := m.render(template, data)
	if err != nil {
		return err
	}

	if err := m.send(recipient, subject, body); err != nil {
		return &SendError{Recipient: recipient, Template: template, Err: err}
	}
	return nil
}

// send performs the SMTP handshake and delivery. smtp.SendMail has no
// timeout, so the connection is dialed explicitly with a deadline covering
// the whole exchange.
func (m *Mailer) send(toEmail string, subject string, body string) error {
	smtpAddr := fmt.Sprintf("%s:%d", m.Config.Host, m.Config.Port)

	conn, err := net.DialTimeout("tcp", smtpAddr, m.Config.Timeout)
	if err != nil {
		return err
	}
	if err := conn.SetDeadline(time.Now().Add(m.Config.Timeout)); err != nil {
		conn.Close()
		return err
	}

	client, err := smtp.NewClient(conn, m.Config.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.Config.Host}); err != nil {
			return err
		}
	}

	auth := smtp.PlainAuth("", m.Config.User, m.Config.Password, m.Config.Host)
	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(m.Config.User); err != nil {
		return err
	}
	if err := client.Rcpt(toEmail); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}

	// Headers per RFC 822; the blank entry separates headers from the body.
	headers := []string{
		fmt.Sprintf("From: %s", m.Config.User),
		fmt.Sprintf("To: %s", toEmail),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}
	if _, err := w.Write([]byte(strings.Join(headers, "\r\n"))); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}
