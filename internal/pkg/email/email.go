package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Notifier defines the interface for moderation notification emails
type Notifier interface {
	SendApprovalEmail(recipients []string, courseTitle string) error
	SendRejectionEmail(recipients []string, courseTitle, feedback string) error
}

// SMTPConfig holds configuration for the SMTP relay
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// SMTPNotifier implements Notifier over a plain SMTP relay
type SMTPNotifier struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPNotifier creates a new SMTPNotifier
func NewSMTPNotifier(config SMTPConfig, logger zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		config: config,
		logger: logger,
	}
}

// SendApprovalEmail notifies the facilitators that their course went live.
func (s *SMTPNotifier) SendApprovalEmail(recipients []string, courseTitle string) error {
	// Without SMTP credentials just log the outgoing mail (development mode)
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Strs("recipients", recipients).
			Str("courseTitle", courseTitle).
			Msg("SMTP credentials not configured - approval email not sent")
		return nil
	}

	subject := fmt.Sprintf("DeCal Course Approved: %s", courseTitle)
	body := fmt.Sprintf(`
		<h2>Your DeCal Course Has Been Approved!</h2>
		<p>Congratulations! Your DeCal course "<strong>%s</strong>" has been approved and is now live on the DeCal website.</p>
		<p>Students can now view and enroll in your course.</p>
		<p>If you have any questions, please contact the DeCal administrators.</p>
	`, courseTitle)

	return s.sendHTMLEmail(recipients, subject, body)
}

// SendRejectionEmail sends review feedback to the facilitators.
func (s *SMTPNotifier) SendRejectionEmail(recipients []string, courseTitle, feedback string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Strs("recipients", recipients).
			Str("courseTitle", courseTitle).
			Msg("SMTP credentials not configured - rejection email not sent")
		return nil
	}

	subject := fmt.Sprintf("DeCal Course Submission Feedback: %s", courseTitle)
	body := fmt.Sprintf(`
		<h2>DeCal Course Submission Feedback</h2>
		<p>Thank you for submitting your DeCal course "<strong>%s</strong>".</p>
		<p>After review, we need some additional information or changes before we can approve your course.</p>
		<h3>Feedback:</h3>
		<p>%s</p>
		<p>You can edit and resubmit your course through the DeCal submission portal.</p>
		<p>If you have any questions, please contact the DeCal administrators.</p>
	`, courseTitle, feedback)

	return s.sendHTMLEmail(recipients, subject, body)
}

// sendHTMLEmail sends an HTML email to the recipient list
func (s *SMTPNotifier) sendHTMLEmail(recipients []string, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = strings.Join(recipients, ", ")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		return s.sendOverTLS(serverAddress, auth, recipients, message)
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		recipients,
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// sendOverTLS sends a message over an explicit TLS connection
func (s *SMTPNotifier) sendOverTLS(serverAddress string, auth smtp.Auth, recipients []string, message string) error {
	tlsConfig := &tls.Config{
		ServerName: s.config.Host,
	}

	conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create SMTP client")
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		s.logger.Error().Err(err).Msg("SMTP authentication failed")
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, recipient := range recipients {
		if err = client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return nil
}
