// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/solarsavers/solarsavers-api/internal/config"
	"github.com/solarsavers/solarsavers-api/internal/models"
)

// Mailer delivers one rendered message.
type Mailer func(to, subject, body string) error

type NotificationService struct {
	config *config.Config
	send   Mailer
	wg     sync.WaitGroup
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(config *config.Config) *NotificationService {
	s := &NotificationService{config: config}
	s.send = s.sendEmail
	return s
}

// WithMailer replaces SMTP delivery, e.g. with a recorder in tests.
func (s *NotificationService) WithMailer(m Mailer) *NotificationService {
	s.send = m
	return s
}

// Dispatch runs fn in the background. Failures are logged and never reach
// the caller.
func (s *NotificationService) Dispatch(kind string, fn func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := fn(); err != nil {
			logrus.WithError(err).WithField("notification", kind).Error("Failed to send notification")
		}
	}()
}

// Wait blocks until dispatched notifications finish.
func (s *NotificationService) Wait() {
	s.wg.Wait()
}

// Vendor notifications
func (s *NotificationService) SendVendorApprovedEmail(vendor *models.User) error {
	data := map[string]interface{}{
		"Name":         vendor.DisplayName(),
		"DashboardURL": fmt.Sprintf("%s/vendor/dashboard", s.config.Server.BaseURL),
		"PlatformName": s.config.Email.FromName,
	}
	return s.deliver("vendor_approved", vendor.Email, data)
}

func (s *NotificationService) SendOrderAssignedEmail(vendor *models.User, order *models.Order) error {
	data := map[string]interface{}{
		"Name":         vendor.DisplayName(),
		"OrderID":      order.ID,
		"Items":        order.Items,
		"Address":      order.ShippingAddress,
		"Notes":        order.AssignmentNotes,
		"PlatformName": s.config.Email.FromName,
	}
	return s.deliver("order_assigned", vendor.Email, data)
}

// Support notifications
func (s *NotificationService) SendTicketReplyEmail(ticket *models.Ticket, reply models.TicketReply) error {
	data := map[string]interface{}{
		"Name":         ticket.UserName,
		"Subject":      ticket.Subject,
		"Message":      reply.Message,
		"PlatformName": s.config.Email.FromName,
	}
	return s.deliver("ticket_reply", ticket.UserEmail, data)
}

func (s *NotificationService) deliver(templateType, to string, data map[string]interface{}) error {
	if to == "" {
		return fmt.Errorf("%s: recipient has no email", templateType)
	}

	tmpl := s.getEmailTemplate(templateType)

	subject, err := s.renderTemplate(tmpl.Subject, data)
	if err != nil {
		return fmt.Errorf("failed to render email subject: %w", err)
	}
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.send(to, subject, body)
}

// Helper methods
func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("SMTP not configured, email skipped")
		return nil
	}

	// Setup authentication
	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	// Compose message
	from := fmt.Sprintf("%s <%s>", s.config.Email.FromName, s.config.Email.FromEmail)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", from, to, subject, body))

	// Send email
	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"vendor_approved": {
			Subject: "Your {{.PlatformName}} vendor account is approved",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Welcome aboard, {{.Name}}!</h2>
	<p>Your vendor account has been approved. You can now add products to your inventory and receive orders.</p>
	<a href="{{.DashboardURL}}">Open your dashboard</a>
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`,
		},
		"order_assigned": {
			Subject: "New order assigned: {{.OrderID}}",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>Order <strong>{{.OrderID}}</strong> has been assigned to you.</p>
	<ul>
	{{range .Items}}<li>{{.Quantity}} x {{.Name}}</li>{{end}}
	</ul>
	<p>Ship to: {{.Address}}</p>
	{{if .Notes}}<p>Notes: {{.Notes}}</p>{{end}}
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`,
		},
		"ticket_reply": {
			Subject: "Re: {{.Subject}}",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<p>Hello {{.Name}},</p>
	<p>Our support team replied to your ticket "{{.Subject}}":</p>
	<blockquote>{{.Message}}</blockquote>
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`,
		},
	}

	if template, exists := templates[templateType]; exists {
		return template
	}

	// Default template
	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
