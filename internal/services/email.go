package services

import (
	"fmt"
	"net/smtp"

	"github.com/omshinde26/honda-digital-showroom/internal/config"
	"github.com/omshinde26/honda-digital-showroom/internal/domain"
)

// EmailService handles sending emails
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendEnquiryAdminNotification notifies the dealership admin about a new
// enquiry.
func (s *EmailService) SendEnquiryAdminNotification(enquiry *domain.Enquiry) error {
	if !s.cfg.Enabled {
		fmt.Printf("[EMAIL] New enquiry from %s (%s)\n", enquiry.Name, enquiry.Email)
		return nil
	}

	subject := fmt.Sprintf("New Enquiry - %s (%s)", enquiry.Name, enquiry.VehicleType)

	messageBlock := ""
	if enquiry.Message != "" {
		messageBlock = fmt.Sprintf(`
        <h3>Message:</h3>
        <p style="background: white; padding: 15px; border-left: 4px solid #E4002B;">%s</p>`, enquiry.Message)
	}

	htmlBody := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: #E4002B; color: white; padding: 20px; text-align: center;">
    <h1>New Enquiry Received</h1>
    <p>Kanade Honda Digital Showroom</p>
  </div>
  <div style="padding: 20px; background-color: #f9f9f9;">
    <h2>Customer Details:</h2>
    <table style="width: 100%%; border-collapse: collapse;">
      <tr><td style="padding: 8px; border-bottom: 1px solid #ddd;"><strong>Enquiry ID:</strong></td><td style="padding: 8px; border-bottom: 1px solid #ddd;">%s</td></tr>
      <tr><td style="padding: 8px; border-bottom: 1px solid #ddd;"><strong>Name:</strong></td><td style="padding: 8px; border-bottom: 1px solid #ddd;">%s</td></tr>
      <tr><td style="padding: 8px; border-bottom: 1px solid #ddd;"><strong>Email:</strong></td><td style="padding: 8px; border-bottom: 1px solid #ddd;">%s</td></tr>
      <tr><td style="padding: 8px; border-bottom: 1px solid #ddd;"><strong>Phone:</strong></td><td style="padding: 8px; border-bottom: 1px solid #ddd;">%s</td></tr>
      <tr><td style="padding: 8px; border-bottom: 1px solid #ddd;"><strong>City:</strong></td><td style="padding: 8px; border-bottom: 1px solid #ddd;">%s</td></tr>
      <tr><td style="padding: 8px; border-bottom: 1px solid #ddd;"><strong>Vehicle Type:</strong></td><td style="padding: 8px; border-bottom: 1px solid #ddd;">%s</td></tr>
    </table>%s
    <div style="margin-top: 20px; text-align: center;">
      <a href="%s/#/admin" style="background-color: #E4002B; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px;">View in Admin Dashboard</a>
    </div>
  </div>
</div>`, enquiry.ID, enquiry.Name, enquiry.Email, enquiry.Phone, enquiry.City, enquiry.VehicleType, messageBlock, s.cfg.AdminURL)

	textBody := fmt.Sprintf(`New Enquiry Received

Enquiry ID: %s
Name: %s
Email: %s
Phone: %s
City: %s
Vehicle Type: %s

Message:
%s`, enquiry.ID, enquiry.Name, enquiry.Email, enquiry.Phone, enquiry.City, enquiry.VehicleType, enquiry.Message)

	return s.SendHTMLEmail(s.cfg.AdminEmail, subject, htmlBody, textBody)
}

// SendEnquiryConfirmation thanks the customer and echoes their enquiry id.
func (s *EmailService) SendEnquiryConfirmation(enquiry *domain.Enquiry) error {
	if !s.cfg.Enabled {
		fmt.Printf("[EMAIL] Confirmation would be sent to %s for enquiry %s\n", enquiry.Email, enquiry.ID)
		return nil
	}

	subject := "Thank you for your enquiry - Kanade Honda"

	htmlBody := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: #E4002B; color: white; padding: 20px; text-align: center;">
    <h1>Thank You for Your Enquiry</h1>
    <p>Kanade Honda - The Power of Dreams</p>
  </div>
  <div style="padding: 20px;">
    <p>Dear %s,</p>
    <p>Thank you for your interest in our %ss. We have received your enquiry and our team will contact you soon.</p>
    <div style="background-color: #f9f9f9; padding: 15px; border-left: 4px solid #E4002B; margin: 20px 0;">
      <p><strong>Enquiry ID:</strong> %s</p>
      <p><strong>Vehicle Type:</strong> %s</p>
      <p><strong>Submitted:</strong> %s</p>
    </div>
    <p>Our team will contact you within 24 hours to discuss your requirements and schedule a test ride.</p>
    <div style="margin-top: 30px; padding: 20px; background-color: #f0f0f0; border-radius: 8px;">
      <h3>Contact Information:</h3>
      <p>Phone: %s</p>
      <p>Email: %s</p>
      <p>Business Hours: Mon-Sat 9:00 AM - 7:00 PM</p>
    </div>
    <p style="margin-top: 20px;">Best regards,<br>Team Kanade Honda</p>
  </div>
</div>`, enquiry.Name, enquiry.VehicleType, enquiry.ID, enquiry.VehicleType,
		enquiry.SubmittedAt.Format("January 2, 2006 at 3:04 PM"), s.cfg.AdminPhone, s.cfg.AdminEmail)

	textBody := fmt.Sprintf(`Dear %s,

Thank you for your interest in our %ss. We have received your enquiry and
our team will contact you within 24 hours.

Enquiry ID: %s
Vehicle Type: %s
Submitted: %s

Best regards,
Team Kanade Honda`, enquiry.Name, enquiry.VehicleType, enquiry.ID, enquiry.VehicleType,
		enquiry.SubmittedAt.Format("January 2, 2006 at 3:04 PM"))

	return s.SendHTMLEmail(enquiry.Email, subject, htmlBody, textBody)
}

// SendEmail sends a generic email (plain text)
func (s *EmailService) SendEmail(to, subject, body string) error {
	return s.SendHTMLEmail(to, subject, "", body)
}

// SendHTMLEmail sends an HTML email with plain text fallback
func (s *EmailService) SendHTMLEmail(to, subject, htmlBody, textBody string) error {
	if !s.cfg.Enabled {
		fmt.Printf("[EMAIL] Would send to %s: %s\n", to, subject)
		return nil
	}

	// Validate configuration
	if s.cfg.SMTPHost == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return fmt.Errorf("email service not properly configured")
	}

	// Set up authentication
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	// Create email message
	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	}

	// Build multipart message
	boundary := "----=_NextPart_1234567890"

	headers := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary) +
		"\r\n"

	// Plain text part
	message := headers +
		fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		textBody + "\r\n"

	// HTML part (if provided)
	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary) +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"Content-Transfer-Encoding: quoted-printable\r\n" +
			"\r\n" +
			htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	// Send email
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsEnabled returns whether email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}
