package services

import (
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client *resend.Client
}

var emailService *EmailService

// InitEmailService initializes the Resend client. The service is optional:
// without an API key, notification sends become no-ops.
func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")

	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email notifications will not be sent.")
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
	}

	log.Println("Email service initialized successfully with Resend")
}

// GetEmailService returns the singleton email service instance.
func GetEmailService() *EmailService {
	return emailService
}

// NotifyContactMessage tells the site operator a new contact message came in.
func (s *EmailService) NotifyContactMessage(name, email, subject, message string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	notifyEmail := os.Getenv("NOTIFY_EMAIL")
	if notifyEmail == "" {
		return fmt.Errorf("NOTIFY_EMAIL not set")
	}

	htmlBody := fmt.Sprintf(`
<h2>New contact message</h2>
<p><strong>From:</strong> %s (%s)</p>
<p><strong>Subject:</strong> %s</p>
<p>%s</p>
`, name, email, subject, message)

	textBody := fmt.Sprintf("New contact message\n\nFrom: %s (%s)\nSubject: %s\n\n%s\n", name, email, subject, message)

	params := &resend.SendEmailRequest{
		From:    os.Getenv("RESEND_FROM_EMAIL"),
		To:      []string{notifyEmail},
		Subject: fmt.Sprintf("New contact message: %s", subject),
		Html:    htmlBody,
		Text:    textBody,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		log.Printf("Failed to send contact notification: %v", err)
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.Printf("Sent contact notification. Email ID: %s", sent.Id)
	return nil
}

// NotifyPrayerRequest tells the site operator a new prayer request came in.
// The requester's name is withheld when they asked to stay anonymous.
func (s *EmailService) NotifyPrayerRequest(displayName, category, request string, isAnonymous bool) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	notifyEmail := os.Getenv("NOTIFY_EMAIL")
	if notifyEmail == "" {
		return fmt.Errorf("NOTIFY_EMAIL not set")
	}

	if isAnonymous {
		displayName = "Anonymous"
	}

	htmlBody := fmt.Sprintf(`
<h2>New prayer request</h2>
<p><strong>From:</strong> %s</p>
<p><strong>Category:</strong> %s</p>
<p>%s</p>
`, displayName, category, request)

	textBody := fmt.Sprintf("New prayer request\n\nFrom: %s\nCategory: %s\n\n%s\n", displayName, category, request)

	params := &resend.SendEmailRequest{
		From:    os.Getenv("RESEND_FROM_EMAIL"),
		To:      []string{notifyEmail},
		Subject: fmt.Sprintf("New prayer request (%s)", category),
		Html:    htmlBody,
		Text:    textBody,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		log.Printf("Failed to send prayer request notification: %v", err)
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.Printf("Sent prayer request notification. Email ID: %s", sent.Id)
	return nil
}
