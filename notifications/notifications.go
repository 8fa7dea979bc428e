package notifications

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/hoodshookups/hoods-app/db"
	"github.com/hoodshookups/hoods-app/models"
)

// Intent names a notification to deliver: which template, to whom, with
// what variables, on behalf of which entity. Handlers and jobs emit
// intents; the active Dispatcher owns rendering and delivery, so business
// state never depends on a send succeeding.
type Intent struct {
	TemplateName string
	Recipient    string
	Variables    map[string]string
	EntityType   string
	EntityID     uint
}

// Dispatcher delivers an intent. Swapped out in tests.
type Dispatcher interface {
	Send(intent Intent) error
}

// Active is the dispatcher used by Dispatch. Defaults to the
// template-and-log implementation.
var Active Dispatcher = &TemplateDispatcher{}

// Dispatch is the fire-and-forget entry point: delivery failures are
// logged, never surfaced to the caller.
func Dispatch(intent Intent) {
	if intent.Recipient == "" {
		return
	}
	if err := Active.Send(intent); err != nil {
		log.Printf("notification %s to %s failed: %v", intent.TemplateName, intent.Recipient, err)
	}
}

// RenderTemplate substitutes every {{key}} placeholder with its variable
// value. Unknown placeholders are left in place; missing values render as
// the empty string via the variables map.
func RenderTemplate(template string, variables map[string]string) string {
	rendered := template
	for key, value := range variables {
		rendered = strings.ReplaceAll(rendered, "{{"+key+"}}", value)
	}
	return rendered
}

// TemplateDispatcher renders a stored template row and hands the result to
// the channel transport, recording every attempt in the notification log.
type TemplateDispatcher struct{}

func (d *TemplateDispatcher) Send(intent Intent) error {
	var template models.NotificationTemplate
	if err := db.DB.Where("name = ? AND active = true", intent.TemplateName).First(&template).Error; err != nil {
		return fmt.Errorf("template not found: %s", intent.TemplateName)
	}

	body := RenderTemplate(template.Body, intent.Variables)
	subject := ""
	if template.Subject != "" {
		subject = RenderTemplate(template.Subject, intent.Variables)
	}

	entry := models.NotificationLog{
		TemplateID:      &template.ID,
		Type:            template.Type,
		Recipient:       intent.Recipient,
		Subject:         subject,
		Body:            body,
		RelatedEntity:   intent.EntityType,
		RelatedEntityID: intent.EntityID,
		Status:          models.NotificationPending,
	}

	deliverErr := deliver(template.Type, intent.Recipient, subject, body)

	now := time.Now()
	if deliverErr != nil {
		entry.Status = models.NotificationFailed
		entry.ErrorMessage = deliverErr.Error()
	} else {
		entry.Status = models.NotificationSent
		entry.SentAt = &now
	}
	if err := db.DB.Create(&entry).Error; err != nil {
		log.Printf("failed to write notification log: %v", err)
	}
	return deliverErr
}

// deliver hands the rendered message to the channel transport. Email goes
// through SMTP when configured and falls back to console logging; SMS is
// always the console stub.
func deliver(channelType, recipient, subject, body string) error {
	switch channelType {
	case "email":
		if os.Getenv("SMTP_HOST") != "" {
			return sendSMTP(recipient, subject, body)
		}
		log.Printf("[EMAIL] To: %s, Subject: %s", recipient, subject)
		log.Printf("[EMAIL] Body: %s", truncate(body, 100))
		return nil
	case "sms":
		log.Printf("[SMS] To: %s", recipient)
		log.Printf("[SMS] Body: %s", body)
		return nil
	default:
		return fmt.Errorf("unknown notification type: %s", channelType)
	}
}

func sendSMTP(to, subject, body string) error {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
