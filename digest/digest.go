// Package digest renders today's agenda and sends it by email through
// Mailjet.
package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"github.com/mailjet/mailjet-apiv3-go/v4"
	"github.com/sirupsen/logrus"

	"github.com/dailyflo/dailyflo/database"
	"github.com/dailyflo/dailyflo/form"
	"github.com/dailyflo/dailyflo/utils"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// BuildBody renders the agenda email body: one line per task with its
// completion state, time range and relative date, using the same
// labels the form shows on its picker buttons.
func BuildBody(tasks []database.Task, today time.Time) string {
	if len(tasks) == 0 {
		return "No tasks on the agenda today. Enjoy the quiet.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Agenda for %s\n\n", today.Format("Monday, 2 Jan 2006"))
	for _, task := range tasks {
		box := "[ ]"
		if task.IsCompleted {
			box = "[x]"
		}

		timeOfDay := ""
		if task.TimeOfDay != nil {
			timeOfDay = *task.TimeOfDay
		}
		duration := 0
		if task.DurationMinutes != nil {
			duration = *task.DurationMinutes
		}
		dueDate := ""
		if task.DueDate != nil {
			dueDate = *task.DueDate
		}

		line := fmt.Sprintf("%s %s", box, task.Title)
		if timeOfDay != "" || duration > 0 {
			mainText, _ := form.TimeDurationLabel(timeOfDay, duration)
			line += fmt.Sprintf("  %s", mainText)
		}
		line += fmt.Sprintf("  (%s)", form.DateLabel(dueDate, today).Text)

		if n := len(task.Metadata.Subtasks); n > 0 {
			done := 0
			for _, st := range task.Metadata.Subtasks {
				if st.IsCompleted {
					done++
				}
			}
			line += fmt.Sprintf("  %d/%d subtasks", done, n)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// Sender delivers a rendered digest to one recipient and returns the
// delivery status.
type Sender interface {
	Send(subject, body, toEmail, toName string) (string, error)
}

// Mailer sends digest emails through the Mailjet API.
type Mailer struct {
	APIKeyPublic  string
	APIKeyPrivate string
	Sender        string
	SenderName    string
}

// Validate checks the mailer is usable: both keys present and the
// sender address well-formed.
func (m *Mailer) Validate() error {
	if m.APIKeyPublic == "" {
		return fmt.Errorf("missing mailjet API public key")
	}
	if m.APIKeyPrivate == "" {
		return fmt.Errorf("missing mailjet API private key")
	}
	if err := checkmail.ValidateFormat(m.Sender); err != nil {
		return fmt.Errorf("invalid sender email address %q: %w", m.Sender, err)
	}
	return nil
}

// Send delivers the digest to the given recipient and returns the
// delivery status reported by the Mailjet message API.
func (m *Mailer) Send(subject, body, toEmail, toName string) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	if err := checkmail.ValidateFormat(toEmail); err != nil {
		return "", fmt.Errorf("invalid recipient email address %q: %w", toEmail, err)
	}

	client := mailjet.NewMailjetClient(m.APIKeyPublic, m.APIKeyPrivate)
	messagesInfo := []mailjet.InfoMessagesV31{
		{
			From: &mailjet.RecipientV31{
				Email: m.Sender,
				Name:  m.SenderName,
			},
			To: &mailjet.RecipientsV31{
				mailjet.RecipientV31{
					Email: toEmail,
					Name:  toName,
				},
			},
			Subject:  subject,
			TextPart: body,
		},
	}
	messages := mailjet.MessagesV31{Info: messagesInfo}
	res, err := client.SendMailV31(&messages)
	if err != nil {
		return "", fmt.Errorf("mailjet send email error: %w", err)
	}
	if len(res.ResultsV31) == 0 || len(res.ResultsV31[0].To) == 0 {
		return "", fmt.Errorf("mailjet send email API response error: %v", res)
	}
	href := res.ResultsV31[0].To[0].MessageHref

	// Read back the delivery status for the response.
	status, err := utils.FetchWithBasicAuth(href, m.APIKeyPublic, m.APIKeyPrivate)
	if err != nil {
		return "", fmt.Errorf("fetch mailjet email status error: %w", err)
	}
	log.Infof("Mailjet email status: %v", status)
	return fmt.Sprintf("%v", status), nil
}
