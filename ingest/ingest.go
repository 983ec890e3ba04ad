// Package ingest turns inbound email payloads into task form values.
// Dailyflo accepts Cloudmailin-style JSON webhooks: the subject
// becomes the task title and the body (HTML converted to Markdown)
// becomes the description. A payload may also carry an explicit
// "task" object overriding date, time, duration, priority and color.
package ingest

import (
	"regexp"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/tidwall/gjson"

	"github.com/dailyflo/dailyflo/form"
)

const (
	// maxContentLength caps the converted body. Inbound emails with
	// embedded images can be enormous; a task description never needs
	// more than this.
	maxContentLength = 2000

	// maxTitleLength matches the title column limit.
	maxTitleLength = 255
)

var urlPattern = regexp.MustCompile(`\(\s*https[^()]*\)`)

// Message is the parsed inbound email.
type Message struct {
	From    string
	To      string
	Date    string
	Subject string
	Content string
}

// ParseMessage extracts the fields of a Cloudmailin-style JSON
// payload. HTML bodies are converted to Markdown, falling back to the
// plain part. Links are stripped to their text and the content is
// capped.
func ParseMessage(payload string) Message {
	converter := md.NewConverter("", true, nil)
	html := gjson.Get(payload, "html").String()

	markdown, err := converter.ConvertString(html)
	if err != nil || len(markdown) == 0 {
		markdown = gjson.Get(payload, "plain").String()
	}

	markdown = urlPattern.ReplaceAllString(markdown, "()")
	if len(markdown) > maxContentLength {
		markdown = markdown[:maxContentLength]
	}

	res := Message{
		From:    gjson.Get(payload, "headers.from").String(),
		To:      gjson.Get(payload, "headers.to").String(),
		Date:    gjson.Get(payload, "headers.date").String(),
		Subject: gjson.Get(payload, "headers.subject").String(),
		Content: strings.TrimSpace(markdown),
	}

	// Forwarded subjects keep their own title.
	for _, prefix := range []string{"FW: ", "Fwd: ", "FWD: "} {
		if strings.HasPrefix(res.Subject, prefix) {
			res.Subject = res.Subject[len(prefix):]
			break
		}
	}

	return res
}

// ToFormValues maps a parsed message plus any explicit "task" object
// in the payload onto task form values. The due date is dropped when
// it lies in the past relative to today: quick-added tasks are always
// actionable, matching the create-flow validation.
func ToFormValues(payload string, m Message, today time.Time) form.Values {
	values := form.Defaults()

	values.Title = m.Subject
	if values.Title == "" {
		values.Title = firstLine(m.Content)
	}
	if len(values.Title) > maxTitleLength {
		values.Title = values.Title[:maxTitleLength]
	}

	values.Description = m.Content
	if len(values.Description) > 500 {
		values.Description = values.Description[:500]
	}

	if due := gjson.Get(payload, "task.due_date").String(); due != "" {
		if !inPast(due, today) {
			values.DueDate = due
		}
	}
	if clock := gjson.Get(payload, "task.time").String(); clock != "" {
		values.TimeOfDay = clock
	}
	if duration := gjson.Get(payload, "task.duration").Int(); duration > 0 {
		values.Duration = int(duration)
	}
	if priority := gjson.Get(payload, "task.priority_level").Int(); priority >= 1 && priority <= 5 {
		values.Priority = int(priority)
	}
	if color := form.Color(gjson.Get(payload, "task.color").String()); color.Valid() {
		values.Color = color
	}
	if routine := form.RoutineType(gjson.Get(payload, "task.routine_type").String()); routine.Valid() {
		values.Routine = routine
	}

	return values
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}

func inPast(isoDate string, today time.Time) bool {
	due, err := time.ParseInLocation("2006-01-02", isoDate, today.Location())
	if err != nil {
		return true // unparsable dates are treated as unusable
	}
	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return due.Before(todayMidnight)
}
