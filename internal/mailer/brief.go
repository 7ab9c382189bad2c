// ABOUTME: Composes a plain-text consultation brief from a chamber transcript
// ABOUTME: User turns are tagged COUNSEL and assistant turns AI ADVISOR
package mailer

import (
	"fmt"
	"strings"
	"time"

	"github.com/harper/chambers/internal/models"
)

// Brief is a composed email
type Brief struct {
	Subject string
	Body    string
}

// RoleTag returns the label a message is filed under in a brief
func RoleTag(role models.Role) string {
	if role == models.RoleUser {
		return "COUNSEL"
	}
	return "AI ADVISOR"
}

// ComposeBrief renders the transcript of a chamber in append order
func ComposeBrief(chamberLabel string, msgs []models.Message, now time.Time) Brief {
	var b strings.Builder
	b.WriteString("--- LEGAL INTELLIGENCE BRIEF ---\n")
	fmt.Fprintf(&b, "CHAMBER REF: %s\n", chamberLabel)
	fmt.Fprintf(&b, "GENERATION DATE: %s\n", now.Format(time.RFC1123))
	b.WriteString("CONFIDENTIALITY: STRICTLY PRIVILEGED\n\n")

	if len(msgs) == 0 {
		b.WriteString("(no recorded exchanges)\n")
	}
	for _, m := range msgs {
		fmt.Fprintf(&b, "[%s]:\n%s\n\n", RoleTag(m.Role), m.Body)
	}

	return Brief{
		Subject: fmt.Sprintf("Legal Consultation Brief: %s - %s", chamberLabel, now.Format("2006-01-02")),
		Body:    b.String(),
	}
}
