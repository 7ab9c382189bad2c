// ABOUTME: Consultation ties the guard, the advisor model and the ledger together
// ABOUTME: Every accepted user message is followed by exactly one assistant message
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/chambers/internal/logger"
	"github.com/harper/chambers/internal/metrics"
	"github.com/harper/chambers/internal/models"
)

// FailureReplyPrefix marks an assistant message written because no reply could be generated
const FailureReplyPrefix = "[advisor unavailable] "

// FailureReply is the assistant message recorded when no reply could be
// generated. Provider errors go to the log and audit trail, not the transcript.
const FailureReply = FailureReplyPrefix + "The advisor could not respond to this request. Please try again later."

// Responder generates a reply for a prompt
type Responder interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

// Advisor describes how replies should be voiced
type Advisor struct {
	Persona  string
	Language string
}

// Exchange is the result of one consultation turn
type Exchange struct {
	Submission Submission
	Reply      string
	ReplyID    int64
	// Failed is true when Reply is a failure notice rather than advice
	Failed bool
}

// Consultation runs one turn: guard the user text, ask the responder, record the reply
type Consultation struct {
	guard     *Guard
	ledger    *Ledger
	responder Responder
	advisor   Advisor
	audit     *AuditLog
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// NewConsultation creates a Consultation. responder may be nil, in which case
// every accepted submission gets a failure reply.
func NewConsultation(guard *Guard, ledger *Ledger, responder Responder, advisor Advisor, audit *AuditLog, log *logger.Logger, m *metrics.Metrics) *Consultation {
	return &Consultation{
		guard:     guard,
		ledger:    ledger,
		responder: responder,
		advisor:   advisor,
		audit:     audit,
		log:       logger.OrNop(log).With("component", "consultation"),
		metrics:   m,
	}
}

// Submit runs one turn. A duplicate submission returns without calling the responder.
func (c *Consultation) Submit(ctx context.Context, session *Session, chamberID int64, text string) (Exchange, error) {
	sub, err := c.guard.Accept(session, chamberID, text)
	if err != nil {
		return Exchange{}, err
	}
	ex := Exchange{Submission: sub}
	if sub.Outcome != Accepted {
		return ex, nil
	}

	reply, err := c.respond(ctx, text)
	if err != nil {
		c.metrics.ReplyFailed()
		c.log.Error("reply generation failed", "session", session.ID, "chamber", chamberID, "error", err)
		c.audit.Record(session.AccountKey, models.EventError, fmt.Sprintf("Reply generation failed in chamber %d: %v", chamberID, err))
		reply = FailureReply
		ex.Failed = true
	}

	id, err := c.ledger.Append(chamberID, models.RoleAssistant, reply)
	if err != nil {
		return ex, err
	}
	ex.Reply = reply
	ex.ReplyID = id
	return ex, nil
}

func (c *Consultation) respond(ctx context.Context, text string) (string, error) {
	if c.responder == nil {
		return "", errors.New("no advisor model configured")
	}
	reply, err := c.responder.Respond(ctx, BuildPrompt(c.advisor, text))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", errors.New("advisor returned an empty reply")
	}
	return reply, nil
}

// BuildPrompt wraps a user request in the advisor persona and ground rules
func BuildPrompt(a Advisor, request string) string {
	persona := a.Persona
	if persona == "" {
		persona = "Senior High Court Advocate"
	}
	language := a.Language
	if language == "" {
		language = "English"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SYSTEM PERSONA: %s.\n", persona)
	b.WriteString("STRICT RULES:\n")
	b.WriteString("1. Only discuss law, litigation, statutes, or legal strategy.\n")
	b.WriteString("2. If a query is non-legal, refuse politely.\n")
	fmt.Fprintf(&b, "3. Respond accurately in %s.\n", language)
	fmt.Fprintf(&b, "USER REQUEST: %s\n", request)
	return b.String()
}
