// ABOUTME: Submission guard: stops a re-run of the same interaction cycle
// ABOUTME: from appending the same user message twice
package core

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/harper/chambers/internal/logger"
	"github.com/harper/chambers/internal/metrics"
	"github.com/harper/chambers/internal/models"
)

// SubmissionOutcome tells whether a submission reached the ledger
type SubmissionOutcome int

const (
	Accepted SubmissionOutcome = iota
	DuplicateSubmission
)

func (o SubmissionOutcome) String() string {
	if o == Accepted {
		return "accepted"
	}
	return "duplicate"
}

// Submission is the result of Guard.Accept. MessageID is set only when Accepted.
type Submission struct {
	Outcome   SubmissionOutcome
	ChamberID int64
	MessageID int64
}

// Session is the state of one interactive session. It is owned by the caller
// and passed into every Accept; it is never persisted.
type Session struct {
	ID         string
	AccountKey string

	mu   sync.Mutex
	last map[int64]string
}

// NewSession starts a session for accountKey
func NewSession(accountKey string) *Session {
	return &Session{
		ID:         uuid.NewString(),
		AccountKey: accountKey,
		last:       make(map[int64]string),
	}
}

// LastAccepted returns the last text accepted for a chamber in this session
func (s *Session) LastAccepted(chamberID int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.last[chamberID]
	return text, ok
}

// Guard filters submissions through a session before appending them
type Guard struct {
	ledger  *Ledger
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewGuard creates a Guard that appends accepted text to ledger
func NewGuard(ledger *Ledger, log *logger.Logger, m *metrics.Metrics) *Guard {
	return &Guard{
		ledger:  ledger,
		log:     logger.OrNop(log).With("component", "guard"),
		metrics: m,
	}
}

// Accept appends text as a user message unless it equals the last text this
// session accepted for the chamber. Deliberately resubmitting the same text
// back to back is also rejected.
func (g *Guard) Accept(session *Session, chamberID int64, text string) (Submission, error) {
	if strings.TrimSpace(text) == "" {
		return Submission{}, ErrEmptySubmission
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.last == nil {
		session.last = make(map[int64]string)
	}

	prev, hadPrev := session.last[chamberID]
	if hadPrev && prev == text {
		g.metrics.Submission(DuplicateSubmission.String())
		g.log.Debug("duplicate submission ignored", "session", session.ID, "chamber", chamberID)
		return Submission{Outcome: DuplicateSubmission, ChamberID: chamberID}, nil
	}

	session.last[chamberID] = text
	id, err := g.ledger.Append(chamberID, models.RoleUser, text)
	if err != nil {
		// Restore so a retry of the same text is not taken for a duplicate
		if hadPrev {
			session.last[chamberID] = prev
		} else {
			delete(session.last, chamberID)
		}
		return Submission{}, err
	}

	g.metrics.Submission(Accepted.String())
	return Submission{Outcome: Accepted, ChamberID: chamberID, MessageID: id}, nil
}
