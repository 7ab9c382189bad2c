// ABOUTME: AuditEvent is one entry in the best-effort operational trail
// ABOUTME: Lists the event kinds emitted by the registry, ledger and library
package models

import "time"

// EventKind categorizes audit events
type EventKind string

const (
	EventRegistration    EventKind = "REGISTRATION"
	EventLogin           EventKind = "LOGIN"
	EventLoginFailed     EventKind = "LOGIN_FAILED"
	EventOAuthSignup     EventKind = "OAUTH_SIGNUP"
	EventOAuthLogin      EventKind = "OAUTH_LOGIN"
	EventChamberCreated  EventKind = "CHAMBER_CREATED"
	EventChamberArchived EventKind = "CHAMBER_ARCHIVED"
	EventLibrarySync     EventKind = "LIBRARY_SYNC"
	EventBriefSent       EventKind = "BRIEF_SENT"
	EventError           EventKind = "ERROR"
)

// AuditEvent records something that happened. AccountKey is empty when no
// account is associated with the event.
type AuditEvent struct {
	ID          int64     `json:"id"`
	AccountKey  string    `json:"account_key,omitempty"`
	Kind        EventKind `json:"kind"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
