// ABOUTME: Message is one append-only transcript entry in a chamber
// ABOUTME: Defines the closed set of author roles
package models

import (
	"fmt"
	"time"
)

// Role identifies the author of a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ParseRole converts a string into a Role
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Message is immutable once stored. ID order is the transcript order.
type Message struct {
	ID        int64     `json:"id"`
	ChamberID int64     `json:"chamber_id"`
	Role      Role      `json:"role"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// String renders the message as "role:body"
func (m Message) String() string {
	return string(m.Role) + ":" + m.Body
}
