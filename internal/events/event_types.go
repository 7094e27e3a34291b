package events

import (
	"time"

	"github.com/easyclick/support-desk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketPriorityChanged EventType = "ticket_priority_changed"
	EventTicketAssigned        EventType = "ticket_assigned"
	EventCommentAdded          EventType = "comment_added"
)

// Actor describes who triggered an event: a customer identified by the
// requester composite, or an agent by display name.
type Actor struct {
	Role domain.CommentAuthorRole `json:"role"`
	Name string                   `json:"name"`
}

// Event represents a domain event emitted on store mutations.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	PublicID  string      `json:"public_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title     string                `json:"title"`
	Priority  domain.TicketPriority `json:"priority"`
	Requester string                `json:"requester"`
	Tags      []string              `json:"tags,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketPriorityChangedPayload payload.
type TicketPriorityChangedPayload struct {
	OldPriority domain.TicketPriority `json:"old_priority"`
	NewPriority domain.TicketPriority `json:"new_priority"`
}

// TicketAssignedPayload payload. A nil assignee means the ticket was
// unassigned.
type TicketAssignedPayload struct {
	Assignee *string `json:"assignee,omitempty"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID      string                    `json:"comment_id"`
	Author         string                    `json:"author"`
	AuthorRole     *domain.CommentAuthorRole `json:"author_role,omitempty"`
	MessagePreview string                    `json:"message_preview"`
}
