package dto

import (
	"time"

	"github.com/easyclick/support-desk/internal/domain"
)

// CreateTicketRequest is the agent-side ticket creation payload.
type CreateTicketRequest struct {
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Priority       domain.TicketPriority `json:"priority"`
	RequesterName  string                `json:"requester_name"`
	RequesterEmail string                `json:"requester_email"`
	Assignee       *string               `json:"assignee,omitempty"`
	Tags           []string              `json:"tags,omitempty"`
}

// PortalSubmitRequest is the customer portal submission payload.
type PortalSubmitRequest struct {
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	Tags        []string              `json:"tags,omitempty"`
}

// UpdateStatusRequest carries a status change.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
	Agent  string              `json:"agent"`
}

// UpdatePriorityRequest carries a priority change.
type UpdatePriorityRequest struct {
	Priority domain.TicketPriority `json:"priority"`
	Agent    string                `json:"agent"`
}

// AssignRequest carries an assignee change; a null or missing assignee
// clears the assignment.
type AssignRequest struct {
	Assignee *string `json:"assignee"`
	Agent    string  `json:"agent"`
}

// CreateCommentRequest is the agent-side comment payload.
type CreateCommentRequest struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

// PortalCommentRequest is the customer-side comment payload.
type PortalCommentRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// TicketSummary is the list-view projection of a ticket.
type TicketSummary struct {
	ID        string                `json:"id"`
	PublicID  string                `json:"public_id"`
	Title     string                `json:"title"`
	Status    domain.TicketStatus   `json:"status"`
	Priority  domain.TicketPriority `json:"priority"`
	Requester string                `json:"requester"`
	Assignee  *string               `json:"assignee,omitempty"`
	Tags      []string              `json:"tags"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// TicketDetailResponse is the full ticket view with its timeline.
type TicketDetailResponse struct {
	TicketSummary
	Description string            `json:"description"`
	Comments    []CommentResponse `json:"comments"`
}

// CommentResponse is one timeline entry.
type CommentResponse struct {
	ID         string                    `json:"id"`
	TicketID   string                    `json:"ticket_id"`
	Author     string                    `json:"author"`
	Message    string                    `json:"message"`
	AuthorRole *domain.CommentAuthorRole `json:"author_role,omitempty"`
	CreatedAt  time.Time                 `json:"created_at"`
}

// PortalStatusResponse is the customer-facing status view. Internal ids stay
// internal: the portal only sees the public code.
type PortalStatusResponse struct {
	PublicID  string                `json:"public_id"`
	Title     string                `json:"title"`
	Status    domain.TicketStatus   `json:"status"`
	Priority  domain.TicketPriority `json:"priority"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
	Comments  []CommentResponse     `json:"comments"`
}

// CountsResponse tallies tickets per status for the overview dashboard.
type CountsResponse struct {
	Total    int                         `json:"total"`
	ByStatus map[domain.TicketStatus]int `json:"by_status"`
}
