package domain

import "time"

// CommentAuthorRole indicates who authored a comment. Absent on records
// written before the role discriminator existed.
type CommentAuthorRole string

const (
	AuthorRoleCustomer CommentAuthorRole = "customer"
	AuthorRoleAgent    CommentAuthorRole = "agent"
)

// Comment captures one timeline entry on a ticket. TicketID is a relation
// only: comments survive independently of the ticket they point at.
type Comment struct {
	ID         string             `json:"id"`
	TicketID   string             `json:"ticketId"`
	Author     string             `json:"author"`
	Message    string             `json:"message"`
	AuthorRole *CommentAuthorRole `json:"authorRole,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}
