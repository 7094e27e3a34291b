// Package store holds the canonical in-memory ticket and comment
// collections for the lifetime of the process. Every mutation updates memory
// and writes the full snapshot back through the storage reconciler.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/easyclick/support-desk/internal/domain"
	"github.com/easyclick/support-desk/internal/storage"
)

// publicIDPrefix precedes the zero-padded sequential counter in public ids.
const publicIDPrefix = "EC-"

// State describes hydration progress. In-memory data is usable from the
// moment New returns; Hydrating only advises consumers that the persisted
// copy has not been confirmed yet.
type State int

const (
	StateUninitialized State = iota
	StateHydrating
	StateReady
)

// TicketStore is the single source of truth for tickets and comments.
// Safe for concurrent use.
type TicketStore struct {
	mu         sync.RWMutex
	reconciler *storage.Reconciler
	tickets    []domain.Ticket
	comments   []domain.Comment
	counter    int
	state      State
}

// CreateTicketInput carries every caller-supplied ticket field. Status is
// not part of the input: new tickets always start in status "new".
type CreateTicketInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	Requester   domain.Requester
	Assignee    *string
	Tags        []string
}

// CreateCommentInput carries caller-supplied comment fields.
type CreateCommentInput struct {
	Author     string
	Message    string
	AuthorRole *domain.CommentAuthorRole
}

// New loads the initial snapshot synchronously, then writes it back so the
// persisted copy is confirmed canonical before the store reports ready.
func New(ctx context.Context, reconciler *storage.Reconciler) *TicketStore {
	s := &TicketStore{reconciler: reconciler, state: StateUninitialized}

	snapshot := reconciler.Load(ctx)
	s.tickets = snapshot.Tickets
	s.comments = snapshot.Comments
	s.counter = snapshot.PublicIDCounter
	s.state = StateHydrating

	reconciler.Save(ctx, snapshot)
	s.state = StateReady
	return s
}

// State reports hydration progress.
func (s *TicketStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CreateTicket assigns a fresh id, the next public id, and creation
// timestamps, prepends the ticket, and persists.
func (s *TicketStore) CreateTicket(ctx context.Context, input CreateTicketInput) domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	ticket := domain.Ticket{
		ID:          uuid.NewString(),
		PublicID:    formatPublicID(s.counter),
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.TicketStatusNew,
		Priority:    input.Priority,
		Requester:   domain.NewRequester(input.Requester.Name, input.Requester.Email),
		Assignee:    input.Assignee,
		Tags:        input.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if ticket.Tags == nil {
		ticket.Tags = []string{}
	}

	s.tickets = append([]domain.Ticket{ticket}, s.tickets...)
	s.counter++
	s.persist(ctx)
	return ticket
}

// AddComment stamps the ticket id and creation time and prepends the
// comment. The ticket id is not checked for existence: orphaned comments are
// tolerated, and the parent ticket's UpdatedAt is left untouched.
func (s *TicketStore) AddComment(ctx context.Context, ticketID string, input CreateCommentInput) domain.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment := domain.Comment{
		ID:         uuid.NewString(),
		TicketID:   ticketID,
		Author:     input.Author,
		Message:    input.Message,
		AuthorRole: input.AuthorRole,
		CreatedAt:  time.Now().UTC(),
	}

	s.comments = append([]domain.Comment{comment}, s.comments...)
	s.persist(ctx)
	return comment
}

// UpdateStatus replaces the ticket's status and refreshes UpdatedAt.
func (s *TicketStore) UpdateStatus(ctx context.Context, ticketID string, status domain.TicketStatus) (domain.Ticket, error) {
	return s.mutate(ctx, ticketID, func(ticket *domain.Ticket) {
		ticket.Status = status
	})
}

// UpdatePriority replaces the ticket's priority and refreshes UpdatedAt.
func (s *TicketStore) UpdatePriority(ctx context.Context, ticketID string, priority domain.TicketPriority) (domain.Ticket, error) {
	return s.mutate(ctx, ticketID, func(ticket *domain.Ticket) {
		ticket.Priority = priority
	})
}

// Assign sets or, with nil, clears the assignee and refreshes UpdatedAt.
func (s *TicketStore) Assign(ctx context.Context, ticketID string, assignee *string) (domain.Ticket, error) {
	return s.mutate(ctx, ticketID, func(ticket *domain.Ticket) {
		ticket.Assignee = assignee
	})
}

func (s *TicketStore) mutate(ctx context.Context, ticketID string, apply func(*domain.Ticket)) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tickets {
		if s.tickets[i].ID != ticketID {
			continue
		}
		apply(&s.tickets[i])
		s.tickets[i].UpdatedAt = time.Now().UTC()
		s.persist(ctx)
		return s.tickets[i], nil
	}
	return domain.Ticket{}, domain.ErrTicketNotFound
}

// Tickets returns all tickets, most recent first.
func (s *TicketStore) Tickets() []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Ticket(nil), s.tickets...)
}

// Comments returns all comments, most recent first.
func (s *TicketStore) Comments() []domain.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Comment(nil), s.comments...)
}

// TicketByID looks a ticket up by its internal id.
func (s *TicketStore) TicketByID(ticketID string) (domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ticket := range s.tickets {
		if ticket.ID == ticketID {
			return ticket, nil
		}
	}
	return domain.Ticket{}, domain.ErrTicketNotFound
}

// TicketByPublicID looks a ticket up by its public code, case-insensitively.
func (s *TicketStore) TicketByPublicID(publicID string) (domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ticket := range s.tickets {
		if strings.EqualFold(ticket.PublicID, strings.TrimSpace(publicID)) {
			return ticket, nil
		}
	}
	return domain.Ticket{}, domain.ErrTicketNotFound
}

// CommentsForTicket returns the comment timeline for one ticket, most recent
// first.
func (s *TicketStore) CommentsForTicket(ticketID string) []domain.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]domain.Comment, 0)
	for _, comment := range s.comments {
		if comment.TicketID == ticketID {
			matched = append(matched, comment)
		}
	}
	return matched
}

// ByStatus returns tickets currently in the given status.
func (s *TicketStore) ByStatus(status domain.TicketStatus) []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]domain.Ticket, 0)
	for _, ticket := range s.tickets {
		if ticket.Status == status {
			matched = append(matched, ticket)
		}
	}
	return matched
}

// Search matches the query case-insensitively against id, public id, title,
// description, requester, assignee, and tags. An empty or whitespace-only
// query returns all tickets unfiltered.
func (s *TicketStore) Search(query string) []domain.Ticket {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return s.Tickets()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]domain.Ticket, 0)
	for _, ticket := range s.tickets {
		assignee := ""
		if ticket.Assignee != nil {
			assignee = *ticket.Assignee
		}
		haystack := strings.ToLower(strings.Join([]string{
			ticket.ID,
			ticket.PublicID,
			ticket.Title,
			ticket.Description,
			ticket.Requester.String(),
			assignee,
			strings.Join(ticket.Tags, " "),
		}, " "))
		if strings.Contains(haystack, normalized) {
			matched = append(matched, ticket)
		}
	}
	return matched
}

// Counts tallies tickets per status, with every status present in the
// result.
func (s *TicketStore) Counts() map[domain.TicketStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[domain.TicketStatus]int, len(domain.TicketStatuses))
	for _, status := range domain.TicketStatuses {
		counts[status] = 0
	}
	for _, ticket := range s.tickets {
		counts[ticket.Status]++
	}
	return counts
}

// persist writes the full current snapshot. Callers hold the write lock.
// Persistence failures are absorbed by the reconciler: memory stays
// authoritative for the session.
func (s *TicketStore) persist(ctx context.Context) {
	s.reconciler.Save(ctx, storage.Snapshot{
		Tickets:         s.tickets,
		Comments:        s.comments,
		PublicIDCounter: s.counter,
	})
}

// formatPublicID renders the sequential code, zero-padded to four digits and
// growing naturally beyond them.
func formatPublicID(counter int) string {
	return fmt.Sprintf("%s%04d", publicIDPrefix, counter)
}
