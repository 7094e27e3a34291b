package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/easyclick/support-desk/internal/domain"
	"github.com/easyclick/support-desk/internal/events"
	"github.com/easyclick/support-desk/internal/store"
	apperrors "github.com/easyclick/support-desk/pkg/util"
)

// TicketService coordinates ticket workflows for both the agent and the
// customer portal surfaces: input validation, store mutations, and event
// publication.
type TicketService struct {
	store      *store.TicketStore
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Store      *store.TicketStore
	Dispatcher events.Dispatcher
}

// CreateTicketInput describes a ticket submission.
type CreateTicketInput struct {
	Title          string
	Description    string
	Priority       domain.TicketPriority
	RequesterName  string
	RequesterEmail string
	Assignee       *string
	Tags           []string
}

// ListFilter narrows agent ticket listings. Zero value lists everything.
type ListFilter struct {
	Status *domain.TicketStatus
	Query  string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket validates the submission and creates the ticket. Used by both
// the agent view and the customer portal.
func (s *TicketService) CreateTicket(ctx context.Context, input CreateTicketInput) (domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return domain.Ticket{}, apperrors.NewValidationError("title and description required", nil)
	}

	requester := domain.NewRequester(input.RequesterName, input.RequesterEmail)
	if requester.Name == "" {
		return domain.Ticket{}, apperrors.NewValidationError("requester name required", nil)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.Valid() {
		return domain.Ticket{}, apperrors.NewValidationError("unknown priority", map[string]any{"priority": string(input.Priority)})
	}

	ticket := s.store.CreateTicket(ctx, store.CreateTicketInput{
		Title:       title,
		Description: description,
		Priority:    priority,
		Requester:   requester,
		Assignee:    normalizeAssignee(input.Assignee),
		Tags:        input.Tags,
	})

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		PublicID: ticket.PublicID,
		Actor:    customerActor(ticket.Requester.Name),
		Payload: events.TicketCreatedPayload{
			Title:     ticket.Title,
			Priority:  ticket.Priority,
			Requester: ticket.Requester.String(),
			Tags:      ticket.Tags,
		},
	})
	return ticket, nil
}

// ListTickets returns tickets matching the filter, most recent first.
func (s *TicketService) ListTickets(filter ListFilter) []domain.Ticket {
	tickets := s.store.Search(filter.Query)
	if filter.Status == nil {
		return tickets
	}
	matched := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if ticket.Status == *filter.Status {
			matched = append(matched, ticket)
		}
	}
	return matched
}

// Counts tallies tickets per status.
func (s *TicketService) Counts() map[domain.TicketStatus]int {
	return s.store.Counts()
}

// TicketDetail returns a ticket and its comment timeline.
func (s *TicketService) TicketDetail(ticketID string) (domain.Ticket, []domain.Comment, error) {
	ticket, err := s.store.TicketByID(ticketID)
	if err != nil {
		return domain.Ticket{}, nil, err
	}
	return ticket, s.store.CommentsForTicket(ticket.ID), nil
}

// UpdateStatus moves a ticket to a new status.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, status domain.TicketStatus, agent string) (domain.Ticket, error) {
	if !status.Valid() {
		return domain.Ticket{}, apperrors.NewValidationError("unknown status", map[string]any{"status": string(status)})
	}
	before, err := s.store.TicketByID(ticketID)
	if err != nil {
		return domain.Ticket{}, err
	}
	ticket, err := s.store.UpdateStatus(ctx, ticketID, status)
	if err != nil {
		return domain.Ticket{}, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		PublicID: ticket.PublicID,
		Actor:    agentActor(agent),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: before.Status,
			NewStatus: ticket.Status,
		},
	})
	return ticket, nil
}

// UpdatePriority changes a ticket's priority.
func (s *TicketService) UpdatePriority(ctx context.Context, ticketID string, priority domain.TicketPriority, agent string) (domain.Ticket, error) {
	if !priority.Valid() {
		return domain.Ticket{}, apperrors.NewValidationError("unknown priority", map[string]any{"priority": string(priority)})
	}
	before, err := s.store.TicketByID(ticketID)
	if err != nil {
		return domain.Ticket{}, err
	}
	ticket, err := s.store.UpdatePriority(ctx, ticketID, priority)
	if err != nil {
		return domain.Ticket{}, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketPriorityChanged,
		TicketID: ticket.ID,
		PublicID: ticket.PublicID,
		Actor:    agentActor(agent),
		Payload: events.TicketPriorityChangedPayload{
			OldPriority: before.Priority,
			NewPriority: ticket.Priority,
		},
	})
	return ticket, nil
}

// Assign sets or, with nil, clears the assignee.
func (s *TicketService) Assign(ctx context.Context, ticketID string, assignee *string, agent string) (domain.Ticket, error) {
	ticket, err := s.store.Assign(ctx, ticketID, normalizeAssignee(assignee))
	if err != nil {
		return domain.Ticket{}, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		PublicID: ticket.PublicID,
		Actor:    agentActor(agent),
		Payload: events.TicketAssignedPayload{
			Assignee: ticket.Assignee,
		},
	})
	return ticket, nil
}

// AddAgentComment appends an agent comment to a ticket's timeline.
func (s *TicketService) AddAgentComment(ctx context.Context, ticketID, author, message string) (domain.Comment, error) {
	return s.addComment(ctx, ticketID, author, message, domain.AuthorRoleAgent)
}

// PortalSubmit creates a ticket from the customer portal.
func (s *TicketService) PortalSubmit(ctx context.Context, input CreateTicketInput) (domain.Ticket, error) {
	input.Assignee = nil
	return s.CreateTicket(ctx, input)
}

// PortalStatus returns a ticket and its timeline by public code, provided
// the supplied email matches the requester. Mismatches report not-found so
// the lookup does not leak ticket existence.
func (s *TicketService) PortalStatus(publicID, email string) (domain.Ticket, []domain.Comment, error) {
	ticket, err := s.store.TicketByPublicID(publicID)
	if err != nil {
		return domain.Ticket{}, nil, err
	}
	if !ticket.Requester.EmailMatches(email) {
		return domain.Ticket{}, nil, domain.ErrTicketNotFound
	}
	return ticket, s.store.CommentsForTicket(ticket.ID), nil
}

// PortalAddComment appends a customer comment after the same public id and
// email check as PortalStatus.
func (s *TicketService) PortalAddComment(ctx context.Context, publicID, email, message string) (domain.Comment, error) {
	ticket, _, err := s.PortalStatus(publicID, email)
	if err != nil {
		return domain.Comment{}, err
	}
	return s.addComment(ctx, ticket.ID, ticket.Requester.Name, message, domain.AuthorRoleCustomer)
}

func (s *TicketService) addComment(ctx context.Context, ticketID, author, message string, role domain.CommentAuthorRole) (domain.Comment, error) {
	author = strings.TrimSpace(author)
	message = strings.TrimSpace(message)
	if author == "" || message == "" {
		return domain.Comment{}, apperrors.NewValidationError("author and message required", nil)
	}

	comment := s.store.AddComment(ctx, ticketID, store.CreateCommentInput{
		Author:     author,
		Message:    message,
		AuthorRole: &role,
	})

	s.publishEvent(ctx, events.Event{
		Type:     events.EventCommentAdded,
		TicketID: ticketID,
		Actor:    events.Actor{Role: role, Name: author},
		Payload: events.CommentAddedPayload{
			CommentID:      comment.ID,
			Author:         comment.Author,
			AuthorRole:     comment.AuthorRole,
			MessagePreview: messagePreview(comment.Message, 120),
		},
	})
	return comment, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	s.dispatcher.Publish(ctx, event)
}

func customerActor(name string) events.Actor {
	return events.Actor{Role: domain.AuthorRoleCustomer, Name: name}
}

func agentActor(name string) events.Actor {
	return events.Actor{Role: domain.AuthorRoleAgent, Name: name}
}

// normalizeAssignee treats blank input as unassigned.
func normalizeAssignee(assignee *string) *string {
	if assignee == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*assignee)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func messagePreview(message string, max int) string {
	message = strings.TrimSpace(message)
	if len(message) <= max {
		return message
	}
	if max <= 3 {
		return message[:max]
	}
	return message[:max-3] + "..."
}
