package storage

import (
	"time"

	"github.com/easyclick/support-desk/internal/domain"
)

// SeedSnapshot builds the default example dataset used whenever no usable
// persisted snapshot exists. Timestamps are relative to now so the example
// timeline always looks recent.
func SeedSnapshot() Snapshot {
	now := time.Now().UTC()
	daysAgo := func(days int) time.Time {
		return now.Add(-time.Duration(days) * 24 * time.Hour)
	}

	tickets := []domain.Ticket{
		{
			ID:          "TCK-1001",
			PublicID:    "EC-1001",
			Title:       "Login page hangs after submitting credentials",
			Description: "Several users report the sign-in form goes blank after submit and never redirects.",
			Status:      domain.TicketStatusInProgress,
			Priority:    domain.TicketPriorityHigh,
			Requester:   domain.NewRequester("Lucia Fernandez", "lucia.fernandez@example.com"),
			Assignee:    strPtr("Carlos Vega"),
			Tags:        []string{"auth", "frontend"},
			CreatedAt:   daysAgo(12),
			UpdatedAt:   daysAgo(1),
		},
		{
			ID:          "TCK-1002",
			PublicID:    "EC-1002",
			Title:       "Access request for new support agent",
			Description: "Account setup for a new agent joining the regional support team.",
			Status:      domain.TicketStatusNew,
			Priority:    domain.TicketPriorityMedium,
			Requester:   domain.NewRequester("Marcos Silva", "marcos.silva@example.com"),
			Tags:        []string{"accounts"},
			CreatedAt:   daysAgo(10),
			UpdatedAt:   daysAgo(10),
		},
		{
			ID:          "TCK-1003",
			PublicID:    "EC-1003",
			Title:       "Ticket list slow with filters applied",
			Description: "The ticket list takes more than ten seconds to load when filters are active.",
			Status:      domain.TicketStatusWaiting,
			Priority:    domain.TicketPriorityCritical,
			Requester:   domain.NewRequester("Sofia Morales", "sofia.morales@example.com"),
			Assignee:    strPtr("Valentina Rojas"),
			Tags:        []string{"performance", "backend"},
			CreatedAt:   daysAgo(9),
			UpdatedAt:   daysAgo(4),
		},
		{
			ID:          "TCK-1004",
			PublicID:    "EC-1004",
			Title:       "Priority change does not stick",
			Description: "Changing a ticket's priority reverts to the previous value after reload.",
			Status:      domain.TicketStatusInProgress,
			Priority:    domain.TicketPriorityMedium,
			Requester:   domain.NewRequester("Javier Paredes", "javier.paredes@example.com"),
			Assignee:    strPtr("Carlos Vega"),
			Tags:        []string{"bug", "api"},
			CreatedAt:   daysAgo(8),
			UpdatedAt:   daysAgo(2),
		},
		{
			ID:          "TCK-1005",
			PublicID:    "EC-1005",
			Title:       "Monthly ticket report export",
			Description: "Request to export the monthly ticket report in CSV format.",
			Status:      domain.TicketStatusNew,
			Priority:    domain.TicketPriorityLow,
			Requester:   domain.NewRequester("Ana Ruiz", "ana.ruiz@example.com"),
			Tags:        []string{"reports"},
			CreatedAt:   daysAgo(7),
			UpdatedAt:   daysAgo(7),
		},
		{
			ID:          "TCK-1006",
			PublicID:    "EC-1006",
			Title:       "Duplicate email notifications",
			Description: "Two identical emails are sent whenever a ticket is created.",
			Status:      domain.TicketStatusResolved,
			Priority:    domain.TicketPriorityHigh,
			Requester:   domain.NewRequester("Ivan Torres", "ivan.torres@example.com"),
			Assignee:    strPtr("Paula Nunez"),
			Tags:        []string{"email", "integrations"},
			CreatedAt:   daysAgo(6),
			UpdatedAt:   daysAgo(1),
		},
		{
			ID:          "TCK-1007",
			PublicID:    "EC-1007",
			Title:       "Update team email signature",
			Description: "Swap the corporate signature used in automatic replies.",
			Status:      domain.TicketStatusClosed,
			Priority:    domain.TicketPriorityLow,
			Requester:   domain.NewRequester("Julieta Saenz", "julieta.saenz@example.com"),
			Assignee:    strPtr("Paula Nunez"),
			Tags:        []string{"configuration"},
			CreatedAt:   daysAgo(6),
			UpdatedAt:   daysAgo(3),
		},
		{
			ID:          "TCK-1008",
			PublicID:    "EC-1008",
			Title:       "Dashboard missing today's metrics",
			Description: "The overview dashboard shows no data for the current day.",
			Status:      domain.TicketStatusInProgress,
			Priority:    domain.TicketPriorityHigh,
			Requester:   domain.NewRequester("Diego Castro", "diego.castro@example.com"),
			Assignee:    strPtr("Valentina Rojas"),
			Tags:        []string{"dashboard", "metrics"},
			CreatedAt:   daysAgo(5),
			UpdatedAt:   daysAgo(1),
		},
		{
			ID:          "TCK-1009",
			PublicID:    "EC-1009",
			Title:       "Attachment upload fails over 5 MB",
			Description: "Uploading files larger than 5 MB returns a generic error.",
			Status:      domain.TicketStatusWaiting,
			Priority:    domain.TicketPriorityMedium,
			Requester:   domain.NewRequester("Camila Herrera", "camila.herrera@example.com"),
			Tags:        []string{"attachments"},
			CreatedAt:   daysAgo(3),
			UpdatedAt:   daysAgo(2),
		},
		{
			ID:          "TCK-1010",
			PublicID:    "EC-1010",
			Title:       "Question about response time commitments",
			Description: "Customer asks which response times apply to their current plan.",
			Status:      domain.TicketStatusNew,
			Priority:    domain.TicketPriorityLow,
			Requester:   domain.NewRequester("Bruno Aguilar", "bruno.aguilar@example.com"),
			Tags:        []string{"sla", "billing"},
			CreatedAt:   daysAgo(1),
			UpdatedAt:   daysAgo(1),
		},
	}

	agentRole := domain.AuthorRoleAgent
	customerRole := domain.AuthorRoleCustomer
	comments := []domain.Comment{
		{
			ID:         "CMT-2001",
			TicketID:   "TCK-1001",
			Author:     "Carlos Vega",
			Message:    "Reproduced on staging; the session cookie is rejected after the redirect. Investigating.",
			AuthorRole: &agentRole,
			CreatedAt:  daysAgo(2),
		},
		{
			ID:         "CMT-2002",
			TicketID:   "TCK-1001",
			Author:     "Lucia Fernandez",
			Message:    "Happens in Chrome and Firefox for our whole team.",
			AuthorRole: &customerRole,
			CreatedAt:  daysAgo(4),
		},
		{
			ID:         "CMT-2003",
			TicketID:   "TCK-1003",
			Author:     "Valentina Rojas",
			Message:    "Waiting on the database team to confirm the missing index before deploying.",
			AuthorRole: &agentRole,
			CreatedAt:  daysAgo(4),
		},
		{
			ID:        "CMT-2004",
			TicketID:  "TCK-1004",
			Author:    "Carlos Vega",
			Message:   "The PATCH request returns 200 but the change is dropped by the cache layer.",
			CreatedAt: daysAgo(2),
		},
		{
			ID:         "CMT-2005",
			TicketID:   "TCK-1006",
			Author:     "Paula Nunez",
			Message:    "Deduplicated the outbound queue; please confirm you only receive one email now.",
			AuthorRole: &agentRole,
			CreatedAt:  daysAgo(1),
		},
		{
			ID:         "CMT-2006",
			TicketID:   "TCK-1009",
			Author:     "Camila Herrera",
			Message:    "Still failing with a 12 MB PDF as of this morning.",
			AuthorRole: &customerRole,
			CreatedAt:  daysAgo(2),
		},
	}

	return Snapshot{
		Tickets:         tickets,
		Comments:        comments,
		PublicIDCounter: NextPublicIDCounter(tickets),
	}
}

func strPtr(s string) *string {
	return &s
}
