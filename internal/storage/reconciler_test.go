package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/easyclick/support-desk/internal/domain"
)

func testTicket(id string, publicID string) domain.Ticket {
	return domain.Ticket{
		ID:          id,
		PublicID:    publicID,
		Title:       "Printer offline",
		Description: "The office printer stopped responding this morning.",
		Status:      domain.TicketStatusNew,
		Priority:    domain.TicketPriorityMedium,
		Requester:   domain.NewRequester("Ana Ruiz", "ana.ruiz@example.com"),
		Tags:        []string{"hardware"},
		CreatedAt:   time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 8, 2, 10, 30, 0, 0, time.UTC),
	}
}

func testSnapshot(counter int, publicIDs ...string) Snapshot {
	tickets := make([]domain.Ticket, 0, len(publicIDs))
	for i, publicID := range publicIDs {
		tickets = append(tickets, testTicket(fmt.Sprintf("TCK-%d", i+1), publicID))
	}
	return Snapshot{Tickets: tickets, Comments: []domain.Comment{}, PublicIDCounter: counter}
}

func newTestReconciler(t *testing.T) (*Reconciler, *MemoryMedium) {
	t.Helper()
	medium := NewMemoryMedium()
	return NewReconciler(medium, zap.NewNop()), medium
}

func TestLoadSeedsWhenMediumEmpty(t *testing.T) {
	reconciler, medium := newTestReconciler(t)

	snapshot := reconciler.Load(context.Background())

	seed := SeedSnapshot()
	require.Len(t, snapshot.Tickets, len(seed.Tickets))
	require.Equal(t, seed.PublicIDCounter, snapshot.PublicIDCounter)
	for i := range seed.Tickets {
		require.Equal(t, seed.Tickets[i].ID, snapshot.Tickets[i].ID)
		require.Equal(t, seed.Tickets[i].PublicID, snapshot.Tickets[i].PublicID)
	}

	// seeding also persists
	_, found, err := medium.Get(context.Background(), PrimaryKey)
	require.NoError(t, err)
	require.True(t, found)
}

func TestLoadMigratesLegacyKey(t *testing.T) {
	reconciler, medium := newTestReconciler(t)
	ctx := context.Background()

	data, err := json.Marshal(testSnapshot(1003, "EC-1001", "EC-1002"))
	require.NoError(t, err)
	require.NoError(t, medium.Set(ctx, LegacyKey, string(data)))

	snapshot := reconciler.Load(ctx)

	require.Len(t, snapshot.Tickets, 2)
	require.Equal(t, 1003, snapshot.PublicIDCounter)

	_, found, err := medium.Get(ctx, LegacyKey)
	require.NoError(t, err)
	require.False(t, found, "legacy key should be removed after migration")

	migrated, found, err := medium.Get(ctx, PrimaryKey)
	require.NoError(t, err)
	require.True(t, found)
	require.JSONEq(t, string(data), migrated)
}

func TestLoadAcceptsWrappedShape(t *testing.T) {
	reconciler, medium := newTestReconciler(t)
	ctx := context.Background()

	inner, err := json.Marshal(testSnapshot(1002, "EC-1001"))
	require.NoError(t, err)
	wrapped := fmt.Sprintf(`{"state":%s,"version":0}`, inner)
	require.NoError(t, medium.Set(ctx, PrimaryKey, wrapped))

	snapshot := reconciler.Load(ctx)

	require.Len(t, snapshot.Tickets, 1)
	require.Equal(t, "EC-1001", snapshot.Tickets[0].PublicID)
	require.Equal(t, 1002, snapshot.PublicIDCounter)
}

func TestLoadAcceptsWrappedPairShape(t *testing.T) {
	reconciler, medium := newTestReconciler(t)
	ctx := context.Background()

	pair := struct {
		Tickets  []domain.Ticket  `json:"tickets"`
		Comments []domain.Comment `json:"comments"`
	}{
		Tickets:  testSnapshot(0, "EC-1005").Tickets,
		Comments: []domain.Comment{},
	}
	inner, err := json.Marshal(pair)
	require.NoError(t, err)
	require.NoError(t, medium.Set(ctx, PrimaryKey, fmt.Sprintf(`{"state":%s}`, inner)))

	snapshot := reconciler.Load(ctx)

	require.Len(t, snapshot.Tickets, 1)
	require.Equal(t, 1006, snapshot.PublicIDCounter, "counter derived from max digit run + 1")
}

func TestLoadAcceptsBarePairShape(t *testing.T) {
	reconciler, medium := newTestReconciler(t)
	ctx := context.Background()

	pair := struct {
		Tickets  []domain.Ticket  `json:"tickets"`
		Comments []domain.Comment `json:"comments"`
	}{
		Tickets:  testSnapshot(0, "EC-1001", "EC-1003", "X-7").Tickets,
		Comments: []domain.Comment{},
	}
	data, err := json.Marshal(pair)
	require.NoError(t, err)
	require.NoError(t, medium.Set(ctx, PrimaryKey, string(data)))

	snapshot := reconciler.Load(ctx)

	require.Len(t, snapshot.Tickets, 3)
	require.Equal(t, 1004, snapshot.PublicIDCounter, "X-7 contributes 7, below the 1003 maximum")
}

func TestLoadDerivesInvalidCounter(t *testing.T) {
	for _, counter := range []int{0, -5} {
		t.Run(fmt.Sprintf("counter_%d", counter), func(t *testing.T) {
			reconciler, medium := newTestReconciler(t)
			ctx := context.Background()

			data, err := json.Marshal(testSnapshot(counter, "EC-1007"))
			require.NoError(t, err)
			require.NoError(t, medium.Set(ctx, PrimaryKey, string(data)))

			snapshot := reconciler.Load(ctx)
			require.Equal(t, 1008, snapshot.PublicIDCounter)

			// the repaired counter is written back
			healed, found, err := medium.Get(ctx, PrimaryKey)
			require.NoError(t, err)
			require.True(t, found)
			var persisted Snapshot
			require.NoError(t, json.Unmarshal([]byte(healed), &persisted))
			require.Equal(t, 1008, persisted.PublicIDCounter)
		})
	}
}

func TestLoadFallsBackToSeed(t *testing.T) {
	cases := map[string]string{
		"unparseable":            `{not json`,
		"wrong root type":        `[1,2,3]`,
		"missing collections":    `{"publicIdCounter":5}`,
		"ticket missing title":   `{"tickets":[{"id":"t1","publicId":"EC-1","description":"d","status":"new","priority":"low","requester":"A","tags":[],"createdAt":"2026-08-01T00:00:00Z","updatedAt":"2026-08-01T00:00:00Z"}],"comments":[],"publicIdCounter":2}`,
		"tags not string array":  `{"tickets":[{"id":"t1","publicId":"EC-1","title":"t","description":"d","status":"new","priority":"low","requester":"A","tags":[1,2],"createdAt":"2026-08-01T00:00:00Z","updatedAt":"2026-08-01T00:00:00Z"}],"comments":[],"publicIdCounter":2}`,
		"comment missing author": `{"tickets":[],"comments":[{"id":"c1","ticketId":"t1","message":"m","createdAt":"2026-08-01T00:00:00Z"}],"publicIdCounter":2}`,
		"assignee is null":       `{"tickets":[{"id":"t1","publicId":"EC-1","title":"t","description":"d","status":"new","priority":"low","requester":"A","assignee":null,"tags":[],"createdAt":"2026-08-01T00:00:00Z","updatedAt":"2026-08-01T00:00:00Z"}],"comments":[],"publicIdCounter":2}`,
		"comment role is null":   `{"tickets":[],"comments":[{"id":"c1","ticketId":"t1","author":"A","message":"m","authorRole":null,"createdAt":"2026-08-01T00:00:00Z"}],"publicIdCounter":2}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			reconciler, medium := newTestReconciler(t)
			ctx := context.Background()
			require.NoError(t, medium.Set(ctx, PrimaryKey, raw))

			snapshot := reconciler.Load(ctx)

			seed := SeedSnapshot()
			require.Len(t, snapshot.Tickets, len(seed.Tickets))
			require.Equal(t, seed.Tickets[0].ID, snapshot.Tickets[0].ID)
			require.Equal(t, seed.PublicIDCounter, snapshot.PublicIDCounter)
		})
	}
}

func TestLoadRejectsFractionalCounter(t *testing.T) {
	reconciler, medium := newTestReconciler(t)
	ctx := context.Background()

	tickets, err := json.Marshal(testSnapshot(0, "EC-1007").Tickets)
	require.NoError(t, err)
	raw := fmt.Sprintf(`{"tickets":%s,"comments":[],"publicIdCounter":2.5}`, tickets)
	require.NoError(t, medium.Set(ctx, PrimaryKey, raw))

	snapshot := reconciler.Load(ctx)

	require.Len(t, snapshot.Tickets, 1)
	require.Equal(t, 1008, snapshot.PublicIDCounter, "a fractional counter is discarded and re-derived")
}

func TestLoadReseedsEmptyTicketCollection(t *testing.T) {
	reconciler, medium := newTestReconciler(t)
	ctx := context.Background()

	require.NoError(t, medium.Set(ctx, PrimaryKey, `{"tickets":[],"comments":[],"publicIdCounter":42}`))

	snapshot := reconciler.Load(ctx)

	require.NotEmpty(t, snapshot.Tickets, "an empty store is replaced by seed data")
	require.Equal(t, SeedSnapshot().PublicIDCounter, snapshot.PublicIDCounter)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	reconciler, _ := newTestReconciler(t)
	ctx := context.Background()

	role := domain.AuthorRoleAgent
	assignee := "Carlos Vega"
	original := Snapshot{
		Tickets: []domain.Ticket{
			{
				ID:          "TCK-1",
				PublicID:    "EC-1001",
				Title:       "VPN drops every hour",
				Description: "Connection resets at minute 60 regardless of activity.",
				Status:      domain.TicketStatusInProgress,
				Priority:    domain.TicketPriorityHigh,
				Requester:   domain.NewRequester("Sofia Morales", "sofia.morales@example.com"),
				Assignee:    &assignee,
				Tags:        []string{"network", "vpn"},
				CreatedAt:   time.Date(2026, 8, 10, 8, 15, 0, 0, time.UTC),
				UpdatedAt:   time.Date(2026, 8, 11, 17, 45, 0, 0, time.UTC),
			},
		},
		Comments: []domain.Comment{
			{
				ID:         "CMT-1",
				TicketID:   "TCK-1",
				Author:     "Carlos Vega",
				Message:    "Scheduled a packet capture for the next drop.",
				AuthorRole: &role,
				CreatedAt:  time.Date(2026, 8, 11, 9, 0, 0, 0, time.UTC),
			},
			{
				// legacy comment without a role
				ID:        "CMT-0",
				TicketID:  "TCK-1",
				Author:    "Sofia Morales",
				Message:   "Happens on wired and wireless.",
				CreatedAt: time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC),
			},
		},
		PublicIDCounter: 1002,
	}

	reconciler.Save(ctx, original)
	loaded := reconciler.Load(ctx)

	require.Equal(t, original, loaded)

	// saving what was loaded changes nothing
	reconciler.Save(ctx, loaded)
	require.Equal(t, original, reconciler.Load(ctx))
}

func TestNilMediumIsEphemeral(t *testing.T) {
	reconciler := NewReconciler(nil, zap.NewNop())
	ctx := context.Background()

	snapshot := reconciler.Load(ctx)
	require.NotEmpty(t, snapshot.Tickets)

	// no medium to write to; must not panic
	reconciler.Save(ctx, snapshot)
}

func TestNextPublicIDCounter(t *testing.T) {
	tests := []struct {
		name      string
		publicIDs []string
		want      int
	}{
		{"empty", nil, 1},
		{"single", []string{"EC-1001"}, 1002},
		{"mixed prefixes", []string{"EC-1001", "EC-1003", "X-7"}, 1004},
		{"no digits", []string{"EC-", "TICKET"}, 1},
		{"first digit run wins", []string{"EC-12-99"}, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tickets := make([]domain.Ticket, 0, len(tt.publicIDs))
			for _, publicID := range tt.publicIDs {
				tickets = append(tickets, domain.Ticket{PublicID: publicID})
			}
			require.Equal(t, tt.want, NextPublicIDCounter(tickets))
		})
	}
}
