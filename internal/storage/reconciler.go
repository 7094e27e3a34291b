package storage

import (
	"context"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/easyclick/support-desk/internal/domain"
)

// Snapshot is the full persisted unit.
type Snapshot struct {
	Tickets         []domain.Ticket  `json:"tickets"`
	Comments        []domain.Comment `json:"comments"`
	PublicIDCounter int              `json:"publicIdCounter"`
}

// Reconciler loads and saves snapshots through a Medium, absorbing every
// historical on-disk shape and repairing what it can. A nil medium means an
// ephemeral session: loads return seed data, saves do nothing.
type Reconciler struct {
	medium Medium
	logger *zap.Logger
}

// NewReconciler constructs a reconciler over the given medium.
func NewReconciler(medium Medium, logger *zap.Logger) *Reconciler {
	return &Reconciler{medium: medium, logger: logger}
}

// Load produces the canonical snapshot from whatever the medium holds.
// Absent, unparseable, or structurally invalid data falls back to the seed
// set; a snapshot that reconciles to zero tickets does too.
func (r *Reconciler) Load(ctx context.Context) Snapshot {
	if r.medium == nil {
		return SeedSnapshot()
	}

	raw, found := r.read(ctx, PrimaryKey)
	if !found {
		raw, found = r.migrateLegacy(ctx)
	}
	if !found {
		return r.reseed(ctx, "no persisted snapshot")
	}

	parsed, matched := parseSnapshot([]byte(raw))
	if !matched {
		return r.reseed(ctx, "unrecognized snapshot shape")
	}

	snapshot, healed := normalize(parsed)
	if len(snapshot.Tickets) == 0 {
		return r.reseed(ctx, "snapshot has no tickets")
	}
	if healed {
		r.Save(ctx, snapshot)
	}
	return snapshot
}

// Save serializes the snapshot and overwrites the primary key. Persistence
// failures are logged and absorbed: the in-memory state stays authoritative
// for the session either way.
func (r *Reconciler) Save(ctx context.Context, snapshot Snapshot) {
	if r.medium == nil {
		return
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		r.logger.Error("encode snapshot", zap.Error(err))
		return
	}
	if err := r.medium.Set(ctx, PrimaryKey, string(data)); err != nil {
		r.logger.Error("persist snapshot", zap.Error(err))
	}
}

func (r *Reconciler) read(ctx context.Context, key string) (string, bool) {
	raw, found, err := r.medium.Get(ctx, key)
	if err != nil {
		r.logger.Warn("read storage key", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return raw, found
}

// migrateLegacy copies data found under the legacy key to the primary key
// and removes the legacy key. One-time, observable as two medium writes.
func (r *Reconciler) migrateLegacy(ctx context.Context) (string, bool) {
	raw, found := r.read(ctx, LegacyKey)
	if !found {
		return "", false
	}
	if err := r.medium.Set(ctx, PrimaryKey, raw); err != nil {
		r.logger.Warn("migrate legacy key", zap.Error(err))
		return raw, true
	}
	if err := r.medium.Delete(ctx, LegacyKey); err != nil {
		r.logger.Warn("remove legacy key", zap.Error(err))
	}
	r.logger.Info("migrated legacy storage key", zap.String("from", LegacyKey), zap.String("to", PrimaryKey))
	return raw, true
}

func (r *Reconciler) reseed(ctx context.Context, reason string) Snapshot {
	r.logger.Info("seeding default snapshot", zap.String("reason", reason))
	snapshot := SeedSnapshot()
	r.Save(ctx, snapshot)
	return snapshot
}

// parsedSnapshot is a matcher result before counter repair.
type parsedSnapshot struct {
	tickets    []domain.Ticket
	comments   []domain.Comment
	counter    int
	hasCounter bool
}

type shapeMatcher func(data []byte) (parsedSnapshot, bool)

// Historical shapes, tried in order; first match wins. (a) the canonical
// snapshot object, (b) a wrapper whose "state" field holds (a) or a bare
// pair, (c) a bare {tickets, comments} pair without the counter.
var shapeMatchers = []shapeMatcher{matchCanonical, matchWrapped, matchPair}

func parseSnapshot(data []byte) (parsedSnapshot, bool) {
	for _, match := range shapeMatchers {
		if parsed, ok := match(data); ok {
			return parsed, true
		}
	}
	return parsedSnapshot{}, false
}

func matchCanonical(data []byte) (parsedSnapshot, bool) {
	var doc struct {
		Tickets         *[]json.RawMessage `json:"tickets"`
		Comments        *[]json.RawMessage `json:"comments"`
		PublicIDCounter *float64           `json:"publicIdCounter"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return parsedSnapshot{}, false
	}
	if doc.Tickets == nil || doc.Comments == nil || doc.PublicIDCounter == nil {
		return parsedSnapshot{}, false
	}
	// A fractional counter is an incorrectly typed field; the pair matcher
	// will take over and derive the counter instead.
	if *doc.PublicIDCounter != math.Trunc(*doc.PublicIDCounter) {
		return parsedSnapshot{}, false
	}
	tickets, ok := decodeTickets(*doc.Tickets)
	if !ok {
		return parsedSnapshot{}, false
	}
	comments, ok := decodeComments(*doc.Comments)
	if !ok {
		return parsedSnapshot{}, false
	}
	return parsedSnapshot{
		tickets:    tickets,
		comments:   comments,
		counter:    int(*doc.PublicIDCounter),
		hasCounter: true,
	}, true
}

func matchWrapped(data []byte) (parsedSnapshot, bool) {
	var doc struct {
		State json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(data, &doc); err != nil || doc.State == nil {
		return parsedSnapshot{}, false
	}
	if parsed, ok := matchCanonical(doc.State); ok {
		return parsed, true
	}
	return matchPair(doc.State)
}

func matchPair(data []byte) (parsedSnapshot, bool) {
	var doc struct {
		Tickets  *[]json.RawMessage `json:"tickets"`
		Comments *[]json.RawMessage `json:"comments"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return parsedSnapshot{}, false
	}
	if doc.Tickets == nil || doc.Comments == nil {
		return parsedSnapshot{}, false
	}
	tickets, ok := decodeTickets(*doc.Tickets)
	if !ok {
		return parsedSnapshot{}, false
	}
	comments, ok := decodeComments(*doc.Comments)
	if !ok {
		return parsedSnapshot{}, false
	}
	return parsedSnapshot{tickets: tickets, comments: comments}, true
}

// normalize repairs a missing or invalid counter by deriving it from the
// tickets. The healed flag requests a write-back so the persisted copy
// becomes canonical.
func normalize(parsed parsedSnapshot) (Snapshot, bool) {
	snapshot := Snapshot{
		Tickets:         parsed.tickets,
		Comments:        parsed.comments,
		PublicIDCounter: parsed.counter,
	}
	if !parsed.hasCounter || parsed.counter <= 0 {
		snapshot.PublicIDCounter = NextPublicIDCounter(parsed.tickets)
		return snapshot, true
	}
	return snapshot, false
}

// Validation is field-level and all-or-nothing: one malformed record fails
// the whole decode, pushing the load to the seed fallback.

func decodeTickets(raws []json.RawMessage) ([]domain.Ticket, bool) {
	tickets := make([]domain.Ticket, 0, len(raws))
	for _, raw := range raws {
		ticket, ok := decodeTicket(raw)
		if !ok {
			return nil, false
		}
		tickets = append(tickets, ticket)
	}
	return tickets, true
}

func decodeTicket(data json.RawMessage) (domain.Ticket, bool) {
	var raw struct {
		ID          *string         `json:"id"`
		PublicID    *string         `json:"publicId"`
		Title       *string         `json:"title"`
		Description *string         `json:"description"`
		Status      *string         `json:"status"`
		Priority    *string         `json:"priority"`
		Requester   *string         `json:"requester"`
		Assignee    json.RawMessage `json:"assignee"`
		Tags        *[]string       `json:"tags"`
		CreatedAt   *string         `json:"createdAt"`
		UpdatedAt   *string         `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Ticket{}, false
	}
	if raw.ID == nil || raw.PublicID == nil || raw.Title == nil || raw.Description == nil ||
		raw.Status == nil || raw.Priority == nil || raw.Requester == nil || raw.Tags == nil ||
		raw.CreatedAt == nil || raw.UpdatedAt == nil {
		return domain.Ticket{}, false
	}
	assignee, ok := decodeOptionalString(raw.Assignee)
	if !ok {
		return domain.Ticket{}, false
	}
	createdAt, err := time.Parse(time.RFC3339, *raw.CreatedAt)
	if err != nil {
		return domain.Ticket{}, false
	}
	updatedAt, err := time.Parse(time.RFC3339, *raw.UpdatedAt)
	if err != nil {
		return domain.Ticket{}, false
	}
	return domain.Ticket{
		ID:          *raw.ID,
		PublicID:    *raw.PublicID,
		Title:       *raw.Title,
		Description: *raw.Description,
		Status:      domain.TicketStatus(*raw.Status),
		Priority:    domain.TicketPriority(*raw.Priority),
		Requester:   domain.ParseRequester(*raw.Requester),
		Assignee:    assignee,
		Tags:        *raw.Tags,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, true
}

func decodeComments(raws []json.RawMessage) ([]domain.Comment, bool) {
	comments := make([]domain.Comment, 0, len(raws))
	for _, raw := range raws {
		comment, ok := decodeComment(raw)
		if !ok {
			return nil, false
		}
		comments = append(comments, comment)
	}
	return comments, true
}

func decodeComment(data json.RawMessage) (domain.Comment, bool) {
	var raw struct {
		ID         *string         `json:"id"`
		TicketID   *string         `json:"ticketId"`
		Author     *string         `json:"author"`
		Message    *string         `json:"message"`
		AuthorRole json.RawMessage `json:"authorRole"`
		CreatedAt  *string         `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Comment{}, false
	}
	if raw.ID == nil || raw.TicketID == nil || raw.Author == nil || raw.Message == nil || raw.CreatedAt == nil {
		return domain.Comment{}, false
	}
	role, ok := decodeOptionalString(raw.AuthorRole)
	if !ok {
		return domain.Comment{}, false
	}
	createdAt, err := time.Parse(time.RFC3339, *raw.CreatedAt)
	if err != nil {
		return domain.Comment{}, false
	}
	comment := domain.Comment{
		ID:        *raw.ID,
		TicketID:  *raw.TicketID,
		Author:    *raw.Author,
		Message:   *raw.Message,
		CreatedAt: createdAt,
	}
	if role != nil {
		authorRole := domain.CommentAuthorRole(*role)
		comment.AuthorRole = &authorRole
	}
	return comment, true
}

// decodeOptionalString accepts an absent field or a string value. An explicit
// JSON null, like any other non-string type, fails.
func decodeOptionalString(data json.RawMessage) (*string, bool) {
	if data == nil {
		return nil, true
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, false
	}
	return &value, true
}

var digitRun = regexp.MustCompile(`\d+`)

// NextPublicIDCounter derives the counter from existing tickets: the first
// run of digits in each public id, maximum across all, plus one. A public id
// without digits contributes zero.
func NextPublicIDCounter(tickets []domain.Ticket) int {
	max := 0
	for _, ticket := range tickets {
		match := digitRun.FindString(ticket.PublicID)
		if match == "" {
			continue
		}
		value, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if value > max {
			max = value
		}
	}
	return max + 1
}
