package domain

import (
	"encoding/json"
	"strings"
)

// requesterSeparator joins the display name and email in the persisted
// composite form ("Ana Ruiz · ana.ruiz@example.com").
const requesterSeparator = " · "

// Requester identifies who opened a ticket. The email is normalized
// (trimmed, lower-cased) whenever the value is constructed, so consumers
// never need to re-parse or re-clean the composite form.
type Requester struct {
	Name  string
	Email string
}

// NewRequester builds a normalized requester from raw user input.
func NewRequester(name, email string) Requester {
	return Requester{
		Name:  strings.TrimSpace(name),
		Email: strings.ToLower(strings.TrimSpace(email)),
	}
}

// ParseRequester splits a persisted composite back into its parts,
// re-normalizing both. Input without a separator yields a name-only value.
func ParseRequester(composite string) Requester {
	name, email, found := strings.Cut(composite, requesterSeparator)
	if !found {
		return NewRequester(composite, "")
	}
	return NewRequester(name, email)
}

// String renders the composite persisted form.
func (r Requester) String() string {
	if r.Email == "" {
		return r.Name
	}
	return r.Name + requesterSeparator + r.Email
}

// EmailMatches reports whether the supplied email identifies this requester
// after normalization.
func (r Requester) EmailMatches(email string) bool {
	candidate := strings.ToLower(strings.TrimSpace(email))
	return candidate != "" && candidate == r.Email
}

// MarshalJSON serializes the requester as its composite string, the shape
// every historical snapshot stores.
func (r Requester) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts the composite string form.
func (r *Requester) UnmarshalJSON(data []byte) error {
	var composite string
	if err := json.Unmarshal(data, &composite); err != nil {
		return err
	}
	*r = ParseRequester(composite)
	return nil
}
