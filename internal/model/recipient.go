package model

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// colorPalette is the fixed set of distinct recipient colors. A recipient
// created without an explicit color gets a random palette entry.
var colorPalette = []string{
	"#4f46e5", // indigo
	"#0ea5e9", // sky blue
	"#10b981", // emerald
	"#f59e0b", // amber
	"#ef4444", // red
	"#8b5cf6", // violet
	"#ec4899", // pink
	"#06b6d4", // cyan
	"#84cc16", // lime
	"#f97316", // orange
	"#6366f1", // indigo
	"#14b8a6", // teal
	"#a855f7", // purple
	"#f43f5e", // rose
	"#0284c7", // light blue
	"#059669", // green
	"#d946ef", // fuchsia
	"#6d28d9", // purple
}

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Recipient is a party fields are assigned to. Identity is the ID; name and
// email are display data, color groups the recipient's fields visually.
type Recipient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Color string `json:"color"`
}

// NewRecipient builds a recipient from raw input. Name and email are trimmed;
// a missing id or color is generated. Validity is checked separately via
// Validate so callers can surface the error.
func NewRecipient(name, email, color string) Recipient {
	if color == "" {
		color = colorPalette[rand.Intn(len(colorPalette))]
	}
	return Recipient{
		ID:    fmt.Sprintf("recipient-%s", uuid.NewString()),
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Color: color,
	}
}

// Validate checks the recipient invariants: non-empty name, and a plausible
// email shape when an email is present at all.
func (r Recipient) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("recipient name cannot be empty")
	}
	if r.Email != "" && !emailShape.MatchString(r.Email) {
		return fmt.Errorf("invalid email address: %s", r.Email)
	}
	return nil
}

// DisplayName formats the recipient for listings, appending the email when
// one is set.
func (r Recipient) DisplayName() string {
	if r.Email != "" {
		return fmt.Sprintf("%s <%s>", r.Name, r.Email)
	}
	return r.Name
}

// Updated returns a copy of r with the non-empty updates applied. Email is
// special-cased so it can be cleared: pass a pointer.
func (r Recipient) Updated(name string, email *string, color string) Recipient {
	out := r
	if name != "" {
		out.Name = strings.TrimSpace(name)
	}
	if email != nil {
		out.Email = strings.TrimSpace(*email)
	}
	if color != "" {
		out.Color = color
	}
	return out
}

// CloneRecipients deep-copies a recipient list.
func CloneRecipients(recipients []Recipient) []Recipient {
	out := make([]Recipient, len(recipients))
	copy(out, recipients)
	return out
}
