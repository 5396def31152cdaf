package types

import (
	"fmt"
	"strings"
)

// Phone is a phone number in both the form it appeared in the source
// and its normalized form used for matching.
type Phone struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
}

// ContactRecord is an immutable snapshot of one contact as loaded from
// an address book or a vCard file. It is never mutated during grouping
// or selection; a run either deletes the whole record or keeps it.
type ContactRecord struct {
	// ID is unique within the source: the vCard UID when present, the
	// object path for CardDAV records, or a generated UUID otherwise.
	ID string `json:"id"`

	// Path is the server-side object path for CardDAV records. Empty in
	// file mode.
	Path string `json:"path,omitempty"`

	FullName     string   `json:"full_name,omitempty"`
	Emails       []string `json:"emails,omitempty"`
	Phones       []Phone  `json:"phones,omitempty"`
	Organization string   `json:"organization,omitempty"`
	Address      string   `json:"address,omitempty"`
	Birthday     string   `json:"birthday,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	HasPhoto     bool     `json:"has_photo,omitempty"`
}

// Validate checks that the record can participate in a run.
func (c *ContactRecord) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("contact record has no identifier")
	}
	return nil
}

// Completeness counts the non-empty notable fields: the display name,
// every email, every phone, organization, address, birthday, notes and
// photo. Higher means more information worth keeping.
func (c *ContactRecord) Completeness() int {
	score := 0
	if strings.TrimSpace(c.FullName) != "" {
		score++
	}
	for _, e := range c.Emails {
		if strings.TrimSpace(e) != "" {
			score++
		}
	}
	for _, p := range c.Phones {
		if p.Normalized != "" {
			score++
		}
	}
	if strings.TrimSpace(c.Organization) != "" {
		score++
	}
	if strings.TrimSpace(c.Address) != "" {
		score++
	}
	if strings.TrimSpace(c.Birthday) != "" {
		score++
	}
	if strings.TrimSpace(c.Notes) != "" {
		score++
	}
	if c.HasPhoto {
		score++
	}
	return score
}

// MethodCount is the total number of contact-method entries.
func (c *ContactRecord) MethodCount() int {
	return len(c.Emails) + len(c.Phones)
}

// DisplayName returns something printable even for nameless records.
func (c *ContactRecord) DisplayName() string {
	if name := strings.TrimSpace(c.FullName); name != "" {
		return name
	}
	if len(c.Emails) > 0 {
		return c.Emails[0]
	}
	return c.ID
}
