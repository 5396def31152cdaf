// Package vcard loads contacts from an exported .vcf file and writes
// the deduplicated result back in the same format. It is the file-mode
// counterpart of the CardDAV store: "deleting" a contact here means
// dropping it from the output file.
package vcard

import (
	"context"
	"fmt"
	"io"
	"os"

	govcard "github.com/emersion/go-vcard"
	"github.com/google/uuid"

	"github.com/lmercier/ncdedup/internal/dedup"
	"github.com/lmercier/ncdedup/internal/types"
)

// FileStore holds a parsed vCard file and the set of records marked for
// deletion. Nothing is written until Flush.
type FileStore struct {
	outputPath string

	order   []string                // record IDs in input order
	cards   map[string]govcard.Card // by record ID
	records []*types.ContactRecord
	deleted map[string]bool
}

// Open reads and parses the input file. Malformed vCard data is a
// ParseError; the run cannot continue on a file it only half
// understands.
func Open(inputPath, outputPath string) (*FileStore, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, types.ParseError("open %s: %v", inputPath, err)
	}
	defer f.Close()

	s := &FileStore{
		outputPath: outputPath,
		cards:      make(map[string]govcard.Card),
		deleted:    make(map[string]bool),
	}
	if err := s.load(f); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load(r io.Reader) error {
	dec := govcard.NewDecoder(r)
	for {
		card, err := dec.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return types.ParseError("malformed vCard after %d record(s): %v", len(s.order), err)
		}

		id := card.Value(govcard.FieldUID)
		if id == "" || s.cards[id] != nil {
			// No UID, or a UID the file reuses: mint one so every
			// record has a distinct stable identifier for this run.
			id = uuid.NewString()
			card.SetValue(govcard.FieldUID, id)
		}

		s.order = append(s.order, id)
		s.cards[id] = card
		s.records = append(s.records, recordFromCard(id, card))
	}
}

// ListContacts returns the loaded records in input order.
func (s *FileStore) ListContacts() []*types.ContactRecord {
	return s.records
}

// DeleteContact marks a record as dropped from the output. It never
// touches the input file.
func (s *FileStore) DeleteContact(_ context.Context, rec *types.ContactRecord) error {
	if s.cards[rec.ID] == nil {
		return fmt.Errorf("unknown record %s", rec.ID)
	}
	s.deleted[rec.ID] = true
	return nil
}

// Flush writes every surviving record to the output path, preserving
// input order.
func (s *FileStore) Flush() error {
	f, err := os.Create(s.outputPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.outputPath, err)
	}
	defer f.Close()

	enc := govcard.NewEncoder(f)
	for _, id := range s.order {
		if s.deleted[id] {
			continue
		}
		card := s.cards[id]
		if card.Value(govcard.FieldVersion) == "" {
			govcard.ToV4(card)
		}
		if err := enc.Encode(card); err != nil {
			return fmt.Errorf("encode %s: %w", id, err)
		}
	}
	return nil
}

// Survivors counts the records that would remain in the output.
func (s *FileStore) Survivors() int {
	return len(s.order) - len(s.deleted)
}

// recordFromCard extracts the fields the dedup core compares on.
func recordFromCard(id string, card govcard.Card) *types.ContactRecord {
	rec := &types.ContactRecord{
		ID:           id,
		FullName:     card.PreferredValue(govcard.FieldFormattedName),
		Emails:       card.Values(govcard.FieldEmail),
		Organization: card.Value(govcard.FieldOrganization),
		Address:      card.Value(govcard.FieldAddress),
		Birthday:     card.Value(govcard.FieldBirthday),
		Notes:        card.Value(govcard.FieldNote),
		HasPhoto:     card.Value(govcard.FieldPhoto) != "",
	}
	for _, tel := range card.Values(govcard.FieldTelephone) {
		rec.Phones = append(rec.Phones, types.Phone{
			Raw:        tel,
			Normalized: dedup.NormalizePhone(tel),
		})
	}
	return rec
}
