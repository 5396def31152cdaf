// Package carddav talks to a Nextcloud address book over CardDAV. It
// wraps the emersion/go-webdav client with Nextcloud's discovery path,
// per-request timeouts, a bounded retry on transient failures, and a
// polite rate limit on deletions.
package carddav

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	govcard "github.com/emersion/go-vcard"
	"github.com/emersion/go-webdav"
	davcarddav "github.com/emersion/go-webdav/carddav"
	"golang.org/x/time/rate"

	"github.com/lmercier/ncdedup/internal/dedup"
	"github.com/lmercier/ncdedup/internal/types"
)

// Config holds the connection settings for one server.
type Config struct {
	ServerURL string
	Username  string
	Password  string

	// AddressBook selects a book by display name. Empty = first found.
	AddressBook string

	// Timeout bounds each individual DAV request. Default: 30s.
	Timeout time.Duration

	// MaxRetries is how many times a transient failure is retried.
	// Default: 1 (one reconnect attempt, then give up).
	MaxRetries int

	// RetryDelay is the pause before a retry. Default: 2s.
	RetryDelay time.Duration

	// DeleteRate caps deletion requests per second. Default: 5.
	DeleteRate rate.Limit
}

// DefaultConfig returns the network defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:    30 * time.Second,
		MaxRetries: 1,
		RetryDelay: 2 * time.Second,
		DeleteRate: 5,
	}
}

// Client is a connected CardDAV session bound to one address book.
type Client struct {
	dav     *davcarddav.Client
	cfg     Config
	limiter *rate.Limiter

	books []davcarddav.AddressBook
	book  davcarddav.AddressBook
}

// Connect authenticates against the Nextcloud DAV endpoint and resolves
// the target address book (principal → home set → books). All failures
// here are ConnectionErrors: without a book there is no run.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ServerURL == "" || cfg.Username == "" {
		return nil, types.ConnectionError("server URL and username are required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = DefaultConfig().RetryDelay
	}
	if cfg.DeleteRate == 0 {
		cfg.DeleteRate = DefaultConfig().DeleteRate
	}

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/remote.php/dav"
	httpClient := webdav.HTTPClientWithBasicAuth(&http.Client{}, cfg.Username, cfg.Password)
	dav, err := davcarddav.NewClient(httpClient, endpoint)
	if err != nil {
		return nil, types.ConnectionError("create client for %s: %v", endpoint, err)
	}

	c := &Client{
		dav:     dav,
		cfg:     cfg,
		limiter: rate.NewLimiter(cfg.DeleteRate, 1),
	}

	var principal string
	err = c.do(ctx, func(ctx context.Context) error {
		var err error
		principal, err = dav.FindCurrentUserPrincipal(ctx)
		return err
	})
	if err != nil {
		return nil, types.ConnectionError("find principal on %s: %v", endpoint, err)
	}

	var homeSet string
	err = c.do(ctx, func(ctx context.Context) error {
		var err error
		homeSet, err = dav.FindAddressBookHomeSet(ctx, principal)
		return err
	})
	if err != nil {
		return nil, types.ConnectionError("find address book home set: %v", err)
	}

	err = c.do(ctx, func(ctx context.Context) error {
		var err error
		c.books, err = dav.FindAddressBooks(ctx, homeSet)
		return err
	})
	if err != nil {
		return nil, types.ConnectionError("list address books: %v", err)
	}
	if len(c.books) == 0 {
		return nil, types.ConnectionError("no address books found; is the Contacts app enabled?")
	}

	book, err := pickBook(c.books, cfg.AddressBook)
	if err != nil {
		return nil, err
	}
	c.book = book
	return c, nil
}

// pickBook selects by case-insensitive display name, or the first book
// when no name is given.
func pickBook(books []davcarddav.AddressBook, name string) (davcarddav.AddressBook, error) {
	if name == "" {
		return books[0], nil
	}
	var available []string
	for _, b := range books {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}
		available = append(available, b.Name)
	}
	return davcarddav.AddressBook{}, types.ConnectionError(
		"address book %q not found (available: %s)", name, strings.Join(available, ", "))
}

// AddressBook returns the display name of the selected book.
func (c *Client) AddressBook() string {
	if c.book.Name != "" {
		return c.book.Name
	}
	return c.book.Path
}

// Books returns every address book discovered at connect time.
func (c *Client) Books() []davcarddav.AddressBook { return c.books }

// ListContacts fetches every contact in the selected address book.
func (c *Client) ListContacts(ctx context.Context) ([]*types.ContactRecord, error) {
	objects, err := c.listObjects(ctx, c.book.Path)
	if err != nil {
		return nil, types.ConnectionError("list contacts in %s: %v", c.AddressBook(), err)
	}

	records := make([]*types.ContactRecord, 0, len(objects))
	for _, obj := range objects {
		records = append(records, recordFromObject(obj))
	}
	return records, nil
}

// CountContacts returns the number of contacts in an arbitrary book.
// Used by the check command.
func (c *Client) CountContacts(ctx context.Context, bookPath string) (int, error) {
	objects, err := c.listObjects(ctx, bookPath)
	if err != nil {
		return 0, err
	}
	return len(objects), nil
}

func (c *Client) listObjects(ctx context.Context, bookPath string) ([]davcarddav.AddressObject, error) {
	query := &davcarddav.AddressBookQuery{
		DataRequest: davcarddav.AddressDataRequest{AllProp: true},
	}
	var objects []davcarddav.AddressObject
	err := c.do(ctx, func(ctx context.Context) error {
		var err error
		objects, err = c.dav.QueryAddressBook(ctx, bookPath, query)
		return err
	})
	return objects, err
}

// DeleteContact removes one address object from the server. Rate
// limited; a transient failure gets one retry, anything after that is
// the caller's per-record failure to report.
func (c *Client) DeleteContact(ctx context.Context, rec *types.ContactRecord) error {
	if rec.Path == "" {
		return fmt.Errorf("record %s has no server path", rec.ID)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	return c.do(ctx, func(ctx context.Context) error {
		return c.dav.RemoveAll(ctx, rec.Path)
	})
}

// recordFromObject maps a DAV address object to a ContactRecord. The
// vCard UID is the stable identifier; objects without one fall back to
// the server path, which is equally stable.
func recordFromObject(obj davcarddav.AddressObject) *types.ContactRecord {
	card := obj.Card
	id := card.Value(govcard.FieldUID)
	if id == "" {
		id = obj.Path
	}
	rec := &types.ContactRecord{
		ID:           id,
		Path:         obj.Path,
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
