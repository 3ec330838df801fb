package etl

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/tickermatch/internal/matcher"
)

// Fetcher provides the raw listing table.
type Fetcher interface {
	FetchListings(ctx context.Context) ([]matcher.Entry, error)
}

// Store persists the reference table and its refresh metadata.
type Store interface {
	ReplaceEntries(ctx context.Context, entries []matcher.Entry) error
	UpdateLastUpdated(ctx context.Context, at time.Time) error
}

// Updater refreshes the stored reference table from the listing source.
type Updater struct {
	fetcher Fetcher
	store   Store
	cfg     matcher.Config
	now     func() time.Time
}

// NewUpdater creates an updater.
func NewUpdater(fetcher Fetcher, store Store, cfg matcher.Config) *Updater {
	return &Updater{
		fetcher: fetcher,
		store:   store,
		cfg:     cfg,
		now:     time.Now,
	}
}

// UpdateTickers fetches the listing table, runs it through the corpus
// preparer, and replaces the stored table with the surviving (ticker, title)
// pairs. It returns the number of stored entries. A fetch that produces no
// matchable entries aborts the refresh so a bad upstream response cannot wipe
// the reference data.
func (u *Updater) UpdateTickers(ctx context.Context) (int, error) {
	entries, err := u.fetcher.FetchListings(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch listings: %w", err)
	}
	log.Printf("fetched %d listings", len(entries))

	corpus := matcher.Prepare(entries, u.cfg)
	if corpus.Len() == 0 {
		return 0, fmt.Errorf("no valid ticker data remains after filtering")
	}

	survivors := make([]matcher.Entry, 0, corpus.Len())
	for _, row := range corpus.Entries {
		survivors = append(survivors, matcher.Entry{Ticker: row.Ticker, Title: row.Title})
	}

	if err := u.store.ReplaceEntries(ctx, survivors); err != nil {
		return 0, fmt.Errorf("failed to store listings: %w", err)
	}
	if err := u.store.UpdateLastUpdated(ctx, u.now()); err != nil {
		return 0, fmt.Errorf("failed to record update time: %w", err)
	}

	log.Printf("stored %d of %d listings", len(survivors), len(entries))
	return len(survivors), nil
}
