package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/tidalsec/entradump/pkg/types"
)

// MFASource and GroupSource are the two lookup capabilities the pipeline
// drives per user.
type MFASource interface {
	UserMFA(ctx context.Context, userID string) (types.MFAInfo, error)
}

type GroupSource interface {
	UserGroups(ctx context.Context, userID string) (types.GroupResult, error)
}

const DefaultConcurrency = 5

// Pipeline is the bounded-concurrency enrichment engine. One instance
// per export run; the stats reset when ProcessAll begins.
type Pipeline struct {
	mfa      MFASource
	groups   GroupSource
	catalog  *Catalog
	workers  int
	interval time.Duration
	progress io.Writer

	stats Stats
}

func NewPipeline(mfa MFASource, groups GroupSource, catalog *Catalog, workers int, progress io.Writer) *Pipeline {
	if workers <= 0 {
		workers = DefaultConcurrency
	}
	return &Pipeline{
		mfa:      mfa,
		groups:   groups,
		catalog:  catalog,
		workers:  workers,
		interval: 500 * time.Millisecond,
		progress: progress,
	}
}

// Snapshot exposes the run counters, for the final summary.
func (p *Pipeline) Snapshot() StatsSnapshot {
	return p.stats.Snapshot()
}

// ProcessAll enriches every user under the concurrency cap and returns
// the records in input order restricted to successes. A failing user is
// counted and logged, never fatal.
func (p *Pipeline) ProcessAll(ctx context.Context, users []types.User, hasPremium bool) []types.Record {
	p.stats.Begin(len(users))

	reporter := NewProgressReporter(&p.stats, p.interval, p.progress)
	reporter.Start()
	defer reporter.Stop()

	// Collected by submission slot so completion order cannot reorder
	// the output.
	results := make([]*types.Record, len(users))

	var wg sync.WaitGroup
	// One gate for the whole run; acquired before launch, in submission
	// order.
	sem := make(chan struct{}, p.workers)

	for i, user := range users {
		wg.Add(1)
		sem <- struct{}{}
		go func(slot int, u types.User) {
			defer wg.Done()
			defer func() { <-sem }()

			record, err := p.processOne(ctx, u, hasPremium)
			if err != nil {
				p.stats.RecordError()
				slog.Warn("User enrichment failed", "user", u.UserPrincipalName, "error", err)
				return
			}
			p.stats.RecordProcessed()
			results[slot] = record
		}(i, user)
	}

	wg.Wait()
	reporter.Stop()

	out := make([]types.Record, 0, len(users))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// processOne joins the two network lookups, derives license details from
// the catalog, and assembles the flat record.
func (p *Pipeline) processOne(ctx context.Context, u types.User, hasPremium bool) (*types.Record, error) {
	var (
		mfa    types.MFAInfo
		groups types.GroupResult
		mfaErr error
		grpErr error
	)

	var lookups sync.WaitGroup
	lookups.Add(2)
	go func() {
		defer lookups.Done()
		mfa, mfaErr = p.mfa.UserMFA(ctx, u.ID)
	}()
	go func() {
		defer lookups.Done()
		groups, grpErr = p.groups.UserGroups(ctx, u.ID)
	}()
	lookups.Wait()

	if mfaErr != nil {
		return nil, fmt.Errorf("mfa lookup: %w", mfaErr)
	}
	if grpErr != nil {
		return nil, fmt.Errorf("group lookup: %w", grpErr)
	}

	licenses := p.catalog.UserLicenseDetails(u.AssignedLicenses)
	record := BuildRecord(u, hasPremium, mfa, groups, licenses)
	return &record, nil
}
