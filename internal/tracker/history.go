package tracker

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vijay-prabhu/leetboost/internal/problem"
)

// detailConcurrency bounds parallel detail lookups during backfill
const detailConcurrency = 4

// HistoryProvider supplies a user's solved problems and per-question details
type HistoryProvider interface {
	SignedInUsername(ctx context.Context) (string, error)
	SolvedByOwner(ctx context.Context) ([]problem.Solved, error)
	SolvedByREST(ctx context.Context) ([]problem.Solved, error)
	RecentAccepted(ctx context.Context, username string) ([]problem.Solved, error)
	QuestionDetail(ctx context.Context, slug string) (*problem.Detail, error)
}

// HistoryMode records which source produced the solved list
type HistoryMode string

const (
	// ModeOwner is the signed-in user's full problem list
	ModeOwner HistoryMode = "owner"
	// ModeOwnerREST is the legacy REST listing, used when the owner list is empty
	ModeOwnerREST HistoryMode = "owner-rest"
	// ModePublic is another user's recent accepted submissions
	ModePublic HistoryMode = "public"
)

const noteHistoryFailed = "Failed to fetch solved set."

// loadHistory picks the history source for username and returns the solved list.
// Failures are reported through the note and yield an empty list
func (t *Tracker) loadHistory(ctx context.Context, log zerolog.Logger, username string, rep *reporter) ([]problem.Solved, HistoryMode, string) {
	signedIn, err := t.history.SignedInUsername(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("user status unavailable, treating as public view")
	}
	isOwner := signedIn != "" && strings.EqualFold(signedIn, username)

	if isOwner {
		rep.report(PhaseHistory, 0, 0, "Fetching your solved problems")
		solved, err := t.history.SolvedByOwner(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("owner problem list failed")
		}
		if len(solved) > 0 {
			return solved, ModeOwner, ""
		}

		rep.report(PhaseHistory, 0, 0, "Falling back to REST listing")
		solved, err = t.history.SolvedByREST(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("REST listing failed")
			return nil, ModeOwnerREST, noteHistoryFailed
		}
		return solved, ModeOwnerREST, ""
	}

	rep.report(PhaseHistory, 0, 0, "Fetching recent accepted submissions")
	solved, err := t.history.RecentAccepted(ctx, username)
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("recent submissions failed")
		return nil, ModePublic, noteHistoryFailed
	}

	t.backfillDetails(ctx, log, solved, rep)
	return solved, ModePublic, ""
}

// backfillDetails fills title, difficulty and tags for the first entries of a
// public history. Lookups that fail leave the entry as is
func (t *Tracker) backfillDetails(ctx context.Context, log zerolog.Logger, solved []problem.Solved, rep *reporter) {
	n := len(solved)
	if n > t.opts.DetailBackfill {
		n = t.opts.DetailBackfill
	}
	if n == 0 {
		return
	}

	started := time.Now()
	var done int64
	rep.send(Progress{Phase: PhaseDetails, Total: n, Description: "Looking up problem details", StartedAt: started})

	var g errgroup.Group
	g.SetLimit(detailConcurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			d, err := t.history.QuestionDetail(ctx, solved[i].Slug)
			if err != nil {
				log.Debug().Err(err).Str("slug", solved[i].Slug).Msg("detail lookup failed")
			} else if d != nil {
				if d.Title != "" {
					solved[i].Title = d.Title
				}
				solved[i].Difficulty = d.Difficulty
				solved[i].Tags = d.Tags
			}
			current := int(atomic.AddInt64(&done, 1))
			rep.send(Progress{
				Phase:       PhaseDetails,
				Current:     current,
				Total:       n,
				Description: "Looking up problem details",
				StartedAt:   started,
			})
			return nil
		})
	}
	g.Wait()
}
