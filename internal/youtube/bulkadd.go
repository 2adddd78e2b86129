package youtube

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/avolkov/youtube-playlist-mcp/internal/videoid"
)

// DefaultInsertPace is the fixed delay between consecutive playlist inserts.
// The provider throttles bursts of mutation calls from one credential.
const DefaultInsertPace = 250 * time.Millisecond

// inserter is the single write primitive the bulk mutator needs.
// *Client satisfies it; tests substitute a stub.
type inserter interface {
	InsertVideo(ctx context.Context, playlistID, videoID string, position *int64) (*InsertedItem, error)
}

// AddOutcome is the per-reference record produced by a bulk add.
// Exactly one of the success fields (Title/Position) or Error is meaningful.
type AddOutcome struct {
	Ref     string // original user-supplied reference
	VideoID string // normalized ID, empty when the reference was unrecognized
	Added   bool
	Title   string
	// Position is the provider-reported position of the inserted entry.
	// Only meaningful when Added is true and a start position was given.
	Position int64
	Error    string
}

// BulkAdder inserts batches of video references into a playlist one at a
// time, pacing consecutive provider calls with a fixed delay.
type BulkAdder struct {
	inserter inserter
	limiter  *rate.Limiter
}

// NewBulkAdder creates a BulkAdder over the given client.
// A pace <= 0 falls back to DefaultInsertPace.
func NewBulkAdder(client *Client, pace time.Duration) *BulkAdder {
	return newBulkAdder(client, pace)
}

func newBulkAdder(ins inserter, pace time.Duration) *BulkAdder {
	if pace <= 0 {
		pace = DefaultInsertPace
	}
	// Burst 1: the first insert goes out immediately, every following
	// insert waits out the pace interval.
	return &BulkAdder{
		inserter: ins,
		limiter:  rate.NewLimiter(rate.Every(pace), 1),
	}
}

// Run inserts refs into the playlist sequentially, in input order, and
// returns one outcome per input reference in the same order. A failure on
// one reference never aborts the rest of the batch.
//
// When startPosition is non-nil the first provider attempt uses it verbatim
// and each subsequent attempt uses startPosition plus the number of prior
// attempts, successful or not, keeping the batch's positions contiguous.
// Unrecognized references are rejected before any provider call and do not
// consume a position slot. A nil startPosition omits position entirely and
// the provider appends.
//
// Inserts are strictly sequential: position assignment for attempt n is
// defined by the count of attempts before it, so no two inserts for the
// same batch may ever be in flight at once.
func (b *BulkAdder) Run(ctx context.Context, playlistID string, refs []string, startPosition *int64) []AddOutcome {
	outcomes := make([]AddOutcome, 0, len(refs))
	attempted := 0

	for i, ref := range refs {
		id, ok := videoid.Normalize(ref)
		if !ok || !videoid.Valid(id) {
			outcomes = append(outcomes, AddOutcome{
				Ref:   ref,
				Error: "not a recognizable YouTube video ID or URL",
			})
			continue
		}

		// Fixed inter-call pacing; the limiter's initial token makes the
		// first attempt immediate. A cancelled context fails the rest of
		// the batch without dropping entries.
		if err := b.limiter.Wait(ctx); err != nil {
			for _, rest := range refs[i:] {
				outcomes = append(outcomes, AddOutcome{Ref: rest, Error: err.Error()})
			}
			return outcomes
		}

		var position *int64
		if startPosition != nil {
			p := *startPosition + int64(attempted)
			position = &p
		}
		attempted++

		item, err := b.inserter.InsertVideo(ctx, playlistID, id, position)
		if err != nil {
			outcomes = append(outcomes, AddOutcome{
				Ref:     ref,
				VideoID: id,
				Error:   err.Error(),
			})
			continue
		}

		outcome := AddOutcome{
			Ref:     ref,
			VideoID: id,
			Added:   true,
			Title:   item.Title,
		}
		if position != nil {
			outcome.Position = item.Position
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}
