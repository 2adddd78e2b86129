package youtube

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// stubInserter records insert calls and fails the video IDs listed in failOn.
type stubInserter struct {
	failOn map[string]string // videoID -> error message

	calls []stubCall
}

type stubCall struct {
	playlistID string
	videoID    string
	position   *int64
}

func (s *stubInserter) InsertVideo(_ context.Context, playlistID, videoID string, position *int64) (*InsertedItem, error) {
	s.calls = append(s.calls, stubCall{playlistID: playlistID, videoID: videoID, position: position})

	if msg, ok := s.failOn[videoID]; ok {
		return nil, fmt.Errorf("%s", msg)
	}

	var pos int64
	if position != nil {
		pos = *position
	}
	return &InsertedItem{
		ItemID:   "item-" + videoID,
		VideoID:  videoID,
		Title:    "title of " + videoID,
		Position: pos,
	}, nil
}

// testBulkAdder uses a tiny pace so tests don't sleep.
func testBulkAdder(ins inserter) *BulkAdder {
	return newBulkAdder(ins, time.Microsecond)
}

func int64p(v int64) *int64 { return &v }

func TestBulkAddRun(t *testing.T) {
	ctx := context.Background()

	t.Run("one outcome per reference in input order", func(t *testing.T) {
		refs := []string{
			"dQw4w9WgXcQ",
			"https://youtu.be/abc12345678",
			"not a url at all",
			"https://www.youtube.com/watch?v=xyz98765432",
		}

		stub := &stubInserter{}
		outcomes := testBulkAdder(stub).Run(ctx, "PL1", refs, nil)

		if len(outcomes) != len(refs) {
			t.Fatalf("got %d outcomes, want %d", len(outcomes), len(refs))
		}
		for i, o := range outcomes {
			if o.Ref != refs[i] {
				t.Errorf("outcome %d has ref %q, want %q", i, o.Ref, refs[i])
			}
		}
	})

	t.Run("unrecognized reference rejected before any provider call", func(t *testing.T) {
		stub := &stubInserter{}
		outcomes := testBulkAdder(stub).Run(ctx, "PL1", []string{"dQw4w9WgXcQ", "https://youtu.be/abc12345678", "not a url at all"}, nil)

		if !outcomes[0].Added || outcomes[0].VideoID != "dQw4w9WgXcQ" {
			t.Errorf("outcome 0 = %+v, want success for dQw4w9WgXcQ", outcomes[0])
		}
		if !outcomes[1].Added || outcomes[1].VideoID != "abc12345678" {
			t.Errorf("outcome 1 = %+v, want success for abc12345678", outcomes[1])
		}
		if outcomes[2].Added || outcomes[2].Error == "" {
			t.Errorf("outcome 2 = %+v, want rejection", outcomes[2])
		}
		if len(stub.calls) != 2 {
			t.Errorf("provider saw %d calls, want 2 (unrecognized ref must not reach it)", len(stub.calls))
		}
	})

	t.Run("positions advance for every attempt including failures", func(t *testing.T) {
		stub := &stubInserter{failOn: map[string]string{"bbb22222222": "video is private"}}
		refs := []string{"aaa11111111", "bbb22222222", "ccc33333333"}

		outcomes := testBulkAdder(stub).Run(ctx, "PL1", refs, int64p(5))

		if len(stub.calls) != 3 {
			t.Fatalf("provider saw %d calls, want 3", len(stub.calls))
		}
		for i, want := range []int64{5, 6, 7} {
			got := stub.calls[i].position
			if got == nil || *got != want {
				t.Errorf("attempt %d used position %v, want %d", i, got, want)
			}
		}

		if !outcomes[0].Added || outcomes[0].Position != 5 {
			t.Errorf("outcome 0 = %+v, want success at position 5", outcomes[0])
		}
		if outcomes[1].Added || outcomes[1].Error != "video is private" {
			t.Errorf("outcome 1 = %+v, want provider failure", outcomes[1])
		}
		if !outcomes[2].Added || outcomes[2].Position != 7 {
			t.Errorf("outcome 2 = %+v, want success at position 7", outcomes[2])
		}
	})

	t.Run("unrecognized references do not consume position slots", func(t *testing.T) {
		stub := &stubInserter{}
		refs := []string{"aaa11111111", "garbage", "ccc33333333"}

		testBulkAdder(stub).Run(ctx, "PL1", refs, int64p(0))

		if len(stub.calls) != 2 {
			t.Fatalf("provider saw %d calls, want 2", len(stub.calls))
		}
		for i, want := range []int64{0, 1} {
			got := stub.calls[i].position
			if got == nil || *got != want {
				t.Errorf("attempt %d used position %v, want %d", i, got, want)
			}
		}
	})

	t.Run("omitted start position sends no positions", func(t *testing.T) {
		stub := &stubInserter{}
		testBulkAdder(stub).Run(ctx, "PL1", []string{"aaa11111111", "bbb22222222"}, nil)

		for i, call := range stub.calls {
			if call.position != nil {
				t.Errorf("attempt %d sent position %d, want none", i, *call.position)
			}
		}
	})

	t.Run("failure on one reference never aborts siblings", func(t *testing.T) {
		stub := &stubInserter{failOn: map[string]string{"bbb22222222": "playlist item quota exceeded"}}
		refs := []string{"aaa11111111", "bbb22222222", "ccc33333333"}

		outcomes := testBulkAdder(stub).Run(ctx, "PL1", refs, nil)

		if len(outcomes) != 3 {
			t.Fatalf("got %d outcomes, want 3", len(outcomes))
		}
		if !outcomes[0].Added || !outcomes[2].Added {
			t.Errorf("sibling outcomes = %+v / %+v, want both added", outcomes[0], outcomes[2])
		}
		if outcomes[1].Added {
			t.Errorf("outcome 1 = %+v, want failure", outcomes[1])
		}
	})

	t.Run("success carries provider title", func(t *testing.T) {
		stub := &stubInserter{}
		outcomes := testBulkAdder(stub).Run(ctx, "PL1", []string{"dQw4w9WgXcQ"}, nil)

		if outcomes[0].Title != "title of dQw4w9WgXcQ" {
			t.Errorf("outcome title = %q, want provider title", outcomes[0].Title)
		}
	})

	t.Run("cancelled context fails remaining entries without dropping them", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		stub := &stubInserter{}
		refs := []string{"aaa11111111", "bbb22222222"}
		outcomes := testBulkAdder(stub).Run(cancelled, "PL1", refs, nil)

		if len(outcomes) != len(refs) {
			t.Fatalf("got %d outcomes, want %d", len(outcomes), len(refs))
		}
		for i, o := range outcomes {
			if o.Added || o.Error == "" {
				t.Errorf("outcome %d = %+v, want failure from cancellation", i, o)
			}
		}
	})

	t.Run("empty batch yields empty outcome list", func(t *testing.T) {
		stub := &stubInserter{}
		outcomes := testBulkAdder(stub).Run(ctx, "PL1", nil, nil)
		if len(outcomes) != 0 {
			t.Errorf("got %d outcomes, want 0", len(outcomes))
		}
	})
}

func TestBulkAddPacing(t *testing.T) {
	// Three recognized refs with a 30ms pace: the first insert is
	// immediate, the remaining two each wait out one interval.
	stub := &stubInserter{}
	adder := newBulkAdder(stub, 30*time.Millisecond)

	start := time.Now()
	adder.Run(context.Background(), "PL1", []string{"aaa11111111", "bbb22222222", "ccc33333333"}, nil)
	elapsed := time.Since(start)

	if elapsed < 50*time.Millisecond {
		t.Errorf("batch of 3 finished in %v, want at least two pace intervals", elapsed)
	}
}
