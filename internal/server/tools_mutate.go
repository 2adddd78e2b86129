package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avolkov/youtube-playlist-mcp/internal/videoid"
	"github.com/avolkov/youtube-playlist-mcp/internal/youtube"
)

// Input/output types for playlist mutation tools

type addVideosInput struct {
	PlaylistID    string   `json:"playlistId" jsonschema:"required,description=Target playlist ID (from list_playlists or create_playlist)"`
	VideoRefs     []string `json:"videoRefs" jsonschema:"required,description=Ordered list of videos to add. Accepts bare video IDs and watch/youtu.be/embed/shorts URLs."`
	StartPosition *int64   `json:"startPosition,omitempty" jsonschema:"description=Zero-based position for the first inserted video; later videos follow contiguously. Omit to append to the end.,minimum=0"`
}

type addOutcomeInfo struct {
	Ref      string `json:"ref" jsonschema:"description=The original video reference as supplied"`
	VideoID  string `json:"videoId,omitempty" jsonschema:"description=Normalized video ID (empty when the reference was unrecognized)"`
	Added    bool   `json:"added"`
	Title    string `json:"title,omitempty" jsonschema:"description=Title of the added video"`
	Position *int64 `json:"position,omitempty" jsonschema:"description=Provider-reported position of the added video (only when a start position was given)"`
	Error    string `json:"error,omitempty" jsonschema:"description=Failure reason for this reference"`
}

type addVideosOutput struct {
	PlaylistID string           `json:"playlistId"`
	Results    []addOutcomeInfo `json:"results" jsonschema:"description=One entry per input reference, in input order"`
	Added      int              `json:"added"`
	Failed     int              `json:"failed"`
}

type removeItemInput struct {
	PlaylistItemID string `json:"playlistItemId" jsonschema:"required,description=Playlist item ID to remove (the itemId field from get_playlist_items, not the video ID)"`
}

type removeItemOutput struct {
	PlaylistItemID string `json:"playlistItemId"`
	Removed        bool   `json:"removed"`
}

// requireVideoID normalizes a video reference and rejects anything that does
// not reduce to a strict 11-character video ID.
func requireVideoID(ref string) (string, error) {
	id, ok := videoid.Normalize(ref)
	if !ok || !videoid.Valid(id) {
		return "", fmt.Errorf("%q is not a recognizable YouTube video ID or URL", ref)
	}
	return id, nil
}

// formatBulkReport renders one line per input reference, in input order,
// marked success or failure with the underlying reason.
func formatBulkReport(playlistID string, outcomes []youtube.AddOutcome, withPositions bool) string {
	var b strings.Builder

	added := 0
	for _, o := range outcomes {
		if o.Added {
			added++
		}
	}
	fmt.Fprintf(&b, "Added %d of %d videos to playlist %s\n", added, len(outcomes), playlistID)

	for i, o := range outcomes {
		switch {
		case o.Added && withPositions:
			fmt.Fprintf(&b, "[%d/%d] ok: %q (%s) at position %d\n", i+1, len(outcomes), o.Title, o.VideoID, o.Position)
		case o.Added:
			fmt.Fprintf(&b, "[%d/%d] ok: %q (%s)\n", i+1, len(outcomes), o.Title, o.VideoID)
		default:
			fmt.Fprintf(&b, "[%d/%d] failed: %s: %s\n", i+1, len(outcomes), o.Ref, o.Error)
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// registerMutationTools registers the bulk add and item removal MCP tools
func (s *Server) registerMutationTools() {
	// Tool 1: add_videos_to_playlist
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_videos_to_playlist",
		Description: "Add one or more videos to a playlist, in order. Accepts bare video IDs and any common YouTube URL shape. Videos are inserted one at a time with pacing to respect provider rate limits; a failure on one video never aborts the rest. Returns one result per input reference, in input order. Quota cost: 50 units per video.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input addVideosInput) (*mcp.CallToolResult, addVideosOutput, error) {
		// Whole-batch validation failures abort before any provider call
		if input.PlaylistID == "" {
			return nil, addVideosOutput{}, fmt.Errorf("playlistId is required")
		}
		if len(input.VideoRefs) == 0 {
			return nil, addVideosOutput{}, fmt.Errorf("videoRefs cannot be empty")
		}
		if input.StartPosition != nil && *input.StartPosition < 0 {
			return nil, addVideosOutput{}, fmt.Errorf("startPosition cannot be negative")
		}

		client, err := s.client(ctx)
		if err != nil {
			return nil, addVideosOutput{}, err
		}

		adder := youtube.NewBulkAdder(client, s.pace)
		outcomes := adder.Run(ctx, input.PlaylistID, input.VideoRefs, input.StartPosition)

		output := addVideosOutput{
			PlaylistID: input.PlaylistID,
			Results:    make([]addOutcomeInfo, len(outcomes)),
		}
		for i, o := range outcomes {
			info := addOutcomeInfo{
				Ref:     o.Ref,
				VideoID: o.VideoID,
				Added:   o.Added,
				Title:   o.Title,
				Error:   o.Error,
			}
			if o.Added && input.StartPosition != nil {
				pos := o.Position
				info.Position = &pos
			}
			output.Results[i] = info
			if o.Added {
				output.Added++
			} else {
				output.Failed++
			}
		}

		s.logger.Info("bulk add finished",
			"playlist", input.PlaylistID,
			"added", output.Added,
			"failed", output.Failed,
		)

		report := formatBulkReport(input.PlaylistID, outcomes, input.StartPosition != nil)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: report},
			},
		}, output, nil
	})

	// Tool 2: remove_playlist_item
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_playlist_item",
		Description: "Remove a single entry from a playlist by its playlist item ID (the itemId field returned by get_playlist_items). Quota cost: 50 units.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input removeItemInput) (*mcp.CallToolResult, removeItemOutput, error) {
		if input.PlaylistItemID == "" {
			return nil, removeItemOutput{}, fmt.Errorf("playlistItemId is required")
		}

		client, err := s.client(ctx)
		if err != nil {
			return nil, removeItemOutput{}, err
		}

		if err := client.RemovePlaylistItem(ctx, input.PlaylistItemID); err != nil {
			return nil, removeItemOutput{}, fmt.Errorf("failed to remove playlist item: %w", err)
		}

		output := removeItemOutput{
			PlaylistItemID: input.PlaylistItemID,
			Removed:        true,
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Removed playlist item %s", input.PlaylistItemID)},
			},
		}, output, nil
	})
}
