package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts registers the prompt templates that guide an LLM through
// multi-step playlist workflows built on the tools above.
func (s *Server) registerPrompts() {
	s.mcpServer.AddPrompt(&mcp.Prompt{
		Name:        "build_playlist",
		Description: "Search for videos matching a description and assemble them into a new playlist.",
		Arguments: []*mcp.PromptArgument{
			{Name: "description", Description: "What the playlist should contain (genres, moods, artists, topics)", Required: true},
			{Name: "count", Description: "How many videos to include (default 10)"},
			{Name: "title", Description: "Title for the new playlist (default: derived from the description)"},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		description := req.Params.Arguments["description"]
		if description == "" {
			return nil, fmt.Errorf("description argument is required")
		}
		count := req.Params.Arguments["count"]
		if count == "" {
			count = "10"
		}
		title := req.Params.Arguments["title"]
		if title == "" {
			title = "a short title derived from the description"
		}

		text := fmt.Sprintf(`Build a YouTube playlist of %s videos matching: %s

Work through these steps with the available tools:
1. Use search_videos with a few focused queries derived from the description. Each search costs 100 quota units, so prefer a handful of precise queries over many broad ones.
2. Pick the best matches from the results, avoiding duplicates.
3. Use create_playlist to create a private playlist titled %s.
4. Use add_videos_to_playlist with the chosen video IDs in your preferred listening order. The result reports each video separately; mention any that failed.
5. Summarize the final playlist for the user: title, link-worthy playlist ID, and the track list.`, count, description, title)

		return &mcp.GetPromptResult{
			Description: "Playlist building workflow",
			Messages: []*mcp.PromptMessage{
				{Role: "user", Content: &mcp.TextContent{Text: text}},
			},
		}, nil
	})

	s.mcpServer.AddPrompt(&mcp.Prompt{
		Name:        "playlist_cleanup",
		Description: "Review a playlist and remove duplicate or unavailable entries.",
		Arguments: []*mcp.PromptArgument{
			{Name: "playlistId", Description: "ID of the playlist to clean up", Required: true},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		playlistID := req.Params.Arguments["playlistId"]
		if playlistID == "" {
			return nil, fmt.Errorf("playlistId argument is required")
		}

		text := fmt.Sprintf(`Clean up the YouTube playlist %s.

1. Use get_playlist_items to fetch the full track list with item IDs.
2. Identify entries to remove: duplicated videos (same video ID appearing more than once) and entries whose titles indicate an unavailable video ("Deleted video", "Private video").
3. Confirm the removal list with the user before changing anything.
4. Once confirmed, use remove_playlist_item for each entry, passing the itemId (not the video ID).
5. Report what was removed and what remains.`, playlistID)

		return &mcp.GetPromptResult{
			Description: "Playlist cleanup workflow",
			Messages: []*mcp.PromptMessage{
				{Role: "user", Content: &mcp.TextContent{Text: text}},
			},
		}, nil
	})

	s.mcpServer.AddPrompt(&mcp.Prompt{
		Name:        "add_from_links",
		Description: "Add a pasted list of YouTube links or IDs to a playlist.",
		Arguments: []*mcp.PromptArgument{
			{Name: "playlistId", Description: "Target playlist ID", Required: true},
			{Name: "links", Description: "Free-form text containing YouTube links and/or video IDs", Required: true},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		playlistID := req.Params.Arguments["playlistId"]
		links := req.Params.Arguments["links"]
		if playlistID == "" || links == "" {
			return nil, fmt.Errorf("playlistId and links arguments are required")
		}

		text := fmt.Sprintf(`Add the following videos to playlist %s:

%s

Extract each video reference from the text above (one per link or ID, keeping their order) and pass them all in a single add_videos_to_playlist call - the tool accepts full URLs as well as bare IDs and reports each reference separately. Relay the per-video report back to the user, calling out any reference that could not be added and why.`, playlistID, links)

		return &mcp.GetPromptResult{
			Description: "Bulk add from pasted links",
			Messages: []*mcp.PromptMessage{
				{Role: "user", Content: &mcp.TextContent{Text: text}},
			},
		}, nil
	})
}
