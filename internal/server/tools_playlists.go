package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Input/output types for playlist tools

type listPlaylistsInput struct{}

type playlistInfo struct {
	ID          string `json:"id" jsonschema:"description=YouTube playlist ID"`
	Title       string `json:"title" jsonschema:"description=Playlist title"`
	Description string `json:"description" jsonschema:"description=Playlist description"`
	Privacy     string `json:"privacy" jsonschema:"description=Privacy status: public/private/unlisted"`
	ItemCount   int64  `json:"itemCount" jsonschema:"description=Number of items in the playlist"`
}

type playlistsOutput struct {
	Playlists []playlistInfo `json:"playlists"`
	Count     int            `json:"count" jsonschema:"description=Number of playlists returned"`
}

type getPlaylistInput struct {
	PlaylistID string `json:"playlistId" jsonschema:"required,description=YouTube playlist ID (from list_playlists)"`
}

type playlistDetailOutput struct {
	playlistInfo
	Found bool `json:"found" jsonschema:"description=Whether the playlist was found"`
}

type getPlaylistItemsInput struct {
	PlaylistID string `json:"playlistId" jsonschema:"required,description=YouTube playlist ID (from list_playlists)"`
}

type playlistItemInfo struct {
	VideoID      string `json:"videoId" jsonschema:"description=YouTube video ID"`
	ItemID       string `json:"itemId" jsonschema:"description=Playlist item ID (use with remove_playlist_item)"`
	Title        string `json:"title" jsonschema:"description=Video title"`
	ChannelTitle string `json:"channelTitle" jsonschema:"description=Channel that uploaded the video"`
	Position     int64  `json:"position" jsonschema:"description=Zero-based position within the playlist"`
}

type playlistItemsOutput struct {
	Items []playlistItemInfo `json:"items"`
	Count int                `json:"count" jsonschema:"description=Number of items returned"`
}

type createPlaylistInput struct {
	Title       string `json:"title" jsonschema:"required,description=Playlist title"`
	Description string `json:"description,omitempty" jsonschema:"description=Playlist description"`
	Privacy     string `json:"privacy,omitempty" jsonschema:"description=Privacy status: public/private/unlisted (default private)"`
}

type deletePlaylistInput struct {
	PlaylistID string `json:"playlistId" jsonschema:"required,description=ID of the playlist to delete. This cannot be undone."`
}

type deletePlaylistOutput struct {
	PlaylistID string `json:"playlistId"`
	Deleted    bool   `json:"deleted"`
}

// registerPlaylistTools registers the playlist read/create/delete MCP tools
func (s *Server) registerPlaylistTools() {
	// Tool 1: list_playlists
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_playlists",
		Description: "List all playlists on the user's YouTube account with their titles, privacy and item counts. Quota cost: ~1 unit per 50 playlists.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input listPlaylistsInput) (*mcp.CallToolResult, playlistsOutput, error) {
		client, err := s.client(ctx)
		if err != nil {
			return nil, playlistsOutput{}, err
		}

		playlists, err := client.ListPlaylists(ctx)
		if err != nil {
			return nil, playlistsOutput{}, fmt.Errorf("failed to list playlists: %w", err)
		}

		playlistInfos := make([]playlistInfo, len(playlists))
		for i, p := range playlists {
			playlistInfos[i] = playlistInfo{
				ID:          p.ID,
				Title:       p.Title,
				Description: p.Description,
				Privacy:     p.Privacy,
				ItemCount:   p.ItemCount,
			}
		}

		output := playlistsOutput{
			Playlists: playlistInfos,
			Count:     len(playlistInfos),
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Retrieved %d playlists", len(playlists))},
			},
		}, output, nil
	})

	// Tool 2: get_playlist
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_playlist",
		Description: "Retrieve metadata for a single playlist by ID: title, description, privacy, item count. Quota cost: 1 unit.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input getPlaylistInput) (*mcp.CallToolResult, playlistDetailOutput, error) {
		if input.PlaylistID == "" {
			return nil, playlistDetailOutput{}, fmt.Errorf("playlistId is required")
		}

		client, err := s.client(ctx)
		if err != nil {
			return nil, playlistDetailOutput{}, err
		}

		playlist, err := client.GetPlaylist(ctx, input.PlaylistID)
		if err != nil {
			return nil, playlistDetailOutput{}, fmt.Errorf("failed to get playlist: %w", err)
		}

		if playlist == nil {
			output := playlistDetailOutput{playlistInfo: playlistInfo{ID: input.PlaylistID}}
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{Text: "Playlist not found"},
				},
			}, output, nil
		}

		output := playlistDetailOutput{
			playlistInfo: playlistInfo{
				ID:          playlist.ID,
				Title:       playlist.Title,
				Description: playlist.Description,
				Privacy:     playlist.Privacy,
				ItemCount:   playlist.ItemCount,
			},
			Found: true,
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Playlist %q (%d items, %s)", playlist.Title, playlist.ItemCount, playlist.Privacy)},
			},
		}, output, nil
	})

	// Tool 3: get_playlist_items
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_playlist_items",
		Description: "Retrieve the videos in a specific playlist by playlist ID, including the playlist item IDs needed for removal. Use list_playlists first to get playlist IDs. Quota cost: ~1 unit per 50 items.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input getPlaylistItemsInput) (*mcp.CallToolResult, playlistItemsOutput, error) {
		if input.PlaylistID == "" {
			return nil, playlistItemsOutput{}, fmt.Errorf("playlistId is required")
		}

		client, err := s.client(ctx)
		if err != nil {
			return nil, playlistItemsOutput{}, err
		}

		videos, err := client.GetPlaylistItems(ctx, input.PlaylistID)
		if err != nil {
			return nil, playlistItemsOutput{}, fmt.Errorf("failed to get playlist items: %w", err)
		}

		items := make([]playlistItemInfo, len(videos))
		for i, v := range videos {
			items[i] = playlistItemInfo{
				VideoID:      v.ID,
				ItemID:       v.ItemID,
				Title:        v.Title,
				ChannelTitle: v.ChannelTitle,
				Position:     v.Position,
			}
		}

		output := playlistItemsOutput{
			Items: items,
			Count: len(items),
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Retrieved %d videos from playlist", len(videos))},
			},
		}, output, nil
	})

	// Tool 4: create_playlist
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_playlist",
		Description: "Create a new playlist on the user's YouTube account. Privacy defaults to private. Quota cost: 50 units.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input createPlaylistInput) (*mcp.CallToolResult, playlistInfo, error) {
		if input.Title == "" {
			return nil, playlistInfo{}, fmt.Errorf("title is required")
		}

		client, err := s.client(ctx)
		if err != nil {
			return nil, playlistInfo{}, err
		}

		playlist, err := client.CreatePlaylist(ctx, input.Title, input.Description, input.Privacy)
		if err != nil {
			return nil, playlistInfo{}, fmt.Errorf("failed to create playlist: %w", err)
		}

		output := playlistInfo{
			ID:          playlist.ID,
			Title:       playlist.Title,
			Description: playlist.Description,
			Privacy:     playlist.Privacy,
			ItemCount:   playlist.ItemCount,
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Created playlist %q (%s, id %s)", playlist.Title, playlist.Privacy, playlist.ID)},
			},
		}, output, nil
	})

	// Tool 5: delete_playlist
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_playlist",
		Description: "Delete a playlist owned by the user by its ID. This cannot be undone. Quota cost: 50 units.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input deletePlaylistInput) (*mcp.CallToolResult, deletePlaylistOutput, error) {
		if input.PlaylistID == "" {
			return nil, deletePlaylistOutput{}, fmt.Errorf("playlistId is required")
		}

		client, err := s.client(ctx)
		if err != nil {
			return nil, deletePlaylistOutput{}, err
		}

		if err := client.DeletePlaylist(ctx, input.PlaylistID); err != nil {
			return nil, deletePlaylistOutput{}, fmt.Errorf("failed to delete playlist: %w", err)
		}

		output := deletePlaylistOutput{
			PlaylistID: input.PlaylistID,
			Deleted:    true,
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Deleted playlist %s", input.PlaylistID)},
			},
		}, output, nil
	})
}
