package webchat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avolkov/youtube-playlist-mcp/internal/llm"
	"github.com/avolkov/youtube-playlist-mcp/internal/videoid"
	"github.com/avolkov/youtube-playlist-mcp/internal/youtube"
)

// toolDefinitions declares the playlist tool set to the LLM. The schemas
// mirror the MCP tool inputs.
var toolDefinitions = []llm.Tool{
	fn("list_playlists", "List all playlists on the user's YouTube account.", `{"type":"object","properties":{}}`),
	fn("get_playlist", "Get metadata for one playlist by ID.", `{
		"type":"object",
		"properties":{"playlistId":{"type":"string","description":"YouTube playlist ID"}},
		"required":["playlistId"]
	}`),
	fn("get_playlist_items", "List the videos in a playlist, including the item IDs needed for removal.", `{
		"type":"object",
		"properties":{"playlistId":{"type":"string","description":"YouTube playlist ID"}},
		"required":["playlistId"]
	}`),
	fn("create_playlist", "Create a new playlist (private by default).", `{
		"type":"object",
		"properties":{
			"title":{"type":"string"},
			"description":{"type":"string"},
			"privacy":{"type":"string","enum":["public","private","unlisted"]}
		},
		"required":["title"]
	}`),
	fn("delete_playlist", "Delete a playlist by ID. Cannot be undone.", `{
		"type":"object",
		"properties":{"playlistId":{"type":"string"}},
		"required":["playlistId"]
	}`),
	fn("search_videos", "Search YouTube for videos. Expensive: 100 quota units per search.", `{
		"type":"object",
		"properties":{
			"query":{"type":"string"},
			"maxResults":{"type":"integer","minimum":1,"maximum":25}
		},
		"required":["query"]
	}`),
	fn("get_video", "Look up one video by ID or URL.", `{
		"type":"object",
		"properties":{"videoId":{"type":"string","description":"YouTube video ID or URL"}},
		"required":["videoId"]
	}`),
	fn("add_videos_to_playlist", "Add videos to a playlist in order. Accepts IDs and any common YouTube URL shape; returns one result per reference.", `{
		"type":"object",
		"properties":{
			"playlistId":{"type":"string"},
			"videoRefs":{"type":"array","items":{"type":"string"}},
			"startPosition":{"type":"integer","minimum":0}
		},
		"required":["playlistId","videoRefs"]
	}`),
	fn("remove_playlist_item", "Remove one playlist entry by its playlist item ID (not the video ID).", `{
		"type":"object",
		"properties":{"playlistItemId":{"type":"string"}},
		"required":["playlistItemId"]
	}`),
}

func fn(name, description, schema string) llm.Tool {
	return llm.Tool{
		Type: "function",
		Function: llm.ToolFunction{
			Name:        name,
			Description: description,
			Parameters:  json.RawMessage(schema),
		},
	}
}

// dispatch decodes the tool arguments and runs the matching YouTube client
// call, returning the result as a JSON string for the tool message.
func (h *Handler) dispatch(ctx context.Context, name string, args json.RawMessage) (string, error) {
	client, err := h.clients.Get(ctx)
	if err != nil {
		return "", err
	}

	switch name {
	case "list_playlists":
		playlists, err := client.ListPlaylists(ctx)
		if err != nil {
			return "", err
		}
		return asJSON(playlists)

	case "get_playlist":
		var in struct {
			PlaylistID string `json:"playlistId"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		playlist, err := client.GetPlaylist(ctx, in.PlaylistID)
		if err != nil {
			return "", err
		}
		if playlist == nil {
			return "Playlist not found", nil
		}
		return asJSON(playlist)

	case "get_playlist_items":
		var in struct {
			PlaylistID string `json:"playlistId"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		items, err := client.GetPlaylistItems(ctx, in.PlaylistID)
		if err != nil {
			return "", err
		}
		return asJSON(items)

	case "create_playlist":
		var in struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Privacy     string `json:"privacy"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		playlist, err := client.CreatePlaylist(ctx, in.Title, in.Description, in.Privacy)
		if err != nil {
			return "", err
		}
		return asJSON(playlist)

	case "delete_playlist":
		var in struct {
			PlaylistID string `json:"playlistId"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		if err := client.DeletePlaylist(ctx, in.PlaylistID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted playlist %s", in.PlaylistID), nil

	case "search_videos":
		var in struct {
			Query      string `json:"query"`
			MaxResults int64  `json:"maxResults"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		results, err := client.SearchVideos(ctx, in.Query, in.MaxResults)
		if err != nil {
			return "", err
		}
		return asJSON(results)

	case "get_video":
		var in struct {
			VideoID string `json:"videoId"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		id, ok := videoid.Normalize(in.VideoID)
		if !ok {
			return "", fmt.Errorf("%q is not a recognizable YouTube video ID or URL", in.VideoID)
		}
		video, err := client.GetVideo(ctx, id)
		if err != nil {
			return "", err
		}
		if video == nil {
			return "Video not found", nil
		}
		return asJSON(video)

	case "add_videos_to_playlist":
		var in struct {
			PlaylistID    string   `json:"playlistId"`
			VideoRefs     []string `json:"videoRefs"`
			StartPosition *int64   `json:"startPosition"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		if in.PlaylistID == "" || len(in.VideoRefs) == 0 {
			return "", fmt.Errorf("playlistId and videoRefs are required")
		}
		adder := youtube.NewBulkAdder(client, h.pace)
		outcomes := adder.Run(ctx, in.PlaylistID, in.VideoRefs, in.StartPosition)
		return asJSON(outcomes)

	case "remove_playlist_item":
		var in struct {
			PlaylistItemID string `json:"playlistItemId"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		if err := client.RemovePlaylistItem(ctx, in.PlaylistItemID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Removed playlist item %s", in.PlaylistItemID), nil

	default:
		return "", fmt.Errorf("unknown tool %q", name)
	}
}

func asJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return string(data), nil
}
