package youtube

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	youtube_v3 "google.golang.org/api/youtube/v3"
)

// Domain types for playlist and video data

// Video is a video entry inside a playlist. ItemID is the playlist-item ID
// (needed to remove the entry); it is distinct from the video ID.
type Video struct {
	ID           string
	ItemID       string
	Title        string
	ChannelTitle string
	Position     int64
}

type Playlist struct {
	ID          string
	Title       string
	Description string
	Privacy     string
	ItemCount   int64
}

// InsertedItem describes a playlist entry created by InsertVideo.
type InsertedItem struct {
	ItemID   string
	VideoID  string
	Title    string
	Position int64
}

// ListPlaylists retrieves ALL of the user's playlists with no pagination cap.
func (c *Client) ListPlaylists(ctx context.Context) ([]Playlist, error) {
	var playlists []Playlist
	playlistsCall := c.service.Playlists.
		List([]string{"snippet", "status", "contentDetails"}).
		Mine(true).
		MaxResults(50)

	err := playlistsCall.Pages(ctx, func(response *youtube_v3.PlaylistListResponse) error {
		// Check context cancellation
		if err := ctx.Err(); err != nil {
			return err
		}

		for _, item := range response.Items {
			playlists = append(playlists, newPlaylist(item))
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	return playlists, nil
}

// GetPlaylist retrieves metadata for a single playlist by ID.
// Returns nil, nil if the playlist is not found (not an error).
func (c *Client) GetPlaylist(ctx context.Context, playlistID string) (*Playlist, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("playlistID cannot be empty")
	}

	call := c.service.Playlists.
		List([]string{"snippet", "status", "contentDetails"}).
		Id(playlistID)

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	if len(resp.Items) == 0 {
		return nil, nil
	}

	playlist := newPlaylist(resp.Items[0])
	return &playlist, nil
}

// GetPlaylistItems retrieves ALL videos from a specific playlist with no pagination cap.
func (c *Client) GetPlaylistItems(ctx context.Context, playlistID string) ([]Video, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("playlistID cannot be empty")
	}

	var videos []Video
	playlistItemsCall := c.service.PlaylistItems.
		List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(50)

	err := playlistItemsCall.Pages(ctx, func(response *youtube_v3.PlaylistItemListResponse) error {
		// Check context cancellation
		if err := ctx.Err(); err != nil {
			return err
		}

		for _, item := range response.Items {
			videos = append(videos, Video{
				ID:           item.Snippet.ResourceId.VideoId,
				ItemID:       item.Id,
				Title:        item.Snippet.Title,
				ChannelTitle: item.Snippet.VideoOwnerChannelTitle,
				Position:     item.Snippet.Position,
			})
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve playlist items: %w", err)
	}

	return videos, nil
}

// CreatePlaylist creates a new playlist on the user's YouTube account.
// Quota cost: 50 units.
func (c *Client) CreatePlaylist(ctx context.Context, title, description, privacyStatus string) (*Playlist, error) {
	// Validate title is non-empty
	if title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}

	// Default privacyStatus to "private" if empty
	if privacyStatus == "" {
		privacyStatus = "private"
	}

	validPrivacy := map[string]bool{"public": true, "private": true, "unlisted": true}
	if !validPrivacy[privacyStatus] {
		return nil, fmt.Errorf("invalid privacyStatus: must be one of 'public', 'private', or 'unlisted'")
	}

	playlist := &youtube_v3.Playlist{
		Snippet: &youtube_v3.PlaylistSnippet{
			Title:       title,
			Description: description,
		},
		Status: &youtube_v3.PlaylistStatus{
			PrivacyStatus: privacyStatus,
		},
	}

	call := c.service.Playlists.Insert([]string{"snippet", "status"}, playlist)
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	return &Playlist{
		ID:          resp.Id,
		Title:       resp.Snippet.Title,
		Description: resp.Snippet.Description,
		Privacy:     privacyStatus,
		ItemCount:   0,
	}, nil
}

// DeletePlaylist deletes a playlist owned by the user. Quota cost: 50 units.
func (c *Client) DeletePlaylist(ctx context.Context, playlistID string) error {
	if playlistID == "" {
		return fmt.Errorf("playlistID cannot be empty")
	}

	call := c.service.Playlists.Delete(playlistID)
	if err := call.Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	return nil
}

// InsertVideo adds a single video to a playlist. When position is non-nil the
// provider places the entry at that index; otherwise it appends to the end.
// This is the sole write primitive the bulk mutator calls.
// Quota cost: 50 units.
func (c *Client) InsertVideo(ctx context.Context, playlistID, videoID string, position *int64) (*InsertedItem, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("playlistID cannot be empty")
	}
	if videoID == "" {
		return nil, fmt.Errorf("videoID cannot be empty")
	}

	snippet := &youtube_v3.PlaylistItemSnippet{
		PlaylistId: playlistID,
		ResourceId: &youtube_v3.ResourceId{
			Kind:    "youtube#video",
			VideoId: videoID,
		},
	}
	if position != nil {
		snippet.Position = *position
		snippet.ForceSendFields = append(snippet.ForceSendFields, "Position")
	}

	call := c.service.PlaylistItems.Insert([]string{"snippet"}, &youtube_v3.PlaylistItem{Snippet: snippet})
	resp, err := call.Context(ctx).Do()
	if err != nil {
		// Surface the provider's own reason where available
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return nil, fmt.Errorf("provider rejected insert: %s", apiErr.Message)
		}
		return nil, fmt.Errorf("failed to insert video: %w", err)
	}

	return &InsertedItem{
		ItemID:   resp.Id,
		VideoID:  videoID,
		Title:    resp.Snippet.Title,
		Position: resp.Snippet.Position,
	}, nil
}

// RemovePlaylistItem removes a single entry from a playlist by its
// playlist-item ID (from GetPlaylistItems, not the video ID).
// Quota cost: 50 units.
func (c *Client) RemovePlaylistItem(ctx context.Context, playlistItemID string) error {
	if playlistItemID == "" {
		return fmt.Errorf("playlistItemID cannot be empty")
	}

	call := c.service.PlaylistItems.Delete(playlistItemID)
	if err := call.Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to remove playlist item: %w", err)
	}

	return nil
}

func newPlaylist(item *youtube_v3.Playlist) Playlist {
	playlist := Playlist{
		ID:          item.Id,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
	}
	if item.Status != nil {
		playlist.Privacy = item.Status.PrivacyStatus
	}
	if item.ContentDetails != nil {
		playlist.ItemCount = item.ContentDetails.ItemCount
	}
	return playlist
}
