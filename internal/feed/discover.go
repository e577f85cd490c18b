// Package feed composes the discover surface: the merged video stream from
// independent backend collections, upcoming releases, the social post feed,
// and the capped personal artist list.
package feed

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/ninebyfour/ninebyfour-go/errs"
	"github.com/ninebyfour/ninebyfour-go/internal/api"
	"github.com/ninebyfour/ninebyfour-go/internal/merge"
	"github.com/ninebyfour/ninebyfour-go/internal/schema"
)

const (
	sourceCombined   = "combined"
	sourceMusicVideo = "music_video"
)

// DiscoverService fetches the read-mostly discover collections.
type DiscoverService struct {
	client *api.Client
}

func NewDiscoverService(client *api.Client) *DiscoverService {
	return &DiscoverService{client: client}
}

// Videos merges the user-uploaded video feed and the curated music-video
// collection into a single stream, newest first. Either collection may be
// unavailable without failing the other; an empty result means no data.
func (s *DiscoverService) Videos(ctx context.Context) []merge.Item {
	combined := merge.Source{
		Name: sourceCombined,
		Fetch: func(ctx context.Context) ([]merge.Item, error) {
			posts, err := api.Request[[]schema.VideoPost](ctx, s.client, api.CombinedVideoFeed(), nil, nil)
			if err != nil {
				return nil, err
			}
			items := make([]merge.Item, 0, len(posts))
			for _, post := range posts {
				items = append(items, itemFromVideoPost(post))
			}
			return items, nil
		},
	}
	music := merge.Source{
		Name: sourceMusicVideo,
		Fetch: func(ctx context.Context) ([]merge.Item, error) {
			videos, err := api.Request[[]schema.YouTubeVideo](ctx, s.client, api.MusicVideos(), nil, nil)
			if err != nil {
				return nil, err
			}
			items := make([]merge.Item, 0, len(videos))
			for _, video := range videos {
				items = append(items, itemFromYouTube(video, sourceMusicVideo))
			}
			return items, nil
		},
	}
	return merge.Fetch(ctx, combined, music)
}

// UpcomingReleases lists scheduled drops for the releases tab.
func (s *DiscoverService) UpcomingReleases(ctx context.Context) ([]schema.UpcomingRelease, error) {
	return api.Request[[]schema.UpcomingRelease](ctx, s.client, api.UpcomingReleases(), nil, nil)
}

func itemFromVideoPost(post schema.VideoPost) merge.Item {
	ytID := extractYouTubeID(post.VideoURL)
	if ytID == "" {
		ytID = post.VideoURL
	}
	thumbnail := "https://img.youtube.com/vi/" + ytID + "/hqdefault.jpg"
	if post.ThumbnailURL != nil {
		thumbnail = *post.ThumbnailURL
	}
	source := sourceCombined
	if post.Source != nil {
		source = *post.Source
	}
	item := merge.Item{
		ID:        merge.NormalizedID(sourceCombined, strconv.Itoa(post.ID)),
		YouTubeID: ytID,
		Thumbnail: thumbnail,
		Timestamp: post.CreatedAt,
		Source:    source,
	}
	if post.Caption != nil {
		item.Title = *post.Caption
	}
	if post.Username != nil {
		item.Author = *post.Username
	}
	return item
}

func itemFromYouTube(video schema.YouTubeVideo, source string) merge.Item {
	item := merge.Item{
		ID:        merge.NormalizedID(source, video.VideoID),
		YouTubeID: video.VideoID,
		Title:     video.Title,
		Source:    source,
	}
	if video.Thumbnail != nil {
		item.Thumbnail = *video.Thumbnail
	}
	switch {
	case video.Artist != nil:
		item.Author = *video.Artist
	case video.ChannelTitle != nil:
		item.Author = *video.ChannelTitle
	}
	if video.PublishedAt != nil {
		item.Timestamp = *video.PublishedAt
	}
	return item
}

// extractYouTubeID pulls the video id out of a watch URL, a youtu.be short
// link, or a bare id. Anything else yields "".
func extractYouTubeID(raw string) string {
	if u, err := url.Parse(raw); err == nil {
		if v := u.Query().Get("v"); v != "" {
			return v
		}
	}
	if _, after, found := strings.Cut(raw, "youtu.be/"); found {
		id, _, _ := strings.Cut(after, "?")
		return id
	}
	if !strings.ContainsAny(raw, "/.") {
		return raw
	}
	return ""
}

// Posts lists the social feed.
func (s *DiscoverService) Posts(ctx context.Context) ([]schema.FeedPost, error) {
	return api.Request[[]schema.FeedPost](ctx, s.client, api.Feed(), nil, nil)
}

// CreateTextPost publishes a text post and returns the created entry.
func (s *DiscoverService) CreateTextPost(ctx context.Context, content string) (schema.FeedPost, error) {
	return api.Request[schema.FeedPost](ctx, s.client, api.FeedText(), schema.CreateTextPostRequest{Content: content}, nil)
}

// CreateVideoPost publishes a video-url post and returns the created entry.
func (s *DiscoverService) CreateVideoPost(ctx context.Context, videoURL string, caption *string) (schema.FeedPost, error) {
	body := schema.CreateVideoURLPostRequest{VideoURL: videoURL, Caption: caption}
	return api.Request[schema.FeedPost](ctx, s.client, api.FeedVideoURL(), body, nil)
}

// DeletePost removes one of the caller's posts.
func (s *DiscoverService) DeletePost(ctx context.Context, postType string, id int) error {
	return api.RequestVoid(ctx, s.client, api.DeleteFeedPost(postType, id), nil)
}

// maxProfileListSize caps the personal artist list client-side.
const maxProfileListSize = 20

// ProfileList tracks the caller's saved artists: membership set plus count,
// enforcing the client-side cap before any request is issued. Methods are
// safe for concurrent use.
type ProfileList struct {
	client *api.Client

	mu  sync.Mutex
	ids map[int]struct{}
}

func NewProfileList(client *api.Client) *ProfileList {
	return &ProfileList{client: client, ids: make(map[int]struct{})}
}

// Refresh loads the saved-artist ids. Best effort: a signed-out caller
// simply keeps an empty list.
func (p *ProfileList) Refresh(ctx context.Context) bool {
	var resp schema.ProfileListResponse
	ok := errs.BestEffort(ctx, func(ctx context.Context) error {
		var err error
		resp, err = api.Request[schema.ProfileListResponse](ctx, p.client, api.ProfileList(), nil, nil)
		return err
	})
	if !ok {
		return false
	}
	ids := make(map[int]struct{}, len(resp.List))
	for _, artist := range resp.List {
		ids[artist.ArtistID] = struct{}{}
	}
	p.mu.Lock()
	p.ids = ids
	p.mu.Unlock()
	return true
}

// Add saves an artist to the list. A full list or an already-saved artist
// is a local no-op; the request itself is best effort.
func (p *ProfileList) Add(ctx context.Context, artistID int) bool {
	p.mu.Lock()
	_, present := p.ids[artistID]
	full := len(p.ids) >= maxProfileListSize
	p.mu.Unlock()
	if present || full {
		return false
	}
	ok := errs.BestEffort(ctx, func(ctx context.Context) error {
		return api.RequestVoid(ctx, p.client, api.AddToProfileList(artistID), nil)
	})
	if !ok {
		return false
	}
	p.mu.Lock()
	p.ids[artistID] = struct{}{}
	p.mu.Unlock()
	return true
}

// Remove drops an artist from the list, best effort.
func (p *ProfileList) Remove(ctx context.Context, artistID int) bool {
	ok := errs.BestEffort(ctx, func(ctx context.Context) error {
		return api.RequestVoid(ctx, p.client, api.RemoveFromProfileList(artistID), nil)
	})
	if !ok {
		return false
	}
	p.mu.Lock()
	delete(p.ids, artistID)
	p.mu.Unlock()
	return true
}

// Contains reports whether the artist is saved.
func (p *ProfileList) Contains(artistID int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.ids[artistID]
	return ok
}

// Count returns the number of saved artists.
func (p *ProfileList) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ids)
}

// Full reports whether the list reached the client-side cap.
func (p *ProfileList) Full() bool {
	return p.Count() >= maxProfileListSize
}
