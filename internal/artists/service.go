// Package artists exposes the artist directory: paged listing and search,
// single-artist detail, catalog management, and the clout counter.
package artists

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ninebyfour/ninebyfour-go/errs"
	"github.com/ninebyfour/ninebyfour-go/internal/api"
	"github.com/ninebyfour/ninebyfour-go/internal/page"
	"github.com/ninebyfour/ninebyfour-go/internal/schema"
)

// Service wraps artist operations around a shared client.
type Service struct {
	client   *api.Client
	pageSize int
}

// NewService constructs the artist service. pageSize bounds list and search
// pages; non-positive values fall back to the pager default.
func NewService(client *api.Client, pageSize int) *Service {
	return &Service{client: client, pageSize: pageSize}
}

// ListPager returns an offset pager over the artist directory. A non-empty
// search term narrows every page the pager fetches; the term is fixed for
// the pager's lifetime, so a new search means a new pager.
func (s *Service) ListPager(search string) *page.OffsetPager[schema.Artist] {
	return page.NewOffsetPager(s.pageSize, func(ctx context.Context, pageNum, limit int) ([]schema.Artist, *bool, error) {
		query := url.Values{}
		query.Set("page", strconv.Itoa(pageNum))
		query.Set("limit", strconv.Itoa(limit))
		if search != "" {
			query.Set("search", search)
		}
		resp, err := api.Request[schema.PaginatedArtistResponse](ctx, s.client, api.Artists(), nil, query)
		if err != nil {
			return nil, nil, err
		}
		return resp.Artists, resp.HasMore, nil
	})
}

// Get fetches one artist with albums.
func (s *Service) Get(ctx context.Context, id int) (schema.Artist, error) {
	resp, err := api.Request[schema.SingleArtistResponse](ctx, s.client, api.Artist(id), nil, nil)
	if err != nil {
		return schema.Artist{}, err
	}
	return resp.Artist, nil
}

// Create registers a new artist profile.
func (s *Service) Create(ctx context.Context, req schema.CreateArtistRequest) (schema.Artist, error) {
	resp, err := api.Request[schema.SingleArtistResponse](ctx, s.client, api.CreateArtist(), req, nil)
	if err != nil {
		return schema.Artist{}, err
	}
	return resp.Artist, nil
}

// Update replaces the mutable fields of an artist profile.
func (s *Service) Update(ctx context.Context, id int, req schema.CreateArtistRequest) (schema.Artist, error) {
	resp, err := api.Request[schema.SingleArtistResponse](ctx, s.client, api.UpdateArtist(id), req, nil)
	if err != nil {
		return schema.Artist{}, err
	}
	return resp.Artist, nil
}

// Delete removes an artist profile.
func (s *Service) Delete(ctx context.Context, id int) error {
	return api.RequestVoid(ctx, s.client, api.DeleteArtist(id), nil)
}

// AddAlbums attaches releases to an artist.
func (s *Service) AddAlbums(ctx context.Context, artistID int, albums []schema.Album) error {
	return api.RequestVoid(ctx, s.client, api.AddAlbums(artistID), schema.AddAlbumsRequest{Albums: albums})
}

// DeleteAlbum detaches one release from an artist.
func (s *Service) DeleteAlbum(ctx context.Context, artistID, albumID int) error {
	return api.RequestVoid(ctx, s.client, api.DeleteAlbum(artistID, albumID), nil)
}

// UploadImage sends a new artist image as multipart form data and returns
// the stored image URL reported by the server.
func (s *Service) UploadImage(ctx context.Context, artistID int, filename, contentType string, data []byte) (string, error) {
	form := api.NewForm()
	form.AddField("artist_id", strconv.Itoa(artistID))
	form.AddFile("image", filename, contentType, data)
	resp, err := api.Upload[struct {
		ImageURL string `json:"image_url"`
	}](ctx, s.client, api.UploadArtistImage(), form)
	if err != nil {
		return "", err
	}
	return resp.ImageURL, nil
}

// AddClout gives the artist one clout point. The call is best effort: a
// failure (typically an unauthenticated user) reports ok=false and keeps
// the caller's last known count. On success count carries the new total.
func (s *Service) AddClout(ctx context.Context, artistID int) (count int, ok bool) {
	return s.clout(ctx, api.Clout(artistID))
}

// RemoveClout takes the caller's clout point back, with the same
// best-effort contract as AddClout.
func (s *Service) RemoveClout(ctx context.Context, artistID int) (count int, ok bool) {
	return s.clout(ctx, api.RemoveClout(artistID))
}

func (s *Service) clout(ctx context.Context, ep api.Endpoint) (int, bool) {
	var resp schema.CloutResponse
	ok := errs.BestEffort(ctx, func(ctx context.Context) error {
		var err error
		resp, err = api.Request[schema.CloutResponse](ctx, s.client, ep, nil, nil)
		return err
	})
	if !ok {
		return 0, false
	}
	return resp.NewCloutCount.Int(), true
}
