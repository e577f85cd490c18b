package schema

// Artist describes one artist profile.
type Artist struct {
	ArtistID   int     `json:"artist_id"`
	ArtistName string  `json:"artist_name"`
	AKA        *string `json:"aka,omitempty"`
	Genre      *string `json:"genre,omitempty"`
	CloutCount *int    `json:"count,omitempty"`
	State      *string `json:"state,omitempty"`
	Region     *string `json:"region,omitempty"`
	Label      *string `json:"label,omitempty"`
	ImageURL   *string `json:"image_url,omitempty"`
	Albums     []Album `json:"albums,omitempty"`
}

// Album is one release attached to an artist.
type Album struct {
	AlbumID    int     `json:"album_id"`
	AlbumName  string  `json:"album_name"`
	Year       *int    `json:"year,omitempty"`
	CoverURL   *string `json:"cover_url,omitempty"`
	SpotifyURL *string `json:"spotify_url,omitempty"`
}

// SingleArtistResponse wraps GET /artists/{id}.
type SingleArtistResponse struct {
	Artist Artist `json:"artist"`
}

// PaginatedArtistResponse wraps GET /artists.
type PaginatedArtistResponse struct {
	Artists    []Artist `json:"artists"`
	Page       *int     `json:"page,omitempty"`
	Limit      *int     `json:"limit,omitempty"`
	TotalCount *int     `json:"total_count,omitempty"`
	TotalPages *int     `json:"total_pages,omitempty"`
	HasMore    *bool    `json:"has_more,omitempty"`
}

// CloutResponse acknowledges a clout add or remove.
type CloutResponse struct {
	Message       string  `json:"message"`
	ArtistID      int     `json:"artist_id"`
	NewCloutCount FlexInt `json:"new_clout_count"`
}

// CreateArtistRequest carries the fields for POST /artists.
type CreateArtistRequest struct {
	ArtistName string  `json:"artist_name"`
	AKA        *string `json:"aka,omitempty"`
	Genre      *string `json:"genre,omitempty"`
	State      *string `json:"state,omitempty"`
	Region     *string `json:"region,omitempty"`
	Label      *string `json:"label,omitempty"`
}

// AddAlbumsRequest carries albums for POST /artists/{id}/albums.
type AddAlbumsRequest struct {
	Albums []Album `json:"albums"`
}

// UpcomingRelease is one entry from GET /music/upcoming.
type UpcomingRelease struct {
	ID          int     `json:"id"`
	ArtistName  string  `json:"artist_name"`
	ReleaseName string  `json:"release_name"`
	ReleaseDate string  `json:"release_date"`
	CoverURL    *string `json:"cover_url,omitempty"`
}
