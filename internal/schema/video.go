package schema

// VideoPost is one entry from GET /art/combined-video-feed.
type VideoPost struct {
	ID           int     `json:"id"`
	UserID       *int    `json:"user_id,omitempty"`
	VideoURL     string  `json:"video_url"`
	VideoType    string  `json:"video_type"`
	Caption      *string `json:"caption,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	CreatedAt    string  `json:"created_at"`
	Username     *string `json:"username,omitempty"`
	Source       *string `json:"source,omitempty"`
}

// YouTubeVideo is one entry from GET /art/music-videos and /art/youtube-feed.
type YouTubeVideo struct {
	VideoID      string  `json:"videoId"`
	Title        string  `json:"title"`
	Thumbnail    *string `json:"thumbnail,omitempty"`
	Artist       *string `json:"artist,omitempty"`
	PublishedAt  *string `json:"publishedAt,omitempty"`
	ChannelTitle *string `json:"channelTitle,omitempty"`
}

// FeedPost is one entry from GET /feed.
type FeedPost struct {
	ID           int     `json:"id"`
	UserID       int     `json:"user_id"`
	PostType     string  `json:"post_type"`
	Content      *string `json:"content,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	VideoURL     *string `json:"video_url,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	CreatedAt    string  `json:"created_at"`
	Username     *string `json:"username,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

// CreateTextPostRequest carries the body for POST /feed/text.
type CreateTextPostRequest struct {
	Content string `json:"content"`
}

// CreateVideoURLPostRequest carries the body for POST /feed/video-url.
type CreateVideoURLPostRequest struct {
	VideoURL string  `json:"video_url"`
	Caption  *string `json:"caption,omitempty"`
}

// ProfileListResponse wraps GET /profile/list.
type ProfileListResponse struct {
	List []ProfileListArtist `json:"list"`
}

// ProfileListArtist is one saved artist in a profile list.
type ProfileListArtist struct {
	ArtistID   int     `json:"artist_id"`
	ArtistName *string `json:"artist_name,omitempty"`
	ImageURL   *string `json:"image_url,omitempty"`
}
