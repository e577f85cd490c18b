// Package api implements the authenticated request pipeline against the
// NineByFour backend: endpoint catalog, request building, transport,
// response validation, decoding, and multipart upload.
package api

import "strconv"

// Method is an HTTP verb used by the catalog.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Endpoint is an immutable descriptor of one logical backend operation:
// its fully substituted path, verb, and auth requirement. Values are only
// produced by the constructor functions below, so an unknown operation
// cannot be represented.
type Endpoint struct {
	operation    string
	method       Method
	path         string
	requiresAuth bool
}

// Operation returns the logical operation identifier (metric and log label).
func (e Endpoint) Operation() string { return e.operation }

// Method returns the HTTP verb.
func (e Endpoint) Method() Method { return e.method }

// Path returns the parameter-substituted request path.
func (e Endpoint) Path() string { return e.path }

// RequiresAuth reports whether the request must carry a bearer token.
func (e Endpoint) RequiresAuth() bool { return e.requiresAuth }

func itoa(id int) string { return strconv.Itoa(id) }

// Auth.

func Register() Endpoint {
	return Endpoint{operation: "users.register", method: MethodPost, path: "/users/register", requiresAuth: false}
}

func Login() Endpoint {
	return Endpoint{operation: "users.login", method: MethodPost, path: "/users/login", requiresAuth: false}
}

func Me() Endpoint {
	return Endpoint{operation: "users.me", method: MethodGet, path: "/users/me", requiresAuth: true}
}

func UserProfile(userID int) Endpoint {
	return Endpoint{operation: "users.profile", method: MethodGet, path: "/users/" + itoa(userID) + "/profile", requiresAuth: true}
}

func UploadProfileImage() Endpoint {
	return Endpoint{operation: "users.upload_profile_image", method: MethodPost, path: "/users/profile-image", requiresAuth: true}
}

// Artists.

func Artists() Endpoint {
	return Endpoint{operation: "artists.list", method: MethodGet, path: "/artists", requiresAuth: false}
}

func Artist(id int) Endpoint {
	return Endpoint{operation: "artists.get", method: MethodGet, path: "/artists/" + itoa(id), requiresAuth: false}
}

func CreateArtist() Endpoint {
	return Endpoint{operation: "artists.create", method: MethodPost, path: "/artists", requiresAuth: true}
}

func UpdateArtist(id int) Endpoint {
	return Endpoint{operation: "artists.update", method: MethodPut, path: "/artists/" + itoa(id), requiresAuth: true}
}

func DeleteArtist(id int) Endpoint {
	return Endpoint{operation: "artists.delete", method: MethodDelete, path: "/artists/" + itoa(id), requiresAuth: true}
}

func UploadArtistImage() Endpoint {
	return Endpoint{operation: "artists.upload_image", method: MethodPost, path: "/artists/upload-image", requiresAuth: true}
}

func UpdateArtistImage(id int) Endpoint {
	return Endpoint{operation: "artists.update_image", method: MethodPut, path: "/artists/" + itoa(id) + "/image", requiresAuth: true}
}

func AddAlbums(artistID int) Endpoint {
	return Endpoint{operation: "artists.add_albums", method: MethodPost, path: "/artists/" + itoa(artistID) + "/albums", requiresAuth: true}
}

func DeleteAlbum(artistID, albumID int) Endpoint {
	return Endpoint{operation: "artists.delete_album", method: MethodDelete, path: "/artists/" + itoa(artistID) + "/albums/" + itoa(albumID), requiresAuth: true}
}

func Clout(id int) Endpoint {
	return Endpoint{operation: "artists.clout", method: MethodPut, path: "/artists/" + itoa(id) + "/clout", requiresAuth: true}
}

func RemoveClout(id int) Endpoint {
	return Endpoint{operation: "artists.remove_clout", method: MethodPut, path: "/artists/" + itoa(id) + "/clout/remove", requiresAuth: true}
}

// Feed.

func Feed() Endpoint {
	return Endpoint{operation: "feed.list", method: MethodGet, path: "/feed", requiresAuth: true}
}

func FeedText() Endpoint {
	return Endpoint{operation: "feed.create_text", method: MethodPost, path: "/feed/text", requiresAuth: true}
}

func FeedVideoURL() Endpoint {
	return Endpoint{operation: "feed.create_video_url", method: MethodPost, path: "/feed/video-url", requiresAuth: true}
}

func DeleteFeedPost(postType string, id int) Endpoint {
	return Endpoint{operation: "feed.delete", method: MethodDelete, path: "/feed/" + postType + "/" + itoa(id), requiresAuth: true}
}

// Videos.

func YouTubeFeed() Endpoint {
	return Endpoint{operation: "art.youtube_feed", method: MethodGet, path: "/art/youtube-feed", requiresAuth: false}
}

func CombinedVideoFeed() Endpoint {
	return Endpoint{operation: "art.combined_video_feed", method: MethodGet, path: "/art/combined-video-feed", requiresAuth: false}
}

func MusicVideos() Endpoint {
	return Endpoint{operation: "art.music_videos", method: MethodGet, path: "/art/music-videos", requiresAuth: false}
}

// Music.

func UpcomingReleases() Endpoint {
	return Endpoint{operation: "music.upcoming", method: MethodGet, path: "/music/upcoming", requiresAuth: false}
}

// Profile list.

func ProfileList() Endpoint {
	return Endpoint{operation: "profile.list", method: MethodGet, path: "/profile/list", requiresAuth: true}
}

func UserProfileList(userID int) Endpoint {
	return Endpoint{operation: "profile.user_list", method: MethodGet, path: "/profile/user/" + itoa(userID), requiresAuth: true}
}

func AddToProfileList(artistID int) Endpoint {
	return Endpoint{operation: "profile.add", method: MethodPost, path: "/profile/list/" + itoa(artistID), requiresAuth: true}
}

func RemoveFromProfileList(artistID int) Endpoint {
	return Endpoint{operation: "profile.remove", method: MethodDelete, path: "/profile/list/" + itoa(artistID), requiresAuth: true}
}

// Follows.

func Follow(userID int) Endpoint {
	return Endpoint{operation: "users.follow", method: MethodPost, path: "/users/" + itoa(userID) + "/follow", requiresAuth: true}
}

func Unfollow(userID int) Endpoint {
	return Endpoint{operation: "users.unfollow", method: MethodDelete, path: "/users/" + itoa(userID) + "/unfollow", requiresAuth: true}
}

func Followers(userID int) Endpoint {
	return Endpoint{operation: "users.followers", method: MethodGet, path: "/users/" + itoa(userID) + "/followers", requiresAuth: false}
}

func Following(userID int) Endpoint {
	return Endpoint{operation: "users.following", method: MethodGet, path: "/users/" + itoa(userID) + "/following", requiresAuth: false}
}

// Messages.

func Conversations() Endpoint {
	return Endpoint{operation: "messages.conversations", method: MethodGet, path: "/messages/conversations", requiresAuth: true}
}

func CreateConversation() Endpoint {
	return Endpoint{operation: "messages.create_conversation", method: MethodPost, path: "/messages/conversations", requiresAuth: true}
}

func ConversationMessages(id int) Endpoint {
	return Endpoint{operation: "messages.history", method: MethodGet, path: "/messages/conversations/" + itoa(id), requiresAuth: true}
}

func SendMessage(conversationID int) Endpoint {
	return Endpoint{operation: "messages.send", method: MethodPost, path: "/messages/conversations/" + itoa(conversationID), requiresAuth: true}
}

func MarkConversationRead(id int) Endpoint {
	return Endpoint{operation: "messages.mark_read", method: MethodPatch, path: "/messages/conversations/" + itoa(id) + "/read", requiresAuth: true}
}

func UnreadCount() Endpoint {
	return Endpoint{operation: "messages.unread_count", method: MethodGet, path: "/messages/unread-count", requiresAuth: true}
}

func CheckDM(userID int) Endpoint {
	return Endpoint{operation: "messages.check_dm", method: MethodGet, path: "/messages/check-dm/" + itoa(userID), requiresAuth: true}
}

// Waitlist.

func WaitlistJoin() Endpoint {
	return Endpoint{operation: "waitlist.join", method: MethodPost, path: "/waitlist/join", requiresAuth: false}
}

func WaitlistVerify() Endpoint {
	return Endpoint{operation: "waitlist.verify", method: MethodPost, path: "/waitlist/verify", requiresAuth: false}
}
