package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ninebyfour/ninebyfour-go/internal/api"
	"github.com/ninebyfour/ninebyfour-go/internal/credentials"
	"github.com/ninebyfour/ninebyfour-go/internal/schema"
)

func newTestClient(t *testing.T, handler http.Handler, token string) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	creds := credentials.NewMemoryStore()
	if token != "" {
		require.NoError(t, creds.SetToken(token))
	}
	return api.NewClient(api.Config{
		BaseURL:     srv.URL,
		Timeout:     time.Second,
		Credentials: creds,
	})
}

func TestVideosMergesBothCollectionsNewestFirst(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/art/combined-video-feed":
			_, _ = w.Write([]byte(`[{"id":11,"video_url":"https://www.youtube.com/watch?v=abc123","video_type":"youtube","caption":"studio session","created_at":"2025-05-02T10:00:00Z"}]`))
		case "/art/music-videos":
			_, _ = w.Write([]byte(`[{"videoId":"xyz789","title":"Night Drive","publishedAt":"2025-05-03T10:00:00Z","channelTitle":"NightFM"}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}), "")

	items := NewDiscoverService(client).Videos(context.Background())
	require.Len(t, items, 2)
	require.Equal(t, "music_video-xyz789", items[0].ID)
	require.Equal(t, "combined-11", items[1].ID)
	require.Equal(t, "abc123", items[1].YouTubeID)
	require.Equal(t, "NightFM", items[0].Author)
}

func TestVideosSurviveOneCollectionFailing(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/art/combined-video-feed":
			w.WriteHeader(http.StatusBadGateway)
		case "/art/music-videos":
			_, _ = w.Write([]byte(`[{"videoId":"keep1","title":"Still Here"}]`))
		}
	}), "")

	items := NewDiscoverService(client).Videos(context.Background())
	require.Len(t, items, 1)
	require.Equal(t, "music_video-keep1", items[0].ID)
}

func TestItemFromVideoPostFallsBackToGeneratedThumbnail(t *testing.T) {
	item := itemFromVideoPost(schema.VideoPost{
		ID:        5,
		VideoURL:  "https://youtu.be/dQw4w9WgXcQ?t=42",
		CreatedAt: "2025-01-01T00:00:00Z",
	})
	require.Equal(t, "dQw4w9WgXcQ", item.YouTubeID)
	require.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", item.Thumbnail)
}

func TestExtractYouTubeID(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc123", "abc123"},
		{"https://youtu.be/short99", "short99"},
		{"https://youtu.be/short99?si=tracker", "short99"},
		{"bareId42", "bareId42"},
		{"https://vimeo.com/12345", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, extractYouTubeID(tc.raw), tc.raw)
	}
}

func TestProfileListEnforcesClientCap(t *testing.T) {
	var calls int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}), "tok")

	list := NewProfileList(client)
	for id := 1; id <= maxProfileListSize; id++ {
		require.True(t, list.Add(context.Background(), id))
	}
	require.True(t, list.Full())

	// Over the cap: rejected locally, no request issued.
	before := calls
	require.False(t, list.Add(context.Background(), 999))
	require.Equal(t, before, calls)

	// Duplicates are local no-ops too.
	require.False(t, list.Add(context.Background(), 1))
	require.Equal(t, before, calls)
}

func TestProfileListRefreshAndRemove(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`{"list":[{"artist_id":3},{"artist_id":8}]}`))
		case r.Method == http.MethodDelete:
			require.Equal(t, "/profile/list/3", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}
	}), "tok")

	list := NewProfileList(client)
	require.True(t, list.Refresh(context.Background()))
	require.Equal(t, 2, list.Count())
	require.True(t, list.Contains(3))

	require.True(t, list.Remove(context.Background(), 3))
	require.False(t, list.Contains(3))
	require.Equal(t, 1, list.Count())
}

func TestProfileListRefreshSignedOutIsQuiet(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the server without a credential")
	}), "")

	list := NewProfileList(client)
	require.False(t, list.Refresh(context.Background()))
	require.Zero(t, list.Count())
}
