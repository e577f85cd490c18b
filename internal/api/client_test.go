package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ninebyfour/ninebyfour-go/errs"
	"github.com/ninebyfour/ninebyfour-go/internal/credentials"
	"github.com/ninebyfour/ninebyfour-go/internal/observability"
	"github.com/ninebyfour/ninebyfour-go/internal/schema"
)

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	creds := credentials.NewMemoryStore()
	if token != "" {
		require.NoError(t, creds.SetToken(token))
	}
	client := NewClient(Config{
		BaseURL:     srv.URL,
		Timeout:     time.Second,
		Credentials: creds,
	})
	return client, srv
}

func TestRequestDecodesTypedResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"token":"tok-1","user":{"id":5,"username":"ray"}}`))
	}), "")

	resp, err := Request[schema.LoginResponse](context.Background(), client, Login(),
		schema.LoginRequest{Username: "ray", Password: "pw"}, nil)
	require.NoError(t, err)
	require.Equal(t, "tok-1", resp.Token)
	require.Equal(t, 5, resp.User.ID)
}

func TestRequestAttachesBearerToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"user_id":9,"username":"nia"}`))
	}), "secret-token")

	user, err := Request[schema.User](context.Background(), client, Me(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, 9, user.ID)
}

func TestRequestMissingCredentialFailsBeforeNetwork(t *testing.T) {
	var calls atomic.Int64
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}), "")

	_, err := Request[schema.User](context.Background(), client, Me(), nil, nil)
	require.Error(t, err)
	require.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
	require.Zero(t, calls.Load(), "no network call may be attempted")
}

func TestRequestNoBodyOmitsContentType(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"artists":[]}`))
	}), "")

	_, err := Request[schema.PaginatedArtistResponse](context.Background(), client, Artists(), nil, nil)
	require.NoError(t, err)
}

func TestRequestQueryParameters(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "20", r.URL.Query().Get("limit"))
		require.Equal(t, "doom", r.URL.Query().Get("search"))
		_, _ = w.Write([]byte(`{"artists":[]}`))
	}), "")

	query := url.Values{}
	query.Set("page", "2")
	query.Set("limit", "20")
	query.Set("search", "doom")
	_, err := Request[schema.PaginatedArtistResponse](context.Background(), client, Artists(), nil, query)
	require.NoError(t, err)
}

func TestRequestServerErrorKinds(t *testing.T) {
	cases := []struct {
		status int
		kind   errs.Kind
	}{
		{http.StatusUnauthorized, errs.KindUnauthorized},
		{http.StatusForbidden, errs.KindForbidden},
		{http.StatusConflict, errs.KindHTTP},
		{http.StatusInternalServerError, errs.KindHTTP},
	}
	for _, tc := range cases {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"message":"nope"}`))
		}), "")
		_, err := Request[schema.User](context.Background(), client, Artists(), nil, nil)
		require.Error(t, err)
		require.Equal(t, tc.kind, errs.KindOf(err), "status %d", tc.status)
	}
}

func TestRequestDecodingErrorIsDistinctFromValidation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token": 12`))
	}), "")

	_, err := Request[schema.LoginResponse](context.Background(), client, Login(), nil, nil)
	require.Error(t, err)
	require.Equal(t, errs.KindDecoding, errs.KindOf(err))
}

func TestRequestVoidDiscardsBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		_, _ = w.Write([]byte(`this body is not json and must not matter`))
	}), "tok")

	require.NoError(t, RequestVoid(context.Background(), client, MarkConversationRead(4), nil))
}

func TestRequestNetworkFailureCollapsesToNetworkKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(Config{
		BaseURL:     srv.URL,
		Timeout:     200 * time.Millisecond,
		Credentials: credentials.NewMemoryStore(),
	})
	_, err := Request[schema.User](context.Background(), client, Artists(), nil, nil)
	require.Error(t, err)
	require.Equal(t, errs.KindNetwork, errs.KindOf(err))
}

func TestRequestCountsIntoRuntimeMetrics(t *testing.T) {
	sink := observability.NewRuntimeMetrics()
	observability.SetMetrics(sink)
	t.Cleanup(func() { observability.SetMetrics(nil) })

	var status atomic.Int64
	status.Store(http.StatusOK)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
		_, _ = w.Write([]byte(`{"artists":[]}`))
	}), "")

	_, err := Request[schema.PaginatedArtistResponse](context.Background(), client, Artists(), nil, nil)
	require.NoError(t, err)

	status.Store(http.StatusInternalServerError)
	_, err = Request[schema.PaginatedArtistResponse](context.Background(), client, Artists(), nil, nil)
	require.Error(t, err)

	snap := sink.Snapshot()
	require.Equal(t, 2, snap.RequestsByOperation[Artists().Operation()])
	require.Equal(t, 1, snap.FailuresByKind[string(errs.KindHTTP)])
}

func TestUploadSendsMultipartBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		require.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="), ct)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "hello", r.FormValue("caption"))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		require.Equal(t, "a.jpg", header.Filename)
		_, _ = w.Write([]byte(`{"id":3,"username":"ray"}`))
	}), "tok")

	form := NewForm()
	form.AddField("caption", "hello")
	form.AddFile("image", "a.jpg", "image/jpeg", []byte{0xFF, 0xD8})

	user, err := Upload[schema.User](context.Background(), client, UploadProfileImage(), form)
	require.NoError(t, err)
	require.Equal(t, 3, user.ID)
}

func TestUploadRequiresCredential(t *testing.T) {
	var calls atomic.Int64
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}), "")

	form := NewForm()
	form.AddField("caption", "x")
	_, err := Upload[schema.User](context.Background(), client, UploadProfileImage(), form)
	require.Error(t, err)
	require.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
	require.Zero(t, calls.Load())
}

func TestCredentialReadIsFreshPerCall(t *testing.T) {
	var seen []string
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"user_id":1,"username":"u"}`))
	}), "first")
	_ = srv

	creds := client.builder.creds

	_, err := Request[schema.User](context.Background(), client, Me(), nil, nil)
	require.NoError(t, err)

	require.NoError(t, creds.SetToken("second"))
	_, err = Request[schema.User](context.Background(), client, Me(), nil, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"Bearer first", "Bearer second"}, seen)
}
