// Package auth manages the account session: login, registration, token
// lifecycle, the social graph, and the invite waitlist.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/ninebyfour/ninebyfour-go/errs"
	"github.com/ninebyfour/ninebyfour-go/internal/api"
	"github.com/ninebyfour/ninebyfour-go/internal/credentials"
	"github.com/ninebyfour/ninebyfour-go/internal/observability"
	"github.com/ninebyfour/ninebyfour-go/internal/schema"
)

// SessionManager owns the authenticated session: it is the only writer of
// the credential store and caches the signed-in account.
type SessionManager struct {
	client *api.Client
	creds  credentials.Store

	mu   sync.Mutex
	user *schema.User
}

func NewSessionManager(client *api.Client, creds credentials.Store) *SessionManager {
	return &SessionManager{client: client, creds: creds}
}

// Login exchanges credentials for a token, stores it, and caches the
// returned account.
func (m *SessionManager) Login(ctx context.Context, username, password string) (schema.User, error) {
	body := schema.LoginRequest{Username: username, Password: password}
	resp, err := api.Request[schema.LoginResponse](ctx, m.client, api.Login(), body, nil)
	if err != nil {
		return schema.User{}, err
	}
	if err := m.creds.SetToken(resp.Token); err != nil {
		return schema.User{}, err
	}
	m.mu.Lock()
	u := resp.User
	m.user = &u
	m.mu.Unlock()
	return resp.User, nil
}

// Register creates the account and then signs it in, so a successful
// registration leaves a live session behind.
func (m *SessionManager) Register(ctx context.Context, req schema.RegisterRequest) (schema.User, error) {
	if _, err := api.Request[schema.LoginResponse](ctx, m.client, api.Register(), req, nil); err != nil {
		return schema.User{}, err
	}
	return m.Login(ctx, req.Username, req.Password)
}

// Logout discards the token and the cached account. Deleting an absent
// token is not an error.
func (m *SessionManager) Logout() error {
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
	return m.creds.DeleteToken()
}

// Resume revalidates a stored token against the account endpoint. An
// invalid or expired token logs the session out before the error is
// returned; no stored token resumes nothing.
func (m *SessionManager) Resume(ctx context.Context) (schema.User, error) {
	user, err := api.Request[schema.User](ctx, m.client, api.Me(), nil, nil)
	if err != nil {
		observability.Log().Info("session resume failed, logging out",
			observability.F("kind", string(errs.KindOf(err))),
		)
		if derr := m.Logout(); derr != nil {
			return schema.User{}, errors.Join(err, derr)
		}
		return schema.User{}, err
	}
	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	return user, nil
}

// Authenticated reports whether a token is stored. It says nothing about
// the token still being accepted; Resume answers that.
func (m *SessionManager) Authenticated() bool {
	_, ok := m.creds.Token()
	return ok
}

// User returns the cached account, if a session is live.
func (m *SessionManager) User() (schema.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return schema.User{}, false
	}
	return *m.user, true
}

// Profile fetches another user's public profile.
func (m *SessionManager) Profile(ctx context.Context, userID int) (schema.User, error) {
	return api.Request[schema.User](ctx, m.client, api.UserProfile(userID), nil, nil)
}

// UploadProfileImage replaces the caller's avatar and returns the stored
// image URL.
func (m *SessionManager) UploadProfileImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	form := api.NewForm()
	form.AddFile("image", filename, contentType, data)
	resp, err := api.Upload[struct {
		ProfileImage string `json:"profile_image"`
	}](ctx, m.client, api.UploadProfileImage(), form)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	if m.user != nil {
		img := resp.ProfileImage
		m.user.ProfileImage = &img
	}
	m.mu.Unlock()
	return resp.ProfileImage, nil
}

// Follow adds the user to the caller's following, best effort.
func (m *SessionManager) Follow(ctx context.Context, userID int) bool {
	return errs.BestEffort(ctx, func(ctx context.Context) error {
		return api.RequestVoid(ctx, m.client, api.Follow(userID), nil)
	})
}

// Unfollow removes the user from the caller's following, best effort.
func (m *SessionManager) Unfollow(ctx context.Context, userID int) bool {
	return errs.BestEffort(ctx, func(ctx context.Context) error {
		return api.RequestVoid(ctx, m.client, api.Unfollow(userID), nil)
	})
}

// Followers lists the accounts following the user.
func (m *SessionManager) Followers(ctx context.Context, userID int) ([]schema.FollowUser, error) {
	return api.Request[[]schema.FollowUser](ctx, m.client, api.Followers(userID), nil, nil)
}

// Following lists the accounts the user follows.
func (m *SessionManager) Following(ctx context.Context, userID int) ([]schema.FollowUser, error) {
	return api.Request[[]schema.FollowUser](ctx, m.client, api.Following(userID), nil, nil)
}

// waitlistConflictMessage overrides the server text for a duplicate join:
// the raw 409 body is not presentable.
const waitlistConflictMessage = "This email is already on the waitlist."

// JoinWaitlist submits a waitlist request. The email is lowercased and both
// fields trimmed before the call. Errors come back unmodified from the
// pipeline; JoinErrorMessage renders them for display.
func (m *SessionManager) JoinWaitlist(ctx context.Context, email, fullName string) (schema.WaitlistJoinResponse, error) {
	body := schema.WaitlistJoinRequest{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		FullName: strings.TrimSpace(fullName),
	}
	return api.Request[schema.WaitlistJoinResponse](ctx, m.client, api.WaitlistJoin(), body, nil)
}

// JoinErrorMessage renders the user-facing text for a JoinWaitlist failure.
// A 409 conflict shows the duplicate-entry override; any other HTTP failure
// shows the server's own message verbatim rather than the generic "Error
// {code}" form.
func JoinErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *errs.E
	if errors.As(err, &e) && e.Kind == errs.KindHTTP {
		if e.HTTP == 409 {
			return waitlistConflictMessage
		}
		if e.Message != "" {
			return e.Message
		}
	}
	return errs.UserMessage(err)
}

// VerifyInvite checks an invite code issued to a waitlisted email.
func (m *SessionManager) VerifyInvite(ctx context.Context, email, code string) (schema.WaitlistVerifyResponse, error) {
	body := schema.WaitlistVerifyRequest{
		Email:      strings.ToLower(strings.TrimSpace(email)),
		InviteCode: strings.TrimSpace(code),
	}
	return api.Request[schema.WaitlistVerifyResponse](ctx, m.client, api.WaitlistVerify(), body, nil)
}
