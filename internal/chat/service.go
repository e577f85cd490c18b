// Package chat drives direct messaging: conversation threads with cursor
// paging and live refresh, and the inbox with its unread badge.
package chat

import (
	"context"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/ninebyfour/ninebyfour-go/errs"
	"github.com/ninebyfour/ninebyfour-go/internal/api"
	"github.com/ninebyfour/ninebyfour-go/internal/page"
	"github.com/ninebyfour/ninebyfour-go/internal/poll"
	"github.com/ninebyfour/ninebyfour-go/internal/schema"
)

// Service is the entry point for messaging.
type Service struct {
	client    *api.Client
	scheduler *poll.Scheduler

	threadInterval time.Duration
	unreadInterval time.Duration
	inboxInterval  time.Duration
}

// Intervals fixes the refresh cadences. Zero values disable nothing; they
// are passed through to the scheduler as-is, so callers normally take them
// from configuration.
type Intervals struct {
	Thread        time.Duration
	Unread        time.Duration
	Conversations time.Duration
}

func NewService(client *api.Client, scheduler *poll.Scheduler, iv Intervals) *Service {
	return &Service{
		client:         client,
		scheduler:      scheduler,
		threadInterval: iv.Thread,
		unreadInterval: iv.Unread,
		inboxInterval:  iv.Conversations,
	}
}

// CreateConversation opens (or reuses) a thread with the recipient.
func (s *Service) CreateConversation(ctx context.Context, recipientID int) (schema.Conversation, error) {
	body := schema.CreateConversationRequest{RecipientID: recipientID}
	return api.Request[schema.Conversation](ctx, s.client, api.CreateConversation(), body, nil)
}

// CheckDM reports whether the caller may message the user, and the id of an
// existing thread if one is already open.
func (s *Service) CheckDM(ctx context.Context, userID int) (schema.CheckDMResponse, error) {
	return api.Request[schema.CheckDMResponse](ctx, s.client, api.CheckDM(userID), nil, nil)
}

// Thread is one open conversation: the visible message window (oldest
// first), backwards cursor paging, sends, and a live refresh loop.
type Thread struct {
	service        *Service
	conversationID int
	pager          *page.CursorPager[schema.Message]

	mu    sync.Mutex
	onNew func([]schema.Message)
}

// Thread opens a handle on one conversation. Nothing is fetched until Load.
func (s *Service) Thread(conversationID int) *Thread {
	t := &Thread{service: s, conversationID: conversationID}
	t.pager = page.NewCursorPager(
		func(m schema.Message) int { return m.MessageID },
		func(ctx context.Context, before *int) ([]schema.Message, bool, error) {
			var query url.Values
			if before != nil {
				query = url.Values{}
				query.Set("before", strconv.Itoa(*before))
			}
			resp, err := api.Request[schema.MessagesResponse](ctx, s.client, api.ConversationMessages(conversationID), nil, query)
			if err != nil {
				return nil, false, err
			}
			return resp.Messages, resp.HasMore, nil
		},
	)
	return t
}

// Load fetches the latest message window, replacing any held messages.
func (t *Thread) Load(ctx context.Context) error {
	return t.pager.Load(ctx)
}

// LoadEarlier pages backwards from the oldest held message. Failures and
// redundant calls are no-ops reporting false.
func (t *Thread) LoadEarlier(ctx context.Context) bool {
	return t.pager.LoadEarlier(ctx)
}

// Messages returns the held window, oldest first.
func (t *Thread) Messages() []schema.Message {
	return t.pager.Items()
}

// HasMore reports whether older history exists beyond the held window.
func (t *Thread) HasMore() bool {
	return t.pager.HasMore()
}

// Send posts a message and appends the server's echo to the window.
func (t *Thread) Send(ctx context.Context, content string) (schema.Message, error) {
	body := schema.SendMessageRequest{Content: content}
	msg, err := api.Request[schema.Message](ctx, t.service.client, api.SendMessage(t.conversationID), body, nil)
	if err != nil {
		return schema.Message{}, err
	}
	t.pager.Append(msg)
	return msg, nil
}

// MarkRead clears the thread's unread state, best effort.
func (t *Thread) MarkRead(ctx context.Context) bool {
	return errs.BestEffort(ctx, func(ctx context.Context) error {
		return api.RequestVoid(ctx, t.service.client, api.MarkConversationRead(t.conversationID), nil)
	})
}

// OnNewMessages registers a callback invoked from the refresh loop whenever
// the latest window differs from the held one. At most one callback is
// kept; nil clears it.
func (t *Thread) OnNewMessages(fn func([]schema.Message)) {
	t.mu.Lock()
	t.onNew = fn
	t.mu.Unlock()
}

func (t *Thread) pollKey() string {
	return "chat.thread." + strconv.Itoa(t.conversationID)
}

// StartPolling begins the live refresh loop for this thread. Each tick
// fetches the latest window and swaps it in only when the newest message id
// changed. Starting again restarts the loop; poll failures keep the held
// window.
func (t *Thread) StartPolling(ctx context.Context) error {
	return t.service.scheduler.Start(ctx, t.pollKey(), poll.Step{
		Interval: t.service.threadInterval,
		Action:   t.refreshLatest,
	})
}

// StopPolling halts the refresh loop. Safe to call repeatedly.
func (t *Thread) StopPolling() {
	t.service.scheduler.Stop(t.pollKey())
}

func (t *Thread) refreshLatest(ctx context.Context) error {
	resp, err := api.Request[schema.MessagesResponse](ctx, t.service.client, api.ConversationMessages(t.conversationID), nil, nil)
	if err != nil {
		return err
	}
	held := t.pager.Items()
	if lastID(resp.Messages) == lastID(held) {
		return nil
	}
	t.pager.Replace(resp.Messages)
	t.mu.Lock()
	fn := t.onNew
	t.mu.Unlock()
	if fn != nil {
		fn(t.pager.Items())
	}
	return nil
}

func lastID(msgs []schema.Message) int {
	if len(msgs) == 0 {
		return 0
	}
	return msgs[len(msgs)-1].MessageID
}

// Inbox is the conversation list plus the unread badge, refreshed by a
// single loop with two cadences: the unread count on the longer interval,
// the conversation list on the shorter one, strictly alternating.
type Inbox struct {
	service *Service

	mu            sync.Mutex
	conversations []schema.Conversation
	unread        int
}

const inboxPollKey = "chat.inbox"

// Inbox returns the caller's inbox handle.
func (s *Service) Inbox() *Inbox {
	return &Inbox{service: s}
}

// Load fetches the conversation list once, replacing the held one.
func (i *Inbox) Load(ctx context.Context) error {
	convs, err := api.Request[[]schema.Conversation](ctx, i.service.client, api.Conversations(), nil, nil)
	if err != nil {
		return err
	}
	i.mu.Lock()
	i.conversations = convs
	i.mu.Unlock()
	return nil
}

// RefreshUnread fetches the unread badge count, best effort.
func (i *Inbox) RefreshUnread(ctx context.Context) bool {
	var resp schema.UnreadCountResponse
	ok := errs.BestEffort(ctx, func(ctx context.Context) error {
		var err error
		resp, err = api.Request[schema.UnreadCountResponse](ctx, i.service.client, api.UnreadCount(), nil, nil)
		return err
	})
	if !ok {
		return false
	}
	i.mu.Lock()
	i.unread = resp.Count.Int()
	i.mu.Unlock()
	return true
}

// Conversations returns a copy of the held conversation list.
func (i *Inbox) Conversations() []schema.Conversation {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]schema.Conversation, len(i.conversations))
	copy(out, i.conversations)
	return out
}

// Unread returns the last fetched badge count.
func (i *Inbox) Unread() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.unread
}

// StartPolling runs the inbox loop: wait the unread interval, refresh the
// badge, wait the conversation interval, refresh the list, repeat. Both
// steps swallow failures and keep the last good state.
func (i *Inbox) StartPolling(ctx context.Context) error {
	return i.service.scheduler.Start(ctx, inboxPollKey,
		poll.Step{
			Interval: i.service.unreadInterval,
			Action: func(ctx context.Context) error {
				i.RefreshUnread(ctx)
				return nil
			},
		},
		poll.Step{
			Interval: i.service.inboxInterval,
			Action:   i.Load,
		},
	)
}

// StopPolling halts the inbox loop. Safe to call repeatedly.
func (i *Inbox) StopPolling() {
	i.service.scheduler.Stop(inboxPollKey)
}
