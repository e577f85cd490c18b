// Command ninebyfour is a terminal client for the NineByFour network: it
// signs in, browses artists and the merged video stream, and tails a
// conversation live.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sourcegraph/conc"

	"github.com/ninebyfour/ninebyfour-go/config"
	"github.com/ninebyfour/ninebyfour-go/errs"
	"github.com/ninebyfour/ninebyfour-go/internal/api"
	"github.com/ninebyfour/ninebyfour-go/internal/artists"
	"github.com/ninebyfour/ninebyfour-go/internal/auth"
	"github.com/ninebyfour/ninebyfour-go/internal/chat"
	"github.com/ninebyfour/ninebyfour-go/internal/credentials"
	"github.com/ninebyfour/ninebyfour-go/internal/feed"
	"github.com/ninebyfour/ninebyfour-go/internal/merge"
	"github.com/ninebyfour/ninebyfour-go/internal/observability"
	"github.com/ninebyfour/ninebyfour-go/internal/poll"
	"github.com/ninebyfour/ninebyfour-go/internal/schema"
	"github.com/ninebyfour/ninebyfour-go/internal/telemetry"
)

const (
	loggerPrefix             = "ninebyfour "
	telemetryShutdownTimeout = 5 * time.Second
)

const usage = `usage: ninebyfour [flags] <command> [args]

commands:
  login <username> <password>    sign in and store the token
  register <user> <email> <pw>   create an account and sign in
  logout                         discard the stored token
  whoami                         show the signed-in account
  artists [search]               list or search artists (first two pages)
  artist <id>                    show one artist with albums
  clout <artist-id>              give an artist a clout point
  videos                         show the merged discover video stream
  releases                       list upcoming releases
  discover                       videos and releases, loaded together
  feed                           show the social feed
  post <text>                    publish a text post
  inbox                          show conversations and tail the unread badge
  chat <conversation-id>         tail a conversation live
  waitlist <email> <full name>   join the waitlist
`

func main() {
	cfgPath := flag.String("config", "", "path to YAML configuration file")
	envFile := flag.String("env-file", ".env", "dotenv file loaded before configuration")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	logger := log.New(os.Stderr, loggerPrefix, log.LstdFlags)
	observability.SetLogger(observability.NewStdLogger(logger, *verbose))

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Fatalf("load env file: %v", err)
	}

	cfg, loadedFromFile, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if *cfgPath != "" && !loadedFromFile {
		logger.Printf("configuration file not found, using defaults")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	telemetryProvider, err := initTelemetry(ctx, logger, cfg)
	if err != nil {
		logger.Fatalf("initialize telemetry: %v", err)
	}
	defer shutdownTelemetry(telemetryProvider, logger)

	creds, err := openCredentialStore(cfg)
	if err != nil {
		logger.Fatalf("open credential store: %v", err)
	}

	client := api.NewClient(api.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.HTTPTimeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Credentials:       creds,
	})

	app := &appContext{
		session:   auth.NewSessionManager(client, creds),
		artists:   artists.NewService(client, cfg.API.PageSize),
		discover:  feed.NewDiscoverService(client),
		scheduler: poll.NewScheduler(),
		out:       os.Stdout,
	}
	app.chat = chat.NewService(client, app.scheduler, chat.Intervals{
		Thread:        cfg.Polling.Chat,
		Unread:        cfg.Polling.Unread,
		Conversations: cfg.Polling.Conversations,
	})
	defer app.scheduler.StopAll()

	if err := app.run(ctx, flag.Args()); err != nil {
		if msg := errs.UserMessage(err); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		logger.Fatalf("%v", err)
	}
}

type appContext struct {
	session   *auth.SessionManager
	artists   *artists.Service
	discover  *feed.DiscoverService
	chat      *chat.Service
	scheduler *poll.Scheduler
	out       *os.File
}

func (a *appContext) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return errors.New("missing command")
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "register":
		return a.register(ctx, rest)
	case "logout":
		return a.session.Logout()
	case "whoami":
		return a.whoami(ctx)
	case "artists":
		return a.listArtists(ctx, rest)
	case "artist":
		return a.showArtist(ctx, rest)
	case "clout":
		return a.clout(ctx, rest)
	case "videos":
		return a.videos(ctx)
	case "releases":
		return a.releases(ctx)
	case "discover":
		return a.discoverAll(ctx)
	case "feed":
		return a.showFeed(ctx)
	case "post":
		return a.post(ctx, rest)
	case "inbox":
		return a.inbox(ctx)
	case "chat":
		return a.tailChat(ctx, rest)
	case "waitlist":
		return a.waitlist(ctx, rest)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *appContext) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("login needs <username> <password>")
	}
	user, err := a.session.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "signed in as %s (id %d)\n", user.Username, user.ID)
	return nil
}

func (a *appContext) register(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.New("register needs <username> <email> <password>")
	}
	user, err := a.session.Register(ctx, schema.RegisterRequest{
		Username: args[0],
		Email:    args[1],
		Password: args[2],
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "account created, signed in as %s\n", user.Username)
	return nil
}

func (a *appContext) whoami(ctx context.Context) error {
	user, err := a.session.Resume(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (id %d)\n", user.Username, user.ID)
	if user.Email != nil {
		fmt.Fprintf(a.out, "email: %s\n", *user.Email)
	}
	return nil
}

// listArtists prints the first page and, when available, the second: enough
// to show paging working without scrolling the terminal away.
func (a *appContext) listArtists(ctx context.Context, args []string) error {
	search := ""
	if len(args) > 0 {
		search = args[0]
	}
	pager := a.artists.ListPager(search)
	if err := pager.Load(ctx); err != nil {
		return err
	}
	pager.LoadNext(ctx)
	for _, artist := range pager.Items() {
		clout := 0
		if artist.CloutCount != nil {
			clout = *artist.CloutCount
		}
		fmt.Fprintf(a.out, "%5d  %-30s clout=%d\n", artist.ArtistID, artist.ArtistName, clout)
	}
	if pager.HasMore() {
		fmt.Fprintln(a.out, "(more available)")
	}
	return nil
}

func (a *appContext) showArtist(ctx context.Context, args []string) error {
	id, err := argID(args, "artist")
	if err != nil {
		return err
	}
	artist, err := a.artists.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (id %d)\n", artist.ArtistName, artist.ArtistID)
	if artist.Genre != nil {
		fmt.Fprintf(a.out, "genre: %s\n", *artist.Genre)
	}
	for _, album := range artist.Albums {
		fmt.Fprintf(a.out, "  album: %s\n", album.AlbumName)
	}
	return nil
}

func (a *appContext) clout(ctx context.Context, args []string) error {
	id, err := argID(args, "clout")
	if err != nil {
		return err
	}
	count, ok := a.artists.AddClout(ctx, id)
	if !ok {
		fmt.Fprintln(a.out, "clout not counted (are you signed in?)")
		return nil
	}
	fmt.Fprintf(a.out, "clout counted, total now %d\n", count)
	return nil
}

func (a *appContext) videos(ctx context.Context) error {
	items := a.discover.Videos(ctx)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "no videos available")
		return nil
	}
	for _, item := range items {
		fmt.Fprintf(a.out, "%-24s %-40s %s\n", item.Timestamp, item.Title, item.YouTubeID)
	}
	return nil
}

func (a *appContext) releases(ctx context.Context) error {
	releases, err := a.discover.UpcomingReleases(ctx)
	if err != nil {
		return err
	}
	for _, release := range releases {
		fmt.Fprintf(a.out, "%s  %s - %s\n", release.ReleaseDate, release.ArtistName, release.ReleaseName)
	}
	return nil
}

// discoverAll loads the video stream and the release calendar together,
// the way the discover screen does.
func (a *appContext) discoverAll(ctx context.Context) error {
	var (
		items       []merge.Item
		releases    []schema.UpcomingRelease
		releasesErr error
	)
	var group conc.WaitGroup
	group.Go(func() { items = a.discover.Videos(ctx) })
	group.Go(func() { releases, releasesErr = a.discover.UpcomingReleases(ctx) })
	group.Wait()

	fmt.Fprintln(a.out, "videos:")
	for _, item := range items {
		fmt.Fprintf(a.out, "  %-24s %-40s %s\n", item.Timestamp, item.Title, item.YouTubeID)
	}
	if releasesErr != nil {
		return releasesErr
	}
	fmt.Fprintln(a.out, "releases:")
	for _, release := range releases {
		fmt.Fprintf(a.out, "  %s  %s - %s\n", release.ReleaseDate, release.ArtistName, release.ReleaseName)
	}
	return nil
}

func (a *appContext) showFeed(ctx context.Context) error {
	posts, err := a.discover.Posts(ctx)
	if err != nil {
		return err
	}
	for _, post := range posts {
		author := "?"
		if post.Username != nil {
			author = *post.Username
		}
		body := post.PostType
		if post.Content != nil {
			body = *post.Content
		}
		fmt.Fprintf(a.out, "[%s] %s: %s\n", post.CreatedAt, author, body)
	}
	return nil
}

func (a *appContext) post(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("post needs <text>")
	}
	created, err := a.discover.CreateTextPost(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "posted (id %d)\n", created.ID)
	return nil
}

// inbox prints the conversation list, then keeps the badge and list fresh
// until interrupted.
func (a *appContext) inbox(ctx context.Context) error {
	inbox := a.chat.Inbox()
	if err := inbox.Load(ctx); err != nil {
		return err
	}
	inbox.RefreshUnread(ctx)
	printInbox(a.out, inbox)

	if err := inbox.StartPolling(ctx); err != nil {
		return err
	}
	defer inbox.StopPolling()
	<-ctx.Done()
	return nil
}

func printInbox(out *os.File, inbox *chat.Inbox) {
	fmt.Fprintf(out, "unread: %d\n", inbox.Unread())
	for _, conv := range inbox.Conversations() {
		who := "?"
		if conv.OtherUsername != nil {
			who = *conv.OtherUsername
		}
		last := ""
		if conv.LastMessage != nil {
			last = *conv.LastMessage
		}
		fmt.Fprintf(out, "%5d  %-20s %s\n", conv.ConversationID, who, last)
	}
}

// tailChat prints the latest window of a conversation, then follows it live
// until interrupted.
func (a *appContext) tailChat(ctx context.Context, args []string) error {
	id, err := argID(args, "chat")
	if err != nil {
		return err
	}
	thread := a.chat.Thread(id)
	if err := thread.Load(ctx); err != nil {
		return err
	}
	printed := 0
	for _, msg := range thread.Messages() {
		printMessage(a.out, msg)
		printed++
	}
	thread.MarkRead(ctx)

	// The callback runs serially on the poll loop, so plain state is fine.
	thread.OnNewMessages(func(msgs []schema.Message) {
		for _, msg := range msgs[min(printed, len(msgs)):] {
			printMessage(a.out, msg)
		}
		printed = len(msgs)
	})
	if err := thread.StartPolling(ctx); err != nil {
		return err
	}
	defer thread.StopPolling()
	<-ctx.Done()
	return nil
}

func printMessage(out *os.File, msg schema.Message) {
	who := strconv.Itoa(msg.SenderID)
	if msg.SenderUsername != nil {
		who = *msg.SenderUsername
	}
	fmt.Fprintf(out, "[%s] %s: %s\n", msg.CreatedAt, who, msg.Content)
}

func (a *appContext) waitlist(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("waitlist needs <email> <full name>")
	}
	resp, err := a.session.JoinWaitlist(ctx, args[0], args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, auth.JoinErrorMessage(err))
		return err
	}
	fmt.Fprintf(a.out, "%s\n", resp.Message)
	return nil
}

func argID(args []string, cmd string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s needs one numeric id", cmd)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%s: bad id %q", cmd, args[0])
	}
	return id, nil
}

func initTelemetry(ctx context.Context, logger *log.Logger, cfg config.Settings) (*telemetry.Provider, error) {
	telemetryCfg := telemetry.DefaultConfig()
	telemetryCfg.Enabled = cfg.Telemetry.Enabled
	telemetryCfg.Environment = string(cfg.Environment)
	if cfg.Telemetry.OTLPEndpoint != "" {
		telemetryCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	}

	provider, err := telemetry.NewProvider(ctx, telemetryCfg)
	if err != nil {
		return nil, fmt.Errorf("initialize telemetry provider: %w", err)
	}
	if telemetryCfg.Enabled {
		observability.SetMetrics(telemetry.NewMeterMetrics(provider))
		logger.Printf("telemetry initialized: endpoint=%s", telemetryCfg.OTLPEndpoint)
	}
	return provider, nil
}

func shutdownTelemetry(provider *telemetry.Provider, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
	defer cancel()
	if err := provider.Shutdown(ctx); err != nil {
		logger.Printf("telemetry shutdown: %v", err)
	}
}

func openCredentialStore(cfg config.Settings) (credentials.Store, error) {
	path := cfg.CredentialFile
	if path == "" {
		resolved, err := config.DefaultCredentialPath()
		if err != nil {
			return credentials.NewMemoryStore(), nil
		}
		path = resolved
	}
	return credentials.NewFileStore(path)
}
