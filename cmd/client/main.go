package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/taskbridge/go-task-server/client/apiclient"
	"github.com/taskbridge/go-task-server/client/clientconfig"
	"github.com/taskbridge/go-task-server/client/handoff"
	"github.com/taskbridge/go-task-server/client/tokenstore"
)

func main() {
	cmd := flag.String("cmd", "tasks", "Command: login|tasks|done|user|logout")
	taskID := flag.Int64("id", 0, "Task ID (for done)")
	isDone := flag.Bool("done", true, "Done flag value (for done)")
	configPath := flag.String("config", clientconfig.DefaultPath(), "Path to config file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := clientconfig.Load(*configPath)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	store := newStore(cfg)

	if err := run(*cmd, *taskID, *isDone, cfg, store); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

// newStore prefers the durable file store; an unavailable data dir
// degrades to a memory-only session.
func newStore(cfg *clientconfig.Config) tokenstore.Store {
	store, err := tokenstore.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Err(err).Msg("Token storage unavailable, session will not survive restart")
		return tokenstore.NewMemoryStore()
	}
	return store
}

func run(cmd string, taskID int64, isDone bool, cfg *clientconfig.Config, store tokenstore.Store) error {
	ctx := context.Background()

	switch cmd {
	case "login":
		return loginFlow(ctx, cfg, store)
	case "tasks":
		return listTasks(ctx, cfg, store)
	case "done":
		if taskID == 0 {
			return fmt.Errorf("--id required")
		}
		client, err := newAPIClient(cfg, store)
		if err != nil {
			return err
		}
		if err := client.SetTaskDone(ctx, taskID, isDone); err != nil {
			return err
		}
		fmt.Printf("Task %d updated\n", taskID)
		return nil
	case "user":
		client, err := newAPIClient(cfg, store)
		if err != nil {
			return err
		}
		user, err := client.User(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s (id %s)\n", user.DisplayName(), user.ID)
		return nil
	case "logout":
		flow, err := handoff.NewFlow(cfg.ClientURL, noBrowser{}, store)
		if err != nil {
			return err
		}
		flow.RestoreSession()
		flow.Logout()
		fmt.Println("Logged out")
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// loginFlow performs the browser handoff. Ctrl-C while the browser is
// open counts as dismissing the login.
func loginFlow(ctx context.Context, cfg *clientconfig.Config, store tokenstore.Store) error {
	browser, err := handoff.NewSystemBrowser()
	if err != nil {
		return err
	}

	flow, err := handoff.NewFlow(cfg.ClientURL, browser, store)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Println("Opening the login page in your browser...")
	if err := flow.Login(ctx); err != nil {
		return err
	}

	if !flow.LoggedIn() {
		fmt.Println("Login cancelled")
		return nil
	}
	fmt.Println("Logged in")
	return nil
}

func listTasks(ctx context.Context, cfg *clientconfig.Config, store tokenstore.Store) error {
	client, err := newAPIClient(cfg, store)
	if err != nil {
		return err
	}

	tasks, err := client.Tasks(ctx)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks available")
		return nil
	}
	for _, t := range tasks {
		mark := " "
		if t.IsDone {
			mark = "x"
		}
		fmt.Printf("[%s] %3d  %s\n", mark, t.ID, t.Description)
	}
	return nil
}

// newAPIClient reads the token store on every call, per the session
// restore model: the store is the single source of truth.
func newAPIClient(cfg *clientconfig.Config, store tokenstore.Store) (*apiclient.Client, error) {
	provider := func() string {
		token, err := store.Get()
		if err != nil {
			log.Err(err).Msg("Treating unreadable token storage as logged out")
			return ""
		}
		return token
	}
	return apiclient.New(cfg.ServerURL, provider, apiclient.Options{})
}

// noBrowser backs flows that never open a login page (logout only).
type noBrowser struct{}

func (noBrowser) CallbackURL() string { return "" }

func (noBrowser) OpenAuthSession(ctx context.Context, loginURL, callbackURL string) (handoff.BrowserResult, error) {
	return handoff.BrowserResult{}, fmt.Errorf("no browser available")
}
