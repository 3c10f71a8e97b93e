package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/forkvault/internal/client/client"
	"github.com/dmitrijs2005/forkvault/internal/client/config"
	"github.com/dmitrijs2005/forkvault/internal/client/router"
	"github.com/dmitrijs2005/forkvault/internal/client/vault"
	"github.com/dmitrijs2005/forkvault/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// newGatewayClient is a test seam for client.NewGatewayClient.
var newGatewayClient = func(cfg *config.Config) (client.Client, error) {
	return client.NewGatewayClient(cfg.ServerEndpointAddr, cfg.APIKey, cfg.MaxUploadSize)
}

type App struct {
	config *config.Config
	client client.Client
	vault  *vault.Vault
	router *router.Router
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	mode Mode
}

func NewApp(cfg *config.Config) (*App, error) {
	l := logging.New(os.Stderr, "text", cfg.LogLevel)

	c, err := newGatewayClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("gateway client: %w", err)
	}
	return newApp(cfg, c, os.Stdin, os.Stdout, l), nil
}

func newApp(cfg *config.Config, c client.Client, in io.Reader, out io.Writer, l logging.Logger) *App {
	return &App{
		config: cfg,
		client: c,
		vault:  vault.New(c, cfg.AdminProductKey, cfg.MaxUploadSize, l),
		router: router.New(),
		logger: l.With("module", "cli"),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

// Run opens a session and serves the REPL until the user exits or input
// ends. A background watcher keeps the connectivity mode current.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.client.Close(); err != nil {
			a.logger.Warn(ctx, "close gateway client", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	fmt.Fprintln(a.out, "Welcome to Forks (type 'help' for commands)")
	a.start(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// start tries the saved product key first and falls back to asking for one.
func (a *App) start(ctx context.Context) {
	ok, err := a.vault.AutoUnlock(ctx, a.config.ProductKey)
	if err != nil {
		a.logger.Warn(ctx, "saved product key rejected", "error", err)
	}
	if ok {
		_ = a.Show(ctx)
		return
	}
	if err := a.Unlock(ctx); err != nil {
		printlnFn("error:", err)
		_ = a.Show(ctx)
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.client.Ping(pingCtx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	switch sess := a.vault.Session().(type) {
	case vault.UserSession:
		s = sess.Account.FullName + " "
	case vault.AdminSession:
		s = "admin "
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
