package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mpetrov/taskkeeper/internal/client/backend"
	"github.com/mpetrov/taskkeeper/internal/client/codec"
	"github.com/mpetrov/taskkeeper/internal/client/config"
	"github.com/mpetrov/taskkeeper/internal/client/dispatcher"
	"github.com/mpetrov/taskkeeper/internal/client/local"
	"github.com/mpetrov/taskkeeper/internal/client/remote"
	"github.com/mpetrov/taskkeeper/internal/client/store"
)

type App struct {
	config     *config.Config
	backend    backend.Backend
	dispatcher *dispatcher.Dispatcher
	reader     *bufio.Reader
	userName   string
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := store.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	localBackend := local.NewService(store.NewSQLiteStore(db), codec.NewObfuscatingCodec(), c.LocalLatency)
	remoteBackend := remote.NewClient(c.ServerEndpointAddr, c.ProbeTimeout)

	d := dispatcher.New(remoteBackend, localBackend)

	return &App{config: c, backend: d, dispatcher: d, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if mode := a.dispatcher.Mode(); mode != dispatcher.ModeUnknown {
		s = s + string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher periodically re-probes server reachability so the
// prompt reflects connectivity changes and the dispatcher can switch back to
// the remote backend once the server returns.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	previous := a.dispatcher.Mode()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), a.config.ProbeTimeout)
			mode := a.dispatcher.Probe(probeCtx)
			cancel()

			if mode != previous {
				log.Printf("Switched to %s mode\n", mode)
				previous = mode
			}

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) Run(ctx context.Context) {

	log.Println("Welcome to TaskKeeper CLI (type 'help' for commands)")

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
