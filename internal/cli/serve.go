package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tmarsh/gantry/internal/server"
	"github.com/tmarsh/gantry/pkg/observability"
	"github.com/tmarsh/gantry/pkg/rooms"
	"github.com/tmarsh/gantry/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the timeline HTTP API",
		Long: `Serve starts the HTTP API: the timeline draft and version endpoints
plus the tic-tac-toe rooms. Storage backends come from configuration:
drafts and versions persist to MongoDB when server.mongo-uri is set,
otherwise to local files; rooms persist to Redis when server.redis-addr
is set, otherwise in memory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			drafts, versions, err := c.openStores(ctx)
			if err != nil {
				return err
			}
			defer drafts.Close()
			defer versions.Close()

			hooks := &logHooks{logger: logger}
			observability.SetSolverHooks(hooks)
			observability.SetStoreHooks(hooks)
			observability.SetRoomHooks(hooks)

			var roomStore rooms.RoomStore
			if addr := c.Config.Server.RedisAddr; addr != "" {
				logger.Debug("using redis room store", "addr", addr)
				roomStore = rooms.NewRedisStore(addr)
			} else {
				roomStore = rooms.NewMemoryStore()
			}

			srv := server.New(drafts, versions, rooms.NewService(roomStore), logger)

			if listen == "" {
				listen = c.Config.Server.Listen
			}
			httpSrv := &http.Server{
				Addr:              listen,
				Handler:           srv.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", listen)
				errCh <- httpSrv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpSrv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config)")

	return cmd
}

// logHooks forwards observability events to the server's debug log.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnSettleStart(_ context.Context, taskCount int) {
	h.logger.Debug("settle start", "tasks", taskCount)
}

func (h *logHooks) OnSettleComplete(_ context.Context, taskCount, moved int, duration time.Duration) {
	h.logger.Debug("settle complete", "tasks", taskCount, "moved", moved, "duration", duration)
}

func (h *logHooks) OnCycleRejected(_ context.Context, predecessorID, successorID string) {
	h.logger.Debug("cycle rejected", "predecessor", predecessorID, "successor", successorID)
}

func (h *logHooks) OnLoad(_ context.Context, kind string, found bool) {
	h.logger.Debug("store load", "kind", kind, "found", found)
}

func (h *logHooks) OnSave(_ context.Context, kind string, size int) {
	h.logger.Debug("store save", "kind", kind, "bytes", size)
}

func (h *logHooks) OnRoomCreate(_ context.Context, roomID string) {
	h.logger.Debug("room created", "room", roomID)
}

func (h *logHooks) OnRoomJoin(_ context.Context, roomID string) {
	h.logger.Debug("room joined", "room", roomID)
}

func (h *logHooks) OnMove(_ context.Context, roomID, status string) {
	h.logger.Debug("room move", "room", roomID, "status", status)
}

// openStores builds the draft and version stores from configuration.
// MongoDB backs both when a URI is configured; otherwise drafts go to
// the local data directory and versions are kept in memory.
func (c *CLI) openStores(ctx context.Context) (store.DraftStore, store.VersionStore, error) {
	if uri := c.Config.Server.MongoURI; uri != "" {
		ms, err := store.NewMongoStore(ctx, uri, c.Config.Server.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return ms, ms, nil
	}
	fs, err := store.NewFileStore(c.Config.Storage.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return fs, store.NewMemoryStore(), nil
}
