package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/api"
	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/api/middleware/mwauth"
	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/api/middleware/mwcodec"
	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/api/middleware/mwcompress"
	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/api/middleware/mwlog"
	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/api/rdocument"
	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/api/rhealth"
	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/config"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/docsync"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/eventstream/memory"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/eventstream/redisbridge"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/searchindex"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/service/sdocpatch"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/service/sdocument"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the document API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logger, err := cfg.Log.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return runServer(cmd.Context(), cfg, logger)
		},
	}

	flags := serveCmd.Flags()
	flags.String("mode", api.ServerModeTCP, "listen mode: tcp or uds")
	flags.Int("port", 8080, "TCP port")
	flags.String("socket-path", "", "unix socket path for uds mode")
	flags.String("redis-addr", "", "redis address for the cross-instance change feed")
	flags.Int("index-workers", 1, "search indexing workers")
	bindFlags(v, serveCmd, map[string]string{
		config.KeyServerMode:       "mode",
		config.KeyServerPort:       "port",
		config.KeyServerSocketPath: "socket-path",
		config.KeyRedisAddr:        "redis-addr",
		config.KeyIndexWorkers:     "index-workers",
	})
	return serveCmd
}

func runServer(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	db, err := openStore(ctx, cfg.DB, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	g, gctx := errgroup.WithContext(ctx)

	var streamer docsync.Streamer = memory.NewInMemorySyncStreamer[docsync.Topic, docsync.Event]()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer client.Close()
		bridge := redisbridge.New(streamer, client, cfg.Redis.Channel, logger)
		streamer = bridge
		g.Go(func() error { return bridge.Run(gctx) })
	}
	defer streamer.Shutdown()

	index := searchindex.NewMemoryIndex()
	if err := warmIndex(ctx, sdocument.NewReader(db.Read, logger), index); err != nil {
		return err
	}
	logger.Info("search index loaded", "documents", index.Len())
	indexer := searchindex.NewWorker(index, cfg.Index.QueueSize, cfg.Index.Workers, logger)
	g.Go(func() error { return indexer.Run(gctx) })

	patcher := sdocpatch.New(db.Write, docsync.NewPublisher(streamer), indexer, logger)

	options := []connect.HandlerOption{
		mwcodec.WithJSONCodec(),
		mwcompress.WithZstd(),
		mwcompress.WithBrotli(),
		connect.WithInterceptors(
			mwlog.NewLogInterceptor(logger),
			mwauth.NewCrashInterceptor(logger),
			mwauth.NewAuthInterceptor([]byte(cfg.Auth.HMACSecret)),
		),
	}
	if cfg.Auth.HMACSecret == "" {
		logger.Warn("auth disabled, every request runs as the local user")
	}

	healthSrv, err := rhealth.CreateService(rhealth.New(db.Read), options)
	if err != nil {
		return err
	}
	documentSrv, err := rdocument.CreateService(rdocument.New(rdocument.Deps{
		ReadDB:   db.Read,
		Patcher:  patcher,
		Searcher: index,
		Stream:   streamer,
		Logger:   logger,
	}), options)
	if err != nil {
		return err
	}

	g.Go(func() error {
		return api.ListenServices(gctx, []api.Service{*healthSrv, *documentSrv}, api.ListenOptions{
			Mode:       cfg.Server.Mode,
			Port:       cfg.Server.Port,
			SocketPath: cfg.Server.SocketPath,
			Logger:     logger,
		})
	})
	return g.Wait()
}

func warmIndex(ctx context.Context, reader *sdocument.Reader, index searchindex.Indexer) error {
	docs, err := reader.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("load documents for search index: %w", err)
	}
	for _, doc := range docs {
		if err := index.Index(ctx, doc); err != nil {
			return fmt.Errorf("index document %s: %w", doc.ID, err)
		}
	}
	return nil
}
