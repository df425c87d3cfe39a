package server

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/nainya/shelfkey/internal/config"
	"github.com/nainya/shelfkey/internal/logger"
	"github.com/nainya/shelfkey/internal/metrics"
	"github.com/nainya/shelfkey/pkg/callnumber"
	"github.com/nainya/shelfkey/pkg/journal"
	"github.com/nainya/shelfkey/pkg/shelfindex"
)

// App is the assembled service: engine, index, gRPC and observability.
type App struct {
	Engine        *callnumber.Engine
	Index         *shelfindex.Index
	Metrics       *metrics.Metrics
	Registry      *prometheus.Registry
	Log           *logger.Logger
	GRPC          *grpc.Server
	Observability *ObservabilityServer
	// Journal is nil unless server.journal_path is set.
	Journal *journal.Journal

	shutdownTimeout time.Duration
}

// NewApp wires the service from cfg. Metrics go to a fresh registry that
// also carries the Go and process collectors. With a journal configured,
// the index is restored from it before NewApp returns.
func NewApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	engine := callnumber.New(cfg.Keys.Options())
	memo := shelfindex.NewMemo(engine, cfg.Keys.MemoSize)
	m.WatchMemo(memo.Stats)
	index := shelfindex.New(engine,
		shelfindex.WithLogger(log.IndexLogger()),
		shelfindex.WithObserver(m),
		shelfindex.WithMemo(memo),
	)

	var serverOpts []ServerOption
	var j *journal.Journal
	if cfg.Server.JournalPath != "" {
		var err error
		if j, err = journal.Open(cfg.Server.JournalPath, journal.WithSync(cfg.Server.JournalSync)); err != nil {
			return nil, err
		}
		if _, err := Restore(ctx, j, index, log); err != nil {
			j.Close()
			return nil, err
		}
		serverOpts = append(serverOpts, WithJournal(j))
	}

	grpcServer := grpc.NewServer(
		grpc.MaxRecvMsgSize(cfg.Server.MaxMessageBytes),
		grpc.MaxSendMsgSize(cfg.Server.MaxMessageBytes),
		grpc.ChainUnaryInterceptor(GrpcMetricsInterceptor(m, log)),
	)
	RegisterShelfKeyServiceServer(grpcServer, NewServer(engine, index, m, log, serverOpts...))
	if cfg.Server.Reflection {
		reflection.Register(grpcServer)
	}

	return &App{
		Engine:          engine,
		Index:           index,
		Metrics:         m,
		Registry:        reg,
		Log:             log,
		GRPC:            grpcServer,
		Observability:   NewObservabilityServer(cfg.Server.MetricsPort, reg, log),
		Journal:         j,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}, nil
}

// Close releases the journal.
func (a *App) Close() error {
	if a.Journal == nil {
		return nil
	}
	return a.Journal.Close()
}

// Run serves gRPC on grpcLis and observability on httpLis until ctx is done,
// then stops both. gRPC gets shutdownTimeout to drain before it is stopped
// hard.
func (a *App) Run(ctx context.Context, grpcLis, httpLis net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.LogServerReady(grpcLis.Addr().String())
		a.Observability.SetReady(true)
		if err := a.GRPC.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return a.Observability.Serve(httpLis)
	})
	g.Go(func() error {
		<-ctx.Done()
		a.Observability.SetReady(false)
		a.Log.LogServerShutdown()

		timeout := a.shutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		sctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		stopped := make(chan struct{})
		go func() {
			a.GRPC.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-sctx.Done():
			a.GRPC.Stop()
			<-stopped
		}
		return a.Observability.Shutdown(sctx)
	})

	return g.Wait()
}
