// Package app wires a connection profile and report settings into the
// insights service shared by the web server and the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/agency-atlas/pkg/clock"
	"github.com/de-tools/agency-atlas/pkg/services/analysis"
	"github.com/de-tools/agency-atlas/pkg/services/clientanalytics"
	"github.com/de-tools/agency-atlas/pkg/services/config"
	"github.com/de-tools/agency-atlas/pkg/services/graphsync"
	"github.com/de-tools/agency-atlas/pkg/services/insights"
	"github.com/de-tools/agency-atlas/pkg/services/network"
	"github.com/de-tools/agency-atlas/pkg/services/period"
	"github.com/de-tools/agency-atlas/pkg/services/realtime"
	"github.com/de-tools/agency-atlas/pkg/store/graphdb"
	"github.com/de-tools/agency-atlas/pkg/store/postgres"
	"github.com/de-tools/agency-atlas/pkg/store/postgres/aggregate"
	"github.com/de-tools/agency-atlas/pkg/store/postgres/synclog"
	"github.com/rs/zerolog"
)

type App struct {
	Service *insights.Service
	Sync    graphsync.Job

	db    *sql.DB
	graph *graphdb.Executor
}

// Stores are the backing stores of an App. Graph may be nil.
type Stores struct {
	Aggregate aggregate.Store
	SyncLogs  synclog.Store
	Graph     graphdb.Store
}

// Open connects to the profile's databases and builds the service.
func Open(ctx context.Context, profile *config.Profile, settings *config.Settings, clk clock.Clock) (*App, error) {
	logger := zerolog.Ctx(ctx)

	db, err := postgres.NewDB(ctx, profile.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	aggregateStore, err := aggregate.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	syncLogs, err := synclog.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{db: db}
	stores := Stores{Aggregate: aggregateStore, SyncLogs: syncLogs}

	if profile.Graph != nil {
		executor, err := graphdb.NewExecutor(*profile.Graph)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		graphStore, err := graphdb.NewStore(executor)
		if err != nil {
			_ = executor.Close(ctx)
			_ = db.Close()
			return nil, err
		}
		a.graph = executor
		stores.Graph = graphStore
		logger.Info().Str("uri", profile.Graph.URI).Msg("graph store configured")
	} else {
		logger.Info().Msg("no graph store configured, graph reports use the relational backend")
	}

	if err := a.build(stores, settings, clk); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	return a, nil
}

// New builds an App over already opened stores.
func New(stores Stores, settings *config.Settings, clk clock.Clock) (*App, error) {
	a := &App{}
	if err := a.build(stores, settings, clk); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) build(stores Stores, settings *config.Settings, clk clock.Clock) error {
	realtimeBuilder := realtime.NewBuilder(stores.Aggregate, clk, settings.Realtime())
	periodCalculator := period.NewCalculator(stores.Aggregate)
	composer := clientanalytics.NewComposer(stores.Aggregate, realtimeBuilder, periodCalculator, clk, settings.Reports.TrendMonths)
	engine := analysis.NewEngine(stores.Aggregate, periodCalculator, clk, settings.AnalysisEngine())

	var graphBackend network.Backend
	if stores.Graph != nil {
		graphBackend = network.NewGraphBackend(stores.Graph)
	}
	graphs, err := network.NewBuilder(network.NewRelationalBackend(stores.Aggregate), graphBackend, settings.GraphBuilder())
	if err != nil {
		return fmt.Errorf("failed to create graph builder: %w", err)
	}

	a.Sync = graphsync.NewJob(stores.Aggregate, stores.Graph, stores.SyncLogs, clk)
	a.Service = insights.NewService(insights.Dependencies{
		Organizations: stores.Aggregate,
		RealTime:      realtimeBuilder,
		Period:        periodCalculator,
		Clients:       composer,
		Analysis:      engine,
		Graphs:        graphs,
		Sync:          a.Sync,
	}, settings.Reports.Timeout)
	return nil
}

// Health pings the relational store. The graph store is optional and not checked.
func (a *App) Health(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return a.db.PingContext(ctx)
}

func (a *App) Close(ctx context.Context) error {
	var err error
	if a.graph != nil {
		err = a.graph.Close(ctx)
	}
	if a.db != nil {
		if cerr := a.db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
