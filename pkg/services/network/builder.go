// Package network builds the collaboration, client relationship, skill and
// multi-party graphs. Graphs are served from the graph-native projection when
// it answers and recomputed from the relational store otherwise; both paths
// produce the same node and edge sets.
package network

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/agency-atlas/pkg/metrics"
	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

type Settings struct {
	KeyConnectorLimit int
	ProbeTimeout      time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		KeyConnectorLimit: 5,
		ProbeTimeout:      2 * time.Second,
	}
}

type Builder interface {
	Collaboration(ctx context.Context, organizationID string) (domain.CollaborationNetwork, error)
	ClientRelationships(ctx context.Context, organizationID, clientID string) (domain.ClientRelationshipGraph, error)
	Skills(ctx context.Context, organizationID string) (domain.SkillNetwork, error)
	MultiParty(ctx context.Context, organizationID string) (domain.MultiPartyGraph, error)
}

type defaultBuilder struct {
	graph    Backend
	fallback Backend
	settings Settings
}

// NewBuilder returns a builder reading from graph when it is reachable and
// from fallback otherwise. graph may be nil for relational-only deployments.
func NewBuilder(fallback, graph Backend, settings Settings) (Builder, error) {
	if fallback == nil {
		return nil, fmt.Errorf("fallback backend is nil")
	}
	return &defaultBuilder{
		graph:    graph,
		fallback: fallback,
		settings: settings,
	}, nil
}

func (b *defaultBuilder) Collaboration(ctx context.Context, organizationID string) (domain.CollaborationNetwork, error) {
	src, backend, err := read(ctx, b, "collaboration", func(ctx context.Context, be Backend) (CollaborationSource, error) {
		return be.Collaboration(ctx, organizationID)
	})
	if err != nil {
		return domain.CollaborationNetwork{}, fmt.Errorf("build collaboration network: %w", err)
	}

	network := assembleCollaboration(src, b.settings.KeyConnectorLimit, backend == b.graph)
	network.Backend = backend.Name()
	return network, nil
}

func (b *defaultBuilder) ClientRelationships(
	ctx context.Context,
	organizationID, clientID string,
) (domain.ClientRelationshipGraph, error) {
	src, backend, err := read(ctx, b, "client_relationships", func(ctx context.Context, be Backend) (ClientSource, error) {
		return be.ClientRelationships(ctx, organizationID, clientID)
	})
	if err != nil {
		return domain.ClientRelationshipGraph{}, fmt.Errorf("build client relationship graph: %w", err)
	}

	graph := assembleClientGraph(src)
	graph.Backend = backend.Name()
	return graph, nil
}

func (b *defaultBuilder) Skills(ctx context.Context, organizationID string) (domain.SkillNetwork, error) {
	src, backend, err := read(ctx, b, "skills", func(ctx context.Context, be Backend) (SkillSource, error) {
		return be.Skills(ctx, organizationID)
	})
	if err != nil {
		return domain.SkillNetwork{}, fmt.Errorf("build skill network: %w", err)
	}

	network := assembleSkills(src)
	network.Backend = backend.Name()
	return network, nil
}

func (b *defaultBuilder) MultiParty(ctx context.Context, organizationID string) (domain.MultiPartyGraph, error) {
	src, backend, err := read(ctx, b, "multi_party", func(ctx context.Context, be Backend) (MultiPartySource, error) {
		return be.MultiParty(ctx, organizationID)
	})
	if err != nil {
		return domain.MultiPartyGraph{}, fmt.Errorf("build multi-party graph: %w", err)
	}

	graph := assembleMultiParty(src)
	graph.Backend = backend.Name()
	return graph, nil
}

func (b *defaultBuilder) probe(ctx context.Context) error {
	probeCtx := ctx
	if b.settings.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, b.settings.ProbeTimeout)
		defer cancel()
	}
	if err := b.graph.Ping(probeCtx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDependencyUnavailable, err)
	}
	return nil
}

// read runs fn against the graph backend and falls back to the relational one
// when the probe or the read fails. The returned backend is the one that served.
func read[T any](
	ctx context.Context,
	b *defaultBuilder,
	operation string,
	fn func(context.Context, Backend) (T, error),
) (T, Backend, error) {
	logger := zerolog.Ctx(ctx)

	if b.graph != nil {
		if err := b.probe(ctx); err != nil {
			logger.Warn().Err(err).
				Str("operation", operation).
				Str("backend", b.graph.Name()).
				Msg("graph backend unavailable, using relational fallback")
			metrics.GraphFallbacks.WithLabelValues(operation, "probe").Inc()
		} else {
			src, err := fn(ctx, b.graph)
			if err == nil {
				return src, b.graph, nil
			}
			if ctx.Err() != nil {
				var zero T
				return zero, nil, ctx.Err()
			}
			logger.Warn().Err(err).
				Str("operation", operation).
				Str("backend", b.graph.Name()).
				Msg("graph read failed, using relational fallback")
			metrics.GraphFallbacks.WithLabelValues(operation, "read").Inc()
		}
	}

	src, err := fn(ctx, b.fallback)
	if err != nil {
		var zero T
		return zero, nil, err
	}
	return src, b.fallback, nil
}
