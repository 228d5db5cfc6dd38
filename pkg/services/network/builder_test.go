package network

import (
	"context"
	"errors"
	"testing"

	"github.com/de-tools/agency-atlas/pkg/metrics"
	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	mock.Mock
	name string
}

func (m *mockBackend) Name() string { return m.name }

func (m *mockBackend) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockBackend) Collaboration(ctx context.Context, organizationID string) (CollaborationSource, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(CollaborationSource), args.Error(1)
}

func (m *mockBackend) ClientRelationships(ctx context.Context, organizationID, clientID string) (ClientSource, error) {
	args := m.Called(ctx, organizationID, clientID)
	return args.Get(0).(ClientSource), args.Error(1)
}

func (m *mockBackend) Skills(ctx context.Context, organizationID string) (SkillSource, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(SkillSource), args.Error(1)
}

func (m *mockBackend) MultiParty(ctx context.Context, organizationID string) (MultiPartySource, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(MultiPartySource), args.Error(1)
}

func triangle() CollaborationSource {
	return CollaborationSource{
		People: people("Ana", "Ben", "Cy", "Dee"),
		Pairs:  []store.CoWorkPair{pair("Ana", "Ben", 1), pair("Ana", "Cy", 1), pair("Ben", "Cy", 1)},
	}
}

func TestNewBuilder(t *testing.T) {
	builder, err := NewBuilder(nil, nil, DefaultSettings())
	assert.Nil(t, builder)
	assert.EqualError(t, err, "fallback backend is nil")
}

func TestBuilder_Collaboration(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")

	tests := []struct {
		name            string
		withGraph       bool
		pingErr         error
		graphReadErr    error
		expectBackend   string
		expectFallback  string
		expectCommunity bool
	}{
		{name: "relational only", expectBackend: BackendRelational},
		{name: "graph available", withGraph: true, expectBackend: BackendGraph, expectCommunity: true},
		{name: "probe fails", withGraph: true, pingErr: boom, expectBackend: BackendRelational, expectFallback: "probe"},
		{name: "graph read fails", withGraph: true, graphReadErr: boom, expectBackend: BackendRelational, expectFallback: "read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			relational := &mockBackend{name: BackendRelational}
			relational.On("Collaboration", ctx, "org-1").Return(triangle(), nil).Maybe()

			var graph Backend
			if tt.withGraph {
				g := &mockBackend{name: BackendGraph}
				g.On("Ping", mock.Anything).Return(tt.pingErr)
				if tt.pingErr == nil {
					g.On("Collaboration", ctx, "org-1").Return(triangle(), tt.graphReadErr)
				}
				defer g.AssertExpectations(t)
				graph = g
			}

			var before float64
			if tt.expectFallback != "" {
				before = testutil.ToFloat64(metrics.GraphFallbacks.WithLabelValues("collaboration", tt.expectFallback))
			}

			builder, err := NewBuilder(relational, graph, DefaultSettings())
			require.NoError(t, err)

			network, err := builder.Collaboration(ctx, "org-1")

			require.NoError(t, err)
			assert.Equal(t, tt.expectBackend, network.Backend)
			// node and edge sets never depend on the serving backend
			assert.Len(t, network.Nodes, 4)
			assert.Len(t, network.Edges, 3)
			assert.Equal(t, []string{"Dee"}, network.IsolatedNodes)
			assert.Equal(t, tt.expectCommunity, network.CommunitiesDetected)
			assert.Equal(t, tt.expectCommunity, network.Nodes[0].Metrics.PageRank != nil)
			if tt.expectFallback != "" {
				after := testutil.ToFloat64(metrics.GraphFallbacks.WithLabelValues("collaboration", tt.expectFallback))
				assert.Equal(t, before+1, after)
			}
		})
	}
}

func TestBuilder_Collaboration_RelationalFailure(t *testing.T) {
	ctx := context.Background()
	relational := &mockBackend{name: BackendRelational}
	relational.On("Collaboration", ctx, "org-1").Return(CollaborationSource{}, errors.New("db down"))

	builder, err := NewBuilder(relational, nil, DefaultSettings())
	require.NoError(t, err)

	_, err = builder.Collaboration(ctx, "org-1")

	assert.EqualError(t, err, "build collaboration network: db down")
}

func TestBuilder_Collaboration_CancelledDuringGraphRead(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	relational := &mockBackend{name: BackendRelational}
	graph := &mockBackend{name: BackendGraph}
	graph.On("Ping", mock.Anything).Return(nil)
	graph.On("Collaboration", ctx, "org-1").Run(func(mock.Arguments) { cancel() }).
		Return(CollaborationSource{}, context.Canceled)

	builder, err := NewBuilder(relational, graph, DefaultSettings())
	require.NoError(t, err)

	_, err = builder.Collaboration(ctx, "org-1")

	assert.ErrorIs(t, err, context.Canceled)
	relational.AssertNotCalled(t, "Collaboration", mock.Anything, mock.Anything)
}

func TestBuilder_ClientRelationships(t *testing.T) {
	ctx := context.Background()
	src := clientSource(map[string]float64{"Ana": 10, "Ben": 10, "Cy": 10}, nil, 3)

	relational := &mockBackend{name: BackendRelational}
	graph := &mockBackend{name: BackendGraph}
	graph.On("Ping", mock.Anything).Return(nil)
	graph.On("ClientRelationships", ctx, "org-1", "c-1").Return(ClientSource{}, errors.New("not synced"))
	relational.On("ClientRelationships", ctx, "org-1", "c-1").Return(src, nil)

	builder, err := NewBuilder(relational, graph, DefaultSettings())
	require.NoError(t, err)

	result, err := builder.ClientRelationships(ctx, "org-1", "c-1")

	require.NoError(t, err)
	assert.Equal(t, BackendRelational, result.Backend)
	assert.Equal(t, 30.0, result.TotalHours)
	assert.Len(t, result.Edges, 3)
}

func TestBuilder_ClientRelationships_NotFound(t *testing.T) {
	ctx := context.Background()
	relational := &mockBackend{name: BackendRelational}
	relational.On("ClientRelationships", ctx, "org-1", "missing").
		Return(ClientSource{}, domain.ErrNotFound)

	builder, err := NewBuilder(relational, nil, DefaultSettings())
	require.NoError(t, err)

	_, err = builder.ClientRelationships(ctx, "org-1", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuilder_Skills(t *testing.T) {
	ctx := context.Background()
	graph := &mockBackend{name: BackendGraph}
	graph.On("Ping", mock.Anything).Return(nil)
	graph.On("Skills", ctx, "org-1").Return(SkillSource{
		People:      people("Ana"),
		UserSkills:  []store.UserSkillRow{{UserID: "u-Ana", Skill: "design", Level: 4}},
		BriefSkills: openBriefs("copy", true, "b1"),
	}, nil)

	builder, err := NewBuilder(&mockBackend{name: BackendRelational}, graph, DefaultSettings())
	require.NoError(t, err)

	result, err := builder.Skills(ctx, "org-1")

	require.NoError(t, err)
	assert.Equal(t, BackendGraph, result.Backend)
	assert.Len(t, result.Nodes, 3)
	require.Len(t, result.Gaps, 1)
	assert.Equal(t, "copy", result.Gaps[0].Skill)
}

func TestBuilder_MultiParty(t *testing.T) {
	ctx := context.Background()
	src := MultiPartySource{
		People:      people("Ana", "Ben"),
		Clients:     []store.ClientRow{{ID: "c-1", Name: "Acme"}},
		Assignments: []store.AssignmentCount{{UserID: "u-Ana", ClientID: "c-1", Briefs: 3}},
	}

	relational := &mockBackend{name: BackendRelational}
	relational.On("MultiParty", ctx, "org-1").Return(src, nil)
	graph := &mockBackend{name: BackendGraph}
	graph.On("Ping", mock.Anything).Return(nil)
	graph.On("MultiParty", ctx, "org-1").Return(MultiPartySource{}, errEmptyProjection)

	before := testutil.ToFloat64(metrics.GraphFallbacks.WithLabelValues("multi_party", "read"))

	builder, err := NewBuilder(relational, graph, DefaultSettings())
	require.NoError(t, err)

	result, err := builder.MultiParty(ctx, "org-1")

	require.NoError(t, err)
	assert.Equal(t, BackendRelational, result.Backend)
	assert.Len(t, result.Nodes, 3)
	require.Len(t, result.Edges, 1)
	assert.Equal(t, 3.0, result.Edges[0].Weight)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.GraphFallbacks.WithLabelValues("multi_party", "read")))
}
