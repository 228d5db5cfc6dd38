package graphdb

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	args := m.Called(ctx, query, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*neo4j.EagerResult), args.Error(1)
}

func (m *mockRunner) ExecuteWrite(ctx context.Context, statements []Statement) error {
	args := m.Called(ctx, statements)
	return args.Error(0)
}

func (m *mockRunner) Verify(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func queryContaining(fragments ...string) interface{} {
	return mock.MatchedBy(func(query string) bool {
		for _, f := range fragments {
			if !strings.Contains(query, f) {
				return false
			}
		}
		return true
	})
}

func result(keys []string, rows ...[]any) *neo4j.EagerResult {
	records := make([]*neo4j.Record, 0, len(rows))
	for _, values := range rows {
		records = append(records, &neo4j.Record{Keys: keys, Values: values})
	}
	return &neo4j.EagerResult{Keys: keys, Records: records}
}

func person(id, name string, active bool) neo4j.Node {
	return neo4j.Node{
		ElementId: "p:" + id,
		Labels:    []string{LabelPerson},
		Props: map[string]any{
			"id":                  id,
			"name":                name,
			"organizationId":      "org-1",
			"weeklyCapacityHours": int64(40),
			"active":              active,
		},
	}
}

func rel(id, relType string, props map[string]any) neo4j.Relationship {
	return neo4j.Relationship{ElementId: id, Type: relType, Props: props}
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(nil)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestStore_Ping(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Verify", mock.Anything).Return(errors.New("connection refused"))

	s, err := NewStore(runner)
	require.NoError(t, err)
	assert.EqualError(t, s.Ping(context.Background()), "connection refused")
}

func TestStore_ListPeople(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, queryContaining("MATCH", "Person"), mock.Anything).Return(
		result([]string{"p"},
			[]any{person("u2", "Lin", true)},
			[]any{person("u1", "Ada", false)},
		), nil)

	s, err := NewStore(runner)
	require.NoError(t, err)

	people, err := s.ListPeople(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, []store.PersonRow{
		{ID: "u1", Name: "Ada", WeeklyCapacityHours: 40, Active: false},
		{ID: "u2", Name: "Lin", WeeklyCapacityHours: 40, Active: true},
	}, people)
	runner.AssertExpectations(t)
}

func TestStore_ListCollaborations(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, queryContaining(RelCollaboratedWith), mock.Anything).Return(
		result([]string{"a", "r", "b"},
			[]any{person("u3", "Mo", true), rel("r1", RelCollaboratedWith, map[string]any{"sharedBriefs": int64(2)}), person("u1", "Ada", true)},
			[]any{person("u1", "Ada", true), rel("r2", RelCollaboratedWith, map[string]any{"sharedBriefs": int64(1)}), person("u2", "Lin", true)},
		), nil)

	s, err := NewStore(runner)
	require.NoError(t, err)

	pairs, err := s.ListCollaborations(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, []store.CoWorkPair{
		{UserA: "u1", UserB: "u2", SharedBriefs: 1},
		{UserA: "u1", UserB: "u3", SharedBriefs: 2},
	}, pairs)
}

func TestStore_ListCollaborations_WrongValueType(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, mock.Anything, mock.Anything).Return(
		result([]string{"a", "r", "b"}, []any{"not-a-node", nil, nil}), nil)

	s, err := NewStore(runner)
	require.NoError(t, err)

	_, err = s.ListCollaborations(context.Background(), "org-1")
	assert.EqualError(t, err, "return value 'a' is not a node")
}

func TestStore_GetClient(t *testing.T) {
	t.Run("not synced", func(t *testing.T) {
		runner := new(mockRunner)
		runner.On("Run", mock.Anything, queryContaining(LabelClient), mock.Anything).Return(result([]string{"c"}), nil)

		s, err := NewStore(runner)
		require.NoError(t, err)

		c, err := s.GetClient(context.Background(), "org-1", "client-1")
		assert.ErrorIs(t, err, ErrNotSynced)
		assert.Nil(t, c)
	})

	t.Run("found", func(t *testing.T) {
		runner := new(mockRunner)
		runner.On("Run", mock.Anything, queryContaining(LabelClient), mock.Anything).Return(
			result([]string{"c"}, []any{neo4j.Node{
				ElementId: "c1",
				Labels:    []string{LabelClient},
				Props:     map[string]any{"id": "client-1", "name": "Acme", "industry": "Retail"},
			}}), nil)

		s, err := NewStore(runner)
		require.NoError(t, err)

		c, err := s.GetClient(context.Background(), "org-1", "client-1")
		require.NoError(t, err)
		assert.Equal(t, &store.ClientRow{ID: "client-1", Name: "Acme", Industry: "Retail"}, c)
	})
}

func TestStore_ListClientContributors(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, queryContaining(RelWorkedOn, RelForClient), mock.Anything).Return(
		result([]string{"p", "w"},
			[]any{person("u1", "Ada", true), rel("w1", RelWorkedOn, map[string]any{"hours": 10.5})},
			[]any{person("u2", "Lin", true), rel("w2", RelWorkedOn, map[string]any{"hours": 4.0})},
			[]any{person("u1", "Ada", true), rel("w3", RelWorkedOn, map[string]any{"hours": int64(2)})},
		), nil)

	s, err := NewStore(runner)
	require.NoError(t, err)

	rows, err := s.ListClientContributors(context.Background(), "org-1", "client-1")
	require.NoError(t, err)
	assert.Equal(t, []store.UserHours{
		{UserID: "u1", Name: "Ada", Hours: 12.5},
		{UserID: "u2", Name: "Lin", Hours: 4},
	}, rows)
}

func TestStore_ListClientAssignees(t *testing.T) {
	brief := func(id string) neo4j.Node {
		return neo4j.Node{ElementId: id, Labels: []string{LabelBrief}, Props: map[string]any{"id": id}}
	}
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, queryContaining(RelAssignedTo), mock.Anything).Return(
		result([]string{"p", "b"},
			[]any{person("u2", "Lin", true), brief("b1")},
			[]any{person("u1", "Ada", true), brief("b2")},
			[]any{person("u2", "Lin", true), brief("b3")},
		), nil)

	s, err := NewStore(runner)
	require.NoError(t, err)

	rows, err := s.ListClientAssignees(context.Background(), "org-1", "client-1")
	require.NoError(t, err)
	assert.Equal(t, []store.AssigneeCount{
		{UserID: "u2", Name: "Lin", Briefs: 2},
		{UserID: "u1", Name: "Ada", Briefs: 1},
	}, rows)
}

func TestStore_ListClients(t *testing.T) {
	client := func(id, name string) neo4j.Node {
		return neo4j.Node{ElementId: id, Labels: []string{LabelClient}, Props: map[string]any{"id": id, "name": name}}
	}
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, queryContaining("MATCH", LabelClient), mock.Anything).Return(
		result([]string{"c"},
			[]any{client("c2", "Globex")},
			[]any{client("c1", "Acme")},
		), nil)

	s, err := NewStore(runner)
	require.NoError(t, err)

	clients, err := s.ListClients(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, []store.ClientRow{{ID: "c1", Name: "Acme"}, {ID: "c2", Name: "Globex"}}, clients)
}

func TestStore_ListAssignmentCounts(t *testing.T) {
	brief := func(id, clientID string) neo4j.Node {
		return neo4j.Node{ElementId: id, Labels: []string{LabelBrief}, Props: map[string]any{"id": id, "clientId": clientID}}
	}
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, queryContaining(RelAssignedTo), mock.Anything).Return(
		result([]string{"p", "b"},
			[]any{person("u2", "Lin", true), brief("b3", "c1")},
			[]any{person("u1", "Ada", true), brief("b1", "c1")},
			[]any{person("u1", "Ada", true), brief("b2", "c1")},
		), nil)

	s, err := NewStore(runner)
	require.NoError(t, err)

	counts, err := s.ListAssignmentCounts(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, []store.AssignmentCount{
		{UserID: "u1", ClientID: "c1", Briefs: 2},
		{UserID: "u2", ClientID: "c1", Briefs: 1},
	}, counts)
}

func TestStore_ListUserSkills_SkipsInactive(t *testing.T) {
	skill := neo4j.Node{ElementId: "s1", Labels: []string{LabelSkill}, Props: map[string]any{"name": "motion"}}
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, queryContaining(RelHasSkill), mock.Anything).Return(
		result([]string{"p", "h", "s"},
			[]any{person("u1", "Ada", true), rel("h1", RelHasSkill, map[string]any{"level": int64(3)}), skill},
			[]any{person("u2", "Lin", false), rel("h2", RelHasSkill, map[string]any{"level": int64(5)}), skill},
		), nil)

	s, err := NewStore(runner)
	require.NoError(t, err)

	rows, err := s.ListUserSkills(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, []store.UserSkillRow{{UserID: "u1", Skill: "motion", Level: 3}}, rows)
}

func TestStore_ListBriefSkills(t *testing.T) {
	brief := func(id, status string) neo4j.Node {
		return neo4j.Node{ElementId: id, Labels: []string{LabelBrief}, Props: map[string]any{"id": id, "status": status}}
	}
	skill := neo4j.Node{ElementId: "s1", Labels: []string{LabelSkill}, Props: map[string]any{"name": "motion"}}
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, queryContaining(RelRequiresSkill), mock.Anything).Return(
		result([]string{"b", "s"},
			[]any{brief("b2", "COMPLETED"), skill},
			[]any{brief("b1", "IN_PROGRESS"), skill},
		), nil)

	s, err := NewStore(runner)
	require.NoError(t, err)

	rows, err := s.ListBriefSkills(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, []store.BriefSkillRow{
		{BriefID: "b1", Skill: "motion", Open: true},
		{BriefID: "b2", Skill: "motion", Open: false},
	}, rows)
}

func snapshot() store.GraphSnapshot {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return store.GraphSnapshot{
		OrganizationID: "org-1",
		People: []store.PersonRow{
			{ID: "u1", Name: "Ada", Active: true},
			{ID: "u2", Name: "Lin", Active: true},
		},
		Clients: []store.ClientRow{{ID: "client-1", Name: "Acme"}},
		Briefs: []store.BriefRow{
			{ID: "b1", ClientID: "client-1", Status: "IN_PROGRESS", CreatedAt: created,
				AssigneeID: sql.NullString{String: "u1", Valid: true}},
			{ID: "b2", ClientID: "client-1", Status: "DRAFT", CreatedAt: created},
		},
		Contributions: []store.Contribution{
			{UserID: "u1", BriefID: "b1", Hours: 3},
			{UserID: "u2", BriefID: "b1", Hours: 2},
		},
		Pairs:       []store.CoWorkPair{{UserA: "u1", UserB: "u2", SharedBriefs: 1}},
		UserSkills:  []store.UserSkillRow{{UserID: "u1", Skill: "motion", Level: 3}},
		BriefSkills: []store.BriefSkillRow{{BriefID: "b1", Skill: "motion"}, {BriefID: "b2", Skill: "copy"}},
	}
}

func TestStore_SyncOrganization(t *testing.T) {
	t.Run("single transaction with counts", func(t *testing.T) {
		runner := new(mockRunner)
		runner.On("ExecuteWrite", mock.Anything, mock.MatchedBy(func(statements []Statement) bool {
			if len(statements) != 8 {
				return false
			}
			for _, st := range statements {
				if !strings.Contains(st.Query, "UNWIND $rows AS row") || !strings.Contains(st.Query, "MERGE") {
					return false
				}
				if st.Params["organizationId"] != "org-1" {
					return false
				}
			}
			return true
		})).Return(nil).Once()

		s, err := NewStore(runner)
		require.NoError(t, err)

		counts, err := s.SyncOrganization(context.Background(), snapshot())
		require.NoError(t, err)
		// 2 people + 1 client + 2 briefs + 2 skills
		assert.Equal(t, 7, counts.Nodes)
		// 2 for-client + 1 assigned + 2 worked-on + 1 collaboration + 1 has-skill + 2 requires-skill
		assert.Equal(t, 9, counts.Edges)
		runner.AssertExpectations(t)
	})

	t.Run("write failure returns no counts", func(t *testing.T) {
		runner := new(mockRunner)
		runner.On("ExecuteWrite", mock.Anything, mock.Anything).Return(errors.New("transaction rolled back"))

		s, err := NewStore(runner)
		require.NoError(t, err)

		counts, err := s.SyncOrganization(context.Background(), snapshot())
		assert.EqualError(t, err, "transaction rolled back")
		assert.Equal(t, store.SyncCounts{}, counts)
	})
}

func TestSyncStatements_Rows(t *testing.T) {
	statements, _ := syncStatements(snapshot())

	briefRows := statements[2].Params["rows"].([]map[string]any)
	require.Len(t, briefRows, 2)
	assert.Nil(t, briefRows[0]["deadline"])

	assignments := statements[3].Params["rows"].([]map[string]any)
	assert.Equal(t, []map[string]any{{"userId": "u1", "briefId": "b1"}}, assignments)
}
