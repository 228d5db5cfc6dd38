package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/agency-atlas/pkg/clock"
	"github.com/de-tools/agency-atlas/pkg/models/api"
	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReports struct {
	mock.Mock
}

func (m *mockReports) GetRealTimeMetrics(ctx context.Context, scope domain.ReportScope) (domain.RealTimeMetrics, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(domain.RealTimeMetrics), args.Error(1)
}

func (m *mockReports) GetPeriodMetrics(ctx context.Context, scope domain.ReportScope) (domain.PeriodComparison, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(domain.PeriodComparison), args.Error(1)
}

func (m *mockReports) GetClientAnalytics(ctx context.Context, scope domain.ReportScope) (domain.ClientAnalytics, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(domain.ClientAnalytics), args.Error(1)
}

func (m *mockReports) GetMultiFactorAnalysis(ctx context.Context, scope domain.ReportScope) (domain.MultiFactorAnalysis, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(domain.MultiFactorAnalysis), args.Error(1)
}

func (m *mockReports) GetCollaborationNetwork(ctx context.Context, organizationID string) (domain.CollaborationNetwork, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(domain.CollaborationNetwork), args.Error(1)
}

func (m *mockReports) GetClientRelationshipGraph(ctx context.Context, scope domain.ReportScope) (domain.ClientRelationshipGraph, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(domain.ClientRelationshipGraph), args.Error(1)
}

func (m *mockReports) GetSkillNetwork(ctx context.Context, organizationID string) (domain.SkillNetwork, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(domain.SkillNetwork), args.Error(1)
}

func (m *mockReports) GetMultiPartyAnalysis(ctx context.Context, organizationID string) (domain.MultiPartyGraph, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(domain.MultiPartyGraph), args.Error(1)
}

func (m *mockReports) SyncOrganizationData(ctx context.Context, organizationID string) (domain.SyncLog, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(domain.SyncLog), args.Error(1)
}

func (m *mockReports) LatestSync(ctx context.Context, organizationID string) (domain.SyncLog, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(domain.SyncLog), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	now := time.Date(2025, 6, 20, 15, 0, 0, 0, time.UTC)

	svc := new(mockReports)
	router := ConfigureRouter(logger, Dependencies{
		Reports: svc,
		Clock:   clock.Fixed(now),
	})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	expectedStart := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)
	expectedEnd := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC).Add(-time.Millisecond)

	tests := []struct {
		name           string
		method         string
		path           string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name: "GetCollaborationNetwork",
			path: "/api/v1/organizations/org-1/graph/collaboration",
			setupMocks: func() {
				svc.On("GetCollaborationNetwork", mock.Anything, "org-1").
					Return(domain.CollaborationNetwork{
						Nodes: []domain.GraphNode{{ID: "u1", Label: "Ada", Type: domain.NodeTypeUser}},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       []string{"u1"},
			parseResponse: func(data []byte) (interface{}, error) {
				var body api.CollaborationNetwork
				if err := json.Unmarshal(data, &body); err != nil {
					return nil, err
				}
				ids := make([]string, 0, len(body.Nodes))
				for _, n := range body.Nodes {
					ids = append(ids, n.ID)
				}
				return ids, nil
			},
		},
		{
			name: "GetPeriodMetrics",
			path: "/api/v1/organizations/org-1/metrics/period?from=2025-06-13&to=2025-06-20",
			setupMocks: func() {
				svc.On("GetPeriodMetrics", mock.Anything,
					domain.ReportScope{OrganizationID: "org-1"}.
						WithRange(domain.DateRange{Start: expectedStart, End: expectedEnd}),
				).Return(domain.PeriodComparison{}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       true,
			parseResponse: func(data []byte) (interface{}, error) {
				var body api.PeriodComparison
				err := json.Unmarshal(data, &body)
				return err == nil, err
			},
		},
		{
			name:           "GetPeriodMetrics_InvalidFromDate",
			path:           "/api/v1/organizations/org-1/metrics/period?from=invalid-date",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expected:       "invalid 'from' date format. Expected format: YYYY-MM-DD\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name: "GetClientAnalytics_UnknownClient",
			path: "/api/v1/organizations/org-1/clients/ghost/analytics",
			setupMocks: func() {
				svc.On("GetClientAnalytics", mock.Anything, mock.Anything).
					Return(domain.ClientAnalytics{}, fmt.Errorf("client ghost: %w", domain.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expected:       "client ghost: not found\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:   "SyncOrganization",
			method: http.MethodPost,
			path:   "/api/v1/organizations/org-1/graph/sync",
			setupMocks: func() {
				svc.On("SyncOrganizationData", mock.Anything, "org-1").
					Return(domain.SyncLog{ID: "log-1", OrganizationID: "org-1", Status: domain.SyncStatusCompleted, NodesSynced: 4}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       api.SyncLog{ID: "log-1", OrganizationID: "org-1", Status: "COMPLETED", NodesSynced: 4},
			parseResponse:  unmarshalResponse[api.SyncLog](),
		},
		{
			name:           "ScheduleWithoutController",
			method:         http.MethodPut,
			path:           "/api/v1/organizations/org-1/graph/sync/schedule",
			setupMocks:     func() {},
			expectedStatus: http.StatusNotImplemented,
			expected:       "periodic graph sync is not available\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()

			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, err := http.NewRequest(method, testServer.URL+tt.path, nil)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			actual, err := tt.parseResponse(body)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}

	svc.AssertExpectations(t)
}

func TestWebAPI_HealthAndMetrics(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	healthy := true
	router := ConfigureRouter(logger, Dependencies{
		Reports: new(mockReports),
		Health: func(context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("postgres: connection refused")
		},
	})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	healthy = false
	resp, err = http.Get(testServer.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = http.Get(testServer.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `agency_atlas_http_requests_total{code="503",method="GET",route="/healthz"}`)
}

func TestWebAPI_KeepsIncomingRequestID(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	testServer := httptest.NewServer(ConfigureRouter(logger, Dependencies{Reports: new(mockReports)}))
	defer testServer.Close()

	req, err := http.NewRequest(http.MethodGet, testServer.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "req-42")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "req-42", resp.Header.Get("X-Request-Id"))
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var result T
		err := json.Unmarshal(data, &result)
		return result, err
	}
}
