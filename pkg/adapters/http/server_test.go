package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/spacetask"
	httpadapter "github.com/aretw0/spacetask/pkg/adapters/http"
	"github.com/aretw0/spacetask/pkg/adapters/memory"
	"github.com/aretw0/spacetask/pkg/diagram"
	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/observability"
	"github.com/aretw0/spacetask/pkg/workspace"
)

type fixture struct {
	handler http.Handler
	ws      *workspace.Manager
	metrics *observability.Metrics
}

func setup(t *testing.T) fixture {
	t.Helper()
	metrics := observability.NewMetrics()
	eng := spacetask.New(spacetask.WithHooks(metrics.Hooks()))
	ws := workspace.NewManager(memory.NewStore())

	d, err := diagram.DecodeFile("../../diagram/testdata/delivery.yaml")
	require.NoError(t, err)
	require.NoError(t, ws.Save(context.Background(), d.ID, d))

	return fixture{
		handler: httpadapter.NewHandler(eng, ws, httpadapter.WithMetrics(metrics)),
		ws:      ws,
		metrics: metrics,
	}
}

func (f fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func loadCampus(t *testing.T, f fixture) {
	t.Helper()
	raw, err := os.ReadFile("../../environment/testdata/campus.json")
	require.NoError(t, err)
	w := f.do(t, http.MethodPut, "/environment?file=campus.json", raw)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestServer_Environment(t *testing.T) {
	f := setup(t)

	t.Run("Rejected load", func(t *testing.T) {
		w := f.do(t, http.MethodPut, "/environment", []byte(`{"places": []}`))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		res := decodeBody[map[string]any](t, w)
		assert.Equal(t, false, res["success"])
		assert.Contains(t, res["error"], "invalid environment file format")
	})

	loadCampus(t, f)

	t.Run("Summary", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/environment", nil)
		require.Equal(t, http.StatusOK, w.Code)
		summary := decodeBody[map[string]any](t, w)
		assert.Equal(t, true, summary["loaded"])
		assert.Equal(t, "campus.json", summary["fileName"])
		assert.Equal(t, "http", summary["source"])
		assert.Equal(t, float64(5), summary["places"])
	})

	t.Run("Suggestions", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/environment/suggestions?q=LA&limit=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Lab A"}, decodeBody[[]string](t, w))

		w = f.do(t, http.MethodGet, "/environment/suggestions?limit=x", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Places", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/environment/places?zone=A", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody[[]map[string]any](t, w), 2)

		w = f.do(t, http.MethodGet, "/environment/places?min_seats=10", nil)
		assert.Len(t, decodeBody[[]map[string]any](t, w), 2)

		w = f.do(t, http.MethodGet, "/environment/places?logical=big-rooms", nil)
		assert.Len(t, decodeBody[[]map[string]any](t, w), 2)

		w = f.do(t, http.MethodGet, "/environment/places?logical=nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Validate assignment", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/assignments/validate", domain.Assignment{Condition: "p9.temp = 1"})
		require.Equal(t, http.StatusOK, w.Code)
		res := decodeBody[map[string]any](t, w)
		assert.Equal(t, false, res["valid"])
	})

	t.Run("Clear", func(t *testing.T) {
		w := f.do(t, http.MethodDelete, "/environment", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = f.do(t, http.MethodGet, "/environment", nil)
		assert.Equal(t, false, decodeBody[map[string]any](t, w)["loaded"])
	})
}

func TestServer_Roles(t *testing.T) {
	f := setup(t)

	t.Run("Get role", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/diagrams/delivery/nodes/move/role", nil)
		require.Equal(t, http.StatusOK, w.Code)
		view := decodeBody[httpadapter.NodeView](t, w)
		assert.Equal(t, domain.RoleMovement, view.Role)
		assert.Equal(t, "Lab A", view.Destination)
	})

	t.Run("Check role", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/diagrams/delivery/nodes/dock/role/check?role=unbind", nil)
		require.Equal(t, http.StatusOK, w.Code)
		res := decodeBody[domain.CheckResult](t, w)
		assert.Equal(t, 1, res.WarningCount)

		w = f.do(t, http.MethodGet, "/diagrams/delivery/nodes/dock/role/check?role=fly", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Set role is saved", func(t *testing.T) {
		w := f.do(t, http.MethodPut, "/diagrams/delivery/nodes/dock/role", map[string]string{"role": "unbinding"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		change := decodeBody[domain.RoleChange](t, w)
		assert.True(t, change.Changed)
		require.Len(t, change.Warnings, 1)

		d, err := f.ws.Load(context.Background(), "delivery")
		require.NoError(t, err)
		n, _ := d.Node("dock")
		assert.Equal(t, "unbinding", n.Extensions.Values[0].Value)
	})

	t.Run("Clear role", func(t *testing.T) {
		w := f.do(t, http.MethodDelete, "/diagrams/delivery/nodes/dock/role", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decodeBody[domain.RoleChange](t, w).Changed)
	})

	t.Run("Destination and binding", func(t *testing.T) {
		w := f.do(t, http.MethodPut, "/diagrams/delivery/nodes/move/destination", map[string]string{"destination": "Hall"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Hall", decodeBody[httpadapter.NodeView](t, w).Destination)

		w = f.do(t, http.MethodPut, "/diagrams/delivery/nodes/pick/binding", map[string]string{"participant": "desk"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "desk", decodeBody[httpadapter.NodeView](t, w).Binding)

		w = f.do(t, http.MethodGet, "/diagrams/delivery/nodes/pick/participants", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody[[]domain.Participant](t, w), 2)
	})

	t.Run("Errors", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/diagrams/ghost/nodes/a/role", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = f.do(t, http.MethodGet, "/diagrams/delivery/nodes/ghost/role", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = f.do(t, http.MethodPut, "/diagrams/delivery/nodes/move/role", map[string]string{"role": "fly"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = f.do(t, http.MethodPut, "/diagrams/delivery/nodes/move/role", []byte("{"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Metrics", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/metrics", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `spacetask_role_changes_total{from="unassigned",to="unbinding"} 1`)
	})
}

func TestServer_Assignments(t *testing.T) {
	f := setup(t)
	loadCampus(t, f)
	base := "/diagrams/delivery/nodes/move/assignments"

	w := f.do(t, http.MethodPost, base, domain.Assignment{Condition: "p1.temp = 20", Value: "p9.seats = 3"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view := decodeBody[httpadapter.AssignmentsView](t, w)
	assert.Len(t, view.Assignments, 1)
	assert.Equal(t, 1, view.Count)
	assert.False(t, view.Valid)
	assert.Equal(t, []string{"Place 'p9' not found in environment"}, view.Errors)

	w = f.do(t, http.MethodPut, base+"/0", domain.Assignment{Condition: "p1.temp = 20", Value: "p2.seats = 3"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeBody[httpadapter.AssignmentsView](t, w).Valid)

	w = f.do(t, http.MethodPut, base+"/5", domain.Assignment{})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, base, nil)
	assert.Equal(t, []domain.Assignment{{Condition: "p1.temp = 20", Value: "p2.seats = 3"}}, decodeBody[[]domain.Assignment](t, w))

	w = f.do(t, http.MethodDelete, base+"/0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[[]domain.Assignment](t, w))

	w = f.do(t, http.MethodDelete, base+"/x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_Diagrams(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/diagrams", domain.Diagram{
		Nodes: []*domain.Node{{ID: "a"}, {ID: "b"}},
		Flows: []domain.Flow{{ID: "f", Source: "a", Target: "b"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decodeBody[map[string]string](t, w)["id"]
	require.NotEmpty(t, id)

	w = f.do(t, http.MethodGet, "/diagrams", nil)
	assert.ElementsMatch(t, []string{"delivery", id}, decodeBody[[]string](t, w))

	w = f.do(t, http.MethodGet, "/diagrams/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[domain.Diagram](t, w).Nodes, 2)

	w = f.do(t, http.MethodPost, "/diagrams", domain.Diagram{Nodes: []*domain.Node{{ID: "a"}, {ID: "a"}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	t.Run("Bindings", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/diagrams/delivery/bindings", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []diagram.BindingDetails{{FlowID: "m1", Participant1: "robot", Participant2: "station"}}, decodeBody[[]diagram.BindingDetails](t, w))

		w = f.do(t, http.MethodGet, "/diagrams/"+id+"/bindings", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeBody[[]diagram.BindingDetails](t, w))
	})

	t.Run("Audit and Mermaid", func(t *testing.T) {
		f.do(t, http.MethodPut, "/diagrams/"+id+"/nodes/b/role", map[string]string{"role": "unbinding"})

		w := f.do(t, http.MethodGet, "/diagrams/"+id+"/audit", nil)
		require.Equal(t, http.StatusOK, w.Code)
		warnings := decodeBody[[]domain.Warning](t, w)
		require.Len(t, warnings, 1)
		assert.Equal(t, domain.RuleUpstreamBinding, warnings[0].Rule)

		w = f.do(t, http.MethodGet, "/diagrams/"+id+"/mermaid", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Body.String(), "graph"), w.Body.String())
		assert.Contains(t, w.Body.String(), "warned")
	})

	w = f.do(t, http.MethodDelete, "/diagrams/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = f.do(t, http.MethodGet, "/diagrams/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Info(t *testing.T) {
	f := setup(t)
	w := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/info", nil)
	assert.Equal(t, "spacetask-http", decodeBody[map[string]string](t, w)["app"])

	req := httptest.NewRequest(http.MethodOptions, "/environment", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents(t *testing.T) {
	f := setup(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.handler.ServeHTTP(wSub, reqSub)
	}()

	time.Sleep(100 * time.Millisecond) // Wait for subscription to register

	w := f.do(t, http.MethodDelete, "/environment", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	output := wSub.Body.String()
	assert.Contains(t, output, "event: ping")
	assert.Contains(t, output, `"topic":"environment.cleared"`)
}
