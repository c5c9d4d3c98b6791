package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/spacetask"
	"github.com/aretw0/spacetask/internal/logging"
	"github.com/aretw0/spacetask/internal/presentation/graph"
	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/environment"
	"github.com/aretw0/spacetask/pkg/events"
	"github.com/aretw0/spacetask/pkg/observability"
	"github.com/aretw0/spacetask/pkg/workspace"
)

// maxBodySize bounds request bodies (environment files included).
const maxBodySize = 8 << 20

// Server serves the environment catalog and the stored diagrams over JSON.
type Server struct {
	Engine    *spacetask.Engine
	Workspace *workspace.Manager
	Streams   *StreamManager

	metrics *observability.Metrics
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics exposes m on GET /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine and the workspace.
func NewHandler(eng *spacetask.Engine, ws *workspace.Manager, opts ...Option) http.Handler {
	s := &Server{
		Engine:    eng,
		Workspace: ws,
		Streams:   NewStreamManager(),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger

	for _, topic := range []string{events.TopicEnvironmentReady, events.TopicEnvironmentCleared, events.TopicEnvironmentLoaded} {
		eng.Bus().Subscribe(topic, s.forward)
	}

	return enableCORS(s.routes())
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/events", s.SubscribeEvents)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/environment", func(r chi.Router) {
		r.Get("/", s.GetEnvironment)
		r.Put("/", s.PutEnvironment)
		r.Delete("/", s.DeleteEnvironment)
		r.Get("/suggestions", s.GetSuggestions)
		r.Get("/places", s.GetPlaces)
	})

	r.Post("/assignments/validate", s.ValidateAssignment)

	r.Route("/diagrams", func(r chi.Router) {
		r.Get("/", s.ListDiagrams)
		r.Post("/", s.CreateDiagram)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetDiagram)
			r.Delete("/", s.DeleteDiagram)
			r.Get("/audit", s.AuditDiagram)
			r.Get("/mermaid", s.GetMermaid)
			r.Get("/bindings", s.GetBindings)
			r.Route("/nodes/{node}", func(r chi.Router) {
				r.Get("/role", s.GetRole)
				r.Put("/role", s.PutRole)
				r.Delete("/role", s.DeleteRole)
				r.Get("/role/check", s.CheckRole)
				r.Put("/destination", s.PutDestination)
				r.Put("/binding", s.PutBinding)
				r.Get("/participants", s.GetParticipants)
				r.Get("/assignments", s.ListAssignments)
				r.Post("/assignments", s.AddAssignment)
				r.Delete("/assignments", s.ClearAssignments)
				r.Put("/assignments/{index}", s.UpdateAssignment)
				r.Delete("/assignments/{index}", s.RemoveAssignment)
			})
		})
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "spacetask-http",
		"version": strings.TrimSpace(spacetask.Version),
	})
}

// -- Environment --

// GetEnvironment returns the catalog summary.
func (s *Server) GetEnvironment(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Catalog().Summary())
}

// PutEnvironment loads the request body as the environment file.
// A rejected load answers 422 with the load result.
func (s *Server) PutEnvironment(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PutEnvironment: unreadable body", "err", err)
		return
	}

	meta := environment.Meta{FileName: r.URL.Query().Get("file"), Source: environment.SourceHTTP}
	res := s.Engine.LoadEnvironment(r.Context(), raw, meta)
	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, res)
}

// DeleteEnvironment clears the catalog.
func (s *Server) DeleteEnvironment(w http.ResponseWriter, r *http.Request) {
	s.Engine.ClearEnvironment(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// GetSuggestions handles GET /environment/suggestions?q=&limit=.
func (s *Server) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", environment.DefaultSuggestionLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeJSON(w, http.StatusOK, s.Engine.Catalog().Suggest(r.URL.Query().Get("q"), limit))
}

// GetPlaces handles GET /environment/places with optional zone, purpose or min_seats filters.
func (s *Server) GetPlaces(w http.ResponseWriter, r *http.Request) {
	catalog := s.Engine.Catalog()
	q := r.URL.Query()

	var places []environment.Place
	switch {
	case q.Has("zone"):
		places = catalog.PlacesByZone(q.Get("zone"))
	case q.Has("purpose"):
		places = catalog.PlacesByPurpose(q.Get("purpose"))
	case q.Has("min_seats"):
		seats, err := strconv.ParseFloat(q.Get("min_seats"), 64)
		if err != nil {
			http.Error(w, "min_seats must be a number", http.StatusBadRequest)
			return
		}
		places = catalog.AvailablePlaces(seats)
	case q.Has("logical"):
		resolved, ok := catalog.ResolveLogical(q.Get("logical"))
		if !ok {
			http.Error(w, "logical place not found", http.StatusNotFound)
			return
		}
		places = resolved
	default:
		places = catalog.Places()
	}
	s.writeJSON(w, http.StatusOK, places)
}

// ValidateAssignment handles POST /assignments/validate.
func (s *Server) ValidateAssignment(w http.ResponseWriter, r *http.Request) {
	var body domain.Assignment
	if !s.decode(w, r, &body) {
		return
	}
	ed := s.Engine.Editor(&domain.Diagram{})
	s.writeJSON(w, http.StatusOK, ed.ValidateAssignment(body.Condition, body.Value))
}

// -- Diagrams --

// ListDiagrams returns the stored diagram IDs.
func (s *Server) ListDiagrams(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Workspace.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// CreateDiagram stores the posted diagram and answers with its ID.
func (s *Server) CreateDiagram(w http.ResponseWriter, r *http.Request) {
	var d domain.Diagram
	if !s.decode(w, r, &d) {
		return
	}
	id, err := s.Workspace.Create(r.Context(), &d)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid diagram: %v", err), http.StatusBadRequest)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// GetDiagram returns the stored diagram.
func (s *Server) GetDiagram(w http.ResponseWriter, r *http.Request) {
	d, err := s.Workspace.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

// DeleteDiagram removes the stored diagram.
func (s *Server) DeleteDiagram(w http.ResponseWriter, r *http.Request) {
	if err := s.Workspace.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AuditDiagram returns every finding of the diagram.
func (s *Server) AuditDiagram(w http.ResponseWriter, r *http.Request) {
	s.view(w, r, func(ed *spacetask.Editor) (any, error) {
		return ed.Audit(), nil
	})
}

// GetMermaid renders the diagram as a Mermaid flowchart, highlighting audited nodes.
func (s *Server) GetMermaid(w http.ResponseWriter, r *http.Request) {
	d, err := s.Workspace.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	overlay := &graph.GraphOverlay{}
	for _, warning := range s.Engine.Editor(d).Audit() {
		overlay.WarnedNodes = append(overlay.WarnedNodes, warning.NodeID)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(d, overlay))
}

// GetBindings lists the participant pairs recorded on message flows.
func (s *Server) GetBindings(w http.ResponseWriter, r *http.Request) {
	s.view(w, r, func(ed *spacetask.Editor) (any, error) {
		return ed.Bindings(), nil
	})
}

// -- Roles --

// NodeView is the role data of one node.
type NodeView struct {
	NodeID      string      `json:"node_id"`
	Role        domain.Role `json:"role"`
	Destination string      `json:"destination,omitempty"`
	Binding     string      `json:"binding,omitempty"`
}

func nodeView(ed *spacetask.Editor, nodeID string) (NodeView, error) {
	role, err := ed.Role(nodeID)
	if err != nil {
		return NodeView{}, err
	}
	dest, _ := ed.Destination(nodeID)
	binding, _ := ed.Binding(nodeID)
	return NodeView{NodeID: nodeID, Role: role, Destination: dest, Binding: binding}, nil
}

// GetRole returns the role data of the node.
func (s *Server) GetRole(w http.ResponseWriter, r *http.Request) {
	s.view(w, r, func(ed *spacetask.Editor) (any, error) {
		return nodeView(ed, chi.URLParam(r, "node"))
	})
}

// PutRole assigns the role in the body. Warnings are returned, never enforced.
func (s *Server) PutRole(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Role string `json:"role"`
	}
	if !s.decode(w, r, &body) {
		return
	}
	s.edit(w, r, func(ctx context.Context, ed *spacetask.Editor) (any, error) {
		return ed.SetRole(ctx, chi.URLParam(r, "node"), domain.Role(body.Role))
	})
}

// DeleteRole clears the role of the node.
func (s *Server) DeleteRole(w http.ResponseWriter, r *http.Request) {
	s.edit(w, r, func(ctx context.Context, ed *spacetask.Editor) (any, error) {
		return ed.ClearRole(ctx, chi.URLParam(r, "node"))
	})
}

// CheckRole handles GET .../role/check?role=.
func (s *Server) CheckRole(w http.ResponseWriter, r *http.Request) {
	role, err := domain.ParseRole(r.URL.Query().Get("role"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.view(w, r, func(ed *spacetask.Editor) (any, error) {
		return ed.QuickCheck(chi.URLParam(r, "node"), role)
	})
}

// PutDestination stores the movement destination of the node.
func (s *Server) PutDestination(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Destination string `json:"destination"`
	}
	if !s.decode(w, r, &body) {
		return
	}
	s.edit(w, r, func(_ context.Context, ed *spacetask.Editor) (any, error) {
		nodeID := chi.URLParam(r, "node")
		if _, err := ed.SetDestination(nodeID, body.Destination); err != nil {
			return nil, err
		}
		return nodeView(ed, nodeID)
	})
}

// PutBinding stores the bound participant of the node.
func (s *Server) PutBinding(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Participant string `json:"participant"`
	}
	if !s.decode(w, r, &body) {
		return
	}
	s.edit(w, r, func(_ context.Context, ed *spacetask.Editor) (any, error) {
		nodeID := chi.URLParam(r, "node")
		if err := ed.SetBinding(nodeID, body.Participant); err != nil {
			return nil, err
		}
		return nodeView(ed, nodeID)
	})
}

// GetParticipants lists the participants the node may bind.
func (s *Server) GetParticipants(w http.ResponseWriter, r *http.Request) {
	s.view(w, r, func(ed *spacetask.Editor) (any, error) {
		return ed.Participants(chi.URLParam(r, "node"))
	})
}

// -- Assignments --

// ListAssignments returns the node's assignments.
func (s *Server) ListAssignments(w http.ResponseWriter, r *http.Request) {
	s.view(w, r, func(ed *spacetask.Editor) (any, error) {
		return ed.Assignments(chi.URLParam(r, "node"))
	})
}

// AddAssignment appends the posted pair and returns the validation outcome with the new list.
func (s *Server) AddAssignment(w http.ResponseWriter, r *http.Request) {
	var body domain.Assignment
	if !s.decode(w, r, &body) {
		return
	}
	s.edit(w, r, func(_ context.Context, ed *spacetask.Editor) (any, error) {
		nodeID := chi.URLParam(r, "node")
		if err := ed.AddAssignment(nodeID, body.Condition, body.Value); err != nil {
			return nil, err
		}
		return assignmentsView(ed, nodeID, body)
	})
}

// UpdateAssignment replaces the pair at index. Out of range answers 404.
func (s *Server) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	index, ok := s.index(w, r)
	if !ok {
		return
	}
	var body domain.Assignment
	if !s.decode(w, r, &body) {
		return
	}
	s.edit(w, r, func(_ context.Context, ed *spacetask.Editor) (any, error) {
		nodeID := chi.URLParam(r, "node")
		updated, err := ed.UpdateAssignment(nodeID, index, body.Condition, body.Value)
		if err != nil {
			return nil, err
		}
		if !updated {
			return nil, errIndexOutOfRange
		}
		return assignmentsView(ed, nodeID, body)
	})
}

// RemoveAssignment deletes the pair at index. Out of range answers 404.
func (s *Server) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	index, ok := s.index(w, r)
	if !ok {
		return
	}
	s.edit(w, r, func(_ context.Context, ed *spacetask.Editor) (any, error) {
		nodeID := chi.URLParam(r, "node")
		removed, err := ed.RemoveAssignment(nodeID, index)
		if err != nil {
			return nil, err
		}
		if !removed {
			return nil, errIndexOutOfRange
		}
		return ed.Assignments(nodeID)
	})
}

// ClearAssignments removes every pair of the node.
func (s *Server) ClearAssignments(w http.ResponseWriter, r *http.Request) {
	s.edit(w, r, func(_ context.Context, ed *spacetask.Editor) (any, error) {
		nodeID := chi.URLParam(r, "node")
		if err := ed.ClearAssignments(nodeID); err != nil {
			return nil, err
		}
		return ed.Assignments(nodeID)
	})
}

// AssignmentsView is the response of assignment writes.
type AssignmentsView struct {
	Assignments []domain.Assignment `json:"assignments"`
	Count       int                 `json:"count"`
	Valid       bool                `json:"valid"`
	Errors      []string            `json:"errors"`
}

func assignmentsView(ed *spacetask.Editor, nodeID string, written domain.Assignment) (AssignmentsView, error) {
	list, err := ed.Assignments(nodeID)
	if err != nil {
		return AssignmentsView{}, err
	}
	count, err := ed.AssignmentCount(nodeID)
	if err != nil {
		return AssignmentsView{}, err
	}
	res := ed.ValidateAssignment(written.Condition, written.Value)
	return AssignmentsView{Assignments: list, Count: count, Valid: res.Valid, Errors: res.Errors}, nil
}

// -- Helpers --

var errIndexOutOfRange = errors.New("assignment index out of range")

// view loads the diagram and runs fn on an Editor without saving.
func (s *Server) view(w http.ResponseWriter, r *http.Request, fn func(*spacetask.Editor) (any, error)) {
	d, err := s.Workspace.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp, err := fn(s.Engine.Editor(d))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// edit runs fn inside a locked load/save cycle of the diagram.
func (s *Server) edit(w http.ResponseWriter, r *http.Request, fn func(context.Context, *spacetask.Editor) (any, error)) {
	var resp any
	_, err := s.Workspace.Update(r.Context(), chi.URLParam(r, "id"), func(ctx context.Context, d *domain.Diagram) error {
		var err error
		resp, err = fn(ctx, s.Engine.Editor(d))
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "index must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrDiagramNotFound),
		errors.Is(err, domain.ErrNodeNotFound),
		errors.Is(err, errIndexOutOfRange):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownRole):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrLockAcquire):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	http.Error(w, err.Error(), status)
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}
