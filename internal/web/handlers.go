package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/Noziop/mkdf/internal/brace"
	"github.com/Noziop/mkdf/internal/combo"
	"github.com/Noziop/mkdf/internal/ports"
	"github.com/Noziop/mkdf/internal/project"
	"github.com/Noziop/mkdf/internal/services"
	"github.com/Noziop/mkdf/internal/templates"
	"github.com/Noziop/mkdf/internal/tree"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// PortsPayload is the JSON form of ports.Config. Zero fields are allocated.
type PortsPayload struct {
	Backend          int    `json:"backend,omitempty"`
	Frontend         int    `json:"frontend,omitempty"`
	Database         int    `json:"database,omitempty"`
	Redis            int    `json:"redis,omitempty"`
	Prometheus       int    `json:"prometheus,omitempty"`
	Grafana          int    `json:"grafana,omitempty"`
	Traefik          int    `json:"traefik,omitempty"`
	TraefikDashboard int    `json:"traefik_dashboard,omitempty"`
	Subnet           string `json:"subnet,omitempty"`
}

// Config converts the payload.
func (p PortsPayload) Config() ports.Config {
	cfg := ports.Config{Ports: map[ports.Role]int{}, Subnet: p.Subnet}
	for role, v := range map[ports.Role]int{
		ports.Backend:          p.Backend,
		ports.Frontend:         p.Frontend,
		ports.Database:         p.Database,
		ports.Redis:            p.Redis,
		ports.Prometheus:       p.Prometheus,
		ports.Grafana:          p.Grafana,
		ports.Traefik:          p.Traefik,
		ports.TraefikDashboard: p.TraefikDashboard,
	} {
		if v != 0 {
			cfg.Ports[role] = v
		}
	}
	return cfg
}

type patternRequest struct {
	Pattern string `json:"pattern"`
}

type patternPreviewResponse struct {
	Success bool     `json:"success"`
	Paths   []string `json:"paths"`
	Tree    string   `json:"tree"`
}

type createResponse struct {
	Success bool     `json:"success"`
	Path    string   `json:"path"`
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

type projectRequest struct {
	ProjectName  string       `json:"project_name"`
	TemplateType string       `json:"template_type"`
	Components   []string     `json:"components"`
	Ports        PortsPayload `json:"ports"`
}

type dockerPreviewRequest struct {
	ProjectName string       `json:"project_name"`
	Components  []string     `json:"components"`
	Ports       PortsPayload `json:"ports"`
}

type dockerPreviewResponse struct {
	Success    bool   `json:"success"`
	ComposeYML string `json:"compose_yml"`
}

type componentsResponse struct {
	Components []services.Group `json:"components"`
}

type templatesResponse struct {
	Templates []templates.Category `json:"templates"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListComponents(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, componentsResponse{Components: s.registry.Groups()})
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	cats := s.catalog.Categories()
	cats = append(cats, templates.Category{Title: "Docker", Templates: []string{templates.Docker}})
	s.writeJSON(w, r, http.StatusOK, templatesResponse{Templates: cats})
}

func (s *Server) handlePatternPreview(w http.ResponseWriter, r *http.Request) {
	var req patternRequest
	if !s.decode(w, r, &req) {
		return
	}
	paths, err := confinedPaths(req.Pattern)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, patternPreviewResponse{Success: true, Paths: paths, Tree: brace.Tree(paths)})
}

func (s *Server) handleCreatePattern(w http.ResponseWriter, r *http.Request) {
	var req patternRequest
	if !s.decode(w, r, &req) {
		return
	}
	if _, err := confinedPaths(req.Pattern); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	res, err := s.scaffolder.CreateFromPattern(r.Context(), req.Pattern, s.root, false, false)
	s.metrics.Generation("pattern", err)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, createResponse{
		Success: true,
		Path:    res.Path,
		Created: nonNil(res.Report.Applied),
		Skipped: nonNil(res.Report.Skipped),
	})
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.TemplateType == "" {
		s.writeError(w, r, http.StatusBadRequest, errors.New("template_type is required"))
		return
	}

	res, err := s.scaffolder.CreateFromTemplate(r.Context(), project.Request{
		ProjectName: req.ProjectName,
		Template:    req.TemplateType,
		Components:  req.Components,
		BasePath:    s.root,
		Ports:       req.Ports.Config(),
		Overwrite:   true,
	})
	s.metrics.Generation(strings.ToLower(req.TemplateType), err)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	Logger(r.Context()).Info("project created", "path", res.Path, "template", req.TemplateType)
	s.writeJSON(w, r, http.StatusCreated, createResponse{
		Success: true,
		Path:    res.Path,
		Created: nonNil(res.Report.Applied),
		Skipped: nonNil(res.Report.Skipped),
	})
}

func (s *Server) handleDockerPreview(w http.ResponseWriter, r *http.Request) {
	var req dockerPreviewRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.ProjectName != "" {
		if err := project.ValidateName(req.ProjectName); err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
	}

	out, err := s.combo.Preview(r.Context(), req.Components, req.ProjectName, req.Ports.Config())
	s.metrics.Generation("docker_preview", err)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, dockerPreviewResponse{Success: true, ComposeYML: string(out)})
}

// confinedPaths expands pattern and rejects any path escaping the root.
func confinedPaths(pattern string) ([]string, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, project.ErrEmptyPattern
	}
	paths := brace.Expand(pattern)
	for _, p := range paths {
		if strings.HasPrefix(p, "/") || strings.HasPrefix(p, "~") || filepath.IsAbs(p) {
			return nil, fmt.Errorf("absolute path not allowed: %s", p)
		}
		for _, seg := range strings.Split(path.Clean(filepath.ToSlash(p)), "/") {
			if seg == ".." {
				return nil, fmt.Errorf("path escapes the server root: %s", p)
			}
		}
	}
	return paths, nil
}

// statusFor maps generation errors to HTTP status codes.
func statusFor(err error) int {
	var conflict *ports.ConflictError
	var missing *combo.MissingDependencyError
	switch {
	case errors.Is(err, project.ErrInvalidName),
		errors.Is(err, project.ErrEmptyPattern),
		errors.Is(err, services.ErrUnknownService),
		errors.Is(err, templates.ErrUnknownTemplate),
		errors.Is(err, combo.ErrMultipleDatabases),
		errors.Is(err, combo.ErrMultipleComponents),
		errors.As(err, &missing):
		return http.StatusBadRequest
	case errors.Is(err, project.ErrProjectExists),
		errors.Is(err, tree.ErrPathConflict),
		errors.As(err, &conflict):
		return http.StatusConflict
	case errors.Is(err, ports.ErrNoFreePort), errors.Is(err, ports.ErrNoFreeSubnet):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Logger(r.Context()).Error("failed to encode JSON", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		Logger(r.Context()).Error("request failed", "error", err)
	}
	s.writeJSON(w, r, status, ErrorResponse{Success: false, Error: err.Error()})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
