package http

import (
	"net/http"

	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/service"
	"github.com/YusovID/bughunt-service/pkg/api"
	"github.com/go-chi/chi/v5"
)

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createProject"

	var req createProjectRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	project, err := s.svc.Projects.CreateProject(r.Context(), actorFromContext(r.Context()), service.CreateProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		MaintainerID: req.MaintainerID,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]api.Project{"project": toAPIProject(project)})
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getProject"

	project, err := s.svc.Projects.GetProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]api.Project{"project": toAPIProject(project)})
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listProjects"

	var (
		filter domain.ProjectFilter
		status *string
	)

	if err := queryParam(r, "maintainer_id", &filter.MaintainerID); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if err := queryParam(r, "status", &status); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if status != nil {
		st, err := domain.ParseProjectStatus(*status)
		if err != nil {
			s.handleServiceError(w, r, op, err)
			return
		}

		filter.Status = &st
	}

	projects, err := s.svc.Projects.ListProjects(r.Context(), filter)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]api.Project{"projects": toAPIProjects(projects)})
}

func (s *Server) updateProjectStatus(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateProjectStatus"

	var req updateProjectStatusRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	project, err := s.svc.Projects.UpdateProjectStatus(
		r.Context(),
		actorFromContext(r.Context()),
		chi.URLParam(r, "projectID"),
		domain.ProjectStatus(req.Status),
	)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]api.Project{"project": toAPIProject(project)})
}
