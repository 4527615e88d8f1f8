package http

import (
	"net/http"

	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/lifecycle"
	"github.com/YusovID/bughunt-service/pkg/api"
	"github.com/go-chi/chi/v5"
)

func (s *Server) submitBug(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.submitBug"

	var req submitBugRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	bug, err := s.svc.Bugs.SubmitBug(r.Context(), actorFromContext(r.Context()), lifecycle.SubmitInput{
		ProjectID:        req.ProjectID,
		Title:            req.Title,
		Description:      req.Description,
		Category:         domain.Category(req.Category),
		Severity:         domain.Severity(req.Severity),
		StepsToReproduce: req.StepsToReproduce,
		ExpectedBehavior: req.ExpectedBehavior,
		ActualBehavior:   req.ActualBehavior,
		Attachments:      req.Attachments,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]api.BugReport{"bug": toAPIBug(bug)})
}

func (s *Server) approveBug(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.approveBug"

	var req approveBugRequest
	if err := s.decodeOptional(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var severity *domain.Severity

	if req.Severity != nil {
		sev, err := domain.ParseSeverity(*req.Severity)
		if err != nil {
			s.handleServiceError(w, r, op, err)
			return
		}

		severity = &sev
	}

	bug, err := s.svc.Bugs.ApproveBug(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "bugID"), severity)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]api.BugReport{"bug": toAPIBug(bug)})
}

func (s *Server) rejectBug(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.rejectBug"

	var req rejectBugRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	bug, err := s.svc.Bugs.RejectBug(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "bugID"), req.Reason)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]api.BugReport{"bug": toAPIBug(bug)})
}

func (s *Server) resolveBug(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.resolveBug"

	bug, err := s.svc.Bugs.ResolveBug(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "bugID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]api.BugReport{"bug": toAPIBug(bug)})
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.addComment"

	var req addCommentRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	comment, err := s.svc.Bugs.AddComment(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "bugID"), req.Comment)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]api.Comment{"comment": toAPIComment(comment)})
}

func (s *Server) getBug(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getBug"

	bug, err := s.svc.Bugs.GetBug(r.Context(), chi.URLParam(r, "bugID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]api.BugReport{"bug": toAPIBug(bug)})
}

func (s *Server) listBugs(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listBugs"

	var (
		filter           domain.BugFilter
		status, severity *string
	)

	params := []struct {
		name string
		dest any
	}{
		{"project_id", &filter.ProjectID},
		{"tester_id", &filter.TesterID},
		{"status", &status},
		{"severity", &severity},
	}

	for _, p := range params {
		if err := queryParam(r, p.name, p.dest); err != nil {
			s.handleServiceError(w, r, op, err)
			return
		}
	}

	if status != nil {
		st, err := domain.ParseBugStatus(*status)
		if err != nil {
			s.handleServiceError(w, r, op, err)
			return
		}

		filter.Status = &st
	}

	if severity != nil {
		sev, err := domain.ParseSeverity(*severity)
		if err != nil {
			s.handleServiceError(w, r, op, err)
			return
		}

		filter.Severity = &sev
	}

	bugs, err := s.svc.Bugs.ListBugs(r.Context(), filter)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]api.BugReport{"bugs": toAPIBugs(bugs)})
}
