// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service methods,
// and encodes the responses.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/YusovID/bughunt-service/internal/apperrors"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/service"
	"github.com/YusovID/bughunt-service/internal/validation"
	"github.com/YusovID/bughunt-service/pkg/api"
	"github.com/YusovID/bughunt-service/pkg/logger/sl"
	"github.com/YusovID/bughunt-service/swagger"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles the application services the handlers call into.
type Services struct {
	Bugs          service.BugService
	Users         service.UserService
	Projects      service.ProjectService
	Scoring       service.ScoringService
	Leaderboard   service.LeaderboardService
	Analytics     service.AnalyticsService
	Notifications service.NotificationService
}

// Server holds the dependencies for the HTTP server, including the logger and service interfaces.
type Server struct {
	log       *slog.Logger
	jwtSecret []byte
	svc       Services
}

// NewServer creates a new instance of the HTTP server.
func NewServer(log *slog.Logger, jwtSecret string, svc Services) *Server {
	return &Server{
		log:       log,
		jwtSecret: []byte(jwtSecret),
		svc:       svc,
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	swaggerHandler, err := swagger.GetHandler()
	if err != nil {
		s.log.Error("failed to get swagger handler", sl.Err(err))
	} else {
		mux.Mount("/swagger", http.StripPrefix("/swagger", swaggerHandler))
	}

	mux.Handle("/metrics", promhttp.Handler())
	mux.Get("/healthz", s.healthz)

	triagers := s.requireRoles(domain.RoleMaintainer, domain.RoleAdmin)

	mux.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/bugs", func(r chi.Router) {
			r.Get("/", s.listBugs)
			r.With(s.requireRoles(domain.RoleTester)).Post("/", s.submitBug)
			r.Get("/{bugID}", s.getBug)
			r.With(triagers).Post("/{bugID}/approve", s.approveBug)
			r.With(triagers).Post("/{bugID}/reject", s.rejectBug)
			r.With(triagers).Post("/{bugID}/resolve", s.resolveBug)
			r.Post("/{bugID}/comments", s.addComment)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(s.requireRoles(domain.RoleAdmin)).Post("/", s.createUser)
			r.Get("/{userID}", s.getUser)
			r.Get("/{userID}/stats", s.getUserStats)
			r.Get("/{userID}/analytics", s.getUserAnalytics)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.listProjects)
			r.With(triagers).Post("/", s.createProject)
			r.Get("/{projectID}", s.getProject)
			r.With(triagers).Post("/{projectID}/status", s.updateProjectStatus)
		})

		r.Get("/achievements", s.listAchievements)
		r.Get("/leaderboard", s.getLeaderboard)

		r.Get("/notifications", s.listNotifications)
		r.Post("/notifications/{notificationID}/read", s.markNotificationRead)
	})

	return mux
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respond is a helper function to encode data to JSON and write it to the response.
// It centralizes setting the Content-Type header and writing the status code.
func (s *Server) respond(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

// respondAPIError sends the structured error body shared by every endpoint.
func (s *Server) respondAPIError(w http.ResponseWriter, code int, apiCode api.ErrorCode, message string) {
	s.respond(w, code, api.ErrorResponse{
		Error: api.ErrorBody{Code: apiCode, Message: message},
	})
}

// decodeAndValidate is a helper that deserializes a JSON request body into a struct
// and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v any) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	return validation.ValidateStruct(v)
}

// decodeOptional is decodeAndValidate for endpoints whose body may be omitted.
func (s *Server) decodeOptional(r *http.Request, v any) error {
	if err := s.decode(r.Body, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return validation.ValidateStruct(v)
}

func (s *Server) decode(body io.ReadCloser, v any) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// queryParam binds an optional form-style query parameter into dest, which must be a pointer to a pointer.
func queryParam(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("%w: query parameter '%s': %w", apperrors.ErrInvalidRequest, name, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a user-friendly HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := s.log.With(slog.String("op", op), slog.String("request_id", getRequestID(r.Context())))

	var validationErr *validation.ValidationError

	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		log.Warn("unauthenticated request", sl.Err(err))
		s.respondAPIError(w, http.StatusUnauthorized, api.CodeUnauthenticated, "missing or invalid bearer token")
	case errors.As(err, &validationErr):
		log.Warn("request validation failed", sl.Err(err))
		s.respondAPIError(w, http.StatusBadRequest, api.CodeValidation, validationErr.Error())
	case errors.Is(err, apperrors.ErrValidation):
		log.Warn("request validation failed", sl.Err(err))
		s.respondAPIError(w, http.StatusBadRequest, api.CodeValidation, innermost(err).Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		log.Warn("invalid request", sl.Err(err))
		s.respondAPIError(w, http.StatusBadRequest, api.CodeInvalidRequest, apperrors.ErrInvalidRequest.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		log.Warn("resource not found", sl.Err(err))
		s.respondAPIError(w, http.StatusNotFound, api.CodeNotFound, innermost(err).Error())
	case errors.Is(err, apperrors.ErrRoleMismatch):
		log.Warn("forbidden", sl.Err(err))
		s.respondAPIError(w, http.StatusForbidden, api.CodeForbidden, innermost(err).Error())
	case errors.Is(err, apperrors.ErrInvalidTransition):
		log.Warn("invalid transition", sl.Err(err))
		s.respondAPIError(w, http.StatusConflict, api.CodeInvalidTransition, innermost(err).Error())
	case errors.Is(err, apperrors.ErrAlreadyExists):
		log.Warn("conflict", sl.Err(err))
		s.respondAPIError(w, http.StatusConflict, api.CodeAlreadyExists, innermost(err).Error())
	default:
		log.Error("service error occurred", sl.Err(err))
		s.respondAPIError(w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
	}
}

// innermost strips the "op: " prefixes added while the error travelled up the layers.
func innermost(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}

		err = next
	}
}
