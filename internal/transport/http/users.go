package http

import (
	"net/http"

	"github.com/YusovID/bughunt-service/internal/apperrors"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/service"
	"github.com/YusovID/bughunt-service/pkg/api"
	"github.com/go-chi/chi/v5"
)

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createUser"

	var req createUserRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.svc.Users.CreateUser(r.Context(), service.CreateUserInput{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
		Role:  domain.Role(req.Role),
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]api.User{"user": toAPIUser(user)})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getUser"

	user, err := s.svc.Users.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]api.User{"user": toAPIUser(user)})
}

func (s *Server) getUserStats(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getUserStats"

	userID := chi.URLParam(r, "userID")

	totalXP, err := s.svc.Scoring.RecomputeTotalXP(r.Context(), userID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	rate, err := s.svc.Scoring.SuccessRate(r.Context(), userID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, api.UserStats{UserID: userID, TotalXP: totalXP, SuccessRate: rate})
}

// getUserAnalytics serves a user's own dashboard; admins may read anyone's.
func (s *Server) getUserAnalytics(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getUserAnalytics"

	userID := chi.URLParam(r, "userID")

	actor := actorFromContext(r.Context())
	if actor.UserID != userID && actor.Role != domain.RoleAdmin {
		s.handleServiceError(w, r, op, &apperrors.RoleMismatchError{
			UserID:   actor.UserID,
			Role:     string(actor.Role),
			Required: "admin or the user themselves",
		})
		return
	}

	result, err := s.svc.Analytics.GetUserAnalytics(r.Context(), userID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toAPIAnalytics(result))
}

func (s *Server) listAchievements(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listAchievements"

	achievements, err := s.svc.Users.ListAchievements(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]api.Achievement{"achievements": toAPIAchievements(achievements)})
}

func (s *Server) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getLeaderboard"

	var limit *int
	if err := queryParam(r, "limit", &limit); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	n := 0
	if limit != nil {
		n = *limit
	}

	entries, err := s.svc.Leaderboard.GetLeaderboard(r.Context(), n)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]api.LeaderboardEntry{"leaderboard": toAPILeaderboard(entries)})
}
