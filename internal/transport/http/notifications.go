package http

import (
	"net/http"

	"github.com/YusovID/bughunt-service/pkg/api"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listNotifications"

	var unreadOnly *bool
	if err := queryParam(r, "unread_only", &unreadOnly); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	notifications, err := s.svc.Notifications.ListNotifications(
		r.Context(),
		actorFromContext(r.Context()),
		unreadOnly != nil && *unreadOnly,
	)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]api.Notification{"notifications": toAPINotifications(notifications)})
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.markNotificationRead"

	notification, err := s.svc.Notifications.MarkNotificationRead(
		r.Context(),
		actorFromContext(r.Context()),
		chi.URLParam(r, "notificationID"),
	)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]api.Notification{"notification": toAPINotification(notification)})
}
