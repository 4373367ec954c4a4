package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// privileged reports whether a role receives alert delivery.
func privileged(role string) bool {
	return role == "admin" || role == "approver"
}

// PublishAlertHandler godoc
// @Summary Broadcast a plain-text alert to privileged sessions
// @Description Delivery is fire-and-forget: no acknowledgement, ordering or replay guarantee
// @Tags alerts
// @Accept json
// @Security BearerAuth
// @Param alert body AlertRequest true "Alert message"
// @Success 202 "Accepted"
// @Failure 400 {object} map[string]string
// @Failure 403 {string} string "Forbidden"
// @Router /alerts [post]
func PublishAlertHandler(w http.ResponseWriter, r *http.Request) {
	id := IdentityFromRequest(r)
	if !privileged(id.Role) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req AlertRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message must not be empty", http.StatusBadRequest)
		return
	}

	notifier.Publish(req.Message)
	w.WriteHeader(http.StatusAccepted)
}

// StreamAlertsHandler godoc
// @Summary One-way alert stream for privileged sessions (SSE)
// @Description Messages are ephemeral; a dropped connection is not replayed
// @Tags alerts
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "event stream"
// @Failure 403 {string} string "Forbidden"
// @Router /alerts/stream [get]
func StreamAlertsHandler(w http.ResponseWriter, r *http.Request) {
	id := IdentityFromRequest(r)
	if !privileged(id.Role) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	messages := notifier.Subscribe(r.Context())
	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg, ok := <-messages:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
