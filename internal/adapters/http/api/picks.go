// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/model"
)

// PickDependencies defines the interface for pick submission dependencies.
type PickDependencies interface {
	dedupe.Deduper
	Enqueue(ctx context.Context, sub model.PickSubmission) bool
}

// PicksHandler handles pick submission requests.
type PicksHandler struct {
	deps PickDependencies
}

// NewPicksHandler creates a new picks handler.
func NewPicksHandler(deps PickDependencies) *PicksHandler {
	return &PicksHandler{deps: deps}
}

// HandlePostPick handles POST /picks requests.
func (h *PicksHandler) HandlePostPick(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_pick"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req pickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), req.SubmissionID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	// Try to enqueue for async processing
	if ok := h.deps.Enqueue(r.Context(), req.submission()); !ok {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), req.SubmissionID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}
