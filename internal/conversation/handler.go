package conversation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/clinova/intake/internal/bookings"
	"github.com/clinova/intake/internal/doctors"
	"github.com/clinova/intake/internal/schedule"
	"github.com/clinova/intake/pkg/logging"
)

// Handler exposes the conversation engine over HTTP.
type Handler struct {
	engine    *Engine
	booking   *bookings.Service
	directory doctors.Directory
	logger    *logging.Logger
	now       func() time.Time

	defaultWorkStart string
	defaultWorkEnd   string
}

// NewHandler builds the HTTP handler. defaultWorkStart/End back the dates
// endpoint when no explicit window is given.
func NewHandler(
	engine *Engine,
	booking *bookings.Service,
	directory doctors.Directory,
	logger *logging.Logger,
	defaultWorkStart, defaultWorkEnd string,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		engine:           engine,
		booking:          booking,
		directory:        directory,
		logger:           logger,
		now:              time.Now,
		defaultWorkStart: defaultWorkStart,
		defaultWorkEnd:   defaultWorkEnd,
	}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// Chat handles POST /api/chat: one conversation turn.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		req.SessionID = "default"
	}

	reply, err := h.engine.HandleMessage(r.Context(), req.SessionID, req.Message)
	if err != nil {
		h.logger.Error("conversation turn failed", "error", err, "session_id", req.SessionID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

type checkBookingRequest struct {
	Code string `json:"code"`
}

// CheckBooking handles POST /api/check-booking: direct code lookup outside
// the conversational flow.
func (h *Handler) CheckBooking(w http.ResponseWriter, r *http.Request) {
	var req checkBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	code := strings.TrimSpace(req.Code)
	if !codePattern.MatchString(code) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "code must be 8 digits"})
		return
	}

	view, err := h.booking.Lookup(r.Context(), code)
	if err != nil {
		if errors.Is(err, bookings.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{
				"success": false,
				"message": "No booking found for this code",
			})
			return
		}
		h.logger.Error("booking lookup failed", "error", err, "code", code)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"booking_details": view,
	})
}

// Doctors handles GET /api/doctors.
func (h *Handler) Doctors(w http.ResponseWriter, r *http.Request) {
	list, err := h.directory.List(r.Context())
	if err != nil {
		h.logger.Error("doctor listing failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"doctors": list})
}

// Dates handles GET /api/dates?doctor_id=&start=&end=: upcoming days with
// per-slot availability for a doctor.
func (h *Handler) Dates(w http.ResponseWriter, r *http.Request) {
	doctorID := r.URL.Query().Get("doctor_id")
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" {
		start = h.defaultWorkStart
	}
	if end == "" {
		end = h.defaultWorkEnd
	}

	if doctorID != "" {
		doc, err := h.directory.Get(r.Context(), doctorID)
		if err == nil {
			if doc.WorkStart != "" {
				start = doc.WorkStart
			}
			if doc.WorkEnd != "" {
				end = doc.WorkEnd
			}
		}
	}

	dates, err := schedule.UpcomingDates(r.Context(), h.now(), doctorID, start, end, h.booking.BookedTimes)
	if err != nil {
		h.logger.Error("building available dates failed", "error", err, "doctor_id", doctorID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dates": dates})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
