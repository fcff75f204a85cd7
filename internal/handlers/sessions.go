package handlers

import (
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	applog "github.com/harshbaid-13/Cake-Manager/internal/log"
	"github.com/harshbaid-13/Cake-Manager/models"
)

// SessionResource handles the /sessions work-timer endpoints: GET reports
// the active session, POST starts one, PATCH stops it. At most one session
// may be active at a time.
func SessionResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "session request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	switch r.Method {
	case http.MethodGet:
		showActiveSession(w, r)
	case http.MethodPost:
		startSession(w, r)
	case http.MethodPatch:
		stopSession(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func findActiveSession(r *http.Request) (*models.WorkSession, error) {
	var session models.WorkSession
	err := database.WithContext(r.Context()).
		Where("end_time IS NULL").
		Limit(1).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func showActiveSession(w http.ResponseWriter, r *http.Request) {
	session, err := findActiveSession(r)
	if err != nil {
		applog.Error(r.Context(), "failed to load active session", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load active session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]*models.WorkSession{"activeSession": session})
}

func startSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, err := findActiveSession(r)
	if err != nil {
		applog.Error(ctx, "failed to check for active session", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to start session")
		return
	}
	if existing != nil {
		writeJSONError(w, http.StatusBadRequest, "Session already active")
		return
	}

	now := time.Now().UTC()
	session := models.WorkSession{
		StartTime: now,
		Date:      now.Format("2006-01-02"),
	}
	if err := database.WithContext(ctx).Create(&session).Error; err != nil {
		applog.Error(ctx, "failed to start session", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to start session")
		return
	}

	applog.Info(ctx, "work session started", "id", session.ID)
	writeJSON(w, http.StatusCreated, map[string]*models.WorkSession{"session": &session})
}

func stopSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	active, err := findActiveSession(r)
	if err != nil {
		applog.Error(ctx, "failed to check for active session", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to stop session")
		return
	}
	if active == nil {
		writeJSONError(w, http.StatusBadRequest, "No active session")
		return
	}

	// Conditional write: only close the row if it is still open, so a
	// concurrent stop cannot clobber an already-set end time.
	now := time.Now().UTC()
	result := database.WithContext(ctx).
		Model(&models.WorkSession{}).
		Where("id = ? AND end_time IS NULL", active.ID).
		Update("end_time", now)
	if result.Error != nil {
		applog.Error(ctx, "failed to stop session", "error", result.Error, "id", active.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to stop session")
		return
	}
	if result.RowsAffected == 0 {
		writeJSONError(w, http.StatusBadRequest, "No active session")
		return
	}

	var session models.WorkSession
	if err := database.WithContext(ctx).First(&session, "id = ?", active.ID).Error; err != nil {
		applog.Error(ctx, "failed to reload stopped session", "error", err, "id", active.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load stopped session")
		return
	}

	applog.Info(ctx, "work session stopped", "id", session.ID, "hours", session.Hours())
	writeJSON(w, http.StatusOK, map[string]*models.WorkSession{"session": &session})
}
