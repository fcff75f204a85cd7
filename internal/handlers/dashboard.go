package handlers

import (
	"net/http"

	"github.com/harshbaid-13/Cake-Manager/internal/costing"
	applog "github.com/harshbaid-13/Cake-Manager/internal/log"
)

// Dashboard serves the aggregate financial metrics.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "dashboard request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	metrics, err := costing.Metrics(r.Context(), database)
	if err != nil {
		applog.Error(r.Context(), "failed to compute dashboard metrics", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to compute dashboard metrics")
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}
