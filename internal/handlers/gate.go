package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	applog "github.com/harshbaid-13/Cake-Manager/internal/log"
)

const sessionUnlockedKey = "gate:unlocked"

var (
	sessionManager *scs.SessionManager
	database       *gorm.DB
	pinHash        []byte
)

// Configure installs the shared dependencies used by the HTTP handlers. An
// empty pin leaves the unlock gate disabled, which is the default for a
// trusted single-operator deployment.
func Configure(sm *scs.SessionManager, db *gorm.DB, pin string) error {
	sessionManager = sm
	database = db
	pinHash = nil

	trimmed := strings.TrimSpace(pin)
	if trimmed == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(trimmed), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	pinHash = hash
	return nil
}

func gateEnabled() bool {
	return pinHash != nil
}

// Unlock marks the current session as unlocked when the supplied PIN matches
// the configured one. With no PIN configured the endpoint simply reports the
// gate as open.
func Unlock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if !gateEnabled() {
		writeJSON(w, http.StatusOK, map[string]bool{"unlocked": true})
		return
	}

	if sessionManager == nil {
		applog.Error(r.Context(), "unlock requested without session manager")
		writeJSONError(w, http.StatusServiceUnavailable, "sessions not available")
		return
	}

	var payload struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid unlock payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := bcrypt.CompareHashAndPassword(pinHash, []byte(strings.TrimSpace(payload.PIN))); err != nil {
		applog.Debug(r.Context(), "unlock rejected")
		writeJSONError(w, http.StatusUnauthorized, "Incorrect PIN")
		return
	}

	sessionManager.Put(r.Context(), sessionUnlockedKey, true)
	writeJSON(w, http.StatusOK, map[string]bool{"unlocked": true})
}

// RequireUnlocked guards the resource routes behind the PIN gate. It is a
// no-op while no PIN is configured.
func RequireUnlocked(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !gateEnabled() {
			next.ServeHTTP(w, r)
			return
		}
		if sessionManager == nil || !sessionManager.GetBool(r.Context(), sessionUnlockedKey) {
			applog.Debug(r.Context(), "request blocked by pin gate", "path", r.URL.Path)
			writeJSONError(w, http.StatusUnauthorized, "Locked")
			return
		}
		next.ServeHTTP(w, r)
	})
}
