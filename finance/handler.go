package finance

import (
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"pdv/database"
)

type notesPayload struct {
	Texto string `json:"texto"`
}

// GetNotesHandler returns the financial notes blob, empty string when none.
func GetNotesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		texto, err := database.GetFinanceNotes(db)
		if err != nil {
			http.Error(w, "Failed to load notes", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(notesPayload{Texto: texto})
	}
}

// SaveNotesHandler replaces the blob. No merge, no versioning.
func SaveNotesHandler(db *sqlx.DB, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload notesPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := database.SaveFinanceNotes(db, payload.Texto); err != nil {
			log.Errorw("notes save failed", "error", err)
			http.Error(w, "Failed to save notes", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
