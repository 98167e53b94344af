package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wellatlas/wellatlas/middleware"
	"github.com/wellatlas/wellatlas/models"
	"github.com/wellatlas/wellatlas/store"
)

type entryRequest struct {
	Text           string           `json:"text"`
	When           *models.JSONTime `json:"when"`
	AttachmentName string           `json:"attachmentName"`
}

// CreateEntry handles POST /jobs/{id}/entries. created_by comes from the
// logged-in actor when a token was sent, otherwise the entry is anonymous.
func CreateEntry(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req entryRequest
	json.NewDecoder(r.Body).Decode(&req)

	in := store.NewEntry{
		Text:           req.Text,
		CreatedBy:      middleware.CurrentActor(r),
		AttachmentName: req.AttachmentName,
	}
	if req.When != nil {
		when := time.Time(*req.When)
		if !when.IsZero() {
			in.When = &when
		}
	}
	entry, err := st().CreateEntry(jobID, in)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func GetEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	entry, err := st().GetEntry(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req entryRequest
	json.NewDecoder(r.Body).Decode(&req)
	entry, err := st().UpdateEntry(id, req.Text)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := st().DeleteEntry(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
