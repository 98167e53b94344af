package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wellatlas/wellatlas/store"
)

type jobRequest struct {
	JobNumber string `json:"jobNumber"`
	Category  string `json:"category"`
	Status    string `json:"status"`
}

// CreateJob handles POST /sites/{id}/jobs. Status defaults to "Active".
func CreateJob(w http.ResponseWriter, r *http.Request) {
	siteID, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req jobRequest
	json.NewDecoder(r.Body).Decode(&req)
	job, err := st().CreateJob(siteID, req.JobNumber, req.Category, req.Status)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func GetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	job, err := st().GetJob(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req jobRequest
	json.NewDecoder(r.Body).Decode(&req)
	job, err := st().UpdateJob(id, store.JobUpdate{
		JobNumber: req.JobNumber,
		Category:  req.Category,
		Status:    req.Status,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := st().DeleteJob(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListJobEntries returns a job's timeline in chronological order.
func ListJobEntries(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if _, err := st().GetJob(id); err != nil {
		writeStoreError(w, err)
		return
	}
	entries, err := st().ListEntriesByJob(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
