package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wellatlas/wellatlas/store"
)

type siteRequest struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// CreateSite handles POST /customers/{id}/sites.
func CreateSite(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req siteRequest
	json.NewDecoder(r.Body).Decode(&req)
	site, err := st().CreateSite(customerID, req.Name, req.Latitude, req.Longitude)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, site)
}

func GetAllSites(w http.ResponseWriter, r *http.Request) {
	sites, err := st().ListSites()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sites)
}

func GetSite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	site, err := st().GetSite(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, site)
}

func UpdateSite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req siteRequest
	json.NewDecoder(r.Body).Decode(&req)
	site, err := st().UpdateSite(id, store.SiteUpdate{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, site)
}

func DeleteSite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := st().DeleteSite(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSiteJobs returns a site's jobs ordered by job number. A category
// query parameter narrows to one of the canonical categories.
func ListSiteJobs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if _, err := st().GetSite(id); err != nil {
		writeStoreError(w, err)
		return
	}
	jobs, err := st().ListJobsBySite(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if category := r.URL.Query().Get("category"); category != "" {
		filtered := jobs[:0]
		for _, j := range jobs {
			if j.Category == category {
				filtered = append(filtered, j)
			}
		}
		jobs = filtered
	}
	writeJSON(w, http.StatusOK, jobs)
}
