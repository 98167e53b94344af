package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/wellatlas/wellatlas/archive"
	"github.com/wellatlas/wellatlas/export"
)

// sink is the configured archival destination, nil when none is set up.
var sink archive.Sink

// SetSink wires the archival sink chosen at startup.
func SetSink(s archive.Sink) {
	sink = s
}

// ExportJSON returns the backup document directly to the caller.
func ExportJSON(w http.ResponseWriter, r *http.Request) {
	doc, err := export.Build(st())
	if err != nil {
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	data, err := export.Encode(doc)
	if err != nil {
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// RunBackup builds the backup document and hands it to the archival sink.
// A missing sink is informational, not an error: the export still ran.
func RunBackup(w http.ResponseWriter, r *http.Request) {
	doc, err := export.Build(st())
	if err != nil {
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	data, err := export.Encode(doc)
	if err != nil {
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	name := fmt.Sprintf("wellatlas-backup-%s.json", time.Now().UTC().Format("20060102-150405"))
	if sink == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"uploaded": false,
			"reason":   "no archival sink configured",
			"bytes":    len(data),
		})
		return
	}
	if err := sink.Store(r.Context(), name, data); err != nil {
		http.Error(w, "upload failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"uploaded": true,
		"object":   name,
		"sink":     sink.Description(),
		"bytes":    len(data),
	})
}
