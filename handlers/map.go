package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// MapData returns all plottable sites as a GeoJSON FeatureCollection for
// the map view. Sites without coordinates are listed elsewhere but never
// break the map; they are simply omitted here.
func MapData(w http.ResponseWriter, r *http.Request) {
	s := st()
	sites, err := s.ListSites()
	if err != nil {
		writeStoreError(w, err)
		return
	}

	fc := geojson.NewFeatureCollection()
	for _, site := range sites {
		if !site.HasCoordinates() {
			continue
		}
		customer, err := s.GetCustomer(site.CustomerID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		jobs, err := s.ListJobsBySite(site.ID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		jobSummaries := make([]map[string]interface{}, 0, len(jobs))
		for _, j := range jobs {
			jobSummaries = append(jobSummaries, map[string]interface{}{
				"id":        j.ID.String(),
				"jobNumber": j.JobNumber,
				"category":  j.Category,
				"status":    j.Status,
			})
		}

		f := geojson.NewFeature(orb.Point{*site.Longitude, *site.Latitude})
		f.ID = site.ID.String()
		f.Properties = geojson.Properties{
			"name":     site.Name,
			"customer": customer.Name,
			"jobs":     jobSummaries,
		}
		fc.Append(f)
	}

	w.Header().Set("Content-Type", "application/geo+json")
	json.NewEncoder(w).Encode(fc)
}
