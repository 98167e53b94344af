package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wellatlas/wellatlas/handlers"
	"github.com/wellatlas/wellatlas/middleware"
)

// crudHandlers bundles the handler set for one entity type.
type crudHandlers struct {
	getAll http.HandlerFunc
	create http.HandlerFunc
	getOne http.HandlerFunc
	update http.HandlerFunc
	delete http.HandlerFunc
}

// registerCRUDRoutes wires the standard method/path layout for an entity.
// Entries in the struct may be nil when an entity is created through its
// parent's nested route instead.
func registerCRUDRoutes(api *mux.Router, prefix string, h crudHandlers) {
	if h.getAll != nil {
		api.HandleFunc(prefix, h.getAll).Methods("GET")
	}
	if h.create != nil {
		api.HandleFunc(prefix, h.create).Methods("POST")
	}
	if h.getOne != nil {
		api.HandleFunc(prefix+"/{id}", h.getOne).Methods("GET")
	}
	if h.update != nil {
		api.HandleFunc(prefix+"/{id}", h.update).Methods("PUT")
	}
	if h.delete != nil {
		api.HandleFunc(prefix+"/{id}", h.delete).Methods("DELETE")
	}
}

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/healthz", handlers.Healthz).Methods("GET")
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")

	// API routes; auth is optional and only feeds entry attribution
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.OptionalAuth)

	registerCRUDRoutes(api, "/customers", crudHandlers{
		getAll: handlers.GetAllCustomers,
		create: handlers.CreateCustomer,
		getOne: handlers.GetCustomer,
		update: handlers.UpdateCustomer,
		delete: handlers.DeleteCustomer,
	})
	registerCRUDRoutes(api, "/sites", crudHandlers{
		getAll: handlers.GetAllSites,
		getOne: handlers.GetSite,
		update: handlers.UpdateSite,
		delete: handlers.DeleteSite,
	})
	registerCRUDRoutes(api, "/jobs", crudHandlers{
		getOne: handlers.GetJob,
		update: handlers.UpdateJob,
		delete: handlers.DeleteJob,
	})
	registerCRUDRoutes(api, "/entries", crudHandlers{
		getOne: handlers.GetEntry,
		update: handlers.UpdateEntry,
		delete: handlers.DeleteEntry,
	})

	// Nested creation and listing follow the ownership tree
	api.HandleFunc("/customers/{id}/sites", handlers.ListCustomerSites).Methods("GET")
	api.HandleFunc("/customers/{id}/sites", handlers.CreateSite).Methods("POST")
	api.HandleFunc("/sites/{id}/jobs", handlers.ListSiteJobs).Methods("GET")
	api.HandleFunc("/sites/{id}/jobs", handlers.CreateJob).Methods("POST")
	api.HandleFunc("/jobs/{id}/entries", handlers.ListJobEntries).Methods("GET")
	api.HandleFunc("/jobs/{id}/entries", handlers.CreateEntry).Methods("POST")

	// Map, categories, exports and backup
	api.HandleFunc("/map", handlers.MapData).Methods("GET")
	api.HandleFunc("/categories", handlers.ListCategories).Methods("GET")
	api.HandleFunc("/export", handlers.ExportJSON).Methods("GET")
	api.HandleFunc("/export/jobs.xlsx", handlers.ExportJobsToExcel).Methods("GET")
	api.HandleFunc("/export/jobs.csv", handlers.ExportJobsToCSV).Methods("GET")
	api.HandleFunc("/backup", handlers.RunBackup).Methods("POST")

	return r
}
