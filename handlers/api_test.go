package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wellatlas/wellatlas/config"
	"github.com/wellatlas/wellatlas/handlers"
	"github.com/wellatlas/wellatlas/models"
	"github.com/wellatlas/wellatlas/routes"
)

// setupAPI points the shared connection at a fresh in-memory database and
// returns a test server for the full route table.
func setupAPI(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection to :memory: would see an empty database,
	// so keep the server on a single one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Customer{}, &models.Site{}, &models.Job{}, &models.Entry{}, &models.User{}))
	config.DB = db
	handlers.SetSink(nil)

	srv := httptest.NewServer(routes.RegisterRoutes())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthz(t *testing.T) {
	srv := setupAPI(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]bool
	decode(t, resp, &body)
	require.True(t, body["ok"])
}

func TestCustomerLifecycleOverHTTP(t *testing.T) {
	srv := setupAPI(t)

	// Create
	resp := postJSON(t, srv.URL+"/api/v1/customers", map[string]string{"name": "Acme"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var customer models.Customer
	decode(t, resp, &customer)
	require.Equal(t, "Acme", customer.Name)

	// Nested site under the customer
	resp = postJSON(t, srv.URL+"/api/v1/customers/"+customer.ID.String()+"/sites", map[string]interface{}{
		"name": "North Well", "latitude": 39.93, "longitude": -122.18,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var site models.Site
	decode(t, resp, &site)

	// Job under the site, default status
	resp = postJSON(t, srv.URL+"/api/v1/sites/"+site.ID.String()+"/jobs", map[string]string{
		"jobNumber": "ACM-1", "category": models.CategoryDrilling,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var job models.Job
	decode(t, resp, &job)
	require.Equal(t, models.DefaultJobStatus, job.Status)

	// Entry on the job's timeline
	resp = postJSON(t, srv.URL+"/api/v1/jobs/"+job.ID.String()+"/entries", map[string]string{
		"text": "Rig mobilized",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var entry models.Entry
	decode(t, resp, &entry)

	// Cascade delete from the top
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/customers/"+customer.ID.String(), nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	for _, url := range []string{
		srv.URL + "/api/v1/sites/" + site.ID.String(),
		srv.URL + "/api/v1/jobs/" + job.ID.String(),
		srv.URL + "/api/v1/entries/" + entry.ID.String(),
	} {
		resp, err := http.Get(url)
		require.NoError(t, err)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, url)
		resp.Body.Close()
	}
}

func TestCreateCustomerValidationOverHTTP(t *testing.T) {
	srv := setupAPI(t)

	resp := postJSON(t, srv.URL+"/api/v1/customers", map[string]string{"name": "  "})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestMapFeedSkipsUnmappedSites(t *testing.T) {
	srv := setupAPI(t)

	resp := postJSON(t, srv.URL+"/api/v1/customers", map[string]string{"name": "Acme"})
	var customer models.Customer
	decode(t, resp, &customer)

	postJSON(t, srv.URL+"/api/v1/customers/"+customer.ID.String()+"/sites", map[string]interface{}{
		"name": "North Well", "latitude": 39.93, "longitude": -122.18,
	}).Body.Close()
	postJSON(t, srv.URL+"/api/v1/customers/"+customer.ID.String()+"/sites", map[string]interface{}{
		"name": "Unmapped Yard",
	}).Body.Close()

	resp, err := http.Get(srv.URL + "/api/v1/map")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	decode(t, resp, &fc)
	require.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)
	require.Equal(t, "North Well", fc.Features[0].Properties["name"])
	require.Equal(t, "Acme", fc.Features[0].Properties["customer"])
}

func TestBackupWithoutSink(t *testing.T) {
	srv := setupAPI(t)

	resp := postJSON(t, srv.URL+"/api/v1/backup", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	require.Equal(t, false, body["uploaded"])
	require.Equal(t, "no archival sink configured", body["reason"])
}

func TestRegisterLoginAndEntryAttribution(t *testing.T) {
	srv := setupAPI(t)

	resp := postJSON(t, srv.URL+"/register", map[string]string{
		"name": "Dana Fields", "username": "dana", "password": "hunter2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/login", map[string]string{
		"username": "dana", "password": "hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	decode(t, resp, &login)
	require.NotEmpty(t, login.Token)

	resp = postJSON(t, srv.URL+"/api/v1/customers", map[string]string{"name": "Acme"})
	var customer models.Customer
	decode(t, resp, &customer)
	resp = postJSON(t, srv.URL+"/api/v1/customers/"+customer.ID.String()+"/sites", map[string]string{"name": "North Well"})
	var site models.Site
	decode(t, resp, &site)
	resp = postJSON(t, srv.URL+"/api/v1/sites/"+site.ID.String()+"/jobs", map[string]string{
		"jobNumber": "ACM-1", "category": models.CategoryAg,
	})
	var job models.Job
	decode(t, resp, &job)

	// Entry posted with the token carries the actor's name
	b, _ := json.Marshal(map[string]string{"text": "Flow test completed"})
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/jobs/"+job.ID.String()+"/entries", bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var entry models.Entry
	decode(t, resp, &entry)
	require.Equal(t, "Dana Fields", entry.CreatedBy)

	// Anonymous entry stays unattributed
	resp = postJSON(t, srv.URL+"/api/v1/jobs/"+job.ID.String()+"/entries", map[string]string{"text": "Anonymous note"})
	var anon models.Entry
	decode(t, resp, &anon)
	require.Empty(t, anon.CreatedBy)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	srv := setupAPI(t)

	postJSON(t, srv.URL+"/register", map[string]string{
		"name": "Dana Fields", "username": "dana", "password": "hunter2",
	}).Body.Close()

	resp := postJSON(t, srv.URL+"/login", map[string]string{
		"username": "dana", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
