package seed

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wellatlas/wellatlas/models"
	"github.com/wellatlas/wellatlas/store"
)

func testStore(t *testing.T) (*store.Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Site{}, &models.Job{}, &models.Entry{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return store.New(db), db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func TestRunIfEmptySeedsOnce(t *testing.T) {
	s, db := testStore(t)
	log := zap.NewNop()
	opts := DefaultOptions()

	if err := RunIfEmpty(s, opts, log); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	customers := count(t, db, &models.Customer{})
	sites := count(t, db, &models.Site{})
	jobs := count(t, db, &models.Job{})
	entries := count(t, db, &models.Entry{})

	if customers != 5 {
		t.Errorf("customers = %d, want 5", customers)
	}
	if sites != 25 {
		t.Errorf("sites = %d, want 25", sites)
	}
	if jobs != 100 {
		t.Errorf("jobs = %d, want 100", jobs)
	}
	if entries != 200 {
		t.Errorf("entries = %d, want 200", entries)
	}

	// Seeding an already-populated store is a no-op
	if err := RunIfEmpty(s, opts, log); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if n := count(t, db, &models.Customer{}); n != customers {
		t.Errorf("customers after reseed = %d, want %d", n, customers)
	}
	if n := count(t, db, &models.Job{}); n != jobs {
		t.Errorf("jobs after reseed = %d, want %d", n, jobs)
	}
}

func TestSeedRollsBackOnFailure(t *testing.T) {
	s, db := testStore(t)

	// Customers and sites are already inserted when the first job
	// insert errors; the transaction must take them all back out.
	failJobs := errors.New("storage failure")
	err := db.Callback().Create().Before("gorm:create").Register("fail_job_insert", func(tx *gorm.DB) {
		if tx.Statement.Table == "jobs" {
			tx.AddError(failJobs)
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	err = RunIfEmpty(s, DefaultOptions(), zap.NewNop())
	if err == nil {
		t.Fatal("expected seed to fail")
	}
	var cerr *store.CascadeError
	if !errors.As(err, &cerr) {
		t.Errorf("expected CascadeError, got %v", err)
	}

	if err := db.Callback().Create().Remove("fail_job_insert"); err != nil {
		t.Fatal(err)
	}
	for name, model := range map[string]interface{}{
		"customers": &models.Customer{},
		"sites":     &models.Site{},
		"jobs":      &models.Job{},
		"entries":   &models.Entry{},
	} {
		if n := count(t, db, model); n != 0 {
			t.Errorf("%s = %d after rolled-back seed, want 0", name, n)
		}
	}
}

func TestSeedDeterministic(t *testing.T) {
	log := zap.NewNop()
	opts := DefaultOptions()

	type siteKey struct {
		name string
		lat  float64
		lng  float64
	}
	snapshot := func(s *store.Store) ([]siteKey, []string) {
		sites, err := s.ListSites()
		if err != nil {
			t.Fatal(err)
		}
		var keys []siteKey
		var jobNumbers []string
		for _, site := range sites {
			keys = append(keys, siteKey{site.Name, *site.Latitude, *site.Longitude})
			jobs, err := s.ListJobsBySite(site.ID)
			if err != nil {
				t.Fatal(err)
			}
			for _, j := range jobs {
				jobNumbers = append(jobNumbers, j.JobNumber)
			}
		}
		return keys, jobNumbers
	}

	s1, _ := testStore(t)
	if err := Run(s1, opts, log); err != nil {
		t.Fatal(err)
	}
	s2, _ := testStore(t)
	if err := Run(s2, opts, log); err != nil {
		t.Fatal(err)
	}

	keys1, jobs1 := snapshot(s1)
	keys2, jobs2 := snapshot(s2)

	if len(keys1) != len(keys2) {
		t.Fatalf("site counts differ: %d vs %d", len(keys1), len(keys2))
	}
	for i := range keys1 {
		if keys1[i] != keys2[i] {
			t.Errorf("site %d differs: %+v vs %+v", i, keys1[i], keys2[i])
		}
	}
	for i := range jobs1 {
		if jobs1[i] != jobs2[i] {
			t.Errorf("job number %d differs: %s vs %s", i, jobs1[i], jobs2[i])
		}
	}
}

func TestSeedJitterBounds(t *testing.T) {
	s, _ := testStore(t)
	opts := Options{
		Customers:        []string{"Acme Water"},
		Towns:            []Town{{"Corning", 39.9271, -122.1792}},
		Categories:       models.Categories(),
		SitesPerCustomer: 1,
		Spread:           0.06,
		Seed:             123,
	}
	if err := Run(s, opts, zap.NewNop()); err != nil {
		t.Fatal(err)
	}

	sites, err := s.ListSites()
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 1 {
		t.Fatalf("len(sites) = %d, want 1", len(sites))
	}
	lat, lng := *sites[0].Latitude, *sites[0].Longitude
	if lat < 39.8971 || lat > 39.9571 {
		t.Errorf("latitude %v outside anchor±spread/2 [39.8971, 39.9571]", lat)
	}
	if lng < -122.2092 || lng > -122.1492 {
		t.Errorf("longitude %v outside anchor±spread/2 [-122.2092, -122.1492]", lng)
	}
}

func TestSeedJobNumberScheme(t *testing.T) {
	s, _ := testStore(t)
	if err := Run(s, DefaultOptions(), zap.NewNop()); err != nil {
		t.Fatal(err)
	}

	sites, err := s.ListSites()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, site := range sites {
		if site.Name != "Corning Site 1" {
			continue
		}
		found = true
		jobs, err := s.ListJobsBySite(site.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(jobs) != 4 {
			t.Fatalf("len(jobs) = %d, want one per category", len(jobs))
		}
		for _, j := range jobs {
			if !strings.HasPrefix(j.JobNumber, "COR-1-") {
				t.Errorf("job number %q does not follow TOWN-site-idx scheme", j.JobNumber)
			}
		}
	}
	if !found {
		t.Fatal("expected a site named 'Corning Site 1'")
	}
}

func TestSeedAttachesCategoryNotes(t *testing.T) {
	s, _ := testStore(t)
	if err := Run(s, DefaultOptions(), zap.NewNop()); err != nil {
		t.Fatal(err)
	}

	sites, _ := s.ListSites()
	jobs, err := s.ListJobsBySite(sites[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, j := range jobs {
		entries, err := s.ListEntriesByJob(j.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != len(demoNotes[j.Category]) {
			t.Errorf("job %s (%s) has %d entries, want %d", j.JobNumber, j.Category, len(entries), len(demoNotes[j.Category]))
		}
	}
}
