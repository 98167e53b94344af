// Package seed populates an empty store with the deterministic demo
// dataset used for first-run bootstrapping: 5 customers, 5 sites each
// clustered around north-valley town anchors, one job per category per
// site, and a few category-specific timeline entries.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wellatlas/wellatlas/models"
	"github.com/wellatlas/wellatlas/store"
)

// Town anchors a cluster of demo sites on the map.
type Town struct {
	Name string
	Lat  float64
	Lng  float64
}

// Options controls the generated dataset. The same Options always produce
// the same names, coordinates and job numbers.
type Options struct {
	Customers        []string
	Towns            []Town
	Categories       []string
	SitesPerCustomer int
	// Spread bounds the pseudo-random jitter around a town anchor, in
	// decimal degrees. Small enough that markers cluster without overlapping.
	Spread float64
	Seed   int64
}

// DefaultOptions matches the shipped demo dataset.
func DefaultOptions() Options {
	return Options{
		Customers: []string{
			"Washington Co", "Jefferson Water", "Lincoln Works", "Grant Farms", "Roosevelt Drilling",
		},
		Towns: []Town{
			{"Corning", 39.9271, -122.1792},
			{"Orland", 39.7471, -122.1969},
			{"Chico", 39.7285, -121.8375},
			{"Cottonwood", 40.3863, -122.2803},
			{"Durham", 39.6468, -121.8005},
		},
		Categories:       models.Categories(),
		SitesPerCustomer: 5,
		Spread:           0.06,
		Seed:             123,
	}
}

// demoNotes are the per-category timeline entries attached to each demo
// job, with their age in days relative to seeding time.
var demoNotes = map[string][]struct {
	Text    string
	DaysAgo int
}{
	models.CategoryDomestic: {
		{"Pump inspection scheduled", 9},
		{"Pressure tank checked, holding at 50 psi", 3},
	},
	models.CategoryAg: {
		{"Flow test completed at 180 gpm", 12},
		{"Irrigation line flushed", 4},
	},
	models.CategoryDrilling: {
		{"Rig mobilized", 14},
		{"Drilled to 120 ft, hit first water", 7},
	},
	models.CategoryElectrical: {
		{"Control panel wired", 6},
		{"Motor megger test passed", 1},
	},
}

var bootstrapOnce sync.Once

// IfEmpty seeds the demo dataset on first boot. The sync.Once gate keeps
// concurrent first requests from racing the empty check; the check itself
// runs inside the same transaction as the inserts.
func IfEmpty(st *store.Store, logger *zap.Logger) error {
	var err error
	bootstrapOnce.Do(func() {
		err = RunIfEmpty(st, DefaultOptions(), logger)
	})
	return err
}

// RunIfEmpty seeds when no customer exists yet and is a no-op otherwise.
func RunIfEmpty(st *store.Store, opts Options, logger *zap.Logger) error {
	return st.WithTx(func(tx *store.Store) error {
		n, err := tx.CountCustomers()
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Debug("demo data already present, skipping seed", zap.Int64("customers", n))
			return nil
		}
		return run(tx, opts, logger)
	})
}

// Run seeds unconditionally inside one transaction. Production boot goes
// through IfEmpty; Run exists for fixtures that need a populated store.
func Run(st *store.Store, opts Options, logger *zap.Logger) error {
	return st.WithTx(func(tx *store.Store) error {
		return run(tx, opts, logger)
	})
}

func run(tx *store.Store, opts Options, logger *zap.Logger) error {
	r := rand.New(rand.NewSource(opts.Seed))
	now := time.Now().UTC()

	for i, name := range opts.Customers {
		customer, err := tx.CreateCustomer(name)
		if err != nil {
			return &store.CascadeError{Op: "seed customer", Err: err}
		}
		for sIdx := 0; sIdx < opts.SitesPerCustomer; sIdx++ {
			town := opts.Towns[(i+sIdx)%len(opts.Towns)]
			lat := town.Lat + (r.Float64()-0.5)*opts.Spread
			lng := town.Lng + (r.Float64()-0.5)*opts.Spread
			site, err := tx.CreateSite(customer.ID, fmt.Sprintf("%s Site %d", town.Name, sIdx+1), &lat, &lng)
			if err != nil {
				return &store.CascadeError{Op: "seed site", Err: err}
			}
			for jIdx, category := range opts.Categories {
				number := jobNumber(town.Name, sIdx+1, jIdx+1)
				job, err := tx.CreateJob(site.ID, number, category, "")
				if err != nil {
					return &store.CascadeError{Op: "seed job", Err: err}
				}
				for _, note := range demoNotes[category] {
					when := now.AddDate(0, 0, -note.DaysAgo)
					if _, err := tx.CreateEntry(job.ID, store.NewEntry{Text: note.Text, When: &when}); err != nil {
						return &store.CascadeError{Op: "seed entry", Err: err}
					}
				}
			}
		}
	}

	logger.Info("seeded demo data",
		zap.Int("customers", len(opts.Customers)),
		zap.Int("sitesPerCustomer", opts.SitesPerCustomer),
		zap.Int("categories", len(opts.Categories)),
	)
	return nil
}

// jobNumber builds the short deterministic code shown on job cards, e.g.
// "COR-1-3" for the third job at the first Corning site.
func jobNumber(town string, siteIdx, jobIdx int) string {
	prefix := town
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s-%d-%d", strings.ToUpper(prefix), siteIdx, jobIdx)
}
