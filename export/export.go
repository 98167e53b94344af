// Package export walks the whole entity tree into a self-contained backup
// document. Exporting an unchanged store twice yields byte-identical
// output: listings are sorted, struct field order is fixed, timestamps are
// RFC3339 UTC, and absent values render as JSON null.
package export

import (
	"encoding/json"
	"time"

	"github.com/wellatlas/wellatlas/store"
)

type Document struct {
	Schema    string           `json:"schema"`
	Customers []CustomerRecord `json:"customers"`
}

type CustomerRecord struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Sites []SiteRecord `json:"sites"`
}

type SiteRecord struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Latitude  *float64    `json:"latitude"`
	Longitude *float64    `json:"longitude"`
	Jobs      []JobRecord `json:"jobs"`
}

type JobRecord struct {
	ID        string        `json:"id"`
	JobNumber string        `json:"job_number"`
	Category  string        `json:"category"`
	Status    string        `json:"status"`
	CreatedAt *string       `json:"created_at"`
	UpdatedAt *string       `json:"updated_at"`
	Entries   []EntryRecord `json:"entries"`
}

type EntryRecord struct {
	ID             string  `json:"id"`
	Text           string  `json:"text"`
	When           *string `json:"when"`
	CreatedBy      string  `json:"created_by"`
	AttachmentName string  `json:"attachment_name"`
}

// SchemaVersion identifies the document layout for future reimports.
const SchemaVersion = "wellatlas/v1"

// Build assembles the backup document from the store.
func Build(st *store.Store) (*Document, error) {
	doc := &Document{Schema: SchemaVersion, Customers: []CustomerRecord{}}

	customers, err := st.ListCustomers()
	if err != nil {
		return nil, err
	}
	for _, c := range customers {
		rec := CustomerRecord{ID: c.ID.String(), Name: c.Name, Sites: []SiteRecord{}}
		sites, err := st.ListSitesByCustomer(c.ID)
		if err != nil {
			return nil, err
		}
		for _, s := range sites {
			srec := SiteRecord{
				ID:        s.ID.String(),
				Name:      s.Name,
				Latitude:  s.Latitude,
				Longitude: s.Longitude,
				Jobs:      []JobRecord{},
			}
			jobs, err := st.ListJobsBySite(s.ID)
			if err != nil {
				return nil, err
			}
			for _, j := range jobs {
				jrec := JobRecord{
					ID:        j.ID.String(),
					JobNumber: j.JobNumber,
					Category:  j.Category,
					Status:    j.Status,
					CreatedAt: fmtTime(j.CreatedAt),
					UpdatedAt: fmtTime(j.UpdatedAt),
					Entries:   []EntryRecord{},
				}
				entries, err := st.ListEntriesByJob(j.ID)
				if err != nil {
					return nil, err
				}
				for _, e := range entries {
					jrec.Entries = append(jrec.Entries, EntryRecord{
						ID:             e.ID.String(),
						Text:           e.Text,
						When:           fmtTime(time.Time(e.When)),
						CreatedBy:      e.CreatedBy,
						AttachmentName: e.AttachmentName,
					})
				}
				srec.Jobs = append(srec.Jobs, jrec)
			}
			rec.Sites = append(rec.Sites, srec)
		}
		doc.Customers = append(doc.Customers, rec)
	}
	return doc, nil
}

// Encode renders the document as indented JSON with a trailing newline.
func Encode(doc *Document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// fmtTime renders a timestamp as RFC3339 UTC, or nil for the zero value so
// the document carries an explicit null instead of a fake date.
func fmtTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
