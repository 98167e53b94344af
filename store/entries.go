package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wellatlas/wellatlas/models"
)

// NewEntry carries the caller-supplied parts of a timeline entry.
// CreatedBy comes from the auth layer when present and stays empty
// otherwise; When defaults to the time of creation.
type NewEntry struct {
	Text           string
	When           *time.Time
	CreatedBy      string
	AttachmentName string
}

func (s *Store) CreateEntry(jobID uuid.UUID, in NewEntry) (*models.Entry, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, missing("text")
	}
	if jobID == uuid.Nil {
		return nil, missing("jobId")
	}
	if _, err := s.GetJob(jobID); err != nil {
		return nil, err
	}
	e := models.Entry{
		Text:           text,
		JobID:          jobID,
		CreatedBy:      strings.TrimSpace(in.CreatedBy),
		AttachmentName: strings.TrimSpace(in.AttachmentName),
	}
	if in.When != nil {
		e.When = models.JSONTime(in.When.UTC())
	}
	if err := s.db.Create(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) GetEntry(id uuid.UUID) (*models.Entry, error) {
	var e models.Entry
	if err := s.db.First(&e, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &e, nil
}

// ListEntriesByJob returns a job's timeline in chronological order.
func (s *Store) ListEntriesByJob(jobID uuid.UUID) ([]models.Entry, error) {
	var entries []models.Entry
	err := s.db.Where("job_id = ?", jobID).Order("when_at ASC, id ASC").Find(&entries).Error
	return entries, err
}

// UpdateEntry edits the text of an entry. Blank keeps the existing text.
func (s *Store) UpdateEntry(id uuid.UUID, text string) (*models.Entry, error) {
	e, err := s.GetEntry(id)
	if err != nil {
		return nil, err
	}
	if text = strings.TrimSpace(text); text != "" {
		e.Text = text
	}
	if err := s.db.Save(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) DeleteEntry(id uuid.UUID) error {
	res := s.db.Delete(&models.Entry{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
