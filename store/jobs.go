package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wellatlas/wellatlas/models"
)

// JobUpdate carries a partial job edit. Blank fields keep the existing
// values, matching the edit-form behaviour everywhere else.
type JobUpdate struct {
	JobNumber string
	Category  string
	Status    string
}

func (s *Store) CreateJob(siteID uuid.UUID, jobNumber, category, status string) (*models.Job, error) {
	jobNumber = strings.TrimSpace(jobNumber)
	if jobNumber == "" {
		return nil, missing("jobNumber")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, missing("category")
	}
	if siteID == uuid.Nil {
		return nil, missing("siteId")
	}
	if _, err := s.GetSite(siteID); err != nil {
		return nil, err
	}
	job := models.Job{JobNumber: jobNumber, Category: category, Status: strings.TrimSpace(status), SiteID: siteID}
	if err := s.db.Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *Store) GetJob(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := s.db.First(&job, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &job, nil
}

func (s *Store) ListJobsBySite(siteID uuid.UUID) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.Where("site_id = ?", siteID).Order("job_number ASC, id ASC").Find(&jobs).Error
	return jobs, err
}

// ListJobsByCategory filters on one of the canonical categories.
func (s *Store) ListJobsByCategory(category string) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.Where("category = ?", category).Order("job_number ASC, id ASC").Find(&jobs).Error
	return jobs, err
}

// UpdateJob applies a partial edit and stamps updated_at. Mutating a job's
// entries goes through the entry operations and never touches this stamp.
func (s *Store) UpdateJob(id uuid.UUID, upd JobUpdate) (*models.Job, error) {
	job, err := s.GetJob(id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(upd.JobNumber); v != "" {
		job.JobNumber = v
	}
	if v := strings.TrimSpace(upd.Category); v != "" {
		job.Category = v
	}
	if v := strings.TrimSpace(upd.Status); v != "" {
		job.Status = v
	}
	job.UpdatedAt = time.Now().UTC()
	if err := s.db.Save(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// DeleteJob removes the job together with its entries atomically.
func (s *Store) DeleteJob(id uuid.UUID) error {
	return s.WithTx(func(tx *Store) error {
		if _, err := tx.GetJob(id); err != nil {
			return err
		}
		if err := tx.db.Where("job_id = ?", id).Delete(&models.Entry{}).Error; err != nil {
			return &CascadeError{Op: "delete job entries", Err: err}
		}
		if err := tx.db.Delete(&models.Job{}, "id = ?", id).Error; err != nil {
			return &CascadeError{Op: "delete job", Err: err}
		}
		return nil
	})
}
