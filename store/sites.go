package store

import (
	"strings"

	"github.com/google/uuid"

	"github.com/wellatlas/wellatlas/models"
)

// SiteUpdate carries a partial site edit. Nil/blank fields keep the
// existing values.
type SiteUpdate struct {
	Name      string
	Latitude  *float64
	Longitude *float64
}

func (s *Store) CreateSite(customerID uuid.UUID, name string, lat, lng *float64) (*models.Site, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, missing("name")
	}
	if customerID == uuid.Nil {
		return nil, missing("customerId")
	}
	if _, err := s.GetCustomer(customerID); err != nil {
		return nil, err
	}
	site := models.Site{Name: name, CustomerID: customerID, Latitude: lat, Longitude: lng}
	if err := s.db.Create(&site).Error; err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *Store) GetSite(id uuid.UUID) (*models.Site, error) {
	var site models.Site
	if err := s.db.First(&site, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &site, nil
}

// ListSites returns every site ordered by name. Used by the map feed and
// the exporter.
func (s *Store) ListSites() ([]models.Site, error) {
	var sites []models.Site
	err := s.db.Order("name ASC, id ASC").Find(&sites).Error
	return sites, err
}

func (s *Store) ListSitesByCustomer(customerID uuid.UUID) ([]models.Site, error) {
	var sites []models.Site
	err := s.db.Where("customer_id = ?", customerID).Order("name ASC, id ASC").Find(&sites).Error
	return sites, err
}

func (s *Store) UpdateSite(id uuid.UUID, upd SiteUpdate) (*models.Site, error) {
	site, err := s.GetSite(id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(upd.Name); name != "" {
		site.Name = name
	}
	if upd.Latitude != nil {
		site.Latitude = upd.Latitude
	}
	if upd.Longitude != nil {
		site.Longitude = upd.Longitude
	}
	if err := s.db.Save(site).Error; err != nil {
		return nil, err
	}
	return site, nil
}

// DeleteSite removes the site with its jobs and their entries atomically.
func (s *Store) DeleteSite(id uuid.UUID) error {
	return s.WithTx(func(tx *Store) error {
		if _, err := tx.GetSite(id); err != nil {
			return err
		}
		jobIDs := tx.db.Model(&models.Job{}).Select("id").Where("site_id = ?", id)
		if err := tx.db.Where("job_id IN (?)", jobIDs).Delete(&models.Entry{}).Error; err != nil {
			return &CascadeError{Op: "delete site entries", Err: err}
		}
		if err := tx.db.Where("site_id = ?", id).Delete(&models.Job{}).Error; err != nil {
			return &CascadeError{Op: "delete site jobs", Err: err}
		}
		if err := tx.db.Delete(&models.Site{}, "id = ?", id).Error; err != nil {
			return &CascadeError{Op: "delete site", Err: err}
		}
		return nil
	})
}
