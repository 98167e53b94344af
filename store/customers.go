package store

import (
	"strings"

	"github.com/google/uuid"

	"github.com/wellatlas/wellatlas/models"
)

func (s *Store) CreateCustomer(name string) (*models.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, missing("name")
	}
	c := models.Customer{Name: name}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) GetCustomer(id uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.First(&c, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &c, nil
}

// ListCustomers returns all customers ordered by name, id as tiebreak so
// the ordering is stable for export.
func (s *Store) ListCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.Order("name ASC, id ASC").Find(&customers).Error
	return customers, err
}

func (s *Store) CountCustomers() (int64, error) {
	var n int64
	err := s.db.Model(&models.Customer{}).Count(&n).Error
	return n, err
}

// UpdateCustomer renames a customer. A blank name keeps the existing one.
func (s *Store) UpdateCustomer(id uuid.UUID, name string) (*models.Customer, error) {
	c, err := s.GetCustomer(id)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		c.Name = name
	}
	if err := s.db.Save(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCustomer removes the customer and its whole subtree (sites, jobs,
// entries) in one transaction. Post-order: leaves first, then up the tree.
func (s *Store) DeleteCustomer(id uuid.UUID) error {
	return s.WithTx(func(tx *Store) error {
		if _, err := tx.GetCustomer(id); err != nil {
			return err
		}
		siteIDs := tx.db.Model(&models.Site{}).Select("id").Where("customer_id = ?", id)
		jobIDs := tx.db.Model(&models.Job{}).Select("id").Where("site_id IN (?)", siteIDs)
		if err := tx.db.Where("job_id IN (?)", jobIDs).Delete(&models.Entry{}).Error; err != nil {
			return &CascadeError{Op: "delete customer entries", Err: err}
		}
		if err := tx.db.Where("site_id IN (?)", siteIDs).Delete(&models.Job{}).Error; err != nil {
			return &CascadeError{Op: "delete customer jobs", Err: err}
		}
		if err := tx.db.Where("customer_id = ?", id).Delete(&models.Site{}).Error; err != nil {
			return &CascadeError{Op: "delete customer sites", Err: err}
		}
		if err := tx.db.Delete(&models.Customer{}, "id = ?", id).Error; err != nil {
			return &CascadeError{Op: "delete customer", Err: err}
		}
		return nil
	})
}
