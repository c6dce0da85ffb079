package ordering

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/skch/foodcourt/internal/models"
)

// CreateCustomer registers a customer directly; the phone number is the
// identity key, so a duplicate is a conflict.
func (s *Service) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if customer.Phone == "" {
		return fmt.Errorf("%w: phone required", ErrValidation)
	}
	if customer.Name == "" {
		customer.Name = guestName
	}

	db := s.DB.WithContext(ctx)
	var existing models.Customer
	err := db.Where("phone = ?", customer.Phone).First(&existing).Error
	if err == nil {
		return fmt.Errorf("%w: phone %s already registered", ErrConflict, customer.Phone)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(customer).Error
}

// ListCustomers returns customers newest first.
func (s *Service) ListCustomers(ctx context.Context, offset, limit int) (int64, []models.Customer, error) {
	db := s.DB.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Customer{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var customers []models.Customer
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&customers).Error; err != nil {
		return 0, nil, err
	}
	return total, customers, nil
}
