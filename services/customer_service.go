// File: /services/customer_service.go
package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"triptracker-api/database"
	"triptracker-api/models"
	"triptracker-api/repositories"
)

type CustomerService struct {
	customers *repositories.Store[models.Customer]
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{
		customers: repositories.NewStore[models.Customer](db, database.CustomersStore),
	}
}

// List returns all customers sorted by name.
func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.customers.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].Name < customers[j].Name
	})
	return customers, nil
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	return s.customers.GetByKey(ctx, id)
}

// FindByName returns customers matching the name index. Names are unique by
// convention only, so more than one match is possible.
func (s *CustomerService) FindByName(ctx context.Context, name string) ([]models.Customer, error) {
	return s.customers.GetByIndex(ctx, "name", name)
}

func (s *CustomerService) Create(ctx context.Context, customer *models.Customer) error {
	if err := normalizeCustomer(customer); err != nil {
		return err
	}
	return s.customers.Add(ctx, customer)
}

func (s *CustomerService) Update(ctx context.Context, customer *models.Customer) error {
	if customer.ID == 0 {
		return errors.New("customer id is required")
	}
	if err := normalizeCustomer(customer); err != nil {
		return err
	}
	if _, err := s.customers.GetByKey(ctx, customer.ID); err != nil {
		return err
	}
	return s.customers.Put(ctx, customer)
}

// Delete removes the customer. Trips and reminders referencing it by name are
// left alone; there is no cascade.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.customers.Delete(ctx, id)
}

func normalizeCustomer(customer *models.Customer) error {
	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return errors.New("customer name is required")
	}
	if customer.Contacts == nil {
		customer.Contacts = models.ContactList{}
	}
	return nil
}
