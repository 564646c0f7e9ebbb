package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stocktrade_backend/internal/models"

	"github.com/lib/pq"
)

// CustomerRepository defines the interface for customer-related database operations.
type CustomerRepository interface {
	Create(executor SQLExecutor, customer *models.Customer) (int64, error)
	GetByID(id int64) (*models.Customer, error)
	GetAll(page, pageSize int) ([]models.Customer, int, error)
	ExistsByName(name string) (bool, error)
	Update(executor SQLExecutor, customer *models.Customer) error
	Delete(executor SQLExecutor, id int64) error
}

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository.
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(executor SQLExecutor, customer *models.Customer) (int64, error) {
	query := `INSERT INTO customer (name, address, email, phone, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	currentTime := time.Now()
	err := executor.QueryRow(query, customer.Name, customer.Address, customer.Email, customer.Phone, currentTime, currentTime).Scan(&customer.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: customer name '%s' already exists (constraint: %s)", ErrDuplicateKey, customer.Name, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating customer: %v", ErrDatabaseError, err)
	}
	return customer.ID, nil
}

func (r *customerRepository) GetByID(id int64) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `SELECT id, name, address, email, phone, created_at, updated_at FROM customer WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&customer.ID, &customer.Name, &customer.Address, &customer.Email, &customer.Phone, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting customer by ID %d: %v", ErrDatabaseError, id, err)
	}
	return customer, nil
}

func (r *customerRepository) GetAll(page, pageSize int) ([]models.Customer, int, error) {
	customers := []models.Customer{}
	totalCount := 0
	query := `SELECT id, name, address, email, phone, created_at, updated_at, COUNT(*) OVER() AS total_count
	          FROM customer
	          ORDER BY name
	          LIMIT $1 OFFSET $2`
	offset := (page - 1) * pageSize
	rows, err := r.db.Query(query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting customers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var customer models.Customer
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Address, &customer.Email, &customer.Phone, &customer.CreatedAt, &customer.UpdatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning customer: %v", ErrDatabaseError, err)
		}
		customers = append(customers, customer)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating customers: %v", ErrDatabaseError, err)
	}
	return customers, totalCount, nil
}

func (r *customerRepository) ExistsByName(name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM customer WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: checking customer name '%s': %v", ErrDatabaseError, name, err)
	}
	return exists, nil
}

func (r *customerRepository) Update(executor SQLExecutor, customer *models.Customer) error {
	query := `UPDATE customer SET name = $1, address = $2, email = $3, phone = $4, updated_at = $5 WHERE id = $6`
	result, err := executor.Exec(query, customer.Name, customer.Address, customer.Email, customer.Phone, time.Now(), customer.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: customer name '%s' already exists (constraint: %s)", ErrDuplicateKey, customer.Name, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating customer ID %d: %v", ErrDatabaseError, customer.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM customer WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting customer ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
