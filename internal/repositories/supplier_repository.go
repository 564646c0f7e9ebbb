package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stocktrade_backend/internal/models"

	"github.com/lib/pq"
)

// SupplierRepository defines the interface for supplier-related database operations.
type SupplierRepository interface {
	Create(executor SQLExecutor, supplier *models.Supplier) (int64, error)
	GetByID(id int64) (*models.Supplier, error)
	GetAll(page, pageSize int) ([]models.Supplier, int, error)
	ExistsByName(name string) (bool, error)
	Update(executor SQLExecutor, supplier *models.Supplier) error
	Delete(executor SQLExecutor, id int64) error
}

type supplierRepository struct {
	db *sql.DB
}

// NewSupplierRepository creates a new instance of SupplierRepository.
func NewSupplierRepository(db *sql.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(executor SQLExecutor, supplier *models.Supplier) (int64, error) {
	query := `INSERT INTO supplier (name, address, email, phone, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	currentTime := time.Now()
	err := executor.QueryRow(query, supplier.Name, supplier.Address, supplier.Email, supplier.Phone, currentTime, currentTime).Scan(&supplier.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: supplier name '%s' already exists (constraint: %s)", ErrDuplicateKey, supplier.Name, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating supplier: %v", ErrDatabaseError, err)
	}
	return supplier.ID, nil
}

func (r *supplierRepository) GetByID(id int64) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	query := `SELECT id, name, address, email, phone, created_at, updated_at FROM supplier WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&supplier.ID, &supplier.Name, &supplier.Address, &supplier.Email, &supplier.Phone, &supplier.CreatedAt, &supplier.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting supplier by ID %d: %v", ErrDatabaseError, id, err)
	}
	return supplier, nil
}

func (r *supplierRepository) GetAll(page, pageSize int) ([]models.Supplier, int, error) {
	suppliers := []models.Supplier{}
	totalCount := 0
	query := `SELECT id, name, address, email, phone, created_at, updated_at, COUNT(*) OVER() AS total_count
	          FROM supplier
	          ORDER BY name
	          LIMIT $1 OFFSET $2`
	offset := (page - 1) * pageSize
	rows, err := r.db.Query(query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting suppliers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var supplier models.Supplier
		if err := rows.Scan(&supplier.ID, &supplier.Name, &supplier.Address, &supplier.Email, &supplier.Phone, &supplier.CreatedAt, &supplier.UpdatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning supplier: %v", ErrDatabaseError, err)
		}
		suppliers = append(suppliers, supplier)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating suppliers: %v", ErrDatabaseError, err)
	}
	return suppliers, totalCount, nil
}

func (r *supplierRepository) ExistsByName(name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM supplier WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: checking supplier name '%s': %v", ErrDatabaseError, name, err)
	}
	return exists, nil
}

func (r *supplierRepository) Update(executor SQLExecutor, supplier *models.Supplier) error {
	query := `UPDATE supplier SET name = $1, address = $2, email = $3, phone = $4, updated_at = $5 WHERE id = $6`
	result, err := executor.Exec(query, supplier.Name, supplier.Address, supplier.Email, supplier.Phone, time.Now(), supplier.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: supplier name '%s' already exists (constraint: %s)", ErrDuplicateKey, supplier.Name, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating supplier ID %d: %v", ErrDatabaseError, supplier.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *supplierRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM supplier WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting supplier ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
