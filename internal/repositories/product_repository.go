package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"stocktrade_backend/internal/models"

	"github.com/lib/pq"
)

// ProductRepository defines the interface for product-related database operations.
// GetByName and IncrementStock take a SQLExecutor because the purchase intake
// resolves and mutates products inside a single transaction; the reference
// checks take one so delete guards can run their pre-condition in the same
// transaction as the delete.
type ProductRepository interface {
	Create(executor SQLExecutor, product *models.Product) (int64, error)
	GetByID(id int64) (*models.Product, error) // Joins category and supplier
	GetByName(executor SQLExecutor, name string) (*models.Product, error)
	GetAll(categoryID *int64, page, pageSize int) ([]models.Product, int, error)
	ExistsByName(name string) (bool, error)
	ExistsByCategoryID(executor SQLExecutor, categoryID int64) (bool, error)
	ExistsBySupplierID(executor SQLExecutor, supplierID int64) (bool, error)
	IncrementStock(executor SQLExecutor, productID int64, delta int) (int, error) // Returns new stock level
	Update(executor SQLExecutor, product *models.Product) error
	Delete(executor SQLExecutor, id int64) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(executor SQLExecutor, product *models.Product) (int64, error) {
	query := `INSERT INTO product (name, description, price, stock_quantity, category_id, supplier_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	currentTime := time.Now()
	err := executor.QueryRow(query,
		product.Name, product.Description, product.Price, product.StockQuantity,
		product.CategoryID, product.SupplierID, currentTime, currentTime,
	).Scan(&product.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: product name '%s' already exists (constraint: %s)", ErrDuplicateKey, product.Name, pqErr.Constraint)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return 0, fmt.Errorf("%w: creating product (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
			}
		}
		return 0, fmt.Errorf("%w: creating product: %v", ErrDatabaseError, err)
	}
	return product.ID, nil
}

func (r *productRepository) GetByID(id int64) (*models.Product, error) {
	product := &models.Product{}
	category := &models.Category{}
	supplier := &models.Supplier{}
	query := `SELECT p.id, p.name, p.description, p.price, p.stock_quantity, p.category_id, p.supplier_id,
	                 p.created_at, p.updated_at,
	                 c.name AS category_name, s.name AS supplier_name
	          FROM product p
	          JOIN category c ON p.category_id = c.id
	          JOIN supplier s ON p.supplier_id = s.id
	          WHERE p.id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&product.ID, &product.Name, &product.Description, &product.Price, &product.StockQuantity,
		&product.CategoryID, &product.SupplierID, &product.CreatedAt, &product.UpdatedAt,
		&category.Name, &supplier.Name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %d: %v", ErrDatabaseError, id, err)
	}
	category.ID = product.CategoryID
	supplier.ID = product.SupplierID
	product.Category = category
	product.Supplier = supplier
	return product, nil
}

func (r *productRepository) GetByName(executor SQLExecutor, name string) (*models.Product, error) {
	product := &models.Product{}
	var categoryName sql.NullString
	query := `SELECT p.id, p.name, p.description, p.price, p.stock_quantity, p.category_id, p.supplier_id,
	                 p.created_at, p.updated_at, c.name AS category_name
	          FROM product p
	          LEFT JOIN category c ON p.category_id = c.id
	          WHERE p.name = $1`
	err := executor.QueryRow(query, name).Scan(
		&product.ID, &product.Name, &product.Description, &product.Price, &product.StockQuantity,
		&product.CategoryID, &product.SupplierID, &product.CreatedAt, &product.UpdatedAt,
		&categoryName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by name '%s': %v", ErrDatabaseError, name, err)
	}
	if categoryName.Valid {
		product.Category = &models.Category{ID: product.CategoryID, Name: categoryName.String}
	}
	return product, nil
}

func (r *productRepository) GetAll(categoryID *int64, page, pageSize int) ([]models.Product, int, error) {
	products := []models.Product{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT p.id, p.name, p.description, p.price, p.stock_quantity, p.category_id, p.supplier_id,
	       p.created_at, p.updated_at,
	       c.name AS category_name, s.name AS supplier_name,
	       COUNT(*) OVER() AS total_count
	  FROM product p
	  JOIN category c ON p.category_id = c.id
	  JOIN supplier s ON p.supplier_id = s.id`)

	var args []interface{}
	argCount := 1
	if categoryID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE p.category_id = $%d", argCount))
		args = append(args, *categoryID)
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY p.name")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var product models.Product
		var category models.Category
		var supplier models.Supplier
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.Price, &product.StockQuantity,
			&product.CategoryID, &product.SupplierID, &product.CreatedAt, &product.UpdatedAt,
			&category.Name, &supplier.Name, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		category.ID = product.CategoryID
		supplier.ID = product.SupplierID
		product.Category = &category
		product.Supplier = &supplier
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating products: %v", ErrDatabaseError, err)
	}
	return products, totalCount, nil
}

func (r *productRepository) ExistsByName(name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM product WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: checking product name '%s': %v", ErrDatabaseError, name, err)
	}
	return exists, nil
}

func (r *productRepository) ExistsByCategoryID(executor SQLExecutor, categoryID int64) (bool, error) {
	var exists bool
	err := executor.QueryRow(`SELECT EXISTS(SELECT 1 FROM product WHERE category_id = $1)`, categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: checking products for category ID %d: %v", ErrDatabaseError, categoryID, err)
	}
	return exists, nil
}

func (r *productRepository) ExistsBySupplierID(executor SQLExecutor, supplierID int64) (bool, error) {
	var exists bool
	err := executor.QueryRow(`SELECT EXISTS(SELECT 1 FROM product WHERE supplier_id = $1)`, supplierID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: checking products for supplier ID %d: %v", ErrDatabaseError, supplierID, err)
	}
	return exists, nil
}

// IncrementStock applies the delta as a single UPDATE so concurrent intake
// transactions serialize on the product row instead of racing a
// read-modify-write.
func (r *productRepository) IncrementStock(executor SQLExecutor, productID int64, delta int) (int, error) {
	var newStock int
	query := `UPDATE product
	          SET stock_quantity = stock_quantity + $1, updated_at = $2
	          WHERE id = $3
	          RETURNING stock_quantity`
	err := executor.QueryRow(query, delta, time.Now(), productID).Scan(&newStock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: updating stock for product ID %d: %v", ErrDatabaseError, productID, err)
	}
	return newStock, nil
}

func (r *productRepository) Update(executor SQLExecutor, product *models.Product) error {
	query := `UPDATE product SET
	            name = $1, description = $2, price = $3, stock_quantity = $4,
	            category_id = $5, supplier_id = $6, updated_at = $7
	          WHERE id = $8`
	result, err := executor.Exec(query,
		product.Name, product.Description, product.Price, product.StockQuantity,
		product.CategoryID, product.SupplierID, time.Now(), product.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: product name '%s' already exists (constraint: %s)", ErrDuplicateKey, product.Name, pqErr.Constraint)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return fmt.Errorf("%w: updating product (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
			}
		}
		return fmt.Errorf("%w: updating product ID %d: %v", ErrDatabaseError, product.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
