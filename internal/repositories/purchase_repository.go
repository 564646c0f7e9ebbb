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

// PurchaseRepository defines the interface for purchase-related database operations.
type PurchaseRepository interface {
	CreatePurchase(executor SQLExecutor, purchase *models.Purchase) (int64, error)
	CreatePurchaseItem(executor SQLExecutor, item *models.PurchaseItem) (int64, error)
	GetPurchaseByID(purchaseID int64) (*models.Purchase, error)
	GetPurchaseItemsByPurchaseID(purchaseID int64) ([]models.PurchaseItem, error)
	GetPurchases(filters models.PurchaseFilters) ([]models.Purchase, int, error)
	DeletePurchaseItemsByPurchaseID(executor SQLExecutor, purchaseID int64) (int64, error)
	DeletePurchase(executor SQLExecutor, purchaseID int64) (int64, error)

	// Report queries over the snapshot columns.
	CountPurchasesByCategory() ([]models.PurchaseAggregate, error)
	SumQuantityBySupplier() ([]models.PurchaseAggregate, error)
	SumQuantityByProduct() ([]models.PurchaseAggregate, error)
}

type purchaseRepository struct {
	db *sql.DB
}

// NewPurchaseRepository creates a new instance of PurchaseRepository.
func NewPurchaseRepository(db *sql.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) CreatePurchase(executor SQLExecutor, purchase *models.Purchase) (int64, error) {
	query := `INSERT INTO purchase (supplier_name, purchase_date, total_amount, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = time.Now()
	}
	err := executor.QueryRow(query, purchase.SupplierName, purchase.Date, purchase.TotalAmount, purchase.CreatedAt).Scan(&purchase.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating purchase: %v", ErrDatabaseError, err)
	}
	return purchase.ID, nil
}

func (r *purchaseRepository) CreatePurchaseItem(executor SQLExecutor, item *models.PurchaseItem) (int64, error) {
	query := `INSERT INTO purchase_item (purchase_id, product_name, product_category, quantity, unit_price)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	err := executor.QueryRow(query, item.PurchaseID, item.ProductName, item.ProductCategory, item.Quantity, item.UnitPrice).Scan(&item.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: creating purchase item (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return 0, fmt.Errorf("%w: creating purchase item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *purchaseRepository) GetPurchaseByID(purchaseID int64) (*models.Purchase, error) {
	purchase := &models.Purchase{}
	query := `SELECT id, supplier_name, purchase_date, total_amount, created_at
	          FROM purchase
	          WHERE id = $1`
	err := r.db.QueryRow(query, purchaseID).Scan(
		&purchase.ID, &purchase.SupplierName, &purchase.Date, &purchase.TotalAmount, &purchase.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting purchase by ID %d: %v", ErrDatabaseError, purchaseID, err)
	}
	return purchase, nil
}

func (r *purchaseRepository) GetPurchaseItemsByPurchaseID(purchaseID int64) ([]models.PurchaseItem, error) {
	items := []models.PurchaseItem{}
	query := `SELECT id, purchase_id, product_name, product_category, quantity, unit_price
	          FROM purchase_item
	          WHERE purchase_id = $1
	          ORDER BY id`
	rows, err := r.db.Query(query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying purchase items for purchase ID %d: %v", ErrDatabaseError, purchaseID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.PurchaseItem
		if err := rows.Scan(&item.ID, &item.PurchaseID, &item.ProductName, &item.ProductCategory, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("%w: scanning purchase item for purchase ID %d: %v", ErrDatabaseError, purchaseID, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating purchase items for purchase ID %d: %v", ErrDatabaseError, purchaseID, err)
	}
	return items, nil
}

func (r *purchaseRepository) GetPurchases(filters models.PurchaseFilters) ([]models.Purchase, int, error) {
	purchases := []models.Purchase{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, supplier_name, purchase_date, total_amount, created_at,
	       COUNT(*) OVER() AS total_count
	  FROM purchase`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.Supplier != nil && *filters.Supplier != "" {
		conditions = append(conditions, fmt.Sprintf("supplier_name = $%d", argCounter))
		args = append(args, *filters.Supplier)
		argCounter++
	}
	if filters.Date != nil && *filters.Date != "" {
		if parsedDate, err := time.Parse("2006-01-02", *filters.Date); err == nil {
			conditions = append(conditions, fmt.Sprintf("purchase_date = $%d", argCounter))
			args = append(args, parsedDate)
			argCounter++
		}
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY purchase_date DESC, id DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying purchases: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(&p.ID, &p.SupplierName, &p.Date, &p.TotalAmount, &p.CreatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning purchase: %v", ErrDatabaseError, err)
		}
		purchases = append(purchases, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating purchase rows: %v", ErrDatabaseError, err)
	}
	return purchases, totalCount, nil
}

func (r *purchaseRepository) DeletePurchaseItemsByPurchaseID(executor SQLExecutor, purchaseID int64) (int64, error) {
	result, err := executor.Exec(`DELETE FROM purchase_item WHERE purchase_id = $1`, purchaseID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting purchase items for purchase ID %d: %v", ErrDatabaseError, purchaseID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for deleting purchase items for purchase ID %d: %v", ErrDatabaseError, purchaseID, err)
	}
	return rowsAffected, nil
}

func (r *purchaseRepository) DeletePurchase(executor SQLExecutor, purchaseID int64) (int64, error) {
	result, err := executor.Exec(`DELETE FROM purchase WHERE id = $1`, purchaseID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting purchase ID %d: %v", ErrDatabaseError, purchaseID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for deleting purchase ID %d: %v", ErrDatabaseError, purchaseID, err)
	}
	if rowsAffected == 0 {
		return 0, ErrNotFound
	}
	return rowsAffected, nil
}

func (r *purchaseRepository) CountPurchasesByCategory() ([]models.PurchaseAggregate, error) {
	query := `SELECT product_category, COUNT(*) AS total
	          FROM purchase_item
	          GROUP BY product_category
	          ORDER BY total DESC`
	return r.queryAggregates(query, "counting purchases by category")
}

func (r *purchaseRepository) SumQuantityBySupplier() ([]models.PurchaseAggregate, error) {
	query := `SELECT p.supplier_name, COALESCE(SUM(pi.quantity), 0) AS total
	          FROM purchase_item pi
	          JOIN purchase p ON pi.purchase_id = p.id
	          GROUP BY p.supplier_name
	          ORDER BY total DESC`
	return r.queryAggregates(query, "summing quantity by supplier")
}

func (r *purchaseRepository) SumQuantityByProduct() ([]models.PurchaseAggregate, error) {
	query := `SELECT product_name, COALESCE(SUM(quantity), 0) AS total
	          FROM purchase_item
	          GROUP BY product_name
	          ORDER BY total DESC`
	return r.queryAggregates(query, "summing quantity by product")
}

func (r *purchaseRepository) queryAggregates(query, action string) ([]models.PurchaseAggregate, error) {
	results := []models.PurchaseAggregate{}
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDatabaseError, action, err)
	}
	defer rows.Close()

	for rows.Next() {
		var agg models.PurchaseAggregate
		if err := rows.Scan(&agg.Label, &agg.Total); err != nil {
			return nil, fmt.Errorf("%w: %s: scanning row: %v", ErrDatabaseError, action, err)
		}
		results = append(results, agg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: iterating rows: %v", ErrDatabaseError, action, err)
	}
	return results, nil
}
