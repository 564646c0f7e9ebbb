package services

import (
	"sort"
	"time"

	"stocktrade_backend/internal/models"
	"stocktrade_backend/internal/repositories"
)

// fakeStore is a shared in-memory backing for the fake repositories. The fake
// transaction manager snapshots and restores it, so a failing transactional
// function leaves the store exactly as it was.
type fakeStore struct {
	categories    map[int64]models.Category
	suppliers     map[int64]models.Supplier
	customers     map[int64]models.Customer
	products      map[int64]models.Product
	purchases     map[int64]models.Purchase
	purchaseItems map[int64]models.PurchaseItem
	users         map[int64]models.User
	nextID        int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		categories:    map[int64]models.Category{},
		suppliers:     map[int64]models.Supplier{},
		customers:     map[int64]models.Customer{},
		products:      map[int64]models.Product{},
		purchases:     map[int64]models.Purchase{},
		purchaseItems: map[int64]models.PurchaseItem{},
		users:         map[int64]models.User{},
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	c.nextID = s.nextID
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.purchases {
		c.purchases[k] = v
	}
	for k, v := range s.purchaseItems {
		c.purchaseItems[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

func (s *fakeStore) restore(snapshot *fakeStore) {
	s.categories = snapshot.categories
	s.suppliers = snapshot.suppliers
	s.customers = snapshot.customers
	s.products = snapshot.products
	s.purchases = snapshot.purchases
	s.purchaseItems = snapshot.purchaseItems
	s.users = snapshot.users
	s.nextID = snapshot.nextID
}

// fakeTxManager mimics transactional semantics over the fake store: the
// callback runs against the live store, and any error rolls the store back
// to the snapshot taken at transaction start.
type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) WithinTx(fn func(executor repositories.SQLExecutor) error) error {
	snapshot := m.store.clone()
	if err := fn(nil); err != nil {
		m.store.restore(snapshot)
		return err
	}
	return nil
}

// fakeFileService records deletions instead of touching the filesystem.
type fakeFileService struct {
	deleted []string
}

func (f *fakeFileService) Delete(path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

// --- fakeCategoryRepo ---

type fakeCategoryRepo struct {
	store *fakeStore
}

func (r *fakeCategoryRepo) Create(_ repositories.SQLExecutor, category *models.Category) (int64, error) {
	for _, c := range r.store.categories {
		if c.Name == category.Name {
			return 0, repositories.ErrDuplicateKey
		}
	}
	category.ID = r.store.id()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	r.store.categories[category.ID] = *category
	return category.ID, nil
}

func (r *fakeCategoryRepo) GetByID(id int64) (*models.Category, error) {
	c, ok := r.store.categories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := c
	return &out, nil
}

func (r *fakeCategoryRepo) GetAll(page, pageSize int) ([]models.Category, int, error) {
	all := make([]models.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page, pageSize), len(all), nil
}

func (r *fakeCategoryRepo) ExistsByName(name string) (bool, error) {
	for _, c := range r.store.categories {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) Update(_ repositories.SQLExecutor, category *models.Category) error {
	if _, ok := r.store.categories[category.ID]; !ok {
		return repositories.ErrNotFound
	}
	for _, c := range r.store.categories {
		if c.ID != category.ID && c.Name == category.Name {
			return repositories.ErrDuplicateKey
		}
	}
	r.store.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) Delete(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.store.categories[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.store.categories, id)
	return nil
}

// --- fakeSupplierRepo ---

type fakeSupplierRepo struct {
	store *fakeStore
}

func (r *fakeSupplierRepo) Create(_ repositories.SQLExecutor, supplier *models.Supplier) (int64, error) {
	for _, s := range r.store.suppliers {
		if s.Name == supplier.Name {
			return 0, repositories.ErrDuplicateKey
		}
	}
	supplier.ID = r.store.id()
	r.store.suppliers[supplier.ID] = *supplier
	return supplier.ID, nil
}

func (r *fakeSupplierRepo) GetByID(id int64) (*models.Supplier, error) {
	s, ok := r.store.suppliers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := s
	return &out, nil
}

func (r *fakeSupplierRepo) GetAll(page, pageSize int) ([]models.Supplier, int, error) {
	all := make([]models.Supplier, 0, len(r.store.suppliers))
	for _, s := range r.store.suppliers {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page, pageSize), len(all), nil
}

func (r *fakeSupplierRepo) ExistsByName(name string) (bool, error) {
	for _, s := range r.store.suppliers {
		if s.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSupplierRepo) Update(_ repositories.SQLExecutor, supplier *models.Supplier) error {
	if _, ok := r.store.suppliers[supplier.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.store.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *fakeSupplierRepo) Delete(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.store.suppliers[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.store.suppliers, id)
	return nil
}

// --- fakeCustomerRepo ---

type fakeCustomerRepo struct {
	store *fakeStore
}

func (r *fakeCustomerRepo) Create(_ repositories.SQLExecutor, customer *models.Customer) (int64, error) {
	for _, c := range r.store.customers {
		if c.Name == customer.Name {
			return 0, repositories.ErrDuplicateKey
		}
	}
	customer.ID = r.store.id()
	r.store.customers[customer.ID] = *customer
	return customer.ID, nil
}

func (r *fakeCustomerRepo) GetByID(id int64) (*models.Customer, error) {
	c, ok := r.store.customers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := c
	return &out, nil
}

func (r *fakeCustomerRepo) GetAll(page, pageSize int) ([]models.Customer, int, error) {
	all := make([]models.Customer, 0, len(r.store.customers))
	for _, c := range r.store.customers {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page, pageSize), len(all), nil
}

func (r *fakeCustomerRepo) ExistsByName(name string) (bool, error) {
	for _, c := range r.store.customers {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCustomerRepo) Update(_ repositories.SQLExecutor, customer *models.Customer) error {
	if _, ok := r.store.customers[customer.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.store.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) Delete(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.store.customers[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.store.customers, id)
	return nil
}

// --- fakeProductRepo ---

type fakeProductRepo struct {
	store *fakeStore
}

func (r *fakeProductRepo) Create(_ repositories.SQLExecutor, product *models.Product) (int64, error) {
	for _, p := range r.store.products {
		if p.Name == product.Name {
			return 0, repositories.ErrDuplicateKey
		}
	}
	product.ID = r.store.id()
	r.store.products[product.ID] = *product
	return product.ID, nil
}

func (r *fakeProductRepo) GetByID(id int64) (*models.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := p
	return &out, nil
}

func (r *fakeProductRepo) GetByName(_ repositories.SQLExecutor, name string) (*models.Product, error) {
	for _, p := range r.store.products {
		if p.Name == name {
			out := p
			if c, ok := r.store.categories[p.CategoryID]; ok {
				out.Category = &models.Category{ID: c.ID, Name: c.Name}
			}
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeProductRepo) GetAll(categoryID *int64, page, pageSize int) ([]models.Product, int, error) {
	all := []models.Product{}
	for _, p := range r.store.products {
		if categoryID != nil && p.CategoryID != *categoryID {
			continue
		}
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page, pageSize), len(all), nil
}

func (r *fakeProductRepo) ExistsByName(name string) (bool, error) {
	for _, p := range r.store.products {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) ExistsByCategoryID(_ repositories.SQLExecutor, categoryID int64) (bool, error) {
	for _, p := range r.store.products {
		if p.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) ExistsBySupplierID(_ repositories.SQLExecutor, supplierID int64) (bool, error) {
	for _, p := range r.store.products {
		if p.SupplierID == supplierID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) IncrementStock(_ repositories.SQLExecutor, productID int64, delta int) (int, error) {
	p, ok := r.store.products[productID]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	p.StockQuantity += delta
	r.store.products[productID] = p
	return p.StockQuantity, nil
}

func (r *fakeProductRepo) Update(_ repositories.SQLExecutor, product *models.Product) error {
	if _, ok := r.store.products[product.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.store.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.store.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.store.products, id)
	return nil
}

// --- fakePurchaseRepo ---

type fakePurchaseRepo struct {
	store *fakeStore
}

func (r *fakePurchaseRepo) CreatePurchase(_ repositories.SQLExecutor, purchase *models.Purchase) (int64, error) {
	purchase.ID = r.store.id()
	purchase.CreatedAt = time.Now()
	r.store.purchases[purchase.ID] = *purchase
	return purchase.ID, nil
}

func (r *fakePurchaseRepo) CreatePurchaseItem(_ repositories.SQLExecutor, item *models.PurchaseItem) (int64, error) {
	if _, ok := r.store.purchases[item.PurchaseID]; !ok {
		return 0, repositories.ErrDatabaseError
	}
	item.ID = r.store.id()
	r.store.purchaseItems[item.ID] = *item
	return item.ID, nil
}

func (r *fakePurchaseRepo) GetPurchaseByID(purchaseID int64) (*models.Purchase, error) {
	p, ok := r.store.purchases[purchaseID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := p
	out.Items = nil
	return &out, nil
}

func (r *fakePurchaseRepo) GetPurchaseItemsByPurchaseID(purchaseID int64) ([]models.PurchaseItem, error) {
	items := []models.PurchaseItem{}
	for _, item := range r.store.purchaseItems {
		if item.PurchaseID == purchaseID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *fakePurchaseRepo) GetPurchases(filters models.PurchaseFilters) ([]models.Purchase, int, error) {
	all := []models.Purchase{}
	for _, p := range r.store.purchases {
		if filters.Supplier != nil && *filters.Supplier != "" && p.SupplierName != *filters.Supplier {
			continue
		}
		if filters.Date != nil && *filters.Date != "" && p.Date.Format("2006-01-02") != *filters.Date {
			continue
		}
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, filters.Page, filters.PageSize), len(all), nil
}

func (r *fakePurchaseRepo) DeletePurchaseItemsByPurchaseID(_ repositories.SQLExecutor, purchaseID int64) (int64, error) {
	var deleted int64
	for id, item := range r.store.purchaseItems {
		if item.PurchaseID == purchaseID {
			delete(r.store.purchaseItems, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakePurchaseRepo) DeletePurchase(_ repositories.SQLExecutor, purchaseID int64) (int64, error) {
	if _, ok := r.store.purchases[purchaseID]; !ok {
		return 0, repositories.ErrNotFound
	}
	delete(r.store.purchases, purchaseID)
	return 1, nil
}

func (r *fakePurchaseRepo) CountPurchasesByCategory() ([]models.PurchaseAggregate, error) {
	return r.aggregate(func(item models.PurchaseItem) (string, int64) {
		return item.ProductCategory, 1
	}), nil
}

func (r *fakePurchaseRepo) SumQuantityBySupplier() ([]models.PurchaseAggregate, error) {
	return r.aggregate(func(item models.PurchaseItem) (string, int64) {
		return r.store.purchases[item.PurchaseID].SupplierName, int64(item.Quantity)
	}), nil
}

func (r *fakePurchaseRepo) SumQuantityByProduct() ([]models.PurchaseAggregate, error) {
	return r.aggregate(func(item models.PurchaseItem) (string, int64) {
		return item.ProductName, int64(item.Quantity)
	}), nil
}

func (r *fakePurchaseRepo) aggregate(keyValue func(models.PurchaseItem) (string, int64)) []models.PurchaseAggregate {
	totals := map[string]int64{}
	for _, item := range r.store.purchaseItems {
		key, value := keyValue(item)
		totals[key] += value
	}
	out := []models.PurchaseAggregate{}
	for label, total := range totals {
		out = append(out, models.PurchaseAggregate{Label: label, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// --- fakeUserRepo ---

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) CreateUser(_ repositories.SQLExecutor, user *models.User) (int64, error) {
	for _, u := range r.store.users {
		if u.Username == user.Username {
			return 0, repositories.ErrDuplicateKey
		}
	}
	user.ID = r.store.id()
	r.store.users[user.ID] = *user
	return user.ID, nil
}

func (r *fakeUserRepo) FindUserByUsername(username string) (*models.User, error) {
	for _, u := range r.store.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindUserByID(userID int64) (*models.User, error) {
	u, ok := r.store.users[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := u
	return &out, nil
}

// paginate slices a sorted result set the way the COUNT(*) OVER() queries do.
func paginate[T any](all []T, page, pageSize int) []T {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = len(all)
	}
	start := (page - 1) * pageSize
	if start >= len(all) {
		return []T{}
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
