package memory

import (
	"context"
	"sort"
	"time"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type userRepository struct{ d *db }

func (r *userRepository) Create(_ context.Context, user *models.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	for _, u := range r.d.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.d.stamp(&user.BaseModel)
	c := *user
	r.d.users[user.ID] = &c
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	u, ok := r.d.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	for _, u := range r.d.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) List(_ context.Context, filter repository.UserFilter) ([]models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var users []models.User
	for _, u := range r.d.users {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.Status != nil && u.Status != *filter.Status {
			continue
		}
		users = append(users, *u)
	}
	newestFirst(users, func(u models.User) time.Time { return u.CreatedAt })
	return users, nil
}

func (r *userRepository) SetVendorStatus(_ context.Context, id string, status models.VendorStatus) (*models.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	u, ok := r.d.users[id]
	if !ok || u.Role != models.RoleVendor {
		return nil, repository.ErrNotFound
	}
	u.Status = status
	u.UpdatedAt = r.d.now()
	c := *u
	return &c, nil
}

func (r *userRepository) Count(_ context.Context, role models.Role) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var n int64
	for _, u := range r.d.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type productRepository struct{ d *db }

func (r *productRepository) Create(_ context.Context, product *models.Product) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	r.d.stamp(&product.BaseModel)
	c := copyProduct(product)
	r.d.products[product.ID] = &c
	return nil
}

func (r *productRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	p, ok := r.d.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := copyProduct(p)
	return &c, nil
}

func (r *productRepository) GetMany(_ context.Context, ids []string) (map[string]models.Product, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	result := make(map[string]models.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.d.products[id]; ok {
			result[id] = copyProduct(p)
		}
	}
	return result, nil
}

// sortedProducts returns all products in creation order. Callers hold mu.
func (r *productRepository) sortedProducts() []*models.Product {
	products := make([]*models.Product, 0, len(r.d.products))
	for _, p := range r.d.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID < products[j].ID
		}
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products
}

func (r *productRepository) List(_ context.Context, f repository.ProductFilter) ([]models.Product, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var matched []models.Product
	for _, p := range r.sortedProducts() {
		switch {
		case f.Category != nil && p.Category != *f.Category,
			f.MinPrice != nil && p.Price < *f.MinPrice,
			f.MaxPrice != nil && p.Price > *f.MaxPrice,
			f.MinSize != nil && p.SystemSizeKW < *f.MinSize,
			f.MaxSize != nil && p.SystemSizeKW > *f.MaxSize,
			f.Brand != "" && p.Brand != f.Brand,
			f.InStock != nil && p.InStock != *f.InStock,
			f.VendorID != "" && p.VendorID != f.VendorID:
			continue
		}
		matched = append(matched, copyProduct(p))
	}

	if f.Skip >= len(matched) {
		return []models.Product{}, nil
	}
	matched = matched[f.Skip:]
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (r *productRepository) Featured(_ context.Context, category *models.ProductCategory, limit int) ([]models.Product, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var featured []models.Product
	for _, p := range r.d.products {
		if !p.InStock || (category != nil && p.Category != *category) {
			continue
		}
		featured = append(featured, copyProduct(p))
	}
	sort.Slice(featured, func(i, j int) bool {
		if featured[i].Rating == featured[j].Rating {
			return featured[i].ID < featured[j].ID
		}
		return featured[i].Rating > featured[j].Rating
	})
	if limit > 0 && len(featured) > limit {
		featured = featured[:limit]
	}
	return featured, nil
}

func (r *productRepository) Update(_ context.Context, id string, u repository.ProductUpdate) (*models.Product, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	p, ok := r.d.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
		for _, item := range r.d.inventory {
			if item.ProductID == id && item.VendorPrice > p.Price {
				item.VendorPrice = p.Price
				item.UpdatedAt = r.d.now()
			}
		}
	}
	if u.OriginalPrice != nil {
		p.OriginalPrice = *u.OriginalPrice
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.InStock != nil {
		p.InStock = *u.InStock
	}
	p.UpdatedAt = r.d.now()

	c := copyProduct(p)
	return &c, nil
}

func (r *productRepository) Delete(_ context.Context, id string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.d.products, id)
	for key, item := range r.d.inventory {
		if item.ProductID == id {
			delete(r.d.inventory, key)
		}
	}
	return nil
}

func (r *productRepository) Brands(_ context.Context) ([]string, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	seen := make(map[string]bool)
	brands := []string{}
	for _, p := range r.d.products {
		if p.Brand != "" && !seen[p.Brand] {
			seen[p.Brand] = true
			brands = append(brands, p.Brand)
		}
	}
	sort.Strings(brands)
	return brands, nil
}

func (r *productRepository) Count(_ context.Context, vendorID string) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var n int64
	for _, p := range r.d.products {
		if vendorID == "" || p.VendorID == vendorID {
			n++
		}
	}
	return n, nil
}

type inventoryRepository struct{ d *db }

func (r *inventoryRepository) Create(_ context.Context, item *models.VendorInventoryItem) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	product, ok := r.d.products[item.ProductID]
	if !ok {
		return repository.ErrNotFound
	}
	if item.VendorPrice > product.Price {
		return &repository.PriceCeilingError{Ceiling: product.Price}
	}
	for _, existing := range r.d.inventory {
		if existing.VendorID == item.VendorID && existing.ProductID == item.ProductID {
			return repository.ErrDuplicate
		}
	}

	r.d.stamp(&item.BaseModel)
	c := *item
	r.d.inventory[item.ID] = &c
	return nil
}

func (r *inventoryRepository) Update(_ context.Context, id, vendorID string, u repository.InventoryUpdate) (*models.VendorInventoryItem, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	item, ok := r.d.inventory[id]
	if !ok || item.VendorID != vendorID {
		return nil, repository.ErrNotFound
	}
	if u.VendorPrice != nil {
		product, ok := r.d.products[item.ProductID]
		if !ok {
			return nil, repository.ErrNotFound
		}
		if *u.VendorPrice > product.Price {
			return nil, &repository.PriceCeilingError{Ceiling: product.Price}
		}
		item.VendorPrice = *u.VendorPrice
	}
	if u.Quantity != nil {
		item.Quantity = *u.Quantity
	}
	if u.IsAvailable != nil {
		item.IsAvailable = *u.IsAvailable
	}
	if u.Location != nil {
		item.Location = *u.Location
	}
	item.UpdatedAt = r.d.now()

	c := *item
	return &c, nil
}

func (r *inventoryRepository) Delete(_ context.Context, id, vendorID string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	item, ok := r.d.inventory[id]
	if !ok || item.VendorID != vendorID {
		return repository.ErrNotFound
	}
	delete(r.d.inventory, id)
	return nil
}

func (r *inventoryRepository) ListByVendor(_ context.Context, vendorID string) ([]models.InventoryEntry, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	entries := []models.InventoryEntry{}
	for _, item := range r.d.inventory {
		if item.VendorID != vendorID {
			continue
		}
		product, ok := r.d.products[item.ProductID]
		if !ok {
			continue
		}
		entries = append(entries, models.InventoryEntry{
			VendorInventoryItem: *item,
			ProductName:         product.Name,
			SellPrice:           product.Price,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})
	return entries, nil
}

func (r *inventoryRepository) ListAvailable(_ context.Context, productIDs []string) ([]models.VendorInventoryItem, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	wanted := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}

	var items []models.VendorInventoryItem
	for _, item := range r.d.inventory {
		if wanted[item.ProductID] && item.IsAvailable && item.Quantity > 0 {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].VendorID < items[j].VendorID })
	return items, nil
}

type suggestionRepository struct{ d *db }

func (r *suggestionRepository) Create(_ context.Context, s *models.ProductSuggestion) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	r.d.stamp(&s.BaseModel)
	c := copySuggestion(s)
	r.d.suggestions[s.ID] = &c
	return nil
}

func (r *suggestionRepository) GetByID(_ context.Context, id string) (*models.ProductSuggestion, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	s, ok := r.d.suggestions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := copySuggestion(s)
	return &c, nil
}

func (r *suggestionRepository) List(_ context.Context, status *models.SuggestionStatus, vendorID string) ([]models.ProductSuggestion, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	suggestions := []models.ProductSuggestion{}
	for _, s := range r.d.suggestions {
		if status != nil && s.Status != *status {
			continue
		}
		if vendorID != "" && s.VendorID != vendorID {
			continue
		}
		suggestions = append(suggestions, copySuggestion(s))
	}
	newestFirst(suggestions, func(s models.ProductSuggestion) time.Time { return s.CreatedAt })
	return suggestions, nil
}

// pending returns the suggestion if it can still be resolved. Callers hold mu.
func (r *suggestionRepository) pending(id string) (*models.ProductSuggestion, error) {
	s, ok := r.d.suggestions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if s.Status != models.SuggestionStatusPending {
		return nil, repository.ErrStateChanged
	}
	return s, nil
}

func (r *suggestionRepository) Approve(_ context.Context, id, reviewerID string, product *models.Product) (*models.ProductSuggestion, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	s, err := r.pending(id)
	if err != nil {
		return nil, err
	}

	r.d.stamp(&product.BaseModel)
	p := copyProduct(product)
	r.d.products[product.ID] = &p

	now := r.d.now()
	s.Status = models.SuggestionStatusApproved
	s.ApprovedProductID = product.ID
	s.ReviewedBy = reviewerID
	s.ReviewedAt = &now
	s.UpdatedAt = now

	c := copySuggestion(s)
	return &c, nil
}

func (r *suggestionRepository) Reject(_ context.Context, id, reviewerID, reason string) (*models.ProductSuggestion, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	s, err := r.pending(id)
	if err != nil {
		return nil, err
	}

	now := r.d.now()
	s.Status = models.SuggestionStatusRejected
	s.RejectionReason = reason
	s.ReviewedBy = reviewerID
	s.ReviewedAt = &now
	s.UpdatedAt = now

	c := copySuggestion(s)
	return &c, nil
}
