package memory

import (
	"context"
	"time"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type blogRepository struct{ d *db }

func (r *blogRepository) Create(_ context.Context, b *models.Blog) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	r.d.stamp(&b.BaseModel)
	c := copyBlog(b)
	r.d.blogs[b.ID] = &c
	return nil
}

func (r *blogRepository) GetByID(_ context.Context, id string) (*models.Blog, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	b, ok := r.d.blogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := copyBlog(b)
	return &c, nil
}

func (r *blogRepository) IncrementViews(_ context.Context, id string) (*models.Blog, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	b, ok := r.d.blogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b.Views++
	c := copyBlog(b)
	return &c, nil
}

func (r *blogRepository) List(_ context.Context, f repository.BlogFilter) ([]models.Blog, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	blogs := []models.Blog{}
	for _, b := range r.d.blogs {
		if f.PublishedOnly && !b.IsPublished {
			continue
		}
		if f.Category != nil && b.Category != *f.Category {
			continue
		}
		blogs = append(blogs, copyBlog(b))
	}
	newestFirst(blogs, func(b models.Blog) time.Time { return b.CreatedAt })
	if f.Limit > 0 && len(blogs) > f.Limit {
		blogs = blogs[:f.Limit]
	}
	return blogs, nil
}

func (r *blogRepository) Update(_ context.Context, id string, u repository.BlogUpdate) (*models.Blog, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	b, ok := r.d.blogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Content != nil {
		b.Content = *u.Content
	}
	if u.Excerpt != nil {
		b.Excerpt = *u.Excerpt
	}
	if u.Category != nil {
		b.Category = *u.Category
	}
	if u.ImageURL != nil {
		b.ImageURL = *u.ImageURL
	}
	if u.Tags != nil {
		b.Tags = cloneStrings(u.Tags)
	}
	if u.IsPublished != nil {
		b.IsPublished = *u.IsPublished
	}
	b.UpdatedAt = r.d.now()

	c := copyBlog(b)
	return &c, nil
}

func (r *blogRepository) Delete(_ context.Context, id string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.blogs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.d.blogs, id)
	return nil
}

type reviewRepository struct{ d *db }

func (r *reviewRepository) Create(_ context.Context, review *models.Review) (*models.Product, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	product, ok := r.d.products[review.ProductID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	r.d.stamp(&review.BaseModel)
	c := *review
	r.d.reviews[review.ID] = &c

	var sum, count int
	for _, rv := range r.d.reviews {
		if rv.ProductID == review.ProductID {
			sum += rv.Rating
			count++
		}
	}
	product.Rating = round1(float64(sum) / float64(count))
	product.ReviewCount = count
	product.UpdatedAt = r.d.now()

	p := copyProduct(product)
	return &p, nil
}

func (r *reviewRepository) ListByProduct(_ context.Context, productID string) ([]models.Review, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	reviews := []models.Review{}
	for _, rv := range r.d.reviews {
		if rv.ProductID == productID {
			reviews = append(reviews, *rv)
		}
	}
	newestFirst(reviews, func(rv models.Review) time.Time { return rv.CreatedAt })
	return reviews, nil
}

type contactRepository struct{ d *db }

func (r *contactRepository) Create(_ context.Context, contact *models.Contact) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	r.d.stamp(&contact.BaseModel)
	c := *contact
	r.d.contacts[contact.ID] = &c
	return nil
}

func (r *contactRepository) List(_ context.Context) ([]models.Contact, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	contacts := []models.Contact{}
	for _, c := range r.d.contacts {
		contacts = append(contacts, *c)
	}
	newestFirst(contacts, func(c models.Contact) time.Time { return c.CreatedAt })
	return contacts, nil
}

type chatRepository struct{ d *db }

func (r *chatRepository) Create(_ context.Context, message *models.ChatMessage) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	r.d.stamp(&message.BaseModel)
	c := *message
	r.d.chat[message.ID] = &c
	return nil
}

func (r *chatRepository) History(_ context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var messages []models.ChatMessage
	for _, m := range r.d.chat {
		if m.SessionID == sessionID {
			messages = append(messages, *m)
		}
	}
	// Oldest first, keeping only the most recent limit.
	newestFirst(messages, func(m models.ChatMessage) time.Time { return m.CreatedAt })
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
