package services

import (
	"context"
	"strings"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

const (
	publicBlogLimit = 50
	adminBlogLimit  = 100
)

type BlogService struct {
	blogs repository.BlogRepository
}

type CreateBlogRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Content     string   `json:"content" validate:"required"`
	Excerpt     string   `json:"excerpt" validate:"max=1000"`
	Category    string   `json:"category" validate:"required,blog_category"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
	Tags        []string `json:"tags,omitempty"`
	IsPublished *bool    `json:"is_published,omitempty"`
}

type UpdateBlogRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,max=255"`
	Content     *string  `json:"content,omitempty"`
	Excerpt     *string  `json:"excerpt,omitempty" validate:"omitempty,max=1000"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,blog_category"`
	ImageURL    *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Tags        []string `json:"tags,omitempty"`
	IsPublished *bool    `json:"is_published,omitempty"`
}

func NewBlogService(blogs repository.BlogRepository) *BlogService {
	return &BlogService{blogs: blogs}
}

// List returns published posts newest first unless publishedOnly is false.
func (s *BlogService) List(ctx context.Context, rawCategory string, publishedOnly bool) ([]models.Blog, error) {
	filter := repository.BlogFilter{PublishedOnly: publishedOnly, Limit: publicBlogLimit}
	if rawCategory != "" {
		category, err := models.ParseBlogCategory(rawCategory)
		if err != nil {
			return nil, Validationf("category must be one of news, tips, guides, technology")
		}
		filter.Category = &category
	}

	blogs, err := s.blogs.List(ctx, filter)
	if err != nil {
		return nil, Internal("list blogs", err)
	}
	return blogs, nil
}

func (s *BlogService) ListAll(ctx context.Context) ([]models.Blog, error) {
	blogs, err := s.blogs.List(ctx, repository.BlogFilter{Limit: adminBlogLimit})
	if err != nil {
		return nil, Internal("list blogs", err)
	}
	return blogs, nil
}

// View counts one read and returns the post as of that read.
func (s *BlogService) View(ctx context.Context, id string) (*models.Blog, error) {
	blog, err := s.blogs.IncrementViews(ctx, id)
	if err != nil {
		return nil, fromRepo("view blog", "Blog not found", err)
	}
	return blog, nil
}

func (s *BlogService) Create(ctx context.Context, author *models.User, req *CreateBlogRequest) (*models.Blog, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	blog := &models.Blog{
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		Category:    models.BlogCategory(req.Category),
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
		IsPublished: req.IsPublished == nil || *req.IsPublished,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, Internal("create blog", err)
	}
	return blog, nil
}

func (s *BlogService) Update(ctx context.Context, id string, req *UpdateBlogRequest) (*models.Blog, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	update := repository.BlogUpdate{
		Title:       req.Title,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
	}
	if req.Category != nil {
		category := models.BlogCategory(*req.Category)
		update.Category = &category
	}

	blog, err := s.blogs.Update(ctx, id, update)
	if err != nil {
		return nil, fromRepo("update blog", "Blog not found", err)
	}
	return blog, nil
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	if err := s.blogs.Delete(ctx, id); err != nil {
		return fromRepo("delete blog", "Blog not found", err)
	}
	return nil
}
