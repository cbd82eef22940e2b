// internal/handlers/blog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/solarsavers/solarsavers-api/internal/i18n"
	"github.com/solarsavers/solarsavers-api/internal/services"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

type BlogHandler struct {
	blogService *services.BlogService
}

func NewBlogHandler(blogService *services.BlogService) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
	}
}

// GET /blogs
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	publishedOnly := true
	if v := utils.QueryBool(c, "published_only"); v != nil {
		publishedOnly = *v
	}

	blogs, err := h.blogService.List(c.Request.Context(), c.Query("category"), publishedOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, blogs)
}

// GET /blogs/:id
func (h *BlogHandler) GetBlog(c *gin.Context) {
	blog, err := h.blogService.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, blog)
}

// GET /admin/blogs
func (h *BlogHandler) AllBlogs(c *gin.Context) {
	blogs, err := h.blogService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, blogs)
}

// POST /admin/blogs
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateBlogRequest
	if !bindJSON(c, &req) {
		return
	}

	blog, err := h.blogService.Create(c.Request.Context(), admin, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, blog)
}

// PUT /admin/blogs/:id
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	var req services.UpdateBlogRequest
	if !bindJSON(c, &req) {
		return
	}

	blog, err := h.blogService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, blog)
}

// DELETE /admin/blogs/:id
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	if err := h.blogService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.MessageResponse(c, i18n.KeyBlogDeleted)
}
