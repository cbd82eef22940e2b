// internal/handlers/ticket.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/solarsavers/solarsavers-api/internal/i18n"
	"github.com/solarsavers/solarsavers-api/internal/services"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

type TicketHandler struct {
	ticketService *services.TicketService
}

func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

// POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateTicketRequest
	if !bindJSON(c, &req) {
		return
	}

	ticket, err := h.ticketService.Create(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, ticket)
}

// GET /tickets
func (h *TicketHandler) MyTickets(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	tickets, err := h.ticketService.ListOwn(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, tickets)
}

// GET /tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ticket, err := h.ticketService.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, ticket)
}

// POST /tickets/:id/reply
func (h *TicketHandler) Reply(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.TicketReplyRequest
	if !bindJSON(c, &req) {
		return
	}

	reply, err := h.ticketService.Reply(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyTicketReplyAdded),
		"reply":   reply,
	})
}

// GET /admin/tickets
func (h *TicketHandler) AllTickets(c *gin.Context) {
	tickets, err := h.ticketService.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, tickets)
}

// PUT /admin/tickets/:id/status
func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	var req services.TicketStatusRequest
	if !bindParams(c, &req) {
		return
	}

	ticket, err := h.ticketService.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyTicketStatusSet, ticket.Status),
		"ticket":  ticket,
	})
}

// PUT /admin/tickets/:id/priority
func (h *TicketHandler) UpdatePriority(c *gin.Context) {
	var req services.TicketPriorityRequest
	if !bindParams(c, &req) {
		return
	}

	ticket, err := h.ticketService.UpdatePriority(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyTicketPrioritySet, ticket.Priority),
		"ticket":  ticket,
	})
}
