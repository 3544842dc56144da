package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/latia/admin-api/internal/application/service"
	"github.com/latia/admin-api/internal/presentation/http/dto/request"
	"github.com/latia/admin-api/internal/presentation/http/dto/response"
)

// AdminHandler handles the admin allow-list HTTP requests
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// List handles listing the allow-list
func (h *AdminHandler) List(c *gin.Context) {
	admins, err := h.adminService.ListAdmins(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Admins retrieved successfully", admins)
}

// Add handles granting panel access to an email
func (h *AdminHandler) Add(c *gin.Context) {
	var req request.AdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	admin, err := h.adminService.AddAdmin(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Admin added successfully", admin)
}

// Remove handles revoking panel access
func (h *AdminHandler) Remove(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		response.BadRequest(c, "Email is required")
		return
	}

	if err := h.adminService.RemoveAdmin(c.Request.Context(), email); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
