package handlers

import (
	"net/http"

	"travelplanner/internal/domain"
	"travelplanner/internal/domain/models"
	"travelplanner/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// POST /api/users/email-sync
func (h *Handler) SyncEmail(c *gin.Context) {
	var req models.EmailSyncRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if uid := middleware.GetUserID(c); uid != "" && uid != req.UserID && middleware.GetUserRole(c) != models.RoleAdmin {
		RespondDomainError(c, "user_sync", domain.ForbiddenError{Msg: "Cannot sync another user's email"})
		return
	}
	res, err := h.Svc.Users.SyncEmail(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, "user_sync", err)
		return
	}
	body := gin.H{"success": true, "updated": res.Applied}
	if w := res.Warnings(); len(w) > 0 {
		body["warnings"] = w
	}
	c.JSON(http.StatusOK, body)
}

// POST /api/admin/users/role
func (h *Handler) UpdateRole(c *gin.Context) {
	var req models.RoleUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.Svc.Users.UpdateRole(c.Request.Context(), req); err != nil {
		RespondDomainError(c, "user_sync", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user_id": req.UserID, "role": req.Role})
}

// POST /api/subscriptions/transactions
func (h *Handler) RecordTransaction(c *gin.Context) {
	var req models.AppStoreTransaction
	if !BindJSONOrError(c, &req) {
		return
	}
	status, res, err := h.Svc.Subscriptions.Record(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, "subscription", err)
		return
	}
	body := gin.H{"success": true, "transaction_id": req.TransactionID, "subscription_status": status}
	if w := res.Warnings(); len(w) > 0 {
		body["warnings"] = w
	}
	c.JSON(http.StatusOK, body)
}
