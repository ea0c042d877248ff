package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/services"
)

type StoreHandler struct {
	log          *logger.Logger
	storeService services.StoreService
}

func NewStoreHandler(baseLog *logger.Logger, storeService services.StoreService) *StoreHandler {
	return &StoreHandler{
		log:          baseLog.With("handler", "StoreHandler"),
		storeService: storeService,
	}
}

func (h *StoreHandler) ListItems(c *gin.Context) {
	items, err := h.storeService.ListItems(c.Request.Context())
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, items)
}

func (h *StoreHandler) Purchase(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	profile, err := h.storeService.PurchaseItem(c.Request.Context(), userID, itemID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, profile)
}
