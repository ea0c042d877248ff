package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/services"
)

type GardenHandler struct {
	log           *logger.Logger
	gardenService services.GardenService
}

func NewGardenHandler(baseLog *logger.Logger, gardenService services.GardenService) *GardenHandler {
	return &GardenHandler{
		log:           baseLog.With("handler", "GardenHandler"),
		gardenService: gardenService,
	}
}

func (h *GardenHandler) ListPlants(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	plants, err := h.gardenService.ListPlants(c.Request.Context(), userID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, plants)
}

func (h *GardenHandler) SelectPlant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	plantID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	profile, err := h.gardenService.SelectPlant(c.Request.Context(), userID, plantID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, profile)
}

func (h *GardenHandler) Water(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	plants, err := h.gardenService.WaterPlants(c.Request.Context(), userID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, plants)
}
