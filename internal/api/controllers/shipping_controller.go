package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storengine/internal/services"
	"storengine/pkg/utils"
)

type ShippingController struct {
	shippingService services.IShippingService
}

func NewShippingController(shippingService services.IShippingService) *ShippingController {
	return &ShippingController{
		shippingService: shippingService,
	}
}

// RefreshPacketStatus godoc
// @Summary Refresh packet tracking status
// @Description Re-poll the carrier for the packet's latest tracking status
// @Tags Shipping
// @Produce json
// @Param id path string true "Packet ID"
// @Success 200 {object} utils.APIResponse
// @Router /packets/{id}/status [post]
func (s *ShippingController) RefreshPacketStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid packet id")
		return
	}

	packet, err := s.shippingService.RefreshPacketStatus(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{
		"packet_id":    packet.PacketID,
		"status_code":  packet.StatusCode,
		"status_name":  packet.StatusName,
		"display_name": packet.StatusDisplayName,
	}, "Packet status refreshed")
}

// PacketLabel godoc
// @Summary Download the packet label
// @Description Fetch the printable PDF label for a packet
// @Tags Shipping
// @Produce application/pdf
// @Param id path string true "Packet ID"
// @Success 200 {file} binary
// @Router /packets/{id}/label [get]
func (s *ShippingController) PacketLabel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid packet id")
		return
	}

	pdf, err := s.shippingService.PacketLabel(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", pdf)
}
