// README: Fleet handlers: cab administration and driver vehicle management.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabway/internal/http/middleware"
	"cabway/internal/modules/fleet"
	"cabway/internal/types"
)

type FleetHandler struct {
	fleet *fleet.Service
}

func NewFleetHandler(svc *fleet.Service) *FleetHandler {
	return &FleetHandler{fleet: svc}
}

type cabResp struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	PricePerMinute float64 `json:"pricePerMinute"`
	Type           string  `json:"type"`
	DriverID       string  `json:"driverId,omitempty"`
}

func toCabResp(cab fleet.Cab) cabResp {
	return cabResp{
		ID:             string(cab.ID),
		Name:           cab.Name,
		PricePerMinute: cab.PricePerMinute,
		Type:           string(cab.Type),
		DriverID:       string(cab.DriverID),
	}
}

func (h *FleetHandler) List(c *gin.Context) {
	cabs, err := h.fleet.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]cabResp, 0, len(cabs))
	for _, cab := range cabs {
		out = append(out, toCabResp(cab))
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *FleetHandler) Get(c *gin.Context) {
	cab, err := h.fleet.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toCabResp(cab))
}

type cabReq struct {
	Name           string  `json:"name"`
	PricePerMinute float64 `json:"pricePerMinute"`
	Type           string  `json:"type"`
	DriverID       string  `json:"driverId"`
}

func (h *FleetHandler) Create(c *gin.Context) {
	var req cabReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid json")
		return
	}
	cab, err := h.fleet.Create(c.Request.Context(), req.Name, req.PricePerMinute, fleet.CabType(req.Type), types.ID(req.DriverID))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toCabResp(cab))
}

func (h *FleetHandler) Update(c *gin.Context) {
	var req cabReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid json")
		return
	}
	cab, err := h.fleet.Update(c.Request.Context(), types.ID(c.Param("id")), req.Name, req.PricePerMinute, fleet.CabType(req.Type))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toCabResp(cab))
}

func (h *FleetHandler) Delete(c *gin.Context) {
	if err := h.fleet.Delete(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMyCab returns the calling driver's registered cab.
func (h *FleetHandler) GetMyCab(c *gin.Context) {
	ident := middleware.CallerIdentity(c)
	cab, err := h.fleet.GetByDriver(c.Request.Context(), ident.UserID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toCabResp(cab))
}

// RegisterMyCab registers a cab owned by the calling driver.
func (h *FleetHandler) RegisterMyCab(c *gin.Context) {
	var req cabReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid json")
		return
	}
	ident := middleware.CallerIdentity(c)
	cab, err := h.fleet.RegisterForDriver(c.Request.Context(), ident.UserID, req.Name, req.PricePerMinute, fleet.CabType(req.Type))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toCabResp(cab))
}

// UpdateMyCab updates the calling driver's cab.
func (h *FleetHandler) UpdateMyCab(c *gin.Context) {
	var req cabReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid json")
		return
	}
	ident := middleware.CallerIdentity(c)
	cab, err := h.fleet.UpdateForDriver(c.Request.Context(), ident.UserID, req.Name, req.PricePerMinute, fleet.CabType(req.Type))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toCabResp(cab))
}
