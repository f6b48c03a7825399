// README: Transit handlers: route planning and network administration.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabway/internal/modules/transit"
	"cabway/internal/types"
)

type TransitHandler struct {
	transit *transit.Service
}

func NewTransitHandler(svc *transit.Service) *TransitHandler {
	return &TransitHandler{transit: svc}
}

type planRouteReq struct {
	SourceID      string `json:"sourceId"`
	DestinationID string `json:"destinationId"`
}

type planRouteResp struct {
	Path        []string `json:"path"`
	DurationMin int      `json:"durationMin"`
}

// PlanRoute answers POST /api/routes/shortest.
func (h *TransitHandler) PlanRoute(c *gin.Context) {
	var req planRouteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid json")
		return
	}
	if req.SourceID == "" || req.DestinationID == "" {
		writeError(c, http.StatusBadRequest, "validation_error", "sourceId and destinationId are required")
		return
	}
	path, duration, err := h.transit.PlanRoute(c.Request.Context(), types.ID(req.SourceID), types.ID(req.DestinationID))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, planRouteResp{Path: path, DurationMin: duration})
}

type locationResp struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toLocationResp(l transit.Location) locationResp {
	return locationResp{ID: string(l.ID), Name: l.Name}
}

func (h *TransitHandler) ListLocations(c *gin.Context) {
	locations, err := h.transit.Locations(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]locationResp, 0, len(locations))
	for _, l := range locations {
		out = append(out, toLocationResp(l))
	}
	writeJSON(c, http.StatusOK, out)
}

type locationReq struct {
	Name string `json:"name"`
}

func (h *TransitHandler) CreateLocation(c *gin.Context) {
	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid json")
		return
	}
	l, err := h.transit.CreateLocation(c.Request.Context(), req.Name)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toLocationResp(l))
}

func (h *TransitHandler) RenameLocation(c *gin.Context) {
	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid json")
		return
	}
	l, err := h.transit.RenameLocation(c.Request.Context(), types.ID(c.Param("id")), req.Name)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toLocationResp(l))
}

func (h *TransitHandler) DeleteLocation(c *gin.Context) {
	if err := h.transit.DeleteLocation(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type routeResp struct {
	ID          string `json:"id"`
	FromID      string `json:"fromId"`
	FromName    string `json:"fromName"`
	ToID        string `json:"toId"`
	ToName      string `json:"toName"`
	DurationMin int    `json:"durationMin"`
}

func toRouteResp(r transit.Route) routeResp {
	return routeResp{
		ID:          string(r.ID),
		FromID:      string(r.FromID),
		FromName:    r.FromName,
		ToID:        string(r.ToID),
		ToName:      r.ToName,
		DurationMin: r.DurationMin,
	}
}

func (h *TransitHandler) ListRoutes(c *gin.Context) {
	routes, err := h.transit.Routes(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]routeResp, 0, len(routes))
	for _, r := range routes {
		out = append(out, toRouteResp(r))
	}
	writeJSON(c, http.StatusOK, out)
}

type routeReq struct {
	FromID      string `json:"fromId"`
	ToID        string `json:"toId"`
	DurationMin int    `json:"durationMin"`
}

func (h *TransitHandler) CreateRoute(c *gin.Context) {
	var req routeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid json")
		return
	}
	r, err := h.transit.CreateRoute(c.Request.Context(), types.ID(req.FromID), types.ID(req.ToID), req.DurationMin)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toRouteResp(r))
}

func (h *TransitHandler) UpdateRoute(c *gin.Context) {
	var req routeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid json")
		return
	}
	r, err := h.transit.UpdateRoute(c.Request.Context(), types.ID(c.Param("id")), types.ID(req.FromID), types.ID(req.ToID), req.DurationMin)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toRouteResp(r))
}

func (h *TransitHandler) DeleteRoute(c *gin.Context) {
	if err := h.transit.DeleteRoute(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
