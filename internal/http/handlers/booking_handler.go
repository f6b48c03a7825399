// README: Booking handlers: quotes, reservation, listings, status changes.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cabway/internal/http/middleware"
	"cabway/internal/modules/booking"
	"cabway/internal/modules/fleet"
	"cabway/internal/types"
)

type BookingHandler struct {
	booking *booking.Service
	fleet   *fleet.Service
}

func NewBookingHandler(bookingSvc *booking.Service, fleetSvc *fleet.Service) *BookingHandler {
	return &BookingHandler{booking: bookingSvc, fleet: fleetSvc}
}

type bookingResp struct {
	ID          string    `json:"id"`
	UserEmail   string    `json:"userEmail"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	CabName     string    `json:"cabName"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Cost        float64   `json:"cost"`
	Status      string    `json:"status"`
}

func toBookingResp(b *booking.Booking) bookingResp {
	return bookingResp{
		ID:          string(b.ID),
		UserEmail:   b.UserEmail,
		Source:      b.SourceName,
		Destination: b.DestinationName,
		CabName:     b.CabName,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Cost:        b.Cost,
		Status:      string(b.Status),
	}
}

func toBookingResps(bookings []*booking.Booking) []bookingResp {
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return out
}

type quoteVehicleResp struct {
	CabID          string  `json:"cabId"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	PricePerMinute float64 `json:"pricePerMinute"`
	EstimatedCost  float64 `json:"estimatedCost"`
}

type quoteResp struct {
	Path        []string           `json:"path"`
	DurationMin int                `json:"durationMin"`
	Vehicles    []quoteVehicleResp `json:"vehicles"`
}

type quoteReq struct {
	SourceID      string `json:"sourceId"`
	DestinationID string `json:"destinationId"`
}

// Quote answers POST /api/bookings/quote with the planned path and
// every cab free for the trip window.
func (h *BookingHandler) Quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid json")
		return
	}
	if req.SourceID == "" || req.DestinationID == "" {
		writeError(c, http.StatusBadRequest, "validation_error", "sourceId and destinationId are required")
		return
	}
	q, err := h.booking.Quote(c.Request.Context(), types.ID(req.SourceID), types.ID(req.DestinationID))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	resp := quoteResp{Path: q.Path, DurationMin: q.DurationMin, Vehicles: []quoteVehicleResp{}}
	for _, v := range q.Vehicles {
		resp.Vehicles = append(resp.Vehicles, quoteVehicleResp{
			CabID:          string(v.CabID),
			Name:           v.Name,
			Type:           string(v.Type),
			PricePerMinute: v.PricePerMinute,
			EstimatedCost:  v.EstimatedCost,
		})
	}
	writeJSON(c, http.StatusOK, resp)
}

type createBookingReq struct {
	SourceID      string `json:"sourceId"`
	DestinationID string `json:"destinationId"`
	CabID         string `json:"cabId"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid json")
		return
	}
	ident := middleware.CallerIdentity(c)
	b, err := h.booking.Create(c.Request.Context(), ident.Email,
		types.ID(req.SourceID), types.ID(req.DestinationID), types.ID(req.CabID))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toBookingResp(b))
}

func (h *BookingHandler) Get(c *gin.Context) {
	ident := middleware.CallerIdentity(c)
	b, err := h.booking.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if b.UserEmail != ident.Email && !ident.IsAdmin() {
		writeError(c, http.StatusForbidden, "forbidden", "not allowed to view this booking")
		return
	}
	writeJSON(c, http.StatusOK, toBookingResp(b))
}

// ListMine returns the caller's bookings, newest first.
func (h *BookingHandler) ListMine(c *gin.Context) {
	ident := middleware.CallerIdentity(c)
	bookings, err := h.booking.ListForRequester(c.Request.Context(), ident.Email)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toBookingResps(bookings))
}

// ListAll is the administrative listing of every booking.
func (h *BookingHandler) ListAll(c *gin.Context) {
	bookings, err := h.booking.ListAll(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toBookingResps(bookings))
}

// ListForMyCab returns the bookings on the calling driver's cab.
func (h *BookingHandler) ListForMyCab(c *gin.Context) {
	ident := middleware.CallerIdentity(c)
	cab, err := h.fleet.GetByDriver(c.Request.Context(), ident.UserID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	bookings, err := h.booking.ListForCab(c.Request.Context(), cab.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toBookingResps(bookings))
}

type changeStatusReq struct {
	Status string `json:"status"`
}

func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	var req changeStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid json")
		return
	}
	ident := middleware.CallerIdentity(c)
	b, err := h.booking.ChangeStatus(c.Request.Context(), types.ID(c.Param("id")),
		ident.Email, ident.IsAdmin(), booking.Status(req.Status))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toBookingResp(b))
}
