package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mbbarber/barber-booking-backend/internal/pkg/response"
	"github.com/mbbarber/barber-booking-backend/internal/reservation"
	"github.com/mbbarber/barber-booking-backend/internal/schedule"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

func today() schedule.Date {
	return schedule.DateOf(time.Now())
}

func (h *Handler) Slots(c *gin.Context) {
	d, views, err := h.service.SlotsForDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSlotsResponse(d, views, today()))
}

func (h *Handler) Availability(c *gin.Context) {
	partySize, err := partySizeQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	free, err := h.service.CheckAvailability(c.Request.Context(), c.Query("date"), c.Query("time"), partySize)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, AvailabilityResponse{Available: free})
}

func (h *Handler) Suggestions(c *gin.Context) {
	partySize, err := partySizeQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	suggestions, err := h.service.Suggest(c.Request.Context(), c.Query("date"), c.Query("time"), partySize, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(NewSuggestionResponses(suggestions, today())))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateReservationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := reservation.CreateRequest{
		PartyID:   c.Param("partyId"),
		Name:      body.Name,
		Phone:     body.Phone,
		Date:      body.Date,
		Time:      body.Time,
		PartySize: body.PartySize,
	}

	r, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, reservation.ErrSlotTaken) {
			h.conflict(c, body)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReservationResponse(r, today()))
}

// conflict answers a taken span with alternatives, mirroring the booking
// flow where a rejected slot immediately shows nearby options.
func (h *Handler) conflict(c *gin.Context, body CreateReservationBody) {
	suggestions, err := h.service.Suggest(c.Request.Context(), body.Date, body.Time, body.PartySize, 0)
	if err != nil {
		// The conflict still stands even when suggestions fail.
		suggestions = nil
	}
	c.JSON(http.StatusConflict, ConflictResponse{
		Error:       reservation.ErrSlotTaken.Message,
		Suggestions: NewSuggestionResponses(suggestions, today()),
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	r, err := h.service.Cancel(c.Request.Context(), c.Param("partyId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReservationResponse(r, today()))
}

func (h *Handler) History(c *gin.Context) {
	entries, err := h.service.History(c.Request.Context(), c.Param("partyId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	now := today()
	items := make([]ReservationResponse, len(entries))
	for i, e := range entries {
		items[i] = NewReservationResponse(e, now)
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) Cancellable(c *gin.Context) {
	eligible, err := h.service.CancellationEligible(c.Request.Context(), c.Param("partyId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, EligibleResponse{Eligible: eligible})
}

// AdminList returns every active reservation for a date. Registered behind
// the admin middleware.
func (h *Handler) AdminList(c *gin.Context) {
	active, err := h.service.ListActive(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	now := today()
	items := make([]ReservationResponse, len(active))
	for i, r := range active {
		items[i] = NewReservationResponse(r, now)
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func partySizeQuery(c *gin.Context) (int, error) {
	size, err := strconv.Atoi(c.DefaultQuery("party_size", "1"))
	if err != nil || size < 1 {
		return 0, reservation.ErrInvalidPartySize
	}
	return size, nil
}
