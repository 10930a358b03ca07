package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mbbarber/barber-booking-backend/internal/pkg/response"
	"github.com/mbbarber/barber-booking-backend/internal/reservation"
	"github.com/mbbarber/barber-booking-backend/internal/schedule"
	"github.com/mbbarber/barber-booking-backend/internal/summary"
)

type Handler struct {
	svc *summary.Service
}

func NewHandler(svc *summary.Service) *Handler {
	return &Handler{svc: svc}
}

type SummaryResponse struct {
	Date     string         `json:"date"` // YYYY-MM-DD
	Reserved []summary.Line `json:"reserved"`
	Open     []string       `json:"open"`
	Text     string         `json:"text"`
}

// Get renders the daily report for the requested date, defaulting to today.
// Admin-only; the date is always parsed strictly.
func (h *Handler) Get(c *gin.Context) {
	d := schedule.DateOf(time.Now())
	if raw := c.Query("date"); raw != "" {
		parsed, err := schedule.ParseDate(raw)
		if err != nil {
			response.Error(c, reservation.ErrInvalidDate)
			return
		}
		d = parsed
	}

	report, err := h.svc.Report(c.Request.Context(), d)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		Date:     d.ISO(),
		Reserved: report.Reserved,
		Open:     report.Open,
		Text:     report.Render(),
	})
}
