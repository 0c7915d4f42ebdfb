package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/api"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/auth"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/clock"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/metrics"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/persist"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/wallet"
)

type Handler struct {
	store  *Store
	ledger *wallet.Ledger
	clock  clock.Clock

	// encodePayload renders the check-in QR payload for a fresh booking.
	// Injected to keep the payload codec out of this package.
	encodePayload func(*Booking) string
}

func NewHandler(store *Store, ledger *wallet.Ledger, clk clock.Clock, encodePayload func(*Booking) string) *Handler {
	return &Handler{store: store, ledger: ledger, clock: clk, encodePayload: encodePayload}
}

type CreateRequest struct {
	GymID           string `json:"gym_id" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
}

type ExtendRequest struct {
	Minutes int `json:"minutes" binding:"required,gt=0"`
}

type ReceiptResponse struct {
	Booking        *Booking `json:"booking"`
	TotalPaidCents int64    `json:"total_paid_cents"`
}

type CreateResponse struct {
	*Confirmation
	QRPayload string `json:"qr_payload,omitempty"`
}

// Create godoc
// @Summary      Book a session
// @Description  Charges the wallet and reserves a time-boxed session in one
// @Description  atomic step.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRequest  true  "Session details"
// @Success      201      {object}  CreateResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      402      {object}  api.InsufficientFundsResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) Create(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid start_time, use RFC3339"})
		return
	}

	conf, err := h.store.Create(c.Request.Context(), userID, req.GymID, start, req.DurationMinutes)
	if err != nil {
		metrics.RecordBooking("rejected")
		respondBookingError(c, err)
		return
	}

	metrics.RecordBooking("created")
	resp := CreateResponse{Confirmation: conf}
	if h.encodePayload != nil {
		resp.QRPayload = h.encodePayload(conf.Booking)
	}
	c.JSON(http.StatusCreated, resp)
}

// Extend godoc
// @Summary      Extend the running session
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        bookingID  path      string         true  "Booking ID"
// @Param        request    body      ExtendRequest  true  "Minutes to add"
// @Success      200        {object}  Booking
// @Failure      400        {object}  api.ErrorResponse
// @Failure      402        {object}  api.InsufficientFundsResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /bookings/{bookingID}/extend [post]
func (h *Handler) Extend(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req ExtendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	b, err := h.store.Extend(c.Request.Context(), userID, c.Param("bookingID"), req.Minutes)
	if err != nil {
		metrics.RecordExtension("rejected")
		respondBookingError(c, err)
		return
	}

	metrics.RecordExtension("extended")
	c.JSON(http.StatusOK, b)
}

// Cancel godoc
// @Summary      Cancel a booking
// @Description  Marks the booking cancelled. Cancellations never refund.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      string  true  "Booking ID"
// @Success      200        {object}  Booking
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	b, err := h.store.Cancel(c.Request.Context(), userID, c.Param("bookingID"))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	metrics.RecordCancellation()
	c.JSON(http.StatusOK, b)
}

// ListMine godoc
// @Summary      List my bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Booking
// @Router       /bookings [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	c.JSON(http.StatusOK, h.store.ListByUser(userID))
}

// Active godoc
// @Summary      Current active session
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Booking
// @Failure      404  {object}  api.ErrorResponse
// @Router       /bookings/active [get]
func (h *Handler) Active(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	b := h.store.ActiveSession(userID, h.clock.Now())
	if b == nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "no active session"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// Receipt godoc
// @Summary      Booking receipt
// @Description  Reports the initial charge plus all extensions as one total.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      string  true  "Booking ID"
// @Success      200        {object}  ReceiptResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /bookings/{bookingID}/receipt [get]
func (h *Handler) Receipt(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	b, err := h.store.Get(userID, c.Param("bookingID"))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ReceiptResponse{
		Booking:        b,
		TotalPaidCents: h.ledger.TotalPaid(b.ID),
	})
}

func respondBookingError(c *gin.Context, err error) {
	var insufficient *wallet.InsufficientFundsError
	var pe *persist.Error

	switch {
	case errors.As(err, &insufficient):
		metrics.RecordInsufficientFunds()
		c.JSON(http.StatusPaymentRequired, api.InsufficientFundsResponse{
			Error:          "insufficient funds",
			RequiredCents:  insufficient.RequiredCents,
			AvailableCents: insufficient.AvailableCents,
		})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only manage your own bookings"})
	case errors.Is(err, ErrActiveSessionExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "An active session already exists"})
	case errors.Is(err, ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Booking already cancelled"})
	case errors.Is(err, ErrSessionEnded):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Session already ended"})
	case errors.Is(err, ErrUnknownGym):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
	case errors.Is(err, ErrInvalidDuration):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Duration must be positive"})
	case errors.As(err, &pe):
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to persist state"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal error"})
	}
}
