package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homebooking/internal/pkg/response"
)

const (
	msgCreated     = "Booking submitted successfully!"
	msgInternal    = "Internal server error. Please try again."
	msgBadBody     = "Invalid request body"
	msgServerError = "Server error"
	msgAlive       = "Booking API endpoint is working. Use POST to submit bookings."
)

// HandlerOptions switch on behaviour that is off in a default deployment.
type HandlerOptions struct {
	// ExposeErrors puts the underlying error text into 500 bodies.
	ExposeErrors bool
	// ExposeList mounts GET /bookings/list. The rows carry customer contact
	// details and the route has no access control.
	ExposeList bool
}

type Handler struct {
	service *Service
	opts    HandlerOptions
}

func NewHandler(service *Service, opts HandlerOptions) *Handler {
	return &Handler{service: service, opts: opts}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.Status)
	rg.POST("/bookings", h.CreateBooking)
	if h.opts.ExposeList {
		rg.GET("/bookings/list", h.ListBookings)
	}
}

func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": msgAlive})
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, msgBadBody)
		return
	}

	res, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		var missing *MissingFieldsError
		if errors.As(err, &missing) {
			response.Error(c, http.StatusBadRequest, missing.Error())
			return
		}
		h.internalError(c, err)
		return
	}

	response.Success(c, http.StatusOK, msgCreated, res)
}

func (h *Handler) ListBookings(c *gin.Context) {
	rows, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
}

func (h *Handler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	detail := msgServerError
	if h.opts.ExposeErrors {
		detail = err.Error()
	}
	response.ErrorWithDetails(c, http.StatusInternalServerError, msgInternal, detail)
}
