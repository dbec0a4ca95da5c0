package connection

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"flightconnect/pkg/logger"
)

type ErrorResponse struct {
	Error string    `json:"error"`
	Code  ErrorCode `json:"code"`
}

type ConnectionHandler struct {
	service   *Service
	validator *RequestValidator
	logger    logger.Logger
}

func NewConnectionHandler(s *Service, v *RequestValidator, log logger.Logger) *ConnectionHandler {
	return &ConnectionHandler{
		service:   s,
		validator: v,
		logger:    log,
	}
}

func (h *ConnectionHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/v1/flights/connections", h.SearchConnectionsHandler)
	router.GET("/health", h.HealthHandler)
}

// SearchConnectionsHandler godoc
// @Summary      Search one-stop connections
// @Description  Finds itineraries of two flights joined at a hub, ranked by total price
// @Tags         flights
// @Produce      json
// @Param        from               query  string  true   "Origin airport code"
// @Param        to                 query  string  true   "Destination airport code"
// @Param        departureDate      query  string  true   "Travel date (YYYY-MM-DD)"
// @Param        cabinClass         query  string  false  "ECONOMY, BUSINESS or FIRST_CLASS"
// @Param        passengers         query  int     false  "Number of passengers"
// @Param        maxLayoverHours    query  int     false  "Longest accepted layover in hours"
// @Param        minLayoverMinutes  query  int     false  "Shortest accepted layover in minutes"
// @Success      200 {object} SearchResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /v1/flights/connections [get]
func (h *ConnectionHandler) SearchConnectionsHandler(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid query parameters",
			Code:  ErrorCodeValidation,
		})
		return
	}

	req, err := h.validator.Validate(q)
	if err != nil {
		h.sendError(c, err)
		return
	}

	response, hit, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		h.sendError(c, err)
		return
	}

	if hit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.JSON(http.StatusOK, response)
}

// HealthHandler godoc
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200 {object} map[string]string
// @Router   /health [get]
func (h *ConnectionHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ConnectionHandler) sendError(c *gin.Context, err error) {
	var appErr *AppError

	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			h.logger.Error("connection search failed",
				logger.Field{Key: "code", Value: string(appErr.Code)},
				logger.Err(appErr.Err),
			)
		}
		c.JSON(appErr.Status, ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		})
		return
	}

	h.logger.Error("unexpected handler error", logger.Err(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "Internal Server Error",
		Code:  ErrorCodeInternalFailure,
	})
}
