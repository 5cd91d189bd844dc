package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderplan/wanderplan-api/internal/domain"
	"github.com/wanderplan/wanderplan-api/internal/service"
	"github.com/wanderplan/wanderplan-api/internal/util"
)

type TripHandler struct {
	trips *service.TripService
}

func RegisterTrips(e *echo.Echo, auth *service.AuthService, trips *service.TripService) {
	handler := &TripHandler{trips: trips}
	g := e.Group("/trips", RequireAuth(auth))
	g.POST("", handler.create)
	g.GET("", handler.list)
	g.GET("/:tripId", handler.get)
	g.PUT("/:tripId", handler.update)
	g.DELETE("/:tripId", handler.remove)
	g.POST("/:tripId/travellers", handler.addTraveller)
	g.DELETE("/:tripId/travellers/:userId", handler.removeTraveller)
}

// parseObjectID validates a path parameter as a Mongo ObjectID hex string.
func parseObjectID(c echo.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid " + name)
	}
	return id, nil
}

func writeTripError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrTripNotFound):
		return c.JSON(http.StatusNotFound, util.Message("Trip not found"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, util.Message("You are not authorized to access this trip"))
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, util.Message("User not found"))
	case errors.Is(err, service.ErrTripValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error(err.Error()))
	}
}

type tripCreateRequest struct {
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func (h *TripHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	var req tripCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	trip, err := h.trips.Create(c.Request().Context(), user.ID, service.TripCreateInput{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return writeTripError(c, err)
	}
	return c.JSON(http.StatusCreated, trip)
}

func (h *TripHandler) list(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	trips, err := h.trips.ListForUser(c.Request().Context(), user.ID)
	if err != nil {
		return writeTripError(c, err)
	}
	return c.JSON(http.StatusOK, trips)
}

func (h *TripHandler) get(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	tripID, err := parseObjectID(c, "tripId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	trip, err := h.trips.Get(c.Request().Context(), tripID, user.ID)
	if err != nil {
		return writeTripError(c, err)
	}
	return c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	tripID, err := parseObjectID(c, "tripId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	var patch domain.TripPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	trip, err := h.trips.Update(c.Request().Context(), tripID, user.ID, patch)
	if err != nil {
		return writeTripError(c, err)
	}
	return c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) remove(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	tripID, err := parseObjectID(c, "tripId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	if err := h.trips.Delete(c.Request().Context(), tripID, user.ID); err != nil {
		return writeTripError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("Trip deleted successfully"))
}

func (h *TripHandler) addTraveller(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	tripID, err := parseObjectID(c, "tripId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("user_id must be a valid UUID"))
	}
	trip, err := h.trips.AddTraveller(c.Request().Context(), tripID, user.ID, req.UserID)
	if err != nil {
		return writeTripError(c, err)
	}
	return c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) removeTraveller(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	tripID, err := parseObjectID(c, "tripId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	trip, err := h.trips.RemoveTraveller(c.Request().Context(), tripID, user.ID, c.Param("userId"))
	if err != nil {
		return writeTripError(c, err)
	}
	return c.JSON(http.StatusOK, trip)
}
