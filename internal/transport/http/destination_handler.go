package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wanderplan/wanderplan-api/internal/domain"
	"github.com/wanderplan/wanderplan-api/internal/service"
	"github.com/wanderplan/wanderplan-api/internal/util"
)

type DestinationHandler struct {
	destinations *service.DestinationService
}

func RegisterDestinations(e *echo.Echo, auth *service.AuthService, destinations *service.DestinationService) {
	handler := &DestinationHandler{destinations: destinations}
	g := e.Group("/trips/:tripId", RequireAuth(auth))
	g.GET("/destinations", handler.list)
	g.POST("/destinations", handler.create)
	g.GET("/destinations/:destinationId", handler.get)
	g.PUT("/destinations/:destinationId", handler.update)
	g.DELETE("/destinations/:destinationId", handler.remove)
	g.POST("/reconcile", handler.reconcile)
}

func writeDestinationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrTripNotFound):
		return c.JSON(http.StatusNotFound, util.Message("Trip not found"))
	case errors.Is(err, service.ErrDestinationNotFound):
		return c.JSON(http.StatusNotFound, util.Message("Destination not found"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, util.Message("You are not authorized to access destinations for this trip"))
	case errors.Is(err, service.ErrDestinationValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error(err.Error()))
	}
}

func (h *DestinationHandler) list(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	tripID, err := parseObjectID(c, "tripId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	dests, err := h.destinations.List(c.Request().Context(), tripID, user.ID)
	if err != nil {
		return writeDestinationError(c, err)
	}
	return c.JSON(http.StatusOK, dests)
}

type destinationCreateRequest struct {
	Name      string             `json:"name"`
	Location  *domain.Coordinate `json:"location"`
	PlaceID   *string            `json:"place_id"`
	StartDate *time.Time         `json:"start_date"`
	EndDate   *time.Time         `json:"end_date"`
}

func (h *DestinationHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	tripID, err := parseObjectID(c, "tripId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	var req destinationCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	dest, err := h.destinations.Create(c.Request().Context(), tripID, user.ID, service.DestinationCreateInput{
		Name:      req.Name,
		Location:  req.Location,
		PlaceID:   req.PlaceID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return writeDestinationError(c, err)
	}
	return c.JSON(http.StatusCreated, dest)
}

func (h *DestinationHandler) get(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	tripID, err := parseObjectID(c, "tripId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	destinationID, err := parseObjectID(c, "destinationId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	dest, err := h.destinations.Get(c.Request().Context(), tripID, destinationID, user.ID)
	if err != nil {
		return writeDestinationError(c, err)
	}
	return c.JSON(http.StatusOK, dest)
}

func (h *DestinationHandler) update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	tripID, err := parseObjectID(c, "tripId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	destinationID, err := parseObjectID(c, "destinationId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	var patch domain.DestinationPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	dest, err := h.destinations.Update(c.Request().Context(), tripID, destinationID, user.ID, patch)
	if err != nil {
		return writeDestinationError(c, err)
	}
	return c.JSON(http.StatusOK, dest)
}

func (h *DestinationHandler) remove(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	tripID, err := parseObjectID(c, "tripId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	destinationID, err := parseObjectID(c, "destinationId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	dest, err := h.destinations.Delete(c.Request().Context(), tripID, destinationID, user.ID)
	if err != nil {
		return writeDestinationError(c, err)
	}
	return c.JSON(http.StatusOK, dest)
}

func (h *DestinationHandler) reconcile(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	tripID, err := parseObjectID(c, "tripId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	removed, err := h.destinations.Reconcile(c.Request().Context(), tripID, user.ID)
	if err != nil {
		return writeDestinationError(c, err)
	}
	refs := make([]string, 0, len(removed))
	for _, id := range removed {
		refs = append(refs, id.Hex())
	}
	return c.JSON(http.StatusOK, util.Envelope{"removed": refs})
}
