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

type AttractionHandler struct {
	attractions *service.AttractionService
}

// RegisterAttractions wires the embedded-attraction routes. Reads need only a
// valid token; writes additionally require the edit capability, checked in the
// service against the owning trip's travellers.
func RegisterAttractions(e *echo.Echo, auth *service.AuthService, attractions *service.AttractionService) {
	handler := &AttractionHandler{attractions: attractions}
	g := e.Group("/trips/:tripId/destinations/:destinationId/attractions", RequireAuth(auth))
	g.GET("", handler.list)
	g.POST("", handler.create)
	g.GET("/:attractionId", handler.get)
	g.PUT("/:attractionId", handler.update)
	g.DELETE("/:attractionId", handler.remove)
	g.POST("/:attractionId/photos", handler.addPhoto)
}

func writeAttractionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrTripNotFound):
		return c.JSON(http.StatusNotFound, util.Message("Trip not found"))
	case errors.Is(err, service.ErrDestinationNotFound):
		return c.JSON(http.StatusNotFound, util.Message("Destination not found"))
	case errors.Is(err, service.ErrAttractionNotFound):
		return c.JSON(http.StatusNotFound, util.Message("Attraction not found"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, util.Message("You are not authorized to edit this trip"))
	case errors.Is(err, service.ErrAttractionValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error(err.Error()))
	}
}

func (h *AttractionHandler) list(c echo.Context) error {
	destinationID, err := parseObjectID(c, "destinationId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	attractions, err := h.attractions.List(c.Request().Context(), destinationID)
	if err != nil {
		return writeAttractionError(c, err)
	}
	return c.JSON(http.StatusOK, attractions)
}

func (h *AttractionHandler) get(c echo.Context) error {
	destinationID, err := parseObjectID(c, "destinationId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	attractionID, err := parseObjectID(c, "attractionId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	attraction, err := h.attractions.Get(c.Request().Context(), destinationID, attractionID)
	if err != nil {
		return writeAttractionError(c, err)
	}
	return c.JSON(http.StatusOK, attraction)
}

type attractionCreateRequest struct {
	Name      string             `json:"name"`
	Location  *domain.Coordinate `json:"location"`
	Address   *string            `json:"address"`
	PlaceID   *string            `json:"place_id"`
	Notes     *string            `json:"notes"`
	Cost      *float64           `json:"cost"`
	VisitDate *time.Time         `json:"visit_date"`
	Visited   bool               `json:"visited"`
}

func (h *AttractionHandler) create(c echo.Context) error {
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
	var req attractionCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	attraction, err := h.attractions.Create(c.Request().Context(), tripID, destinationID, user.ID, service.AttractionCreateInput{
		Name:      req.Name,
		Location:  req.Location,
		Address:   req.Address,
		PlaceID:   req.PlaceID,
		Notes:     req.Notes,
		Cost:      req.Cost,
		VisitDate: req.VisitDate,
		Visited:   req.Visited,
	})
	if err != nil {
		return writeAttractionError(c, err)
	}
	return c.JSON(http.StatusCreated, attraction)
}

func (h *AttractionHandler) update(c echo.Context) error {
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
	attractionID, err := parseObjectID(c, "attractionId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	var patch domain.AttractionPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	attraction, err := h.attractions.Update(c.Request().Context(), tripID, destinationID, attractionID, user.ID, patch)
	if err != nil {
		return writeAttractionError(c, err)
	}
	return c.JSON(http.StatusOK, attraction)
}

func (h *AttractionHandler) remove(c echo.Context) error {
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
	attractionID, err := parseObjectID(c, "attractionId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	if err := h.attractions.Delete(c.Request().Context(), tripID, destinationID, attractionID, user.ID); err != nil {
		return writeAttractionError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("Attraction deleted successfully"))
}

func (h *AttractionHandler) addPhoto(c echo.Context) error {
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
	attractionID, err := parseObjectID(c, "attractionId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("file upload required"))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read upload"))
	}
	defer src.Close()

	url, err := h.attractions.AddPhoto(c.Request().Context(), tripID, destinationID, attractionID, user.ID, service.PhotoUpload{
		Reader:      src,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return writeAttractionError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{"url": url})
}
