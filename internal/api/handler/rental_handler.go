package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wearloop/rental-system/internal/core/ports"
)

// RentalHandler handles HTTP requests for the rental lifecycle: renting,
// returning, history, and the occupancy/deletion surface of items.
type RentalHandler struct {
	service ports.RentalService
}

func NewRentalHandler(service ports.RentalService) *RentalHandler {
	return &RentalHandler{service: service}
}

// Rent handles POST /v1/rentals.
//
// @Summary      Rent an item
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      rentRequest  true  "Rental details"
// @Success      201   {object}  rentalResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/rentals [post]
func (h *RentalHandler) Rent(c echo.Context) error {
	var req rentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actorID, err := ctxActorID(c)
	if err != nil {
		return err
	}

	rental, err := h.service.Rent(c.Request().Context(), ports.RentInput{
		ItemID:       req.ItemID,
		RenterID:     actorID,
		DurationDays: req.DurationDays,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toRentalResponse(rental))
}

// Return handles POST /v1/rentals/:id/return.
//
// @Summary      Return a rented item
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Rental id"
// @Success      200  {object}  rentalResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/rentals/{id}/return [post]
func (h *RentalHandler) Return(c echo.Context) error {
	actorID, err := ctxActorID(c)
	if err != nil {
		return err
	}

	rental, err := h.service.Return(c.Request().Context(), c.Param("id"), actorID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRentalResponse(rental))
}

// Get handles GET /v1/rentals/:id.
//
// @Summary      Get a rental by id
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Rental id"
// @Success      200  {object}  rentalResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/rentals/{id} [get]
func (h *RentalHandler) Get(c echo.Context) error {
	actorID, err := ctxActorID(c)
	if err != nil {
		return err
	}

	rental, err := h.service.GetRental(c.Request().Context(), c.Param("id"), actorID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRentalResponse(rental))
}

// ListRentals handles GET /v1/rentals (the actor as renter).
//
// @Summary      List my rentals
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (active|returned)"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  rentalListResponse
// @Router       /v1/rentals [get]
func (h *RentalHandler) ListRentals(c echo.Context) error {
	actorID, err := ctxActorID(c)
	if err != nil {
		return err
	}

	page, err := h.service.ListRentals(c.Request().Context(), actorID, rentalFilterFromQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRentalListResponse(page))
}

// ListLendings handles GET /v1/lendings (rentals of items the actor owns).
//
// @Summary      List rentals of my items
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (active|returned)"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  rentalListResponse
// @Router       /v1/lendings [get]
func (h *RentalHandler) ListLendings(c echo.Context) error {
	actorID, err := ctxActorID(c)
	if err != nil {
		return err
	}

	page, err := h.service.ListLendings(c.Request().Context(), actorID, rentalFilterFromQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRentalListResponse(page))
}

// GetOccupancy handles GET /v1/items/:id/occupancy.
//
// @Summary      Get the occupancy state of an item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  occupancyResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/items/{id}/occupancy [get]
func (h *RentalHandler) GetOccupancy(c echo.Context) error {
	itemID := c.Param("id")

	state, err := h.service.GetOccupancy(c.Request().Context(), itemID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, occupancyResponse{
		ItemID:    itemID,
		Occupancy: string(state.Occupancy),
		RentalID:  state.RentalID,
	})
}

// GetDeletable handles GET /v1/items/:id/deletable.
//
// @Summary      Check whether an item can be deleted
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  deletableResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/items/{id}/deletable [get]
func (h *RentalHandler) GetDeletable(c echo.Context) error {
	itemID := c.Param("id")

	deletable, err := h.service.IsDeletable(c.Request().Context(), itemID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deletableResponse{ItemID: itemID, Deletable: deletable})
}

// DeleteItem handles DELETE /v1/items/:id.
//
// @Summary      Delete a listing
// @Tags         items
// @Security     BearerAuth
// @Param        id  path  string  true  "Item id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/items/{id} [delete]
func (h *RentalHandler) DeleteItem(c echo.Context) error {
	actorID, err := ctxActorID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteItem(c.Request().Context(), c.Param("id"), actorID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// rentalFilterFromQuery reads the shared status/page/limit query parameters.
// Out-of-range values are left to the service to normalize.
func rentalFilterFromQuery(c echo.Context) ports.RentalListFilter {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return ports.RentalListFilter{
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	}
}
