package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wearloop/rental-system/internal/core/domain"
	"github.com/wearloop/rental-system/internal/core/ports"
)

// ListingHandler handles HTTP requests for the listing catalog.
type ListingHandler struct {
	service ports.ListingService
}

func NewListingHandler(service ports.ListingService) *ListingHandler {
	return &ListingHandler{service: service}
}

type createListingRequest struct {
	Name          string `json:"name"            validate:"required"`
	Brand         string `json:"brand"`
	Size          string `json:"size"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	PhotoURL      string `json:"photo_url"       validate:"omitempty,url"`
	DailyFeeCents int64  `json:"daily_fee_cents" validate:"min=0"`
	DepositCents  int64  `json:"deposit_cents"   validate:"min=0"`
}

type updateListingRequest struct {
	Name          string `json:"name"            validate:"required"`
	Brand         string `json:"brand"`
	Size          string `json:"size"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	PhotoURL      string `json:"photo_url"       validate:"omitempty,url"`
	DailyFeeCents int64  `json:"daily_fee_cents" validate:"min=0"`
	DepositCents  int64  `json:"deposit_cents"   validate:"min=0"`
}

type listingListResponse struct {
	Items      []*domain.Item `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// Create handles POST /v1/items.
//
// @Summary      List a new item for rent
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createListingRequest  true  "Listing details"
// @Success      201   {object}  domain.Item
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/items [post]
func (h *ListingHandler) Create(c echo.Context) error {
	var req createListingRequest
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

	item, err := h.service.CreateListing(c.Request().Context(), ports.CreateListingInput{
		OwnerID:       actorID,
		Name:          req.Name,
		Brand:         req.Brand,
		Size:          req.Size,
		Category:      req.Category,
		Description:   req.Description,
		PhotoURL:      req.PhotoURL,
		DailyFeeCents: req.DailyFeeCents,
		DepositCents:  req.DepositCents,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /v1/items/:id.
//
// @Summary      Update a listing
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Item id"
// @Param        body  body      updateListingRequest  true  "Listing details"
// @Success      200   {object}  domain.Item
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/items/{id} [put]
func (h *ListingHandler) Update(c echo.Context) error {
	var req updateListingRequest
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

	item, err := h.service.UpdateListing(c.Request().Context(), c.Param("id"), actorID, ports.UpdateListingInput{
		Name:          req.Name,
		Brand:         req.Brand,
		Size:          req.Size,
		Category:      req.Category,
		Description:   req.Description,
		PhotoURL:      req.PhotoURL,
		DailyFeeCents: req.DailyFeeCents,
		DepositCents:  req.DepositCents,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

// Get handles GET /v1/items/:id.
//
// @Summary      Get a listing by id
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  domain.Item
// @Failure      404  {object}  errorResponse
// @Router       /v1/items/{id} [get]
func (h *ListingHandler) Get(c echo.Context) error {
	item, err := h.service.GetListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

// Browse handles GET /v1/items.
//
// @Summary      Browse the listing catalog
// @Tags         items
// @Produce      json
// @Param        owner_id  query     string  false  "Only listings of this owner"
// @Param        category  query     string  false  "Filter by category"
// @Param        size      query     string  false  "Filter by size"
// @Param        search    query     string  false  "Partial match on name or brand"
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listingListResponse
// @Router       /v1/items [get]
func (h *ListingHandler) Browse(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.BrowseListings(c.Request().Context(), ports.BrowseListingsFilter{
		OwnerID:  c.QueryParam("owner_id"),
		Category: c.QueryParam("category"),
		Size:     c.QueryParam("size"),
		Search:   c.QueryParam("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listingListResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}
