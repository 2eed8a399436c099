package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/catalog-api/internal/api/metrics"
	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
)

// ItemHandler handles HTTP requests for item operations.
type ItemHandler struct {
	service ports.ItemService
}

func NewItemHandler(service ports.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// Create adds an item owned by the caller.
//
// @Summary      Create item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createItemRequest  true  "Item details"
// @Success      201   {object}  itemResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	me, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.service.Create(c.Request().Context(), ports.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Status:      domain.ItemStatus(req.Status),
		OwnerID:     me.ID,
	})
	if err != nil {
		metrics.ItemOperationsTotal.WithLabelValues("create", opResult(err)).Inc()
		return err
	}

	metrics.ItemOperationsTotal.WithLabelValues("create", "ok").Inc()
	return c.JSON(http.StatusCreated, toItemResponse(item))
}

// List returns one page of items, newest first.
//
// @Summary      List items
// @Tags         items
// @Produce      json
// @Param        page    query     int     false  "Page number"     minimum(1)
// @Param        size    query     int     false  "Items per page"  minimum(1) maximum(100)
// @Param        status  query     string  false  "Status filter"   Enums(active, inactive, archived)
// @Success      200     {object}  itemListResponse
// @Failure      422     {object}  errorResponse
// @Router       /items [get]
func (h *ItemHandler) List(c echo.Context) error {
	q := listItemsQuery{Page: 1, Size: 10}
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	return h.list(c, ports.ListItemsInput{Page: q.Page, Size: q.Size, Status: domain.ItemStatus(q.Status)})
}

// Mine returns one page of the caller's items.
//
// @Summary      List my items
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number"     minimum(1)
// @Param        size  query     int  false  "Items per page"  minimum(1) maximum(100)
// @Success      200   {object}  itemListResponse
// @Failure      401   {object}  errorResponse
// @Router       /items/my-items [get]
func (h *ItemHandler) Mine(c echo.Context) error {
	me, err := ctxUser(c)
	if err != nil {
		return err
	}
	q := listItemsQuery{Page: 1, Size: 10}
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	return h.list(c, ports.ListItemsInput{Page: q.Page, Size: q.Size, Status: domain.ItemStatus(q.Status), OwnerID: me.ID})
}

// Get returns one item. No authentication is needed.
//
// @Summary      Get item by id
// @Tags         items
// @Produce      json
// @Param        id   path      int  true  "Item id"
// @Success      200  {object}  itemResponse
// @Failure      404  {object}  errorResponse
// @Router       /items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Update applies a partial update. Only the owner may call it.
//
// @Summary      Update item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Item id"
// @Param        body  body      updateItemRequest  true  "Fields to change"
// @Success      200   {object}  itemResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /items/{id} [put]
func (h *ItemHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	return h.update(c, id, req.patch(), "update")
}

// UpdateStatus changes only the status. The value is read from the status
// query parameter or a JSON body.
//
// @Summary      Update item status
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      int     true   "Item id"
// @Param        status  query     string  false  "New status"  Enums(active, inactive, archived)
// @Success      200     {object}  itemResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /items/{id}/status [patch]
func (h *ItemHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if s := c.QueryParam("status"); s != "" {
		req.Status = s
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	st := domain.ItemStatus(req.Status)
	return h.update(c, id, domain.ItemPatch{Status: &st}, "status")
}

// Delete removes an item. Only the owner may call it.
//
// @Summary      Delete item
// @Tags         items
// @Security     BearerAuth
// @Param        id   path  int  true  "Item id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	me, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id, me.ID); err != nil {
		metrics.ItemOperationsTotal.WithLabelValues("delete", opResult(err)).Inc()
		return err
	}
	metrics.ItemOperationsTotal.WithLabelValues("delete", "ok").Inc()
	return c.NoContent(http.StatusNoContent)
}

func (h *ItemHandler) list(c echo.Context, in ports.ListItemsInput) error {
	res, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemListResponse(res))
}

func (h *ItemHandler) update(c echo.Context, id int64, patch domain.ItemPatch, op string) error {
	me, err := ctxUser(c)
	if err != nil {
		return err
	}
	item, err := h.service.Update(c.Request().Context(), id, me.ID, patch)
	if err != nil {
		metrics.ItemOperationsTotal.WithLabelValues(op, opResult(err)).Inc()
		return err
	}
	metrics.ItemOperationsTotal.WithLabelValues(op, "ok").Inc()
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// opResult is the result label for a failed item mutation.
func opResult(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrItemNotFound):
		return "not_found"
	case errors.As(err, &ve):
		return "invalid"
	default:
		return "error"
	}
}
