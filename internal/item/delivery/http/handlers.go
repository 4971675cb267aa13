package http

import (
	"github.com/gin-gonic/gin"

	"fast-generic-api/pkg/response"
)

// Create godoc
// @Summary     Create a new item
// @Description Creates a new item. Only name is required.
// @Tags        Items
// @Accept      json
// @Produce     json
// @Param       body body item.ItemCreate true "Item data"
// @Success     200  {object} itemResp
// @Failure     409  {object} response.Resp "Conflict - name already exists"
// @Failure     422  {object} response.Resp "Validation error"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Create(ctx, req)
	if err != nil {
		h.l.Errorf(ctx, "uc.Create: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newItemResp(output))
}

// List godoc
// @Summary     List items
// @Description Returns a page of items ordered by id. Deleted items are hidden unless include_deleted is set.
// @Tags        Items
// @Accept      json
// @Produce     json
// @Param       include_deleted query bool false "Include soft-deleted items"
// @Param       limit           query int  false "Page size (default: 20, max: 100)"
// @Param       offset          query int  false "Page offset (default: 0)"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.List(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(output))
}

// Detail godoc
// @Summary     Get item detail
// @Description Returns a single live item by its ID.
// @Tags        Items
// @Accept      json
// @Produce     json
// @Param       id path int true "Item ID"
// @Success     200 {object} itemResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Detail(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Detail: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newItemResp(output))
}

// Update godoc
// @Summary     Update an item
// @Description Partial update. Absent fields are unchanged; a null description clears it.
// @Tags        Items
// @Accept      json
// @Produce     json
// @Param       id   path int             true "Item ID"
// @Param       body body item.ItemUpdate true "Fields to update"
// @Success     200 {object} itemResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - name already exists"
// @Failure     422 {object} response.Resp "Validation error"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items/{id} [PATCH]
// @Router      /api/v1/items/{id} [PUT]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, req, err := h.processUpdateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Update(ctx, id, req)
	if err != nil {
		h.l.Errorf(ctx, "uc.Update: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newItemResp(output))
}

// Delete godoc
// @Summary     Delete an item
// @Description Soft-deletes an item (sets is_deleted).
// @Tags        Items
// @Accept      json
// @Produce     json
// @Param       id path int true "Item ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.uc.Delete(ctx, id); err != nil {
		h.l.Errorf(ctx, "uc.Delete: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}

// Restore godoc
// @Summary     Restore an item
// @Description Clears is_deleted on a soft-deleted item.
// @Tags        Items
// @Accept      json
// @Produce     json
// @Param       id path int true "Item ID"
// @Success     200 {object} itemResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - not deleted or name taken"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items/{id}/restore [POST]
func (h *handler) Restore(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Restore(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Restore: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newItemResp(output))
}
