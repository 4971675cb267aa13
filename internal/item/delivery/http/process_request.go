package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"fast-generic-api/internal/item"
)

// processCreateReq decodes the create body into an ItemCreate.
func (h *handler) processCreateReq(c *gin.Context) (item.ItemCreate, error) {
	body, err := c.GetRawData()
	if err != nil {
		return item.ItemCreate{}, err
	}
	return item.DecodeItemCreate(body)
}

// processListReq binds the list query parameters.
func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processUpdateReq reads the id path param and decodes the body into an ItemUpdate.
func (h *handler) processUpdateReq(c *gin.Context) (int64, item.ItemUpdate, error) {
	id, err := h.processIDParam(c)
	if err != nil {
		return 0, item.ItemUpdate{}, err
	}
	body, err := c.GetRawData()
	if err != nil {
		return 0, item.ItemUpdate{}, err
	}
	input, err := item.DecodeItemUpdate(body)
	if err != nil {
		return 0, item.ItemUpdate{}, err
	}
	return id, input, nil
}

// processIDParam parses the :id path param as a positive integer.
func (h *handler) processIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}
