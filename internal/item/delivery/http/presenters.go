package http

import (
	"fast-generic-api/internal/item"
)

// --- Request DTOs ---

// Bodies of create and update requests are the item.ItemCreate and
// item.ItemUpdate shapes, decoded by the serializer package.

type listReq struct {
	IncludeDeleted bool `form:"include_deleted"`
	Limit          int  `form:"limit"`
	Offset         int  `form:"offset"`
}

func (r listReq) toInput() item.ListItemsInput {
	return item.ListItemsInput{
		IncludeDeleted: r.IncludeDeleted,
		Limit:          r.Limit,
		Offset:         r.Offset,
	}
}

// --- Response DTOs ---

type itemResp struct {
	Item item.Item `json:"item"`
}

func (h *handler) newItemResp(it item.Item) itemResp {
	return itemResp{Item: it}
}

type listResp struct {
	Items  []item.Item `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

func (h *handler) newListResp(out item.ListItemsOutput) listResp {
	items := out.Items
	if items == nil {
		items = []item.Item{}
	}
	return listResp{
		Items:  items,
		Total:  out.Total,
		Limit:  out.Limit,
		Offset: out.Offset,
	}
}
