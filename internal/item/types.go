package item

import (
	"fast-generic-api/pkg/serializer"
)

// --- Shapes ---

// Item is the full external view of a stored item.
type Item struct {
	ID          int64                       `json:"id"          serializer:"required"`
	Name        string                      `json:"name"        serializer:"required"`
	Description serializer.Optional[string] `json:"description"`
	IsDeleted   bool                        `json:"is_deleted"  serializer:"required"`
}

// ItemCreate is the input for creating an item. ID and IsDeleted are assigned by the server.
type ItemCreate struct {
	Name        string                      `json:"name"        serializer:"required"`
	Description serializer.Optional[string] `json:"description"`
}

// ItemUpdate is a partial update. An absent field is left unchanged;
// a null description clears it. A null name decodes fine; the use case
// refuses to apply it.
type ItemUpdate struct {
	Name        serializer.Optional[string] `json:"name"`
	Description serializer.Optional[string] `json:"description"`
}

// Empty reports whether the update would change nothing.
func (u ItemUpdate) Empty() bool {
	return !u.Name.IsPresent() && !u.Description.IsPresent()
}

// Apply returns it with the present fields of u applied.
func (u ItemUpdate) Apply(it Item) Item {
	if name, ok := u.Name.Get(); ok {
		it.Name = name
	}
	switch {
	case u.Description.IsSet():
		it.Description = u.Description
	case u.Description.IsNull():
		it.Description = serializer.Optional[string]{}
	}
	return it
}

// DecodeItem builds an Item from a JSON object.
func DecodeItem(data []byte) (Item, error) {
	return serializer.Decode[Item](data)
}

// DecodeItemCreate builds an ItemCreate from a JSON object.
func DecodeItemCreate(data []byte) (ItemCreate, error) {
	return serializer.Decode[ItemCreate](data)
}

// DecodeItemUpdate builds an ItemUpdate from a JSON object.
func DecodeItemUpdate(data []byte) (ItemUpdate, error) {
	return serializer.Decode[ItemUpdate](data)
}

// ItemFromMap builds an Item from a field mapping.
func ItemFromMap(m map[string]any) (Item, error) {
	return serializer.DecodeMap[Item](m)
}

// ItemCreateFromMap builds an ItemCreate from a field mapping.
func ItemCreateFromMap(m map[string]any) (ItemCreate, error) {
	return serializer.DecodeMap[ItemCreate](m)
}

// ItemUpdateFromMap builds an ItemUpdate from a field mapping.
func ItemUpdateFromMap(m map[string]any) (ItemUpdate, error) {
	return serializer.DecodeMap[ItemUpdate](m)
}

// --- UseCase Inputs ---

type ListItemsInput struct {
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// --- UseCase Outputs ---

type ListItemsOutput struct {
	Items  []Item
	Total  int
	Limit  int
	Offset int
}
