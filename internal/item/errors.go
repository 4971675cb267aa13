package item

import "errors"

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrDuplicateName  = errors.New("item name already exists")
	ErrItemNotDeleted = errors.New("item is not deleted")
	ErrNullName       = errors.New("item name may not be null")
)
