package postgre

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is raised by items_live_name_idx when a live name is reused.
const uniqueViolation = pq.ErrorCode("23505")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
