package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/constants"
)

// PageParams holds the limit/offset range parameters
type PageParams struct {
	Limit  int
	Offset int
}

// GetPageParams extracts and clamps limit/offset from the request
func GetPageParams(c *gin.Context) PageParams {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageLimit)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	if limit < 1 || limit > constants.MaxPageLimit {
		limit = constants.DefaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	return PageParams{
		Limit:  limit,
		Offset: offset,
	}
}
