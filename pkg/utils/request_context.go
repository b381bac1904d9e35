package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextUserID  = "user_id"
	ContextRole    = "Role"
	ContextTraceID = "trace_id"
)

// CurrentUserID returns the authenticated account id set by the JWT middleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(ContextUserID))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextRole) == "admin"
}

// ParsePagination reads page/pageSize query params with the given default size.
func ParsePagination(c *gin.Context, defaultSize int) (int, int, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, ErrInvalidPage
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultSize)))
	if err != nil || pageSize < 1 || pageSize > 100 {
		return 0, 0, ErrInvalidPageSize
	}

	return page, pageSize, nil
}
