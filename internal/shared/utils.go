package shared

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AI2HU/gdc/internal/models"
)

// MaxLimit caps the ?limit= query parameter
const MaxLimit = 100

// ParseIDParam parses the :id path parameter as a positive episode id
func ParseIDParam(c *gin.Context) (int, error) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid episode id: %q", raw)
	}
	return id, nil
}

// ParseLimit parses the limit query parameter. Missing means no limit (0);
// values outside 1..MaxLimit are rejected.
func ParseLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > MaxLimit {
		return 0, fmt.Errorf("limit must be between 1 and %d", MaxLimit)
	}
	return limit, nil
}

// ParseStateFilter parses the state query parameter and returns a pointer to the state or nil
func ParseStateFilter(c *gin.Context) (*models.DisplayState, error) {
	raw := c.Query("state")
	if raw == "" {
		return nil, nil
	}
	state, err := models.ParseDisplayState(raw)
	if err != nil {
		return nil, err
	}
	return &state, nil
}
