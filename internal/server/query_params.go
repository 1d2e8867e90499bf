package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/rolodex/internal/customer/domain"
)

func parseIDParam(c *gin.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, customerdomain.ErrInvalidID
	}
	return id, nil
}
