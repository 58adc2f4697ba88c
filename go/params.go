package restaurantserver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	apierrors "github.com/firaolassefa/restaurant-management-system/internal/shared/errors"
)

// parseIDParam binds a positive integer path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	var id int64
	if err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, c.Param(name), &id); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(fmt.Sprintf("invalid %s: %v", name, err)).WithExtension("parameter", name))
		return 0, false
	}
	if id <= 0 {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(fmt.Sprintf("%s must be positive", name)).WithExtension("parameter", name))
		return 0, false
	}
	return id, true
}

// parseStringParam binds a non-empty string path parameter.
func parseStringParam(c *gin.Context, name string) (string, bool) {
	var value string
	if err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, c.Param(name), &value); err != nil || strings.TrimSpace(value) == "" {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(fmt.Sprintf("invalid %s", name)).WithExtension("parameter", name))
		return "", false
	}
	return value, true
}

// parseBoolQuery reads an optional boolean query parameter.
func parseBoolQuery(c *gin.Context, name string) (bool, bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return false, false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, true, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return value, true, nil
}
