package restaurantserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	cartapp "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/application"
	cartdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/domain"
	cartports "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/ports"
	menuapp "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/application"
	menuports "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/ports"
	ordersapp "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/application"
	ordersdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	ordersports "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/ports"
	staffapp "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/application"
	staffports "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/ports"
	apierrors "github.com/firaolassefa/restaurant-management-system/internal/shared/errors"
)

// responder turns service errors into RFC 7807 problems. Order matters: the
// first mapper that claims an error wins.
var responder = apierrors.NewChainedResponder("",
	mapNotFound,
	mapValidation,
	mapConflict,
	mapAuthentication,
)

func mapNotFound(err error) (apierrors.ProblemDetail, bool) {
	resource := ""
	switch {
	case errors.Is(err, menuports.ErrNotFound):
		resource = "menu item"
	case errors.Is(err, cartports.ErrNotFound):
		resource = "cart"
	case errors.Is(err, cartdomain.ErrLineNotFound):
		resource = "cart line"
	case errors.Is(err, ordersports.ErrNotFound):
		resource = "order"
	case errors.Is(err, staffports.ErrNotFound):
		resource = "staff member"
	default:
		return apierrors.ProblemDetail{}, false
	}
	return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", resource), true
}

func mapValidation(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, menuapp.ErrInvalidInput) ||
		errors.Is(err, cartapp.ErrInvalidInput) ||
		errors.Is(err, ordersapp.ErrInvalidInput) ||
		errors.Is(err, staffapp.ErrInvalidInput) {
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	if errors.Is(err, cartdomain.ErrEmptyCart) {
		return apierrors.ErrValidation.WithDetail(err.Error()).WithCode("empty_cart"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapConflict(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersdomain.ErrInvalidTransition):
		return apierrors.ErrConflict.WithDetail(err.Error()).WithCode("invalid_transition"), true
	case errors.Is(err, cartdomain.ErrItemUnavailable):
		return apierrors.ErrConflict.WithDetail(err.Error()).WithCode("item_unavailable"), true
	case errors.Is(err, staffports.ErrDuplicateEmail):
		return apierrors.ErrConflict.WithDetail(err.Error()).WithCode("duplicate_email"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapAuthentication(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, staffapp.ErrAuthentication) {
		return apierrors.ErrUnauthorized.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondServiceError maps any domain or application error. Unknown errors become 500s.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}
