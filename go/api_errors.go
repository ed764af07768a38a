package cartserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartapp "github.com/vegefoods/cart-service/internal/domains/cart/application"
	checkoutdomain "github.com/vegefoods/cart-service/internal/domains/checkout/domain"
	apierrors "github.com/vegefoods/cart-service/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError preserves handler call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnprocessableEntity:
		problem = apierrors.ErrUnprocessable.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

// respondServiceError maps application and domain errors onto statuses.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, checkoutdomain.ErrEmptyCart):
		respondError(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, cartapp.ErrStorage):
		respondError(c, http.StatusInternalServerError, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
