package http

import (
	"errors"
	"net/http"

	"tableside/internal/core/domain/model/line"
	"tableside/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeDomainError maps an application error onto the HTTP surface.
// Illegal transitions become 409 with the committed status and the moves
// still allowed from it; lookups that missed become 404; validation
// failures become 400. Anything else is a 500 with no detail leaked.
func writeDomainError(ctx echo.Context, err error) error {
	var transitionErr *line.IllegalTransitionError
	if errors.As(err, &transitionErr) {
		allowed := make([]string, 0, len(transitionErr.Allowed))
		for _, s := range transitionErr.Allowed {
			allowed = append(allowed, s.String())
		}

		return ctx.JSON(http.StatusConflict, conflictResponse{
			Error:       transitionErr.Error(),
			Current:     transitionErr.From.String(),
			AllowedNext: allowed,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeBadRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}
