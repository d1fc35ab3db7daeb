package controllers

import (
	"strconv"

	apperrors "bookstore-api/common/errors"
	"bookstore-api/middleware"
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
)

// parsePaginationParams extracts and validates page/limit query params.
func parsePaginationParams(c *gin.Context) (int, int) {
	const maxLimit = 50
	page, limit := 1, 10
	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && l > 0 {
		if l > maxLimit {
			l = maxLimit
		}
		limit = l
	}
	return page, limit
}

// parseIDParam parses a numeric path parameter. A non-numeric or non-positive
// value writes a 400 envelope and reports false.
func parseIDParam(c *gin.Context, name, message string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.AbortWith(c, apperrors.ErrBadRequest.WithMessage(message))
		return 0, false
	}
	return uint(id), true
}

// principal returns the authenticated caller. Routes behind Authenticate
// always have one; a miss means a wiring bug, reported as 401.
func principal(c *gin.Context) (middleware.Principal, bool) {
	p, err := middleware.GetPrincipal(c)
	if err != nil {
		apperrors.AbortWith(c, apperrors.ErrUnauthorized)
		return middleware.Principal{}, false
	}
	return p, true
}

// abortService converts a service error into the response envelope.
func abortService(c *gin.Context, svcErr *services.ServiceError) {
	apperrors.Abort(c, svcErr.StatusCode, svcErr.Message)
}

// abortBinding reports a request-body binding failure.
func abortBinding(c *gin.Context, err error) {
	apperrors.AbortWith(c, apperrors.ErrValidation.WithDetails(err.Error()))
}
