// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/showtracker/internal/errs"
)

var (
	showNotFoundCode       = "SHOW_NOT_FOUND"
	userNotFoundCode       = "USER_NOT_FOUND"
	membershipNotFoundCode = "SHOW_USER_NOT_FOUND"
)

func showNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Show not found", true, &showNotFoundCode)
}

func userNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("User not found", true, &userNotFoundCode)
}

func membershipNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Show is not in the user's list", true, &membershipNotFoundCode)
}
