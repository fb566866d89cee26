// Package services holds the domain services of the inventory system.
// Each service is registered in the container by app.SetupDefaultContainer
// and obtains its collaborators there; none of them keeps global state.
package services

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// validate is the shared struct validator for service inputs.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrNotFound is returned when a row does not exist or is inactive.
var ErrNotFound = errors.New("services: not found")
