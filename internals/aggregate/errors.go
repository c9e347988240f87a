// file: internals/aggregate/errors.go
package aggregate

import "errors"

/* =========================
   Taksonomi error engine
=========================
Controller memetakan sentinel ini ke status HTTP:
ErrValidation -> 400, ErrUnauthorized -> 401, ErrNotFound -> 404,
ErrConflict -> 409, selain itu -> 500.
*/

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("entity not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)
