// File: services/scheduling/errors.go
package scheduling

import "errors"

// ErrUnknownAppointmentType marks a slot query for a type that does not
// exist or is inactive. Handlers translate it to a 404.
var ErrUnknownAppointmentType = errors.New("unknown appointment type")
