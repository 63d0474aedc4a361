package power

import (
	"errors"
	"log/slog"
)

// Sentinel errors returned by controllers.
var (
	// ErrNeedRoot is returned when the platform mechanism refused to change
	// the setting for lack of privilege.
	ErrNeedRoot = errors.New("changing the sleep setting requires root; try sudo")

	// ErrUnsupported is returned on platforms with no known control
	// mechanism.
	ErrUnsupported = errors.New("sleep control is not supported on this platform")
)

// Controller is the capability that flips the global sleep-disabled
// setting. SetSleepDisabled is idempotent and callable repeatedly with the
// same value.
type Controller interface {
	// SetSleepDisabled enables or disables system-wide sleep.
	SetSleepDisabled(disabled bool) error

	// SleepDisabled reports the current setting.
	SleepDisabled() (bool, error)
}

// New returns the controller for the current platform.
func New(log *slog.Logger) Controller {
	if log == nil {
		log = slog.Default()
	}
	return newController(log)
}
