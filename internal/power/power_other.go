//go:build !darwin && !linux

package power

import "log/slog"

type unsupportedController struct{}

func newController(*slog.Logger) Controller {
	return unsupportedController{}
}

func (unsupportedController) SetSleepDisabled(bool) error {
	return ErrUnsupported
}

func (unsupportedController) SleepDisabled() (bool, error) {
	return false, ErrUnsupported
}
