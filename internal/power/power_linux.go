//go:build linux

package power

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// sleepTargets are the systemd units that gate every suspend path.
var sleepTargets = []string{
	"sleep.target",
	"suspend.target",
	"hibernate.target",
	"hybrid-sleep.target",
}

// systemdController disables sleep globally by masking the systemd sleep
// targets, and re-enables it by unmasking them. Masking persists across the
// process, which is why the registry reference count exists.
type systemdController struct {
	log *slog.Logger
}

func newController(log *slog.Logger) Controller {
	return &systemdController{log: log}
}

func (c *systemdController) SetSleepDisabled(disabled bool) error {
	verb := "unmask"
	if disabled {
		verb = "mask"
	}

	args := append([]string{verb}, sleepTargets...)
	out, err := exec.Command("systemctl", args...).CombinedOutput()
	if err != nil {
		if os.Geteuid() != 0 {
			return fmt.Errorf("systemctl %s: %w", verb, ErrNeedRoot)
		}
		return fmt.Errorf("systemctl %s: %w: %s", verb, err, bytes.TrimSpace(out))
	}

	c.log.Debug("system sleep setting changed", "disabled", disabled)
	return nil
}

func (c *systemdController) SleepDisabled() (bool, error) {
	// is-enabled prints "masked" (and exits non-zero) for a masked unit, so
	// the exit status alone is not meaningful here.
	out, _ := exec.Command("systemctl", "is-enabled", "sleep.target").Output()
	return strings.TrimSpace(string(out)) == "masked", nil
}
