//go:build darwin

package power

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// pmsetController drives the SleepDisabled power-management setting through
// pmset, the same switch IOPMSetSystemPowerSetting flips underneath.
type pmsetController struct {
	log *slog.Logger
}

func newController(log *slog.Logger) Controller {
	return &pmsetController{log: log}
}

func (c *pmsetController) SetSleepDisabled(disabled bool) error {
	arg := "0"
	if disabled {
		arg = "1"
	}

	out, err := exec.Command("pmset", "-a", "disablesleep", arg).CombinedOutput()
	if err != nil {
		if os.Geteuid() != 0 {
			return fmt.Errorf("pmset -a disablesleep %s: %w", arg, ErrNeedRoot)
		}
		return fmt.Errorf("pmset -a disablesleep %s: %w: %s", arg, err, bytes.TrimSpace(out))
	}

	c.log.Debug("system sleep setting changed", "disabled", disabled)
	return nil
}

func (c *pmsetController) SleepDisabled() (bool, error) {
	out, err := exec.Command("pmset", "-g").Output()
	if err != nil {
		return false, fmt.Errorf("pmset -g: %w", err)
	}
	return parsePmsetOutput(string(out)), nil
}

// parsePmsetOutput finds the SleepDisabled line in `pmset -g` output. The
// line is absent when the setting has never been touched, which reads as
// enabled sleep.
func parsePmsetOutput(out string) bool {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "SleepDisabled" {
			return fields[1] == "1"
		}
	}
	return false
}
