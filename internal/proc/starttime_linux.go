//go:build linux

package proc

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Linux fixes USER_HZ at 100 for the /proc starttime field regardless of
// the kernel tick rate.
const userHZ = 100

// StartTime returns the process start time in Unix seconds, derived from
// /proc/<pid>/stat (start ticks since boot) and the boot time in
// /proc/stat.
func StartTime(pid int) (uint64, error) {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return 0, err
	}

	// The comm field may contain spaces and parentheses; fields are only
	// well-defined after the last closing paren.
	i := bytes.LastIndexByte(data, ')')
	if i < 0 {
		return 0, fmt.Errorf("malformed /proc/%d/stat", pid)
	}
	fields := strings.Fields(string(data[i+1:]))

	// starttime is field 22 of the full line; 19 after state.
	const startIndex = 19
	if len(fields) <= startIndex {
		return 0, fmt.Errorf("short /proc/%d/stat", pid)
	}
	ticks, err := strconv.ParseUint(fields[startIndex], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse starttime for pid %d: %w", pid, err)
	}

	boot, err := bootTime()
	if err != nil {
		return 0, err
	}
	return boot + ticks/userHZ, nil
}

// bootTime reads the btime line (boot time in Unix seconds) from /proc/stat.
func bootTime() (uint64, error) {
	data, err := os.ReadFile("/proc/stat")
	if err != nil {
		return 0, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if rest, ok := strings.CutPrefix(line, "btime "); ok {
			return strconv.ParseUint(strings.TrimSpace(rest), 10, 64)
		}
	}
	return 0, fmt.Errorf("no btime in /proc/stat")
}
