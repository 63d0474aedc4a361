//go:build darwin

package proc

import "golang.org/x/sys/unix"

// StartTime returns the process start time in Unix seconds, read from the
// kernel's per-process info via the kern.proc.pid sysctl.
func StartTime(pid int) (uint64, error) {
	kp, err := unix.SysctlKinfoProc("kern.proc.pid", pid)
	if err != nil {
		return 0, err
	}
	return uint64(kp.Proc.P_starttime.Sec), nil
}
