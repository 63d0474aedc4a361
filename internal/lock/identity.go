package lock

import (
	"strconv"
	"strings"
)

// Identity denotes one running instance of the tool. The PID alone is
// ambiguous once the OS recycles it, so the process start time disambiguates
// where the platform can report one. A zero StartTime degrades to bare-PID
// tracking.
type Identity struct {
	PID       int
	StartTime uint64
}

// String renders the registry line form: "PID:START_TIME", or a bare
// decimal PID when no start time is known.
func (id Identity) String() string {
	if id.StartTime == 0 {
		return strconv.Itoa(id.PID)
	}
	return strconv.Itoa(id.PID) + ":" + strconv.FormatUint(id.StartTime, 10)
}

// ParseIdentity parses one registry line. Both forms produced by String are
// accepted. ok is false for anything else; callers skip bad lines rather
// than fail.
func ParseIdentity(line string) (Identity, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Identity{}, false
	}

	pidPart, startPart, hasStart := strings.Cut(line, ":")
	pid, err := strconv.Atoi(pidPart)
	if err != nil || pid <= 0 {
		return Identity{}, false
	}

	id := Identity{PID: pid}
	if hasStart {
		start, err := strconv.ParseUint(startPart, 10, 64)
		if err != nil {
			return Identity{}, false
		}
		id.StartTime = start
	}
	return id, true
}
