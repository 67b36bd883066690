package diag

import (
	"fmt"
	"strings"
)

// Mode selects how integrity problems are reported.
type Mode int

const (
	// ModeWarn reports diagnostics and still emits output.
	ModeWarn Mode = iota
	// ModeSilent skips optional checks and emits output.
	ModeSilent
	// ModeErr reports diagnostics and withholds output if there are any.
	ModeErr
)

// ParseMode accepts "silent", "warn", or "err" (also "error").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warn", "":
		return ModeWarn, nil
	case "silent":
		return ModeSilent, nil
	case "err", "error":
		return ModeErr, nil
	default:
		return ModeWarn, fmt.Errorf("unknown mode %q (want silent, warn, or err)", s)
	}
}

// String returns the configuration spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSilent:
		return "silent"
	case ModeErr:
		return "err"
	default:
		return "warn"
	}
}

// Checks reports whether optional checks (file probes, label checks,
// referential checks) run in this mode.
func (m Mode) Checks() bool { return m != ModeSilent }

// Severity is the severity assigned to integrity diagnostics in this mode.
func (m Mode) Severity() Severity {
	if m == ModeErr {
		return SeverityError
	}
	return SeverityWarn
}
