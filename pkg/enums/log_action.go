package enums

import "fmt"

// LogAction classifies a recorded moderation action.
type LogAction string

const (
	LogActionKick  LogAction = "kick"
	LogActionWarn  LogAction = "warn"
	LogActionBan   LogAction = "ban"
	LogActionOther LogAction = "other"
)

var validLogActions = []LogAction{
	LogActionKick,
	LogActionWarn,
	LogActionBan,
	LogActionOther,
}

// String implements fmt.Stringer.
func (a LogAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known LogAction.
func (a LogAction) IsValid() bool {
	for _, candidate := range validLogActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseLogAction converts raw input into a LogAction.
func ParseLogAction(value string) (LogAction, error) {
	for _, candidate := range validLogActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid log action %q", value)
}
