package update

import "strings"

// Status is the outcome of an update check.
type Status int

const (
	NoUpdate Status = iota
	Optional
	Mandatory
)

func (s Status) String() string {
	switch s {
	case NoUpdate:
		return "NO_UPDATE"
	case Optional:
		return "OPTIONAL"
	case Mandatory:
		return "MANDATORY"
	default:
		return "UNKNOWN"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// NotificationType says how often an optional update is announced.
type NotificationType int

const (
	// Once announces an optional version a single time.
	Once NotificationType = iota
	// Always announces an optional version on every check.
	Always
)

func (n NotificationType) String() string {
	if n == Always {
		return "ALWAYS"
	}
	return "ONCE"
}

func (n NotificationType) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// ParseNotificationType is case-insensitive; anything other than "always"
// is Once.
func ParseNotificationType(s string) NotificationType {
	if strings.EqualFold(strings.TrimSpace(s), "always") {
		return Always
	}
	return Once
}
