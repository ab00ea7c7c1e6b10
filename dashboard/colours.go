package dashboard

import "strings"

const (
	// Standard colors
	Black   = "\033[30m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
	Gray    = "\033[90m" // Bright black, often appears as gray

	// Inverse video, used for view titles
	CyanInverse = "\033[7;36m"

	ResetColor = "\033[0m" // Reset to default color
)

var statusColors = map[string]string{
	"active":    Green,
	"healthy":   Green,
	"completed": Green,
	"started":   Cyan,
	"running":   Cyan,
	"idle":      Yellow,
	"degraded":  Yellow,
	"partial":   Yellow,
	"inactive":  Gray,
	"failed":    Red,
	"unhealthy": Red,
}

// colourStatus wraps a backend status word in its display color. Unknown
// words come back unstyled.
func colourStatus(status string) string {
	if colour, ok := statusColors[strings.ToLower(status)]; ok {
		return colour + status + ResetColor
	}
	return status
}
