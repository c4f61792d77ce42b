package redis

import "strings"

const (
	// KeyPrefix namespaces every key written by the dashboard.
	KeyPrefix = "bookingdash:"
)

// Key returns name under the dashboard namespace. Names that already carry
// the prefix are returned unchanged.
func Key(name string) string {
	if strings.HasPrefix(name, KeyPrefix) {
		return name
	}
	return KeyPrefix + name
}
