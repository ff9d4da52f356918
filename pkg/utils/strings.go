package utils

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// DataRoomName converts an entity name into the data-room naming scheme:
// lowercase, runs of special characters collapsed into underscores.
func DataRoomName(name string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(s, "_")
}
