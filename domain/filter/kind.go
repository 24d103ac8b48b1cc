package filter

import (
	"fmt"
	"strings"
)

// Kind enumerates the fixed set of live filters.
type Kind int

const (
	Normal Kind = iota
	Grayscale
	Sepia
	Vintage
	Blur
)

var kindIDs = [...]string{"normal", "grayscale", "sepia", "vintage", "blur"}
var kindNames = [...]string{"Normal", "B&W", "Sepia", "Vintage", "Blur"}

// Kinds returns every filter in picker order.
func Kinds() []Kind { return []Kind{Normal, Grayscale, Sepia, Vintage, Blur} }

// String returns the stable identifier used in config files.
func (k Kind) String() string {
	if k < Normal || k > Blur {
		return "unknown"
	}
	return kindIDs[k]
}

// DisplayName returns the short label shown in the filter picker.
func (k Kind) DisplayName() string {
	if k < Normal || k > Blur {
		return "Unknown"
	}
	return kindNames[k]
}

// ParseKind maps an identifier or display name to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i := range kindIDs {
		if s == kindIDs[i] || s == strings.ToLower(kindNames[i]) {
			return Kind(i), nil
		}
	}
	return Normal, fmt.Errorf("filter: unknown kind %q", s)
}
