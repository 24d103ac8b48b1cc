package model

import (
	"fmt"
	"image"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/soocke/photo-booth-go/config"
	"github.com/soocke/photo-booth-go/domain/filter"
)

// ThumbnailCaption is the text for thumbnail slot i when count photos exist.
func ThumbnailCaption(i, count int) string {
	switch {
	case count == 0 && i == 0:
		return "No photos yet"
	case i < count:
		return "Photo " + strconv.Itoa(i+1)
	default:
		return ""
	}
}

// FilterLabels lists picker labels in filter order.
func FilterLabels() []string {
	kinds := filter.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.DisplayName()
	}
	return out
}

// CountdownLabels lists the countdown picker entries.
func CountdownLabels() []string {
	out := make([]string, len(config.CountdownChoices))
	for i, s := range config.CountdownChoices {
		out[i] = strconv.Itoa(s) + "s"
	}
	return out
}

// AutoLabel is the auto-capture toggle text.
func AutoLabel(on bool) string {
	if on {
		return "Auto-Capture: On"
	}
	return "Auto-Capture: Off"
}

// FormatClock renders d as mm:ss.
func FormatClock(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatCounts renders the photo and strip counters.
func FormatCounts(v StatsSnapshot) string {
	s := fmt.Sprintf("Photos: %d  Strips: %d", v.Photos, v.Strips)
	if v.Failures > 0 {
		s += fmt.Sprintf("  Failed: %d", v.Failures)
	}
	return s
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y"
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// ParseGeometry parses a Tk geometry string into a screen rectangle.
func ParseGeometry(g string) (image.Rectangle, bool) {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}
