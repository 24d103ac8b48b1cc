package model

import (
	"image"
	"testing"
	"time"
)

func TestThumbnailCaption(t *testing.T) {
	if got := ThumbnailCaption(0, 0); got != "No photos yet" {
		t.Fatalf("got %q", got)
	}
	if got := ThumbnailCaption(1, 0); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := ThumbnailCaption(1, 3); got != "Photo 2" {
		t.Fatalf("got %q", got)
	}
	if got := ThumbnailCaption(3, 3); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestPickerLabels(t *testing.T) {
	f := FilterLabels()
	if len(f) != 5 || f[0] != "Normal" || f[1] != "B&W" {
		t.Fatalf("unexpected filter labels %v", f)
	}
	c := CountdownLabels()
	if len(c) != 3 || c[0] != "3s" || c[2] != "10s" {
		t.Fatalf("unexpected countdown labels %v", c)
	}
	if AutoLabel(true) == AutoLabel(false) {
		t.Fatalf("auto labels must differ")
	}
}

func TestFormatting(t *testing.T) {
	if got := FormatClock(125 * time.Second); got != "02:05" {
		t.Fatalf("got %q", got)
	}
	if got := FormatCounts(StatsSnapshot{Photos: 4, Strips: 1}); got != "Photos: 4  Strips: 1" {
		t.Fatalf("got %q", got)
	}
	if got := FormatCounts(StatsSnapshot{Failures: 2}); got != "Photos: 0  Strips: 0  Failed: 2" {
		t.Fatalf("got %q", got)
	}
}

func TestParseGeometry(t *testing.T) {
	r, ok := ParseGeometry("640x480+10+20")
	if !ok || r != image.Rect(10, 20, 650, 500) {
		t.Fatalf("unexpected %v %v", r, ok)
	}
	r, ok = ParseGeometry("100x50+-5+0")
	if !ok || r.Min.X != -5 {
		t.Fatalf("negative offset: %v %v", r, ok)
	}
	if _, ok := ParseGeometry("0x10+0+0"); ok {
		t.Fatalf("zero width accepted")
	}
	if _, ok := ParseGeometry("garbage"); ok {
		t.Fatalf("garbage accepted")
	}
}
