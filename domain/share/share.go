package share

import (
	"fmt"
	"log/slog"
	"strings"
)

// Platform identifies a social share target.
type Platform string

const (
	Twitter  Platform = "twitter"
	Facebook Platform = "facebook"
)

// Platforms lists the share buttons in display order.
func Platforms() []Platform { return []Platform{Twitter, Facebook} }

func (p Platform) DisplayName() string {
	switch p {
	case Twitter:
		return "Twitter"
	case Facebook:
		return "Facebook"
	default:
		return string(p)
	}
}

// Share acknowledges a share request. No network call is made.
func Share(p Platform, logger *slog.Logger) (string, error) {
	p = Platform(strings.ToLower(string(p)))
	switch p {
	case Twitter, Facebook:
	default:
		return "", fmt.Errorf("share: unknown platform %q", p)
	}
	if logger != nil {
		logger.Info("share requested", "platform", string(p))
	}
	return fmt.Sprintf("Sharing to %s is not connected in this build.", p.DisplayName()), nil
}
