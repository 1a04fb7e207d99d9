package usecase

import (
	"fmt"
	"strings"
)

// Tier selects how much of the event universe a sync run covers.
type Tier string

const (
	// TierFull backfills every event outside its active window, all years.
	TierFull Tier = "full"
	// TierLive covers current-year events inside their active window.
	TierLive Tier = "live"
	// TierYear covers current-year events outside their active window.
	TierYear Tier = "year"
)

func ParseTier(value string) (Tier, error) {
	switch Tier(strings.ToLower(strings.TrimSpace(value))) {
	case TierFull:
		return TierFull, nil
	case TierLive:
		return TierLive, nil
	case TierYear:
		return TierYear, nil
	default:
		return "", fmt.Errorf("%w: unknown sync tier %q", ErrInvalidInput, value)
	}
}
