package cli

import (
	"time"

	"github.com/fatih/color"

	"github.com/neomorfeo/homebase/internal/domain"
)

func statusColor(status string) *color.Color {
	switch status {
	case string(domain.PropertyApproved), string(domain.ListingPublished):
		return color.New(color.FgHiGreen)
	case string(domain.PropertyPendingReview), string(domain.ListingSubmitted), string(domain.ListingInReview):
		return color.New(color.FgYellow)
	case string(domain.PropertyRejected), string(domain.PropertyCorrupted):
		return color.New(color.FgRed)
	default:
		return color.New(color.FgHiBlue)
	}
}

// statusLabel renders a status; the empty status of legacy records shows as CORRUPTED.
func statusLabel(status string) string {
	if status == "" {
		return statusColor(status).Sprint("CORRUPTED")
	}
	return statusColor(status).Sprint(status)
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatTime(*t)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
