package leaderboard

import (
	"time"

	"github.com/evanofslack/pokerboard/internal/models"
)

// ResolveCutoff translates a time range into the inclusive lower-bound date
// for fetching sessions, relative to now. All-time (and any unrecognized
// value) means no bound. "Now" advances between cycles, so the cutoff must be
// resolved fresh on every rebuild.
func ResolveCutoff(tr TimeRange, now time.Time) *models.Date {
	var bound time.Time
	switch tr {
	case RangeThreeMonths:
		bound = now.AddDate(0, -3, 0)
	case RangeSixMonths:
		bound = now.AddDate(0, -6, 0)
	case RangeOneYear:
		bound = now.AddDate(-1, 0, 0)
	default:
		return nil
	}
	cutoff := models.DateOf(bound)
	return &cutoff
}

// ParseTimeRange maps a query-string value to a TimeRange, defaulting to the
// one-year view the dashboard opens with.
func ParseTimeRange(s string) TimeRange {
	switch TimeRange(s) {
	case RangeThreeMonths, RangeSixMonths, RangeOneYear, RangeAllTime:
		return TimeRange(s)
	default:
		return RangeOneYear
	}
}

// ParseSortKey maps a query-string value to a SortKey, defaulting to net
// profit.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortNetProfit, SortGames, SortName:
		return SortKey(s)
	default:
		return SortNetProfit
	}
}

// ParseCategory maps a query-string value to a Category, defaulting to all
// players.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryAll, CategoryWinners, CategoryLosers, CategoryNeutral:
		return Category(s)
	default:
		return CategoryAll
	}
}
