// Package leaderboard computes ranked per-player statistics from raw session
// rows. Everything in this package is pure: no I/O, no shared state, results
// depend only on the inputs.
package leaderboard

import (
	"sort"
	"strings"

	"github.com/evanofslack/pokerboard/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// recentWindowSize bounds the recent-results window on every row.
const recentWindowSize = 5

type TimeRange string

const (
	RangeThreeMonths TimeRange = "3M"
	RangeSixMonths   TimeRange = "6M"
	RangeOneYear     TimeRange = "1Y"
	RangeAllTime     TimeRange = "ALL"
)

type SortKey string

const (
	SortNetProfit SortKey = "netProfit"
	SortGames     SortKey = "games"
	SortName      SortKey = "name"
)

type Category string

const (
	CategoryAll     Category = "all"
	CategoryWinners Category = "winners"
	CategoryLosers  Category = "losers"
	CategoryNeutral Category = "neutral"
)

// Options are the caller-supplied view parameters applied on top of the
// per-player rows. Sessions are expected to be pre-filtered to the requested
// time window before they reach this package.
type Options struct {
	Query  string
	SortBy SortKey
	Filter Category
}

// RecentResult is one entry of a row's recent-results window.
type RecentResult struct {
	Profit float64     `json:"profit"`
	Date   models.Date `json:"date"`
}

// Row is the derived per-player summary. Recent and Streak run most-recent
// first and never exceed five entries; Spark is an SVG path over the same
// window in chronological order.
type Row struct {
	Player     models.Player  `json:"player"`
	TotalGames int            `json:"total_games"`
	NetProfit  float64        `json:"net_profit"`
	TotalBuyIn float64        `json:"total_buyin"`
	ROI        float64        `json:"roi"`
	Recent     []RecentResult `json:"recent"`
	Streak     []string       `json:"streak"`
	Spark      string         `json:"spark"`
}

type Summary struct {
	TotalPlayers int     `json:"total_players"`
	TotalGames   int     `json:"total_games"`
	TotalProfit  float64 `json:"total_profit"`
	AverageROI   float64 `json:"average_roi"`
}

// BuildRows produces one row per input player, in input order. Players with
// no sessions still get a row with all-zero statistics.
func BuildRows(players []models.Player, sessions []models.Session) []Row {
	perPlayer := make(map[string][]models.Session)
	for _, s := range sessions {
		key := s.PlayerID.String()
		perPlayer[key] = append(perPlayer[key], s)
	}

	rows := make([]Row, 0, len(players))
	for _, p := range players {
		sess := append([]models.Session(nil), perPlayer[p.ID.String()]...)
		sort.SliceStable(sess, func(i, j int) bool {
			return sess[i].GameDate.After(sess[j].GameDate)
		})

		var netProfit, totalBuyIn float64
		for _, s := range sess {
			netProfit += s.Profit()
			totalBuyIn += s.BuyIn
		}

		// ROI is defined as 0 for a player who never bought in, so the
		// division can never produce NaN or Inf.
		var roi float64
		if totalBuyIn > 0 {
			roi = netProfit / totalBuyIn * 100
		}

		window := sess
		if len(window) > recentWindowSize {
			window = window[:recentWindowSize]
		}
		recent := make([]RecentResult, len(window))
		streak := make([]string, len(window))
		sparkValues := make([]float64, len(window))
		for i, s := range window {
			profit := s.Profit()
			recent[i] = RecentResult{Profit: profit, Date: s.GameDate}
			if profit >= 0 {
				streak[i] = "W"
			} else {
				streak[i] = "L"
			}
			// Sparkline reads oldest to newest.
			sparkValues[len(window)-1-i] = profit
		}

		rows = append(rows, Row{
			Player:     p,
			TotalGames: len(sess),
			NetProfit:  netProfit,
			TotalBuyIn: totalBuyIn,
			ROI:        roi,
			Recent:     recent,
			Streak:     streak,
			Spark:      SparklinePath(sparkValues, 90, 20),
		})
	}
	return rows
}

// Apply filters and sorts rows according to opts, returning a new slice.
// Ties on the sort key break by player ID ascending so the order is
// deterministic regardless of platform sort stability.
func Apply(rows []Row, opts Options) []Row {
	filtered := make([]Row, 0, len(rows))
	query := strings.ToLower(strings.TrimSpace(opts.Query))
	for _, r := range rows {
		if query != "" && !strings.Contains(strings.ToLower(r.Player.Name), query) {
			continue
		}
		switch opts.Filter {
		case CategoryWinners:
			if r.NetProfit <= 0 {
				continue
			}
		case CategoryLosers:
			if r.NetProfit >= 0 {
				continue
			}
		case CategoryNeutral:
			if r.NetProfit != 0 {
				continue
			}
		}
		filtered = append(filtered, r)
	}

	byID := func(a, b Row) bool {
		return a.Player.ID.String() < b.Player.ID.String()
	}

	switch opts.SortBy {
	case SortGames:
		sort.Slice(filtered, func(i, j int) bool {
			if filtered[i].TotalGames != filtered[j].TotalGames {
				return filtered[i].TotalGames > filtered[j].TotalGames
			}
			return byID(filtered[i], filtered[j])
		})
	case SortName:
		c := collate.New(language.English, collate.IgnoreCase)
		sort.Slice(filtered, func(i, j int) bool {
			cmp := c.CompareString(filtered[i].Player.Name, filtered[j].Player.Name)
			if cmp != 0 {
				return cmp < 0
			}
			return byID(filtered[i], filtered[j])
		})
	default: // SortNetProfit
		sort.Slice(filtered, func(i, j int) bool {
			if filtered[i].NetProfit != filtered[j].NetProfit {
				return filtered[i].NetProfit > filtered[j].NetProfit
			}
			return byID(filtered[i], filtered[j])
		})
	}
	return filtered
}

// Compute is the full pipeline: build one row per player, then apply the
// caller's filter, search and sort.
func Compute(players []models.Player, sessions []models.Session, opts Options) []Row {
	return Apply(BuildRows(players, sessions), opts)
}

// Summarize derives the dashboard header figures from the unfiltered row set.
// Game counting is by distinct game id, not by session: one game with N
// participants counts once.
func Summarize(rows []Row, sessions []models.Session) Summary {
	games := make(map[string]struct{})
	for i := range sessions {
		games[sessions[i].GameKey()] = struct{}{}
	}

	var totalProfit, totalROI float64
	for _, r := range rows {
		totalProfit += r.NetProfit
		totalROI += r.ROI
	}
	var avgROI float64
	if len(rows) > 0 {
		avgROI = totalROI / float64(len(rows))
	}

	return Summary{
		TotalPlayers: len(rows),
		TotalGames:   len(games),
		TotalProfit:  totalProfit,
		AverageROI:   avgROI,
	}
}
