// Package playerstats builds the per-player detail report shown on a
// player's own page: lifetime totals, the cumulative profit trend, the
// buy-in/cash-out split and the result-distribution charts.
package playerstats

import (
	"sort"

	"github.com/evanofslack/pokerboard/internal/models"
)

// Distribution bucket boundaries, in currency units.
const (
	bigLossThreshold = -200
	bigWinThreshold  = 200
)

type Totals struct {
	TotalGames   int     `json:"total_games"`
	TotalBuyIn   float64 `json:"total_buyin"`
	TotalCashOut float64 `json:"total_cashout"`
	NetProfit    float64 `json:"net_profit"`
	ROI          float64 `json:"roi"`
}

// TrendPoint is one session on the cumulative profit line, in chronological
// order.
type TrendPoint struct {
	Date       models.Date `json:"date"`
	Profit     float64     `json:"profit"`
	Cumulative float64     `json:"cumulative"`
}

type DistributionBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HeatmapCell is one played day, with that day's profit summed across
// sessions. Cells are ordered oldest first.
type HeatmapCell struct {
	Date   models.Date `json:"date"`
	Profit float64     `json:"profit"`
}

type Report struct {
	Player       models.Player        `json:"player"`
	Totals       Totals               `json:"totals"`
	Trend        []TrendPoint         `json:"trend"`
	Distribution []DistributionBucket `json:"distribution"`
	Heatmap      []HeatmapCell        `json:"heatmap"`
	History      []models.Session     `json:"history"`
}

// BuildReport derives the full detail report for one player. Pure; sessions
// may arrive in any order.
func BuildReport(player models.Player, sessions []models.Session) Report {
	chrono := append([]models.Session(nil), sessions...)
	sort.SliceStable(chrono, func(i, j int) bool {
		return chrono[i].GameDate.Before(chrono[j].GameDate)
	})

	var totals Totals
	totals.TotalGames = len(chrono)
	for _, s := range chrono {
		totals.TotalBuyIn += s.BuyIn
		totals.TotalCashOut += s.CashOut
	}
	totals.NetProfit = totals.TotalCashOut - totals.TotalBuyIn
	if totals.TotalBuyIn > 0 {
		totals.ROI = totals.NetProfit / totals.TotalBuyIn * 100
	}

	trend := make([]TrendPoint, len(chrono))
	var cumulative float64
	for i, s := range chrono {
		profit := s.Profit()
		cumulative += profit
		trend[i] = TrendPoint{Date: s.GameDate, Profit: profit, Cumulative: cumulative}
	}

	var bigLoss, loss, even, win, bigWin int
	for _, s := range chrono {
		profit := s.Profit()
		switch {
		case profit <= bigLossThreshold:
			bigLoss++
		case profit < 0:
			loss++
		case profit == 0:
			even++
		case profit < bigWinThreshold:
			win++
		default:
			bigWin++
		}
	}
	distribution := []DistributionBucket{
		{Label: "Big Loss", Count: bigLoss},
		{Label: "Loss", Count: loss},
		{Label: "Even", Count: even},
		{Label: "Win", Count: win},
		{Label: "Big Win", Count: bigWin},
	}

	byDate := make(map[string]float64)
	for _, s := range chrono {
		byDate[s.GameDate.String()] += s.Profit()
	}
	heatmap := make([]HeatmapCell, 0, len(byDate))
	for dateStr, profit := range byDate {
		date, err := models.ParseDate(dateStr)
		if err != nil {
			continue
		}
		heatmap = append(heatmap, HeatmapCell{Date: date, Profit: profit})
	}
	sort.Slice(heatmap, func(i, j int) bool {
		return heatmap[i].Date.Before(heatmap[j].Date)
	})

	// History is newest first, matching the game log table.
	history := make([]models.Session, len(chrono))
	for i, s := range chrono {
		history[len(chrono)-1-i] = s
	}

	return Report{
		Player:       player,
		Totals:       totals,
		Trend:        trend,
		Distribution: distribution,
		Heatmap:      heatmap,
		History:      history,
	}
}
