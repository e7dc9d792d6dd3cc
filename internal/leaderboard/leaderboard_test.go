package leaderboard

import (
	"testing"

	"github.com/evanofslack/pokerboard/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlayer(id, name string) models.Player {
	return models.Player{ID: uuid.MustParse(id), Name: name}
}

func testSession(player models.Player, buyin, cashout float64, date models.Date) models.Session {
	return models.Session{
		ID:       uuid.New(),
		PlayerID: player.ID,
		BuyIn:    buyin,
		CashOut:  cashout,
		GameDate: date,
	}
}

var (
	alice = testPlayer("00000000-0000-0000-0000-000000000001", "Alice")
	bob   = testPlayer("00000000-0000-0000-0000-000000000002", "Bob")
	carol = testPlayer("00000000-0000-0000-0000-000000000003", "Carol")
)

func TestBuildRows_EveryPlayerGetsARow(t *testing.T) {
	sessions := []models.Session{
		testSession(alice, 100, 250, models.NewDate(2024, 1, 5)),
	}

	rows := BuildRows([]models.Player{alice, bob}, sessions)

	require.Len(t, rows, 2)
	assert.Equal(t, alice.ID, rows[0].Player.ID)
	assert.Equal(t, bob.ID, rows[1].Player.ID)

	// A player with no sessions still appears, with all-zero stats.
	assert.Equal(t, 0, rows[1].TotalGames)
	assert.Equal(t, 0.0, rows[1].NetProfit)
	assert.Equal(t, 0.0, rows[1].ROI)
	assert.Empty(t, rows[1].Recent)
	assert.Empty(t, rows[1].Streak)
	assert.Equal(t, "", rows[1].Spark)
}

func TestBuildRows_NetProfitAndROI(t *testing.T) {
	sessions := []models.Session{
		testSession(alice, 100, 250, models.NewDate(2024, 1, 5)),
		testSession(alice, 200, 150, models.NewDate(2024, 1, 12)),
	}

	rows := BuildRows([]models.Player{alice}, sessions)

	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].TotalGames)
	assert.Equal(t, 100.0, rows[0].NetProfit)
	assert.Equal(t, 300.0, rows[0].TotalBuyIn)
	assert.InDelta(t, 100.0/300.0*100, rows[0].ROI, 1e-9)
}

func TestBuildRows_ROIZeroWithoutBuyIn(t *testing.T) {
	sessions := []models.Session{
		testSession(alice, 0, 50, models.NewDate(2024, 1, 5)),
	}

	rows := BuildRows([]models.Player{alice}, sessions)

	require.Len(t, rows, 1)
	assert.Equal(t, 50.0, rows[0].NetProfit)
	assert.Equal(t, 0.0, rows[0].ROI)
}

func TestBuildRows_RecentWindow(t *testing.T) {
	var sessions []models.Session
	// Seven sessions across January, profit equal to the day of month.
	for day := 1; day <= 7; day++ {
		sessions = append(sessions, testSession(alice, 100, 100+float64(day), models.NewDate(2024, 1, day)))
	}

	rows := BuildRows([]models.Player{alice}, sessions)

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, 7, row.TotalGames)

	// Window holds the five most recent sessions, newest first.
	require.Len(t, row.Recent, 5)
	require.Len(t, row.Streak, 5)
	assert.Equal(t, models.NewDate(2024, 1, 7), row.Recent[0].Date)
	assert.Equal(t, 7.0, row.Recent[0].Profit)
	assert.Equal(t, models.NewDate(2024, 1, 3), row.Recent[4].Date)
	assert.Equal(t, 3.0, row.Recent[4].Profit)
	assert.NotEmpty(t, row.Spark)
}

func TestBuildRows_StreakTags(t *testing.T) {
	sessions := []models.Session{
		testSession(alice, 100, 300, models.NewDate(2024, 1, 3)), // +200
		testSession(alice, 100, 100, models.NewDate(2024, 1, 2)), // break-even counts as a win
		testSession(alice, 100, 50, models.NewDate(2024, 1, 1)),  // -50
	}

	rows := BuildRows([]models.Player{alice}, sessions)

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"W", "W", "L"}, rows[0].Streak)
}

func TestApply_CategoryFilters(t *testing.T) {
	rows := []Row{
		{Player: alice, NetProfit: 150},
		{Player: bob, NetProfit: -80},
		{Player: carol, NetProfit: 0},
	}

	tests := []struct {
		name     string
		filter   Category
		expected []string
	}{
		{name: "all", filter: CategoryAll, expected: []string{"Alice", "Carol", "Bob"}},
		{name: "winners", filter: CategoryWinners, expected: []string{"Alice"}},
		{name: "losers", filter: CategoryLosers, expected: []string{"Bob"}},
		{name: "neutral", filter: CategoryNeutral, expected: []string{"Carol"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(rows, Options{Filter: tt.filter})
			names := make([]string, len(got))
			for i, r := range got {
				names[i] = r.Player.Name
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestApply_QueryIsCaseInsensitiveSubstring(t *testing.T) {
	rows := []Row{
		{Player: alice},
		{Player: bob},
		{Player: testPlayer("00000000-0000-0000-0000-000000000004", "Alicia")},
	}

	got := Apply(rows, Options{Query: "  aLi "})

	require.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0].Player.Name)
	assert.Equal(t, "Alicia", got[1].Player.Name)
}

func TestApply_SortNetProfitTieBreaksByID(t *testing.T) {
	rows := []Row{
		{Player: carol, NetProfit: 100},
		{Player: bob, NetProfit: 100},
		{Player: alice, NetProfit: -50},
	}

	got := Apply(rows, Options{SortBy: SortNetProfit})

	require.Len(t, got, 3)
	// Bob and Carol tie on profit; the lower ID wins.
	assert.Equal(t, "Bob", got[0].Player.Name)
	assert.Equal(t, "Carol", got[1].Player.Name)
	assert.Equal(t, "Alice", got[2].Player.Name)
}

func TestApply_SortByGames(t *testing.T) {
	rows := []Row{
		{Player: alice, TotalGames: 2},
		{Player: bob, TotalGames: 9},
		{Player: carol, TotalGames: 4},
	}

	got := Apply(rows, Options{SortBy: SortGames})

	require.Len(t, got, 3)
	assert.Equal(t, "Bob", got[0].Player.Name)
	assert.Equal(t, "Carol", got[1].Player.Name)
	assert.Equal(t, "Alice", got[2].Player.Name)
}

func TestApply_SortByName(t *testing.T) {
	rows := []Row{
		{Player: testPlayer("00000000-0000-0000-0000-000000000005", "charlie")},
		{Player: alice},
		{Player: bob},
	}

	got := Apply(rows, Options{SortBy: SortName})

	require.Len(t, got, 3)
	// Case does not matter for name ordering.
	assert.Equal(t, "Alice", got[0].Player.Name)
	assert.Equal(t, "Bob", got[1].Player.Name)
	assert.Equal(t, "charlie", got[2].Player.Name)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	rows := []Row{
		{Player: alice, NetProfit: 1},
		{Player: bob, NetProfit: 2},
	}

	_ = Apply(rows, Options{SortBy: SortNetProfit})

	assert.Equal(t, "Alice", rows[0].Player.Name)
	assert.Equal(t, "Bob", rows[1].Player.Name)
}

func TestSummarize_CountsDistinctGames(t *testing.T) {
	gameOne := "game-1"
	sharedDate := models.NewDate(2024, 1, 5)

	sessions := []models.Session{
		{PlayerID: alice.ID, BuyIn: 100, CashOut: 250, GameDate: sharedDate, GameID: &gameOne},
		{PlayerID: bob.ID, BuyIn: 100, CashOut: 50, GameDate: sharedDate, GameID: &gameOne},
		// Legacy row without a game id groups by its date instead.
		{PlayerID: alice.ID, BuyIn: 100, CashOut: 100, GameDate: models.NewDate(2024, 1, 12)},
	}

	rows := BuildRows([]models.Player{alice, bob}, sessions)
	summary := Summarize(rows, sessions)

	assert.Equal(t, 2, summary.TotalPlayers)
	assert.Equal(t, 2, summary.TotalGames)
	assert.Equal(t, 100.0, summary.TotalProfit)
}

func TestSummarize_AverageROI(t *testing.T) {
	sessions := []models.Session{
		testSession(alice, 100, 200, models.NewDate(2024, 1, 5)), // ROI 100
		testSession(bob, 100, 150, models.NewDate(2024, 1, 5)),   // ROI 50
	}

	rows := BuildRows([]models.Player{alice, bob}, sessions)
	summary := Summarize(rows, sessions)

	assert.InDelta(t, 75.0, summary.AverageROI, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, nil)

	assert.Equal(t, 0, summary.TotalPlayers)
	assert.Equal(t, 0, summary.TotalGames)
	assert.Equal(t, 0.0, summary.TotalProfit)
	assert.Equal(t, 0.0, summary.AverageROI)
}

func TestCompute_FullPipeline(t *testing.T) {
	sessions := []models.Session{
		testSession(alice, 100, 250, models.NewDate(2024, 1, 5)),
		testSession(alice, 200, 150, models.NewDate(2024, 1, 12)),
		testSession(bob, 100, 60, models.NewDate(2024, 1, 5)),
	}

	got := Compute([]models.Player{alice, bob, carol}, sessions, Options{SortBy: SortNetProfit})

	require.Len(t, got, 3)
	assert.Equal(t, "Alice", got[0].Player.Name)
	assert.Equal(t, 100.0, got[0].NetProfit)
	assert.Equal(t, "Carol", got[1].Player.Name)
	assert.Equal(t, 0.0, got[1].NetProfit)
	assert.Equal(t, "Bob", got[2].Player.Name)
	assert.Equal(t, -40.0, got[2].NetProfit)
}
