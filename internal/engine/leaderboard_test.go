package engine

import "testing"

// pickSet builds wins winning picks and losses losing picks against a single
// 100-win final-mode team.
func pickSet(wins, losses int) []Pick {
	picks := make([]Pick, 0, wins+losses)
	for i := 0; i < wins; i++ {
		picks = append(picks, Pick{TeamID: "nyy", TeamName: "New York Yankees", Line: 90.5, Direction: DirectionOver})
	}
	for i := 0; i < losses; i++ {
		picks = append(picks, Pick{TeamID: "nyy", TeamName: "New York Yankees", Line: 110.5, Direction: DirectionOver})
	}
	return picks
}

var leaderboardStandings = map[string]TeamStanding{
	"nyy": {Wins: 100, Losses: 62, GamesPlayed: 162, RunsScored: 850, RunsAllowed: 700},
}

func TestBuildLeaderboard_SortAndRank(t *testing.T) {
	members := []Member{
		{UserID: "c", DisplayName: "Carol"},
		{UserID: "a", DisplayName: "Alice"},
		{UserID: "b", DisplayName: "Bob"},
	}
	// Alice: 10-6 (62.5% → 63). Bob: 10-10 (50%). Carol: 8-2 (80%).
	picksByUser := map[string][]Pick{
		"a": pickSet(10, 6),
		"b": pickSet(10, 10),
		"c": pickSet(8, 2),
	}

	entries := BuildLeaderboard(members, picksByUser, leaderboardStandings, ModeFinal, 162, "")

	wantOrder := []string{"a", "b", "c"}
	for i, want := range wantOrder {
		if entries[i].UserID != want {
			t.Fatalf("entries[%d].UserID = %q, want %q (full order %+v)", i, entries[i].UserID, want, entries)
		}
	}

	// Alice edges Bob on win percentage despite equal wins; Carol's 80% does
	// not overcome fewer wins. Ranks are strictly sequential.
	if entries[0].WinPct != 63 {
		t.Errorf("Alice WinPct = %d, want 63", entries[0].WinPct)
	}
	if entries[1].WinPct != 50 {
		t.Errorf("Bob WinPct = %d, want 50", entries[1].WinPct)
	}
	if entries[2].WinPct != 80 {
		t.Errorf("Carol WinPct = %d, want 80", entries[2].WinPct)
	}
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Errorf("entries[%d].Rank = %d, want %d", i, e.Rank, i+1)
		}
	}
}

func TestBuildLeaderboard_TiesKeepInputOrderAndSequentialRanks(t *testing.T) {
	members := []Member{
		{UserID: "first", DisplayName: "First In"},
		{UserID: "second", DisplayName: "Second In"},
	}
	picksByUser := map[string][]Pick{
		"first":  pickSet(5, 5),
		"second": pickSet(5, 5),
	}

	entries := BuildLeaderboard(members, picksByUser, leaderboardStandings, ModeFinal, 162, "")

	if entries[0].UserID != "first" || entries[1].UserID != "second" {
		t.Errorf("tied members reordered: %+v", entries)
	}
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Errorf("tied members must get sequential ranks, got %d and %d", entries[0].Rank, entries[1].Rank)
	}
}

func TestBuildLeaderboard_MemberWithoutSheet(t *testing.T) {
	members := []Member{
		{UserID: "a", DisplayName: "Alice"},
		{UserID: "ghost", DisplayName: "No Sheet"},
	}
	picksByUser := map[string][]Pick{
		"a": pickSet(3, 1),
	}

	entries := BuildLeaderboard(members, picksByUser, leaderboardStandings, ModeFinal, 162, "")

	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2 (every member gets a row)", len(entries))
	}
	ghost := entries[1]
	if ghost.UserID != "ghost" {
		t.Fatalf("expected ghost last, got %+v", entries)
	}
	if ghost.Wins != 0 || ghost.Losses != 0 || ghost.Pushes != 0 || ghost.Total != 0 || ghost.WinPct != 0 {
		t.Errorf("member without sheet = %+v, want all zeros", ghost)
	}
}

func TestBuildLeaderboard_ViewerFlag(t *testing.T) {
	members := []Member{
		{UserID: "a", DisplayName: "Alice"},
		{UserID: "b", DisplayName: "Bob"},
	}
	picksByUser := map[string][]Pick{
		"a": pickSet(2, 0),
		"b": pickSet(1, 1),
	}

	entries := BuildLeaderboard(members, picksByUser, leaderboardStandings, ModeFinal, 162, "b")

	for _, e := range entries {
		if got, want := e.IsCurrentUser, e.UserID == "b"; got != want {
			t.Errorf("%s: IsCurrentUser = %v, want %v", e.UserID, got, want)
		}
	}
}

func TestBuildLeaderboard_UnsetPicksDoNotCount(t *testing.T) {
	members := []Member{{UserID: "a", DisplayName: "Alice"}}
	picks := append(pickSet(1, 0), Pick{TeamID: "nyy", TeamName: "New York Yankees", Line: 95.5, Direction: DirectionUnset})

	entries := BuildLeaderboard(members, map[string][]Pick{"a": picks}, leaderboardStandings, ModeFinal, 162, "")

	if entries[0].Total != 1 {
		t.Errorf("Total = %d, want 1 (unset pick excluded)", entries[0].Total)
	}
	if entries[0].WinPct != 100 {
		t.Errorf("WinPct = %d, want 100", entries[0].WinPct)
	}
}
