package state

import (
	"testing"
)

func TestRoster_AddKeepsJoinOrder(t *testing.T) {
	r := NewRoster()
	r.Add("c", "Carol", "")
	r.Add("a", "Alice", "")
	r.Add("b", "Bob", "")

	got := r.IDs()
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Join order broken: got %v, want %v", got, want)
		}
	}
}

func TestRoster_AddExistingUpdatesProfile(t *testing.T) {
	r := NewRoster()
	p := r.Add("a", "Alice", "")
	p.Score = 120

	r.Add("a", "Alicia", "cat.png")

	if r.Len() != 1 {
		t.Fatalf("Re-adding must not duplicate, len=%d", r.Len())
	}
	got, _ := r.Get("a")
	if got.Name != "Alicia" || got.Avatar != "cat.png" {
		t.Fatalf("Profile not updated: %+v", got)
	}
	if got.Score != 120 {
		t.Fatalf("Re-adding must keep the score, got %d", got.Score)
	}
}

func TestRoster_Remove(t *testing.T) {
	r := NewRoster()
	r.Add("a", "Alice", "")
	r.Add("b", "Bob", "")
	r.Remove("a")

	if r.Contains("a") {
		t.Fatal("Removed player still present")
	}
	if r.Len() != 1 {
		t.Fatalf("Expected 1 player left, got %d", r.Len())
	}
	ids := r.IDs()
	if len(ids) != 1 || ids[0] != "b" {
		t.Fatalf("Order slice out of sync after removal: %v", ids)
	}

	// 重复删除无害
	r.Remove("a")
	if r.Len() != 1 {
		t.Fatal("Double remove corrupted the roster")
	}
}

func TestRoster_ClearGuessedAndResetScores(t *testing.T) {
	r := NewRoster()
	a := r.Add("a", "Alice", "")
	b := r.Add("b", "Bob", "")
	a.Score, a.HasGuessed = 200, true
	b.Score = 150

	r.ClearGuessed()
	if a.HasGuessed {
		t.Fatal("ClearGuessed must reset the guessed flag")
	}
	if a.Score != 200 {
		t.Fatal("ClearGuessed must not touch scores")
	}

	r.ResetScores()
	if a.Score != 0 || b.Score != 0 {
		t.Fatal("ResetScores must zero every score")
	}
}

func TestRoster_SnapshotStableOrder(t *testing.T) {
	r := NewRoster()
	r.Add("a", "Alice", "")
	p := r.Add("b", "Bob", "dog.png")
	p.Score = 70
	p.HasGuessed = true

	snap := r.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(snap))
	}
	if snap[0].ID != "a" || snap[1].ID != "b" {
		t.Fatalf("Snapshot order unstable: %v", snap)
	}
	if snap[1].Score != 70 || !snap[1].HasGuessed || snap[1].Avatar != "dog.png" {
		t.Fatalf("Snapshot fields wrong: %+v", snap[1])
	}
}
