package uid

import "testing"

func TestGenerateGameID(t *testing.T) {
	a, b := GenerateGameID(), GenerateGameID()
	if a == b {
		t.Fatalf("expected distinct IDs, got %s twice", a)
	}
	if !IsGameID(a) || IsGameID("not-a-game") {
		t.Fatalf("IsGameID disagrees with GenerateGameID")
	}
}
