package sync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/recapdev/recap/internal/storage"
)

func TestRunImportsLocalSource(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	decksDir := t.TempDir()
	content := "Q: What is the capital of France?\nA: Paris\n---\nQ: And of Japan?\nA: Tokyo\n"
	if err := os.WriteFile(filepath.Join(decksDir, "capitals.md"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(decksDir, "notes.txt"), []byte("not a deck"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := db.InsertSource(decksDir, "local"); err != nil {
		t.Fatalf("InsertSource: %v", err)
	}
	if err := Run(db, t.TempDir()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	deck, err := db.GetDeck("capitals.md")
	if err != nil {
		t.Fatalf("GetDeck: %v", err)
	}
	if deck == nil {
		t.Fatal("deck was not imported")
	}
	if deck.Name != "capitals" || len(deck.Questions) != 2 {
		t.Fatalf("imported deck = %+v, want 2 questions named capitals", deck)
	}

	// A second run with unchanged content keeps the stored deck.
	if err := Run(db, t.TempDir()); err != nil {
		t.Fatalf("Run (second): %v", err)
	}
	again, err := db.GetDeck("capitals.md")
	if err != nil {
		t.Fatalf("GetDeck (second): %v", err)
	}
	if len(again.Questions) != 2 {
		t.Errorf("re-sync changed the deck: %+v", again)
	}

	sources, err := db.GetAllSources()
	if err != nil {
		t.Fatalf("GetAllSources: %v", err)
	}
	if !sources[0].LastScanned.Valid {
		t.Error("sync should stamp last_scanned")
	}
}

func TestRunWithNoSources(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if err := Run(db, t.TempDir()); err != nil {
		t.Errorf("Run with no sources should be a quiet no-op, got %v", err)
	}
}

func TestIsGitURL(t *testing.T) {
	testCases := []struct {
		path string
		want bool
	}{
		{"https://github.com/user/decks.git", true},
		{"git@github.com:user/decks.git", true},
		{"https://github.com/user/decks", true},
		{"/home/user/decks", false},
		{"decks", false},
	}
	for _, tc := range testCases {
		if got := IsGitURL(tc.path); got != tc.want {
			t.Errorf("IsGitURL(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
