package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/typemaster/internal/model"
)

func TestLoadTiers(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "easy.txt"), []byte("# comment\nalpha\n\nBeta\nbeta\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tiers, err := LoadTiers(dir, LowerASCII)
	if err != nil {
		t.Fatalf("load tiers: %v", err)
	}
	if len(tiers) != 1 {
		t.Fatalf("expected one tier, got %d", len(tiers))
	}
	easy := tiers[model.DifficultyEasy]
	if len(easy) != 2 || easy[0] != "alpha" || easy[1] != "beta" {
		t.Fatalf("unexpected easy tier: %v", easy)
	}
}

func TestLoadTiersRejectsUnusableList(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hard.txt"), []byte("ÄÖÜ\n123\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadTiers(dir, LowerASCII); err == nil {
		t.Fatalf("expected error for list without usable words")
	}
}

func TestLoadWordsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadWords(path); err == nil {
		t.Fatalf("expected error for empty list")
	}
}
