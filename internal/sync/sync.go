// Package sync reconciles configured deck sources with the database: deck
// files are parsed, fingerprinted, and upserted when their content changed.
package sync

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/recapdev/recap/internal/deck"
	"github.com/recapdev/recap/internal/domain"
	"github.com/recapdev/recap/internal/gitsource"
	"github.com/recapdev/recap/internal/parser"
	"github.com/recapdev/recap/internal/storage"
)

// Run iterates over all configured sources and reconciles each one.
// Per-source failures are logged and skipped so one broken source cannot
// block the rest.
func Run(db *storage.DB, reposDir string) error {
	slog.Info("starting sync for all sources")
	sources, err := db.GetAllSources()
	if err != nil {
		return fmt.Errorf("failed to get sources: %w", err)
	}

	if len(sources) == 0 {
		slog.Info("no sources configured, add one with --add-source <path/or/url.git>")
		return nil
	}

	if err := os.MkdirAll(reposDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create repos directory: %w", err)
	}

	for _, source := range sources {
		slog.Info("syncing source", "id", source.ID, "type", source.Type, "path", source.Path)

		scanPath := source.Path
		if source.Type == "git" {
			localRepoPath, err := gitURLToLocalPath(reposDir, source.Path)
			if err != nil {
				slog.Error("could not determine local path for git repo", "url", source.Path, "error", err)
				continue
			}
			if err := gitsource.Sync(source.Path, localRepoPath); err != nil {
				slog.Error("failed to sync git repo", "url", source.Path, "error", err)
				continue
			}
			scanPath = localRepoPath
		}

		reconcileSource(db, source.ID, scanPath)
	}
	slog.Info("sync complete")
	return nil
}

// reconcileSource walks every .md file under the source path and imports it
// as one deck. The deck ID is its path relative to the source root, so a
// re-scan updates rather than duplicates.
func reconcileSource(db *storage.DB, sourceID int64, root string) {
	var imported, unchanged, failed int

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		questions, err := parser.ParseFile(path)
		if err != nil {
			slog.Error("failed to parse deck file", "path", path, "error", err)
			failed++
			return nil
		}

		fingerprint := deck.Fingerprint(name, questions)
		stored, err := db.DeckContentHash(rel)
		if err != nil {
			slog.Error("failed to check stored deck", "deck", rel, "error", err)
			failed++
			return nil
		}
		if stored == fingerprint {
			unchanged++
			return nil
		}

		if err := db.UpsertDeck(storageDeck(rel, name, questions), fingerprint, sourceID); err != nil {
			slog.Error("failed to store deck", "deck", rel, "error", err)
			failed++
			return nil
		}
		slog.Info("imported deck", "deck", rel, "questions", len(questions))
		imported++
		return nil
	})

	if walkErr != nil {
		slog.Error("failed to walk source directory", "path", root, "error", walkErr)
		return
	}

	if err := db.UpdateSourceLastScanned(sourceID); err != nil {
		slog.Warn("failed to update last scanned for source", "source_id", sourceID, "error", err)
	}

	slog.Info("source reconciled",
		"path", root,
		"imported", imported,
		"unchanged", unchanged,
		"failed", failed,
	)
}

func storageDeck(id, name string, qs []domain.Question) domain.Deck {
	return domain.Deck{ID: id, Name: name, Questions: qs}
}

// IsGitURL reports whether a source path looks like a git remote rather than
// a local directory.
func IsGitURL(path string) bool {
	return strings.HasSuffix(path, ".git") ||
		strings.HasPrefix(path, "git@") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "http://")
}

func gitURLToLocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http") {
		if strings.Contains(repoURL, "@") {
			parts := strings.Split(repoURL, ":")
			if len(parts) == 2 {
				hostAndUser := strings.Split(parts[0], "@")
				if len(hostAndUser) == 2 {
					host := hostAndUser[1]
					repoPath := strings.TrimSuffix(parts[1], ".git")
					return filepath.Join(baseDir, host, repoPath), nil
				}
			}
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitizedPath := strings.TrimSuffix(parsedURL.Path, ".git")
	return filepath.Join(baseDir, parsedURL.Host, sanitizedPath), nil
}
