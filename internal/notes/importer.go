package notes

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/meltforce/barbell/internal/models"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int
}

// Importer reads note files from a directory into a Store.
type Importer struct {
	store  Store
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// NewImporter creates an Importer. With dryRun set nothing is written.
func NewImporter(store Store, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{store: store, log: log, dryRun: dryRun}
}

// IsNoteFile reports whether path has an importable extension.
func IsNoteFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	}
	return false
}

// Import walks dir and stores every .txt and .md file, keyed by its path
// relative to dir. Files whose content is unchanged since the last import
// are skipped.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsNoteFile(path) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		imp.importFile(ctx, path, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return &imp.stats, fmt.Errorf("walking %s: %w", dir, err)
	}
	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, path, source string) {
	hash, err := HashFile(path)
	if err != nil {
		imp.log.Warn("hash failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return
	}
	done, err := imp.store.IsImported(ctx, source, hash)
	if err != nil {
		imp.log.Warn("state check failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return
	}
	if done {
		imp.stats.FilesSkipped++
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		imp.log.Warn("read failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return
	}
	body := string(data)
	if strings.TrimSpace(body) == "" {
		imp.stats.FilesSkipped++
		return
	}

	imp.stats.FilesProcessed++
	if imp.dryRun {
		return
	}
	n, err := imp.store.Upsert(ctx, models.Note{
		Title:  Title(body, source),
		Source: source,
		Hash:   hash,
		Body:   body,
	})
	if err != nil {
		imp.log.Warn("store failed", "file", path, "error", err)
		imp.stats.FilesProcessed--
		imp.stats.FilesErrored++
		return
	}
	imp.log.Info("note imported", "source", source, "id", n.ID)
}

// Title is the first non-blank line of body with Markdown heading marks
// removed, or the file name without extension.
func Title(body, source string) string {
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimLeft(sc.Text(), "#"))
		if line != "" {
			return line
		}
	}
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// HashFile computes the SHA-256 hash of a file.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
