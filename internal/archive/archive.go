// Package archive bundles the image assets for the backend's bulk importer:
// author avatars plus the nested post-image tree, in a single zip file.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// SubtreeResult records the outcome of packaging one directory. Missing
// directories are skipped, not fatal: a partial archive is an accepted
// degraded outcome.
type SubtreeResult struct {
	Dir     string
	Files   int
	Skipped bool
}

type Packager struct {
	postsDir   string
	authorsDir string
	logger     *slog.Logger
}

func New(postsDir, authorsDir string, logger *slog.Logger) *Packager {
	return &Packager{
		postsDir:   postsDir,
		authorsDir: authorsDir,
		logger:     logger.With("component", "archive"),
	}
}

// Build writes the asset archive to path, replacing any previous one.
// Avatars land under authors/, post images keep their relative structure:
// files at the tree root under posts/, nested files under images/posts/.
func (p *Packager) Build(path string) ([]SubtreeResult, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	var results []SubtreeResult
	results = append(results, p.addAvatars(zw))
	results = p.addPostImages(zw, "", results)

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	total := 0
	for _, r := range results {
		total += r.Files
	}
	p.logger.Info("built asset archive", "path", path, "files", total, "subtrees", len(results))
	return results, nil
}

func (p *Packager) addAvatars(zw *zip.Writer) SubtreeResult {
	res := SubtreeResult{Dir: p.authorsDir}

	entries, err := os.ReadDir(p.authorsDir)
	if err != nil {
		p.logger.Warn("skipping avatar directory", "dir", p.authorsDir, "error", err)
		res.Skipped = true
		return res
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := p.addFile(zw, filepath.Join(p.authorsDir, entry.Name()), "authors/"+entry.Name()); err != nil {
			p.logger.Warn("skipping avatar", "file", entry.Name(), "error", err)
			continue
		}
		res.Files++
	}
	return res
}

// addPostImages walks one level of the post-image tree, recursing into
// subdirectories. Each directory contributes its own SubtreeResult so a
// missing subtree never aborts the siblings.
func (p *Packager) addPostImages(zw *zip.Writer, rel string, results []SubtreeResult) []SubtreeResult {
	dir := filepath.Join(p.postsDir, filepath.FromSlash(rel))
	res := SubtreeResult{Dir: dir}

	entries, err := os.ReadDir(dir)
	if err != nil {
		p.logger.Warn("skipping image subtree", "dir", dir, "error", err)
		res.Skipped = true
		return append(results, res)
	}

	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, rel+entry.Name()+"/")
			continue
		}

		zipPath := "posts/" + entry.Name()
		if rel != "" {
			zipPath = "images/posts/" + rel + entry.Name()
		}
		if err := p.addFile(zw, filepath.Join(dir, entry.Name()), zipPath); err != nil {
			p.logger.Warn("skipping image", "file", entry.Name(), "error", err)
			continue
		}
		res.Files++
	}
	results = append(results, res)

	for _, sub := range subdirs {
		results = p.addPostImages(zw, sub, results)
	}
	return results
}

func (p *Packager) addFile(zw *zip.Writer, src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	w, err := zw.Create(dst)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}
