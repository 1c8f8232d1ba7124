package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/revelaction/relex/pattern"
	"github.com/revelaction/relex/render"
	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/storage"
	"github.com/revelaction/relex/storage/filesystem"
	"github.com/revelaction/relex/storage/sqlite/zombiezen"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"
)

// NewDocRepository picks the doc storage backend for path: a directory
// holds provider JSON exports, a file is a sqlite database.
func (a *App) NewDocRepository(path string) (storage.DocRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("doc repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewDocStore(path)
	}

	pool, err := a.pool.Open(path)
	if err != nil {
		return nil, err
	}

	return zombiezen.NewDocStore(pool), nil
}

// NewPatternRepository picks the pattern storage backend for path, same
// directory-or-file rule as NewDocRepository.
func (a *App) NewPatternRepository(path string) (storage.PatternRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("pattern repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewPatternStore(path), nil
	}

	pool, err := a.pool.Open(path)
	if err != nil {
		return nil, err
	}

	return zombiezen.NewPatternStore(pool), nil
}

// docRepo builds the doc repository from the doc-path flag, falling
// back to the config file entry.
func (a *App) docRepo(ctx *cli.Context) (storage.DocRepository, error) {
	path := ctx.String("doc-path")
	if path == "" {
		path = a.cfg.DocPath
	}

	if path == "" {
		return nil, errors.New("doc path must be given via --doc-path, RELEX_DOC_PATH or the config file")
	}

	return a.NewDocRepository(path)
}

// patternRepo builds the pattern repository from the pattern-path flag,
// falling back to the config file entry.
func (a *App) patternRepo(ctx *cli.Context) (storage.PatternRepository, error) {
	path := ctx.String("pattern-path")
	if path == "" {
		path = a.cfg.PatternPath
	}

	if path == "" {
		return nil, errors.New("pattern path must be given via --pattern-path, RELEX_PATTERN_PATH or the config file")
	}

	return a.NewPatternRepository(path)
}

// library returns the stored patterns when a pattern path is
// configured and the builtin Hearst library otherwise.
func (a *App) library(ctx *cli.Context) (pattern.Library, error) {
	path := ctx.String("pattern-path")
	if path == "" {
		path = a.cfg.PatternPath
	}

	if path == "" {
		return pattern.Builtin(), nil
	}

	repo, err := a.NewPatternRepository(path)
	if err != nil {
		return nil, err
	}

	return repo.ReadAll()
}

// preload fills the in-memory cache of filesystem backends, showing a
// progress bar. Sqlite backends load on demand and skip this.
func preload(repo storage.DocReader, labels []string) error {
	p, ok := repo.(storage.Preloader)
	if !ok {
		return nil
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(1)
	bar.AppendCompleted()
	bar.PrependElapsed()

	var current string
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		return current
	})

	err := p.Preload(labels, func(i, total int, name string) {
		if bar.Total <= 1 {
			bar.Total = total
		}

		current = name
		bar.Incr()
	})
	uiprogress.Stop()

	return err
}

// format picks the render format: flag, then config, then default.
func (a *App) format(ctx *cli.Context) string {
	if f := ctx.String("format"); f != "" {
		return f
	}

	if a.cfg.Format != "" {
		return a.cfg.Format
	}

	return render.Defaultformat
}

// termRenderer builds the terminal renderer from the command flags.
func (a *App) termRenderer(ctx *cli.Context) *render.TermRenderer {
	r := render.NewTermRenderer(a.ui.Out)
	r.HasColor = !ctx.Bool("no-color")
	r.HasPrefix = !ctx.Bool("no-prefix")
	r.Format = a.format(ctx)
	r.NumSpans = ctx.Int("nmatches")

	return r
}

// namedRenderer builds the terminal renderer with the doc titles of
// the repository filled in for the prefixes.
func (a *App) namedRenderer(ctx *cli.Context, repo storage.DocReader) (*render.TermRenderer, error) {
	r := a.termRenderer(ctx)

	metas, err := repo.List("")
	if err != nil {
		return nil, err
	}

	for _, m := range metas {
		r.AddDocName(m.Id, m.Title)
	}

	return r, nil
}

// resolveDoc reads the doc named by source: an existing file path loads
// directly, anything else must be a numeric id of the doc repository.
func (a *App) resolveDoc(ctx *cli.Context, source string) (sent.Doc, error) {
	if info, err := os.Stat(source); err == nil && !info.IsDir() {
		doc, err := filesystem.ReadDoc(source)
		if err != nil {
			return sent.Doc{}, err
		}

		return doc, nil
	}

	id, err := strconv.Atoi(source)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("source is neither a file nor a doc id: %s", source)
	}

	repo, err := a.docRepo(ctx)
	if err != nil {
		return sent.Doc{}, err
	}

	return repo.Read(id)
}
