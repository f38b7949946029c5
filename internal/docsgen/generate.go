// Package docsgen writes the generated index pages of every sidebar category
// as static HTML.
package docsgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
	gomponents "maragu.dev/gomponents"

	"docindex/internal/app"
	"docindex/internal/sidebar"
	"docindex/internal/ui/assets"
)

// Options controls a generation run.
type Options struct {
	OutDir      string
	Concurrency int
	// Sidebar restricts generation to one sidebar; empty means all.
	Sidebar string
}

// Page describes one generated file.
type Page struct {
	Sidebar string `json:"sidebar"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Path    string `json:"path"`
}

// Manifest lists the generated pages, sorted by path.
type Manifest struct {
	Locale string `json:"locale"`
	Pages  []Page `json:"pages"`
}

const manifestName = "manifest.json"

type job struct {
	page   Page
	render func() (gomponents.Node, error)
}

// Generate renders a home page per sidebar and an index page per category
// into a staging directory next to opts.OutDir, then swaps it in. OutDir is
// left untouched when any page fails. An existing OutDir is only replaced when
// it is empty or holds a previous build (a manifest.json). The first render
// error cancels the run.
func Generate(ctx context.Context, a *app.App, opts Options) (*Manifest, error) {
	if opts.OutDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	outDir, err := filepath.Abs(opts.OutDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}

	jobs, err := plan(a, opts.Sidebar)
	if err != nil {
		return nil, err
	}
	if err := checkReplaceable(outDir); err != nil {
		return nil, err
	}

	parent := filepath.Dir(outDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("create output parent: %w", err)
	}
	staging, err := os.MkdirTemp(parent, "."+filepath.Base(outDir)+"-staging-*")
	if err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(staging) }()
	if err := os.Chmod(staging, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for _, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			node, err := j.render()
			if err != nil {
				return fmt.Errorf("render %s/%s: %w", j.page.Sidebar, j.page.Slug, err)
			}
			if err := writeNode(filepath.Join(staging, filepath.FromSlash(j.page.Path)), node); err != nil {
				return err
			}
			a.Logger.Debug("page written", "path", j.page.Path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := copyStatic(filepath.Join(staging, "static")); err != nil {
		return nil, err
	}

	m := &Manifest{Locale: a.Translator.Locale(), Pages: make([]Page, 0, len(jobs))}
	for _, j := range jobs {
		m.Pages = append(m.Pages, j.page)
	}
	sort.Slice(m.Pages, func(i, k int) bool { return m.Pages[i].Path < m.Pages[k].Path })
	if err := writeManifest(filepath.Join(staging, manifestName), m); err != nil {
		return nil, err
	}
	if err := swap(staging, outDir); err != nil {
		return nil, err
	}

	a.Logger.Info("index pages generated", slog.Int("pages", len(m.Pages)), slog.String("out", opts.OutDir))
	return m, nil
}

func plan(a *app.App, only string) ([]job, error) {
	var sidebars []sidebar.Sidebar
	if only != "" {
		sb, ok := a.Sidebars.Get(only)
		if !ok {
			return nil, fmt.Errorf("sidebar %q not found", only)
		}
		sidebars = []sidebar.Sidebar{sb}
	} else {
		sidebars = a.Sidebars.List
	}

	var jobs []job
	for _, sb := range sidebars {
		jobs = append(jobs, job{
			page: Page{Sidebar: sb.Name, Title: sb.Name, Path: path.Join(sb.Name, "index.html")},
			render: func() (gomponents.Node, error) {
				return a.Renderer.HomePage(sb.Name, sb.Items)
			},
		})
		for _, cp := range sidebar.Categories(sb) {
			jobs = append(jobs, job{
				page: Page{
					Sidebar: sb.Name,
					Slug:    cp.Slug,
					Title:   cp.Category.Label,
					Path:    path.Join(sb.Name, cp.Slug, "index.html"),
				},
				render: func() (gomponents.Node, error) {
					return a.Renderer.IndexPage(cp.Category)
				},
			})
		}
	}
	owners := make(map[string]string, len(jobs))
	for _, j := range jobs {
		if prev, ok := owners[j.page.Path]; ok {
			return nil, fmt.Errorf("pages %q and %q both write %s", prev, j.page.Title, j.page.Path)
		}
		owners[j.page.Path] = j.page.Title
	}
	return jobs, nil
}

// checkReplaceable refuses to replace a non-empty directory that was not
// produced by Generate.
func checkReplaceable(outDir string) error {
	entries, err := os.ReadDir(outDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read output dir: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}
	if _, err := os.Stat(filepath.Join(outDir, manifestName)); err != nil {
		return fmt.Errorf("refusing to replace %s: it is not empty and has no %s from a previous build", outDir, manifestName)
	}
	return nil
}

// swap moves staging into place at outDir, removing the previous build only
// once the new one is in place.
func swap(staging, outDir string) error {
	var backup string
	if _, err := os.Stat(outDir); err == nil {
		backup = staging + ".old"
		if err := os.Rename(outDir, backup); err != nil {
			return fmt.Errorf("move previous build aside: %w", err)
		}
	}
	if err := os.Rename(staging, outDir); err != nil {
		if backup != "" {
			_ = os.Rename(backup, outDir)
		}
		return fmt.Errorf("move new build into place: %w", err)
	}
	if backup != "" {
		if err := os.RemoveAll(backup); err != nil {
			return fmt.Errorf("remove previous build: %w", err)
		}
	}
	return nil
}

func writeNode(path string, node gomponents.Node) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if _, err := f.WriteString("<!DOCTYPE html>"); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %q: %w", path, err)
	}
	if err := node.Render(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %q: %w", path, err)
	}
	return f.Close()
}

func writeManifest(path string, m *Manifest) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

func copyStatic(dst string) error {
	static, err := fs.Sub(assets.StaticFS(), "static")
	if err != nil {
		return fmt.Errorf("open static assets: %w", err)
	}
	if err := os.CopyFS(dst, static); err != nil {
		return fmt.Errorf("copy static assets: %w", err)
	}
	return nil
}
