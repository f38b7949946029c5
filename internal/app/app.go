// Package app wires the loaded site (sidebars, doc metadata, translations)
// into a card renderer shared by the generator, the preview server and the CLI.
package app

import (
	"fmt"
	"log/slog"

	"docindex/internal/config"
	"docindex/internal/i18n"
	"docindex/internal/sidebar"
	"docindex/internal/ui"
)

// Deps holds what New needs from main.
type Deps struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// App is a fully loaded site ready to render.
type App struct {
	Sidebars   *sidebar.Sidebars
	Docs       *sidebar.DocIndex
	Translator *i18n.Translator
	Renderer   *ui.Renderer
	Logger     *slog.Logger
}

// New loads every input file named by the config and builds the renderer.
// An empty DocsPath is allowed; link cards then have no description.
func New(deps Deps) (*App, error) {
	cfg := deps.Cfg
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sidebars, err := sidebar.Load(cfg.SidebarsPath)
	if err != nil {
		return nil, fmt.Errorf("load sidebars: %w", err)
	}

	r, err := LoadRenderer(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("site loaded",
		"sidebars", len(sidebars.List),
		"docs", r.Docs.Len(),
		"locale", r.Translator.Locale(),
	)

	return &App{
		Sidebars:   sidebars,
		Docs:       r.Docs,
		Translator: r.Translator,
		Renderer:   r.Renderer,
		Logger:     logger,
	}, nil
}

// Rendering bundles a renderer with the collaborators it was built from.
type Rendering struct {
	Docs       *sidebar.DocIndex
	Translator *i18n.Translator
	Renderer   *ui.Renderer
}

// LoadRenderer loads doc metadata and translations and builds a card
// renderer. It does not need a sidebars file.
func LoadRenderer(cfg *config.Config) (*Rendering, error) {
	docs := sidebar.NewDocIndex()
	if cfg.DocsPath != "" {
		var err error
		docs, err = sidebar.LoadDocIndex(cfg.DocsPath)
		if err != nil {
			return nil, fmt.Errorf("load docs: %w", err)
		}
	}

	catalog, err := i18n.LoadCatalog(cfg.I18nDir, cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	translator, err := i18n.NewTranslator(cfg.Locale, catalog)
	if err != nil {
		return nil, err
	}

	renderer := ui.NewRenderer(sidebar.Resolver{}, docs, sidebar.URLClassifier{SiteURL: cfg.SiteURL}, translator)
	if cfg.StaticBase != "" {
		renderer.StaticBase = cfg.StaticBase
	}
	return &Rendering{Docs: docs, Translator: translator, Renderer: renderer}, nil
}
