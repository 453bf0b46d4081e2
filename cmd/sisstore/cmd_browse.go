package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"SisStore/internal/share"
	"SisStore/internal/ui"
	"SisStore/internal/view"
)

type BrowseCmd struct{}

func (cmd *BrowseCmd) Run(g *Globals) error {
	m := ui.New(ui.Options{
		Loader:  g.newLoader(),
		Planner: view.NewPlanner(view.NewEngine(), g.Cfg.Render.Chunk, g.Metrics),
		Telegram: share.Telegram{
			Seller: g.Cfg.Telegram.Seller,
			Mode:   g.Cfg.Telegram.Mode,
		},
		Images:  g.imageConfig(),
		PageURL: g.Cfg.PageURL,
		Log:     g.Log,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run storefront: %w", err)
	}
	return nil
}
