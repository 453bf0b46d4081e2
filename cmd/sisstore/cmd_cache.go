package main

import (
	"fmt"
	"time"

	"SisStore/internal/cache"
)

type CacheCmd struct {
	Status CacheStatusCmd `cmd:"" default:"1" help:"Show cache freshness"`
	Clear  CacheClearCmd  `cmd:"" help:"Remove the cached catalog snapshot"`
}

type CacheStatusCmd struct{}

func (cmd *CacheStatusCmd) Run(g *Globals) error {
	store := cache.NewFileStore(g.Cfg.Cache.Path, g.Cfg.Cache.TTL.Std(), g.Log)
	st := store.Status()
	if !st.Present {
		fmt.Fprintf(g.Out, "No cache at %s\n", g.Cfg.Cache.Path)
		return nil
	}

	state := "fresh"
	if st.Expired {
		state = "expired"
	}
	fmt.Fprintf(g.Out, "%s: %d items, %s old (%s, ttl %s)\n",
		g.Cfg.Cache.Path, st.Items, st.Age.Round(time.Second), state, g.Cfg.Cache.TTL.Std())
	return nil
}

type CacheClearCmd struct{}

func (cmd *CacheClearCmd) Run(g *Globals) error {
	store := cache.NewFileStore(g.Cfg.Cache.Path, g.Cfg.Cache.TTL.Std(), g.Log)
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	fmt.Fprintf(g.Out, "Cleared %s\n", g.Cfg.Cache.Path)
	return nil
}
