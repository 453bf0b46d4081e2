package main

import (
	"io"

	"go.uber.org/zap"

	"SisStore/internal/cache"
	"SisStore/internal/catalog"
	"SisStore/internal/config"
	"SisStore/internal/imgurl"
	"SisStore/internal/loader"
	"SisStore/pkg/kit"
)

type Globals struct {
	Cfg     config.Config
	Log     *zap.Logger
	Metrics *kit.Metrics
	Out     io.Writer
	NoCache bool
}

func (g *Globals) cacheStore() cache.Store {
	if g.NoCache {
		return cache.Nop{}
	}
	return cache.NewFileStore(g.Cfg.Cache.Path, g.Cfg.Cache.TTL.Std(), g.Log)
}

func (g *Globals) imageConfig() imgurl.Config {
	return imgurl.Config{
		AssetBase: g.Cfg.Assets.Base,
		DriveMode: g.Cfg.Assets.DriveMode,
		DriveURL:  g.Cfg.Assets.DriveURL,
	}
}

func (g *Globals) newLoader() *loader.Loader {
	return loader.New(
		catalog.NewClient(g.Cfg.Endpoint, g.Log),
		g.cacheStore(),
		loader.Config{
			FirstPage: g.Cfg.Paging.FirstPage,
			PageStep:  g.Cfg.Paging.PageStep,
			MaxItems:  g.Cfg.Paging.MaxItems,
		},
		g.Log,
		g.Metrics,
	)
}
