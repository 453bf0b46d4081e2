package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"SisStore/internal/config"
	"SisStore/pkg/kit"
)

type CLI struct {
	Browse BrowseCmd `cmd:"" default:"1" help:"Open the interactive storefront"`
	List   ListCmd   `cmd:"" aliases:"ls" help:"Print the catalog and exit"`
	Cache  CacheCmd  `cmd:"" help:"Inspect or clear the catalog cache"`

	Config   string `name:"config" short:"c" help:"Path to config file"`
	Endpoint string `name:"endpoint" short:"e" help:"Catalog endpoint URL"`
	NoCache  bool   `name:"no-cache" help:"Skip the catalog cache for this run"`
	LogFile  string `name:"log-file" help:"Write debug logs to this file"`
}

func (c *CLI) AfterApply(ctx *kong.Context) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Endpoint != "" {
		cfg.Endpoint = c.Endpoint
	}

	g := &Globals{
		Cfg:     cfg,
		Log:     newRunLogger(ctx.Command(), c.LogFile),
		Metrics: kit.NewMetrics(prometheus.NewRegistry()),
		Out:     os.Stdout,
		NoCache: c.NoCache,
	}
	ctx.Bind(g)
	return nil
}

// newRunLogger picks the log sink per command: browse owns the terminal, so
// it logs to the optional file only; one-shot commands log to stderr.
func newRunLogger(command, logFile string) *zap.Logger {
	if logFile != "" || strings.HasPrefix(command, "browse") {
		return kit.NewFileLogger("sisstore", logFile)
	}
	return kit.NewLogger("sisstore")
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("sisstore"),
		kong.Description("Terminal storefront for the Sis Store catalog"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sisstore: %v\n", err)
		os.Exit(1)
	}
}
