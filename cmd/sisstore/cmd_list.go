package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"SisStore/internal/imgurl"
	"SisStore/internal/loader"
	"SisStore/internal/product"
	"SisStore/internal/view"
)

type ListCmd struct {
	Query    string `short:"q" help:"Match against product name or code"`
	Category string `short:"C" help:"Filter by category key"`
	Sort     string `short:"s" help:"Sort mode (popular, price-asc, price-desc, name-asc, name-desc)"`
	JSON     bool   `help:"Output as JSON"`
}

func (cmd *ListCmd) Run(g *Globals) error {
	mode, err := view.ParseSort(cmd.Sort)
	if err != nil {
		return err
	}
	state := view.State{
		Query:       cmd.Query,
		CategoryKey: cmd.Category,
		Sort:        mode,
	}
	if state.CategoryKey == "" {
		state.CategoryKey = product.AllKey
	}

	ld := g.newLoader()
	ld.RunToEnd(context.Background(), func(ev loader.Event) {
		if ev.Err != nil {
			g.Log.Warn("catalog load degraded", zap.Error(ev.Err))
		}
	})

	items := view.NewEngine().Filter(ld.Products(), state)
	if cmd.JSON {
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Fprintln(g.Out, "No products found.")
		return nil
	}

	imgCfg := g.imageConfig()
	money := message.NewPrinter(language.AmericanEnglish)
	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tCATEGORY\tPRICE\tIMAGE")
	fmt.Fprintln(w, "----\t----\t--------\t-----\t-----")
	for _, p := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Code, p.Name, p.Category, money.Sprintf("$%.2f", p.Price), listImage(imgCfg, p.Img))
	}
	return w.Flush()
}

// listImage is the display URL for the table, at the grid's mid width.
func listImage(cfg imgurl.Config, ref string) string {
	resolved := imgurl.Resolve(cfg, ref)
	if resolved == "" {
		return "-"
	}
	return imgurl.Sized(resolved, 480)
}
