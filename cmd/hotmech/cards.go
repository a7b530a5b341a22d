package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hotmech/simulator/internal/config"
)

// listCards prints every card in the built-in catalogue (or --catalog) with its balance
// cost, marking those the audit flags at the given tolerance.
func listCards(out io.Writer, tolerance int) error {
	reg, err := loadCatalog(config.GetString("catalog.path"))
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	flagged := map[string]int{}
	for _, f := range reg.Audit(tolerance) {
		flagged[f.Card.ID] = f.Delta
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tHEAT\tCOST\tAUDIT\tRULES")
	for _, def := range reg.Cards() {
		audit := ""
		if delta, ok := flagged[def.ID]; ok {
			audit = fmt.Sprintf("%+d", delta)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			def.ID, def.HumanName(), def.Heat, def.BalanceCost(), audit, def.Explain())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "%d cards, %d outside tolerance %d\n", len(reg.Cards()), len(flagged), tolerance)
	return err
}
