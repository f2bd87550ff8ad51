package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fixturegen/pkg/schema"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the schemas and operations of a document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, catalog, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCHEMA\tKIND")
			for _, name := range catalog.Names() {
				d, _ := catalog.Lookup(name)
				fmt.Fprintf(w, "%s\t%s\n", name, kindOf(d))
			}
			if ops := catalog.Operations(); len(ops) > 0 {
				fmt.Fprintln(w)
				fmt.Fprintln(w, "OPERATION\tMETHOD\tPATH")
				for _, id := range ops {
					op, _ := catalog.Operation(id)
					fmt.Fprintf(w, "%s\t%s\t%s\n", id, op.Method, op.Path)
				}
			}
			return w.Flush()
		},
	}
}

func kindOf(d schema.Descriptor) string {
	if d == nil {
		return "-"
	}
	return d.Kind().String()
}
