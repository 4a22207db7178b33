// cmd/passivemap/sources.go
package main

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"passivemap/internal/platform/registry"
)

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the registered intelligence sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			configs := cfg.SourceConfigs()
			metas := registry.Global().GetAllMetadata()

			rows := [][]string{{"NAME", "TYPE", "PRIORITY", "ENABLED", "AUTH", "CATEGORIES", "DESCRIPTION"}}
			for _, name := range slices.Sorted(maps.Keys(metas)) {
				meta := metas[name]

				priority := meta.Priority
				enabled := true
				if sc, ok := configs[name]; ok {
					enabled = sc.Enabled
					if sc.Priority > 0 {
						priority = sc.Priority
					}
				}

				cats := make([]string, 0, len(meta.Categories))
				for _, c := range meta.Categories {
					cats = append(cats, string(c))
				}

				rows = append(rows, []string{
					name,
					string(meta.Type),
					strconv.Itoa(priority),
					strconv.FormatBool(enabled),
					strconv.FormatBool(meta.RequiresAuth),
					strings.Join(cats, ","),
					meta.Description,
				})
			}

			// fuentes presentes en la configuración pero sin implementación
			for _, name := range slices.Sorted(maps.Keys(configs)) {
				if registry.Global().IsRegistered(name) {
					continue
				}
				rows = append(rows, []string{name, "-", "-", "-", "-", "-", "not registered (ignored)"})
			}

			out, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
