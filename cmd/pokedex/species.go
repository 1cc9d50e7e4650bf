package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSpeciesCmd(flags *rootFlags) *cobra.Command {
	var evolvableOnly bool
	cmd := &cobra.Command{
		Use:   "species",
		Short: "Print the loaded species table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			table, err := loadSpecies(cfg.Data)
			if err != nil {
				return fmt.Errorf("load species: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, s := range table.All() {
				if evolvableOnly && !s.CanEvolve {
					continue
				}
				evolves := "-"
				if s.CanEvolve {
					evolves = "evolves"
				}
				fmt.Fprintf(out, "%3d  %-12s %-9s HP %3d  ATK %3d  %s\n",
					s.ID, s.Name, s.Type, s.HP, s.Attack, evolves)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&evolvableOnly, "evolvable", false, "only list species that can evolve")
	return cmd
}
