package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localsync/localsync/internal/config"
	"github.com/localsync/localsync/internal/utils"
)

func init() {
	rootCmd.AddCommand(newRemoveCmd())
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <path>",
		Aliases: []string{"rm"},
		Short:   "Remove a path from the additional sync list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, cfg, err := openProject()
			if err != nil {
				return err
			}

			entry := utils.NormPath(args[0])

			if !isGlob(entry) {
				tracked, err := repo.IsTracked(entry)
				if err != nil {
					return err
				}
				if tracked {
					return fmt.Errorf("%w: %s is tracked by git, not by the sync list", config.ErrNotTracked, entry)
				}
			}

			if err := cfg.RemoveEntry(entry); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			fmt.Printf("Removed from sync: %s\n", cyan(entry))
			return nil
		},
	}
}
