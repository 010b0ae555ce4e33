package main

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/localsync/localsync/internal/config"
	"github.com/localsync/localsync/internal/utils"
)

func init() {
	rootCmd.AddCommand(newAddCmd())
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>",
		Short: "Add a gitignored file, directory or glob pattern to the sync list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, cfg, err := openProject()
			if err != nil {
				return err
			}

			entry := utils.NormPath(args[0])
			kind := "file"

			if isGlob(entry) {
				if !doublestar.ValidatePattern(entry) {
					return fmt.Errorf("%w: invalid glob pattern %q", config.ErrConfigMalformed, entry)
				}
				kind = "pattern"
			} else {
				full := filepath.Join(cfg.Root, filepath.FromSlash(entry))
				switch {
				case utils.DirExists(full):
					kind = "directory"
				case utils.FileExists(full):
					tracked, err := repo.IsTracked(entry)
					if err != nil {
						return err
					}
					if tracked {
						return fmt.Errorf("%w: %s is already tracked by git", config.ErrAlreadyTracked, entry)
					}
				default:
					return fmt.Errorf("%w: %s", config.ErrPathNotFound, entry)
				}
			}

			if err := cfg.AddEntry(entry); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			fmt.Printf("Added %s to sync: %s\n", kind, cyan(entry))
			return nil
		},
	}
}

func isGlob(entry string) bool {
	for _, r := range entry {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
