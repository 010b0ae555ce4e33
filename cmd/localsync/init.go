package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/localsync/localsync/internal/config"
	"github.com/localsync/localsync/internal/sync"
	"github.com/localsync/localsync/internal/utils"
	"github.com/localsync/localsync/internal/vcs"
)

func init() {
	rootCmd.AddCommand(newInitCmd())
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <remote-path>",
		Short: "Initialize the project with a remote root path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			// prefer the git root so init works from any subdirectory
			root := cwd
			if repo, err := vcs.Open(cwd); err == nil {
				root = repo.Root()
			}

			descriptor := filepath.Join(root, config.FileName)
			if config.Exists(root) {
				return fmt.Errorf("%s already exists at %s\nRemove it first if you want to reinitialize", config.FileName, descriptor)
			}

			remote, err := utils.ResolvePath(args[0])
			if err != nil {
				return err
			}

			cfg := &config.Config{Root: root, RemoteRoot: remote}
			if err := cfg.Save(); err != nil {
				return err
			}

			fmt.Printf("Initialized localsync with remote root: %s\n", cyan(remote))
			fmt.Printf("Config written to: %s\n", descriptor)

			if utils.FileExists(filepath.Join(remote, sync.ManifestFileName)) {
				fmt.Println()
				fmt.Println("Project already exists on the remote. Run 'localsync pull' to download.")
			}

			return nil
		},
	}
}
