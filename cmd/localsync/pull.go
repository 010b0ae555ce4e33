package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/localsync/localsync/internal/config"
	"github.com/localsync/localsync/internal/sync"
	"github.com/localsync/localsync/internal/utils"
)

func init() {
	rootCmd.AddCommand(newPullCmd())
}

func newPullCmd() *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Copy remote changes to the local working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			// pull may run in a fresh clone target that is not a repository
			// yet, so the descriptor is located by walking upward instead of
			// asking version control.
			root, err := config.FindRoot(cwd)
			if err != nil {
				return err
			}
			cfg, err := config.Load(root)
			if err != nil {
				return err
			}
			if cfg.RemoteRoot, err = utils.ResolvePath(cfg.RemoteRoot); err != nil {
				return fmt.Errorf("%w: bad remote root: %v", config.ErrConfigMalformed, err)
			}

			if !utils.DirExists(cfg.RemoteRoot) {
				fmt.Println("Nothing to pull. Remote root is empty or doesn't exist.")
				return nil
			}

			lock, err := sync.AcquireRemoteLock(cfg.RemoteRoot)
			if err != nil {
				return err
			}
			defer lock.Release()

			eng, err := sync.NewEngine(cfg.Root, cfg.RemoteRoot)
			if err != nil {
				return err
			}

			plan, err := eng.PlanPull()
			if err != nil {
				return err
			}

			if err := eng.GateConflicts(plan, newPrompter(assumeYes), cmd.ErrOrStderr()); err != nil {
				if errors.Is(err, sync.ErrConflictAbort) {
					fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
					return nil
				}
				return err
			}

			executor := &sync.Executor{
				RemoteRoot: cfg.RemoteRoot,
				OnCopied:   func(path string) { fmt.Printf("Copied: %s\n", path) },
				OnDeleted:  func(path string) { fmt.Printf("Deleted: %s\n", path) },
			}
			res, err := executor.Execute(plan)
			if err != nil {
				return err
			}

			printSummary("Pull", res)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "resolve all conflicts in favor of remote changes")
	return cmd
}
