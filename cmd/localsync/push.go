package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localsync/localsync/internal/sync"
	"github.com/localsync/localsync/internal/utils"
)

func init() {
	rootCmd.AddCommand(newPushCmd())
}

func newPushCmd() *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Copy local changes to the remote root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, cfg, err := openProject()
			if err != nil {
				return err
			}

			set, err := sync.ResolveSyncSet(cfg.Root, repo, cfg.AdditionalPaths)
			if err != nil {
				return err
			}

			if err := utils.EnsureDir(cfg.RemoteRoot); err != nil {
				return fmt.Errorf("failed to create remote root %s: %w", cfg.RemoteRoot, err)
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

			plan, err := eng.PlanPush(set)
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

			printSummary("Push", res)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "resolve all conflicts in favor of local changes")
	return cmd
}
