package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/localsync/localsync/internal/sync"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Faint(true).Width(18)
)

func init() {
	rootCmd.AddCommand(newStatusCmd())
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync status without changing anything",
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

			eng, err := sync.NewEngine(cfg.Root, cfg.RemoteRoot)
			if err != nil {
				return err
			}

			report, err := eng.Status(set)
			if err != nil {
				return err
			}

			fmt.Println(titleStyle.Render("localsync"))
			fmt.Printf("%s %s\n", labelStyle.Render("Local root"), cfg.Root)
			fmt.Printf("%s %s\n", labelStyle.Render("Remote root"), cfg.RemoteRoot)
			fmt.Printf("%s %d files (%s)\n", labelStyle.Render("Sync set"), set.Len(), humanize.Bytes(report.LocalBytes))
			fmt.Printf("%s %d\n", labelStyle.Render("Additional paths"), len(cfg.AdditionalPaths))
			fmt.Printf("%s %d\n", labelStyle.Render("Manifest entries"), eng.LastSynced().Len())

			fmt.Println()
			fmt.Println(titleStyle.Render("Status"))
			fmt.Printf("%s %s\n", labelStyle.Render("In sync"), green(len(report.InSync)))
			fmt.Printf("%s %d\n", labelStyle.Render("Modified"), len(report.Modified))
			fmt.Printf("%s %d\n", labelStyle.Render("Local only"), len(report.LocalOnly))
			fmt.Printf("%s %d\n", labelStyle.Render("Remote only"), len(report.RemoteOnly))

			printPaths("Modified", report.Modified)
			printPaths("Local only", report.LocalOnly)
			printPaths("Remote only", report.RemoteOnly)

			if len(cfg.AdditionalPaths) > 0 {
				fmt.Println()
				fmt.Println(titleStyle.Render("Additional paths"))
				for _, entry := range cfg.AdditionalPaths {
					fmt.Printf("  +%s\n", cyan(entry))
				}
			}

			return nil
		},
	}
}

func printPaths(title string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(titleStyle.Render(title))
	for _, p := range paths {
		fmt.Printf("  %s\n", p)
	}
}
