package main

import (
	"fmt"
	"os"

	"github.com/localsync/localsync/internal/config"
	"github.com/localsync/localsync/internal/sync"
	"github.com/localsync/localsync/internal/utils"
	"github.com/localsync/localsync/internal/vcs"
)

// openProject locates the enclosing git working tree and loads the project
// descriptor at its root. Every sync operation except pull starts here.
func openProject() (*vcs.Repo, *config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, err
	}

	repo, err := vcs.Open(cwd)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(repo.Root())
	if err != nil {
		return nil, nil, err
	}

	if cfg.RemoteRoot, err = utils.ResolvePath(cfg.RemoteRoot); err != nil {
		return nil, nil, fmt.Errorf("%w: bad remote root: %v", config.ErrConfigMalformed, err)
	}

	return repo, cfg, nil
}

func newPrompter(assumeYes bool) sync.Prompter {
	if assumeYes {
		return sync.AutoApprove{}
	}
	return &sync.ConsolePrompter{In: os.Stdin, Out: os.Stderr}
}

func printSummary(verb string, res *sync.Result) {
	if res.Copied == 0 && res.Deleted == 0 {
		fmt.Println("Already up to date.")
		return
	}
	fmt.Printf("%s %s: %d copied, %d deleted\n", verb, green("complete"), res.Copied, res.Deleted)
}
