package sync

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks a single yes/no question. The affirmative answer resolves
// every listed conflict at once; there is no per-file granularity.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// ConsolePrompter reads the answer from In and writes the question to Out
// (conventionally stderr, so the prompt is visible even when stdout is
// redirected). Empty input, "y" or "yes" (case-insensitive) is affirmative.
type ConsolePrompter struct {
	In  io.Reader
	Out io.Writer
}

func (c *ConsolePrompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(c.Out, "%s [Y/n] ", question)

	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y" || answer == "yes", nil
}

// AutoApprove answers yes to every question. Used by the --yes flag.
type AutoApprove struct{}

func (AutoApprove) Confirm(string) (bool, error) {
	return true, nil
}

// GateConflicts is the interactive gate between planning and execution.
// When the plan carries conflicts, they are all listed together on out and
// a single bulk decision is requested. Acceptance rewrites the conflicts
// into directional-winner copies; refusal returns ErrConflictAbort with the
// plan untouched, which aborts the run before any mutation.
func (e *Engine) GateConflicts(plan *Plan, prompter Prompter, out io.Writer) error {
	if len(plan.Conflicts) == 0 {
		return nil
	}

	fmt.Fprintln(out, "Conflicts detected (modified both locally and remotely):")
	for _, rel := range plan.Conflicts {
		fmt.Fprintf(out, "  %s\n", rel)
	}
	fmt.Fprintln(out)

	var question string
	switch plan.Direction {
	case DirectionPush:
		question = "Do you want to continue? Local changes will overwrite the remote."
	case DirectionPull:
		question = "Do you want to continue? Remote changes will overwrite local files."
	}

	ok, err := prompter.Confirm(question)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflictAbort
	}

	return e.ResolveConflicts(plan)
}
