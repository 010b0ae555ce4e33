package sync

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type declinePrompter struct{}

func (declinePrompter) Confirm(string) (bool, error) {
	return false, nil
}

func TestConsolePrompterAnswers(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"\n", true},
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"no\n", false},
		{"anything else\n", false},
	}

	for _, tc := range cases {
		var out bytes.Buffer
		p := &ConsolePrompter{In: strings.NewReader(tc.input), Out: &out}
		got, err := p.Confirm("Continue?")
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
		assert.Contains(t, out.String(), "[Y/n]")
	}
}

func TestGateConflictsNoopWithoutConflicts(t *testing.T) {
	local, remote := t.TempDir(), t.TempDir()
	eng := newTestEngine(t, local, remote)

	plan := &Plan{Direction: DirectionPush, Manifest: NewManifest()}

	var out bytes.Buffer
	// the prompter must never be consulted when there is nothing to decide
	err := eng.GateConflicts(plan, declinePrompter{}, &out)
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestGateConflictsListsEveryPath(t *testing.T) {
	local, remote := t.TempDir(), t.TempDir()
	writeFile(t, local, "one.txt", "l1")
	writeFile(t, local, "two.txt", "l2")
	writeFile(t, remote, "one.txt", "r1")
	writeFile(t, remote, "two.txt", "r2")

	old := NewManifest()
	old.Set("one.txt", "sha256:stale", time.Now())
	old.Set("two.txt", "sha256:stale", time.Now())
	require.NoError(t, old.Save(remote))

	eng := newTestEngine(t, local, remote)
	plan, err := eng.PlanPush(resolveSet(t, local, "one.txt", "two.txt"))
	require.NoError(t, err)
	require.Len(t, plan.Conflicts, 2)

	var out bytes.Buffer
	err = eng.GateConflicts(plan, declinePrompter{}, &out)
	require.ErrorIs(t, err, ErrConflictAbort)
	assert.Contains(t, out.String(), "one.txt")
	assert.Contains(t, out.String(), "two.txt")
}
