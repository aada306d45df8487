package adapters

import (
	"context"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pnc-buildconfig/internal/ports"
	"pnc-buildconfig/internal/shared"
)

// GitCommitAdapter asks the local git checkout for the last commit that
// touched a file.
type GitCommitAdapter struct {
	Binary string
}

func NewGitCommitAdapter() GitCommitAdapter {
	return GitCommitAdapter{Binary: "git"}
}

func (a GitCommitAdapter) ResolveCommitID(ctx context.Context, dir string, fileName string) (string, error) {
	binary := a.Binary
	if binary == "" {
		binary = "git"
	}
	cmd := exec.CommandContext(ctx, binary, "log", "-n", "1", "--format=%H", "--", fileName)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("git log failed").
			WithCause(shared.CommandError(output, err))
	}
	commit := strings.TrimSpace(string(output))
	if commit == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no commit found for " + fileName + " in " + dir)
	}
	return commit, nil
}

var _ ports.CommitResolverPort = GitCommitAdapter{}
