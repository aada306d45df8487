package ports

import "context"

// CommitResolverPort resolves the commit that last touched a file in the
// repository containing dir.
type CommitResolverPort interface {
	ResolveCommitID(ctx context.Context, dir string, fileName string) (string, error)
}
