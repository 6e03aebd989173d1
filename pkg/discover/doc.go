// Package discover locates evaluation result files on the local filesystem.
//
// # Overview
//
// A Finder recursively walks a root directory and returns the paths of every
// regular file whose base name matches a glob pattern. The default pattern,
// evaluation*.yaml, matches the files produced by evaluation runs.
//
// # Usage
//
//	finder := discover.NewFinder()
//	paths, err := finder.Find(ctx, "/var/results")
//	if err != nil {
//	    return err
//	}
//
// A custom pattern can be supplied with a functional option:
//
//	finder := discover.NewFinder(discover.WithPattern("run*.yaml"))
//
// # Semantics
//
// The root must exist and be a directory; anything else is rejected before
// the walk starts. Only regular files are returned: directories, symlinks,
// and special files are skipped. Matching is by base name only, file content
// is never inspected. The returned order is the lexical walk order of the
// tree; callers must not attach meaning to it. Each call re-walks the tree,
// nothing is cached across calls.
package discover
