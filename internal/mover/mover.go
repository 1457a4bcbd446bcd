// Package mover provides the two ways a refactor batch can physically rename
// files: through git, or directly on the filesystem.
package mover

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/aidanlsb/axon/internal/refactor"
)

// Git renames through `git mv` so the index follows the rename.
type Git struct {
	Dir string
}

func (g *Git) Name() string { return "git mv" }

func (g *Git) Move(ctx context.Context, from, to string, force bool) error {
	args := []string{"mv"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, "--", from, to)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return err
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return errors.New(msg)
		}
		return errors.New("git mv failed")
	}
	return nil
}

// FS renames with os.Rename.
type FS struct {
	Dir string
}

func (f *FS) Name() string { return "mv" }

func (f *FS) Move(_ context.Context, from, to string, force bool) error {
	src := filepath.Join(f.Dir, from)
	dst := filepath.Join(f.Dir, to)
	if force {
		if _, err := os.Stat(dst); err == nil {
			if err := os.Remove(dst); err != nil {
				return err
			}
		}
	}
	return os.Rename(src, dst)
}

// InWorkTree reports whether dir is inside a git working tree.
func InWorkTree(ctx context.Context, dir string) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) == "true"
}

// Options selects a backend. UseGit and NoGit are mutually exclusive; with
// neither set the backend follows InWorkTree.
type Options struct {
	UseGit bool
	NoGit  bool
	Dir    string
}

// Resolve picks the backend once for an invocation.
func Resolve(ctx context.Context, opts Options) (refactor.MoveBackend, error) {
	if opts.UseGit && opts.NoGit {
		return nil, &refactor.EnvironmentError{Op: "select rename backend", Detail: "--git and --no-git cannot be used together"}
	}
	if opts.NoGit {
		return &FS{Dir: opts.Dir}, nil
	}

	inGit := InWorkTree(ctx, opts.Dir)
	if opts.UseGit {
		if !inGit {
			return nil, &refactor.EnvironmentError{Op: "select rename backend", Detail: "not in a git repository"}
		}
		return &Git{Dir: opts.Dir}, nil
	}
	if inGit {
		return &Git{Dir: opts.Dir}, nil
	}
	return &FS{Dir: opts.Dir}, nil
}
