package filesystem

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"slices"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

const repoDepth = 2

// Files writes generated files and discovers repositories on the local disk.
type Files struct{}

func (Files) WriteFile(name string, data []byte) error {
	fs := osfs.New(filepath.Dir(name))
	if err := util.WriteFile(fs, filepath.Base(name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// ListRepos returns the directories exactly two levels below root as
// "<owner>/<repo>", sorted. Directories named in skip are not descended.
func (Files) ListRepos(ctx context.Context, root string, skip []string) ([]string, error) {
	fs := osfs.New(root)
	if _, err := fs.Stat("."); err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}

	var out []string
	var walk func(dir string, depth int) error
	walk = func(dir string, depth int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries, err := fs.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("list %s: %w", filepath.Join(root, dir), err)
		}
		for _, entry := range entries {
			if !entry.IsDir() || slices.Contains(skip, entry.Name()) {
				continue
			}
			rel := path.Join(dir, entry.Name())
			if depth == repoDepth {
				out = append(out, rel)
				continue
			}
			if err := walk(rel, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk("", 1); err != nil {
		return nil, err
	}
	slices.Sort(out)
	return out, nil
}
