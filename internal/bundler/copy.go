package bundler

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/macisi/ehdev-configs/internal/plan"
)

// runCopies executes every copy directive concurrently. Any failure,
// including a vendor file that never existed, fails the build; a silently
// skipped external would leave generated pages referencing assets that are
// not there.
func (b *Bundler) runCopies(ctx context.Context) error {
	eg, _ := errgroup.WithContext(ctx)

	for _, d := range b.graph.Directives {
		cp, ok := d.(plan.CopyDirective)
		if !ok {
			continue
		}
		eg.Go(func() error {
			if err := copyFile(cp.From, cp.To); err != nil {
				return fmt.Errorf("vendor copy failed: %w", err)
			}
			b.logger.Debug("copied vendor asset", "from", cp.From, "to", cp.To)
			return nil
		})
	}

	return eg.Wait()
}

// copyFile copies src into the destination directory, preserving the base
// name.
func copyFile(src, dstDir string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return err
	}

	dst := filepath.Join(dstDir, filepath.Base(src))
	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
