package recipe

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/matzehuels/composer2rpm/pkg/errors"
)

// placed records one destination that has been replaced, and where its
// previous content was moved ("" if there was none).
type placed struct {
	dst, backup string
}

// Write stores files in dir, replacing existing files of the same name.
//
// Every file is first written to a uniquely named temporary file next to its
// destination. Only when all of them are on disk are they renamed into
// place; existing outputs are moved aside first and restored if a later
// rename fails. A failed write leaves the previous outputs untouched and no
// temporary files behind.
func Write(dir string, files []File) error {
	temps := make([]string, 0, len(files))
	cleanup := func() {
		for _, t := range temps {
			_ = os.Remove(t)
		}
	}

	for _, f := range files {
		if info, err := os.Lstat(filepath.Join(dir, f.Name)); err == nil && info.IsDir() {
			return errors.New(errors.ErrCodeInternal, "write %s: destination is a directory", f.Name)
		}
	}

	for _, f := range files {
		tmp := tempName(dir, f.Name, "tmp")
		if err := os.WriteFile(tmp, f.Data, 0644); err != nil {
			cleanup()
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", f.Name)
		}
		temps = append(temps, tmp)
	}

	done := make([]placed, 0, len(files))
	for i, f := range files {
		p := placed{dst: filepath.Join(dir, f.Name)}
		if _, err := os.Lstat(p.dst); err == nil {
			p.backup = tempName(dir, f.Name, "bak")
			if err := os.Rename(p.dst, p.backup); err != nil {
				rollback(done)
				cleanup()
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", f.Name)
			}
		}
		if err := os.Rename(temps[i], p.dst); err != nil {
			if p.backup != "" {
				_ = os.Rename(p.backup, p.dst)
			}
			rollback(done)
			cleanup()
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", f.Name)
		}
		done = append(done, p)
	}

	for _, p := range done {
		if p.backup != "" {
			_ = os.Remove(p.backup)
		}
	}
	return nil
}

// rollback undoes completed renames in reverse order.
func rollback(done []placed) {
	for i := len(done) - 1; i >= 0; i-- {
		p := done[i]
		if p.backup != "" {
			_ = os.Rename(p.backup, p.dst)
		} else {
			_ = os.Remove(p.dst)
		}
	}
}

func tempName(dir, name, suffix string) string {
	return filepath.Join(dir, "."+filepath.Base(name)+"."+uuid.NewString()+"."+suffix)
}
