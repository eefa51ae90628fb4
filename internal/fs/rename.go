package fs

import (
	"errors"
	"os"
)

// renameChecked is the portable variant of RenameNoReplace. A file created at
// newpath between the check and the rename is overwritten.
func renameChecked(oldpath, newpath string) error {
	_, err := os.Lstat(newpath)
	if err == nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrExist}
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.Rename(oldpath, newpath)
}
