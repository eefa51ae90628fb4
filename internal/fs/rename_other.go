//go:build !linux

package fs

// RenameNoReplace renames oldpath to newpath, failing with an error matching
// os.ErrExist when newpath is already present.
func RenameNoReplace(oldpath, newpath string) error {
	return renameChecked(oldpath, newpath)
}
