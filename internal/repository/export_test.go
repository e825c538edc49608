package repository

import "os"

// WithOpenFile replaces how the repository opens its backing file.
func WithOpenFile(open func(name string, flag int, perm os.FileMode) (*os.File, error)) FileOption {
	return func(r *FileWishRepository) { r.openFile = open }
}
