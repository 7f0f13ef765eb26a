// Package fsx contains io/fs extensions.
package fsx

import (
	"io"
	"io/fs"
	"os"
	"syscall"
)

// OpenFile is a wrapper for os.Open that ensures that we're
// opening a file rather than a directory. When the pathname
// refers to a directory, this func returns an *os.PathError
// with Err set to syscall.EISDIR.
func OpenFile(pathname string) (fs.File, error) {
	return openWithFS(filesystem{}, pathname)
}

// ReadFile reads the whole file at pathname using OpenFile,
// so reading a directory fails early with EISDIR rather than
// with a confusing read error.
func ReadFile(pathname string) ([]byte, error) {
	filep, err := OpenFile(pathname)
	if err != nil {
		return nil, err
	}
	defer filep.Close()
	return io.ReadAll(filep)
}

// openWithFS is like OpenFile but with an explicit file system argument.
func openWithFS(fs fs.FS, pathname string) (fs.File, error) {
	file, err := fs.Open(pathname)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, &os.PathError{
			Op:   "openFile",
			Path: pathname,
			Err:  syscall.EISDIR,
		}
	}
	return file, nil
}

// filesystem is a private implementation of fs.FS.
type filesystem struct{}

// Open implements fs.FS.Open.
func (filesystem) Open(pathname string) (fs.File, error) {
	return os.Open(pathname)
}
