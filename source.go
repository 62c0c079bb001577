// Source abstractions for byte-addressable inputs.
//
// A Source is borrowed for the duration of a computation; the caller
// retains ownership and is responsible for closing file-backed sources.

package s3etag

import (
	"bytes"
	"io"

	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/mayur19/s3-etag-generator/errors"
)

// Source is a byte-addressable input with a known total length.
// Implementations must support reading arbitrary contiguous ranges without
// loading the whole input into memory, and must be safe for concurrent
// ReadAt calls on disjoint ranges.
type Source interface {
	io.ReaderAt

	// Len returns the total length of the source in bytes.
	Len() int64
}

type bytesSource struct {
	*bytes.Reader
}

func (s bytesSource) Len() int64 {
	return s.Size()
}

// NewBytesSource wraps an in-memory byte slice as a Source.
func NewBytesSource(data []byte) Source {
	return bytesSource{bytes.NewReader(data)}
}

type readerAtSource struct {
	r      io.ReaderAt
	length int64
}

func (s *readerAtSource) ReadAt(p []byte, off int64) (int, error) {
	return s.r.ReadAt(p, off)
}

func (s *readerAtSource) Len() int64 {
	return s.length
}

// NewReaderAtSource wraps an io.ReaderAt with a known length as a Source.
func NewReaderAtSource(r io.ReaderAt, length int64) Source {
	return &readerAtSource{r: r, length: length}
}

// FileSource is a Source backed by an open file.
type FileSource struct {
	file fs.File
	size int64
	path string
}

// NewFileSource opens path on the given filesystem and returns it as a
// Source. The caller must Close the returned source when done.
func NewFileSource(filesystem fs.Filesystem, path string) (*FileSource, error) {
	info, err := filesystem.Stat(path)
	if err != nil {
		return nil, errors.NewError("openSource", errors.ErrRead).
			WithPath(path).
			WithMessage(err.Error())
	}
	if info.IsDir() {
		return nil, errors.NewError("openSource", errors.ErrInvalidInput).
			WithPath(path).
			WithMessage("path is a directory")
	}

	file, err := filesystem.Open(path)
	if err != nil {
		return nil, errors.NewError("openSource", errors.ErrRead).
			WithPath(path).
			WithMessage(err.Error())
	}

	return &FileSource{
		file: file,
		size: info.Size(),
		path: path,
	}, nil
}

// ReadAt implements io.ReaderAt by delegating to the underlying file.
func (s *FileSource) ReadAt(p []byte, off int64) (int, error) {
	return s.file.ReadAt(p, off)
}

// Len returns the file size recorded when the source was opened.
func (s *FileSource) Len() int64 {
	return s.size
}

// Path returns the path the source was opened from.
func (s *FileSource) Path() string {
	return s.path
}

// Close releases the underlying file handle.
func (s *FileSource) Close() error {
	return s.file.Close()
}
