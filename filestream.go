package cmsgpack

import (
	"errors"
	"io"
	"os"

	"github.com/svenboertjens/cmsgpack/errs"
	"github.com/svenboertjens/cmsgpack/internal/buffer"
)

const defaultChunkSize = 64 * 1024

// FileStream is a file-backed Stream: encode appends serialised bytes to
// the file, decode reads sequentially from an independent read offset,
// growing its read window one chunk at a time until a full Value parses.
//
// Two FileStream instances opened on the same path each keep their own
// read offset; neither synchronises with the other, and the file is
// opened in read+append mode without any locking — concurrent access
// across processes or goroutines is the caller's responsibility.
type FileStream struct {
	file      *os.File
	chunkSize int
	offset    int64
	opts      []Option
}

// FileStreamOption configures a new FileStream.
type FileStreamOption = func(*fileStreamConfig)

type fileStreamConfig struct {
	readingOffset int64
	chunkSize     int
	opts          []Option
}

// WithReadingOffset sets the FileStream's initial read offset. Default 0.
func WithReadingOffset(offset int64) FileStreamOption {
	return func(c *fileStreamConfig) { c.readingOffset = offset }
}

// WithChunkSize sets the window size FileStream.Decode grows by while
// looking for a complete Value. Default 64 KiB.
func WithChunkSize(n int) FileStreamOption {
	return func(c *fileStreamConfig) { c.chunkSize = n }
}

// WithCodecOptions attaches Encode/Decode options (extensions, str_keys,
// max_depth) applied to every call made through the FileStream.
func WithCodecOptions(opts ...Option) FileStreamOption {
	return func(c *fileStreamConfig) { c.opts = opts }
}

// OpenFileStream opens (creating if necessary) the file at path in
// read+append binary mode and returns a FileStream over it.
func OpenFileStream(path string, opts ...FileStreamOption) (*FileStream, error) {
	c := &fileStreamConfig{chunkSize: defaultChunkSize}
	for _, opt := range opts {
		opt(c)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	return &FileStream{
		file:      f,
		chunkSize: c.chunkSize,
		offset:    c.readingOffset,
		opts:      c.opts,
	}, nil
}

// Close closes the underlying file.
func (fs *FileStream) Close() error { return fs.file.Close() }

// Offset returns the FileStream's current read offset.
func (fs *FileStream) Offset() int64 { return fs.offset }

// Encode serialises v into a scratch buffer, then atomically appends it to
// the file. A failure here leaves the file's logical end unchanged, since
// nothing is written until the full encoding succeeds.
func (fs *FileStream) Encode(v any, opts ...Option) error {
	c, err := newConfig(append(append([]Option{}, fs.opts...), opts...))
	if err != nil {
		return err
	}

	buf := buffer.New()
	if err := encodeInto(v, buf, c); err != nil {
		return err
	}

	_, err = fs.file.Write(buf.Bytes())

	return err
}

// Decode reads sequentially from the stream's current read offset: it
// fills a window of up to chunkSize bytes, tries to parse one Value, and
// if the parse reports truncated input it grows the window by another
// chunk and retries. On success it advances the read offset by exactly
// the consumed length; on any other error, or on EOF with no further
// bytes available, the read offset is left untouched so the caller may
// retry once more data has been appended.
func (fs *FileStream) Decode(opts ...Option) (any, error) {
	c, err := newConfig(append(append([]Option{}, fs.opts...), opts...))
	if err != nil {
		return nil, err
	}

	window := make([]byte, 0, fs.chunkSize)

	for {
		chunk := make([]byte, fs.chunkSize)
		n, readErr := fs.file.ReadAt(chunk, fs.offset+int64(len(window)))
		window = append(window, chunk[:n]...)

		if len(window) > 0 {
			v, consumed, decErr := decodeN(window, c)
			if decErr == nil {
				fs.offset += int64(consumed)

				return v, nil
			}

			if !errors.Is(decErr, errs.ErrUnexpectedEOF) {
				return nil, decErr
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil, errs.NewValueError("file stream ended mid-value")
			}

			return nil, readErr
		}
	}
}
