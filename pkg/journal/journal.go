package journal

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MaxEntrySize bounds the key plus value of one entry
const MaxEntrySize = 64 << 20

// file is the part of *os.File the journal uses.
type file interface {
	io.ReadWriteSeeker
	io.Closer
	Truncate(size int64) error
	Sync() error
}

// Journal is a single append-only file of entries. It is safe for
// concurrent use.
type Journal struct {
	path string
	sync bool

	mu     sync.Mutex
	fd     file
	lsn    uint64
	count  int
	size   int64
	closed bool
	now    func() time.Time
}

// Option configures a Journal
type Option func(*Journal)

// WithSync fsyncs after every append
func WithSync(on bool) Option {
	return func(j *Journal) { j.sync = on }
}

// Open opens or creates the journal at path. A torn entry at the end of the
// file, left by a crash mid-write, is cut off; damage anywhere else is an
// error.
func Open(path string, opts ...Option) (*Journal, error) {
	j := &Journal{path: path, now: time.Now}
	for _, opt := range opts {
		opt(j)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	fd, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}

	good, err := scan(fd, func(e *Entry) error {
		j.count++
		if e.LSN > j.lsn {
			j.lsn = e.LSN
		}
		return nil
	})
	if err != nil {
		fd.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := fd.Truncate(good); err != nil {
		fd.Close()
		return nil, err
	}
	if _, err := fd.Seek(good, io.SeekStart); err != nil {
		fd.Close()
		return nil, err
	}

	j.fd = fd
	j.size = good
	return j, nil
}

// scan reads entries from the start of r and returns the offset after the
// last complete one. A truncated tail stops the scan without error.
func scan(r io.ReadSeeker, fn func(*Entry) error) (int64, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	br := bufio.NewReader(r)
	var off int64
	for {
		e, n, err := readEntry(br)
		if errors.Is(err, io.EOF) || errors.Is(err, ErrTruncated) {
			return off, nil
		}
		if err != nil {
			return off, fmt.Errorf("entry at offset %d: %w", off, err)
		}
		if err := fn(e); err != nil {
			return off, err
		}
		off += int64(n)
	}
}

func readEntry(r io.Reader) (*Entry, int, error) {
	header := make([]byte, headerSize)
	if n, err := io.ReadFull(r, header); err != nil {
		if n == 0 && errors.Is(err, io.EOF) {
			return nil, 0, io.EOF
		}
		return nil, 0, ErrTruncated
	}
	keyLen := binary.LittleEndian.Uint32(header[12:16])
	valLen := binary.LittleEndian.Uint32(header[16:20])
	if uint64(keyLen)+uint64(valLen) > MaxEntrySize {
		return nil, 0, ErrCorrupted
	}

	data := make([]byte, headerSize+int(keyLen)+int(valLen)+4)
	copy(data, header)
	if _, err := io.ReadFull(r, data[headerSize:]); err != nil {
		return nil, 0, ErrTruncated
	}
	e, err := DecodeEntry(data)
	if err != nil {
		return nil, 0, err
	}
	return e, len(data), nil
}

// Append writes one entry and returns its LSN
func (j *Journal) Append(op Op, key, value []byte) (uint64, error) {
	if len(key)+len(value) > MaxEntrySize {
		return 0, fmt.Errorf("journal: entry of %d bytes exceeds %d", len(key)+len(value), MaxEntrySize)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return 0, ErrClosed
	}

	e := Entry{LSN: j.lsn + 1, Op: op, Key: key, Value: value, Timestamp: j.now()}
	n, err := j.fd.Write(e.Encode())
	if err != nil {
		if n > 0 {
			err = errors.Join(err, j.dropTail())
		}
		return 0, err
	}
	j.size += int64(n)
	j.lsn = e.LSN
	j.count++

	if j.sync {
		if err := j.fd.Sync(); err != nil {
			return 0, err
		}
	}
	return e.LSN, nil
}

// dropTail cuts the file back to the end of the last complete entry.
func (j *Journal) dropTail() error {
	if err := j.fd.Truncate(j.size); err != nil {
		return err
	}
	_, err := j.fd.Seek(j.size, io.SeekStart)
	return err
}

// Replay calls fn for every entry in order. Appends wait until it returns.
func (j *Journal) Replay(fn func(*Entry) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}
	_, err := scan(j.fd, fn)
	if _, serr := j.fd.Seek(j.size, io.SeekStart); err == nil {
		err = serr
	}
	return err
}

// Len returns the number of entries in the file
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.count
}

// Size returns the file size in bytes
func (j *Journal) Size() int64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.size
}

// Fsync flushes the file to disk
func (j *Journal) Fsync() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}
	return j.fd.Sync()
}

// Close closes the journal
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.fd.Close()
}
