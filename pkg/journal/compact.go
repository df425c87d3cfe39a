package journal

import (
	"fmt"
	"io"
	"os"
)

// CompactStats reports what a compaction kept
type CompactStats struct {
	Before int
	After  int
}

// Compact rewrites the journal so it holds only the latest OpPut of every
// key that is not deleted afterwards, in first-put order. The new file
// replaces the old one with a rename, so a crash leaves one or the other.
func (j *Journal) Compact() (CompactStats, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return CompactStats{}, ErrClosed
	}

	var (
		order []string
		live  = make(map[string]*Entry)
	)
	if _, err := scan(j.fd, func(e *Entry) error {
		k := string(e.Key)
		switch e.Op {
		case OpPut:
			if _, ok := live[k]; !ok {
				order = append(order, k)
			}
			live[k] = e
		case OpDelete:
			delete(live, k)
		}
		return nil
	}); err != nil {
		return CompactStats{}, fmt.Errorf("compact read: %w", err)
	}

	tmp := j.path + ".compact"
	out, err := os.OpenFile(tmp, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return CompactStats{}, err
	}
	var size int64
	kept := 0
	for _, k := range order {
		e, ok := live[k]
		if !ok {
			continue
		}
		n, err := out.Write(e.Encode())
		if err != nil {
			out.Close()
			os.Remove(tmp)
			return CompactStats{}, err
		}
		size += int64(n)
		kept++
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(tmp)
		return CompactStats{}, err
	}
	if err := os.Rename(tmp, j.path); err != nil {
		out.Close()
		os.Remove(tmp)
		return CompactStats{}, err
	}
	if _, err := out.Seek(size, io.SeekStart); err != nil {
		out.Close()
		return CompactStats{}, err
	}

	stats := CompactStats{Before: j.count, After: kept}
	j.fd.Close()
	j.fd = out
	j.size = size
	j.count = kept
	return stats, nil
}
