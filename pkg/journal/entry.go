package journal

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"time"
)

// Op is the kind of change an entry records
type Op byte

const (
	// OpPut stores Value under Key, replacing what was there
	OpPut Op = 1

	// OpDelete removes Key
	OpDelete Op = 2
)

func (o Op) String() string {
	switch o {
	case OpPut:
		return "PUT"
	case OpDelete:
		return "DELETE"
	}
	return "UNKNOWN"
}

// headerSize is LSN(8) + Op(1) + Reserved(3) + KeyLen(4) + ValLen(4) + Timestamp(8)
const headerSize = 28

// Entry is one journal record
type Entry struct {
	LSN       uint64
	Op        Op
	Key       []byte
	Value     []byte
	Timestamp time.Time
}

// Encode serializes the entry followed by a CRC32 of everything before it
func (e *Entry) Encode() []byte {
	keyLen, valLen := len(e.Key), len(e.Value)
	buf := make([]byte, headerSize+keyLen+valLen+4)

	binary.LittleEndian.PutUint64(buf[0:8], e.LSN)
	buf[8] = byte(e.Op)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(keyLen))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(valLen))
	binary.LittleEndian.PutUint64(buf[20:28], uint64(e.Timestamp.UnixNano()))

	off := headerSize
	off += copy(buf[off:], e.Key)
	off += copy(buf[off:], e.Value)

	binary.LittleEndian.PutUint32(buf[off:], crc32.ChecksumIEEE(buf[:off]))
	return buf
}

// Size returns the encoded size of the entry
func (e *Entry) Size() int {
	return headerSize + len(e.Key) + len(e.Value) + 4
}

// DecodeEntry parses one encoded entry
func DecodeEntry(data []byte) (*Entry, error) {
	if len(data) < headerSize+4 {
		return nil, ErrTruncated
	}
	keyLen := int(binary.LittleEndian.Uint32(data[12:16]))
	valLen := int(binary.LittleEndian.Uint32(data[16:20]))
	size := headerSize + keyLen + valLen + 4
	if len(data) < size {
		return nil, ErrTruncated
	}
	data = data[:size]

	stored := binary.LittleEndian.Uint32(data[size-4:])
	if stored != crc32.ChecksumIEEE(data[:size-4]) {
		return nil, ErrCorrupted
	}

	e := &Entry{
		LSN:       binary.LittleEndian.Uint64(data[0:8]),
		Op:        Op(data[8]),
		Timestamp: time.Unix(0, int64(binary.LittleEndian.Uint64(data[20:28]))),
	}
	off := headerSize
	if keyLen > 0 {
		e.Key = append([]byte(nil), data[off:off+keyLen]...)
		off += keyLen
	}
	if valLen > 0 {
		e.Value = append([]byte(nil), data[off:off+valLen]...)
	}
	return e, nil
}

// String returns a human-readable representation of the entry
func (e *Entry) String() string {
	return fmt.Sprintf("journal[LSN=%d Op=%s Key=%q ValLen=%d]", e.LSN, e.Op, e.Key, len(e.Value))
}
