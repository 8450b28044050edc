package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// ErrSentinelNotFound is returned when a scan reaches the end of data.
var ErrSentinelNotFound = errors.New("sentinel not found")

// Sentinel is a 64-bit little-endian marker that bounds the index table
// of a binary model.
type Sentinel uint64

const (
	// SentinelFirstFace is the index words (1, 2, 1, 0).
	SentinelFirstFace Sentinel = 0x0000_0001_0002_0001
	// SentinelTerminal is the index words (3, 2, 1, 0).
	SentinelTerminal Sentinel = 0x0000_0001_0002_0003
)

// sentinelSize is the scan window width in bytes.
const sentinelSize = 8

// String returns the sentinel name.
func (s Sentinel) String() string {
	switch s {
	case SentinelFirstFace:
		return "FirstFace"
	case SentinelTerminal:
		return "Terminal"
	default:
		return fmt.Sprintf("Sentinel(%#016x)", uint64(s))
	}
}

// Bytes returns the on-disk byte layout of the sentinel.
func (s Sentinel) Bytes() []byte {
	buf := make([]byte, sentinelSize)
	binary.LittleEndian.PutUint64(buf, uint64(s))
	return buf
}

// SentinelHit is one sentinel occurrence.
type SentinelHit struct {
	Offset   int
	Sentinel Sentinel
}

// FindSentinel scans data one byte at a time starting at from and returns
// the offset of the first 8-byte window equal to any of want.
func FindSentinel(data []byte, from int, want ...Sentinel) (int, Sentinel, error) {
	if from < 0 {
		from = 0
	}
	for off := from; off+sentinelSize <= len(data); off++ {
		window := Sentinel(binary.LittleEndian.Uint64(data[off : off+sentinelSize]))
		for _, s := range want {
			if window == s {
				return off, s, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("%w: %s from offset %d", ErrSentinelNotFound, sentinelNames(want), from)
}

// ScanSentinels returns every known sentinel occurrence in data.
func ScanSentinels(data []byte) []SentinelHit {
	var hits []SentinelHit
	off := 0
	for {
		at, s, err := FindSentinel(data, off, SentinelFirstFace, SentinelTerminal)
		if err != nil {
			return hits
		}
		hits = append(hits, SentinelHit{Offset: at, Sentinel: s})
		off = at + 1
	}
}

func sentinelNames(want []Sentinel) string {
	names := make([]string, len(want))
	for i, s := range want {
		names[i] = s.String()
	}
	return strings.Join(names, "|")
}
