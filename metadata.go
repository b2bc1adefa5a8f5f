package memchan

import "github.com/memchan-io/memchan/internal/header"

// Metadata is both the creation-time configuration for a new channel and
// the decoded contents of its on-disk header. It doubles as config because
// everything a creator chooses (capacity, max record size, timeout policy)
// is exactly what gets persisted and later re-derived by every reader.
type Metadata struct {
	// ChannelID is a unique numeric id chosen by the creator.
	ChannelID uint64
	// Capacity is the usable record-region size in bytes. Must be a
	// positive multiple of 8.
	Capacity uint32
	// MaxRecordLen is the hard upper bound on a single record payload.
	MaxRecordLen uint32
	// TimeoutNs is the writer heartbeat interval in nanoseconds; 0 disables
	// it. Purely declarative — see the heartbeat policy decision in
	// DESIGN.md.
	TimeoutNs uint64
	// CreationNs is the wall-clock creation time in nanoseconds. Callers
	// normally leave this zero and let CreateWriter stamp it.
	CreationNs uint64
}

func (m Metadata) toHeader() header.Header {
	return header.Header{
		ChannelID:    m.ChannelID,
		Capacity:     m.Capacity,
		MaxRecordLen: m.MaxRecordLen,
		TimeoutNs:    m.TimeoutNs,
		CreationNs:   m.CreationNs,
	}
}

func fromHeader(h header.Header) Metadata {
	return Metadata{
		ChannelID:    h.ChannelID,
		Capacity:     h.Capacity,
		MaxRecordLen: h.MaxRecordLen,
		TimeoutNs:    h.TimeoutNs,
		CreationNs:   h.CreationNs,
	}
}

// fileSize returns the total size of the backing file: header plus record
// region.
func (m Metadata) fileSize() int64 {
	return int64(header.Size) + int64(m.Capacity)
}
