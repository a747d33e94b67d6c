package track

import (
	"os"
	"path/filepath"
	"sync"
)

// File is a single-flight append-only track store backed by one file on
// disk: a Header followed by Count() fixed-size Record slots.
type File struct {
	path      string
	flightID  string
	f         *os.File
	mu        sync.Mutex // serializes append/header-mutation on this handle
	lastPoint *TrackPoint
}

// Create makes a brand new track file for flightID at path, writing a
// fresh header with count=0.
func Create(path, flightID string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errIO(err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, errIO(err)
	}
	h := newHeader(flightID)
	if _, err := f.WriteAt(h.encode(), 0); err != nil {
		f.Close()
		return nil, errIO(err)
	}
	return &File{path: path, flightID: flightID, f: f}, nil
}

// Open opens an existing track file, verifying the magic number and the
// file-length invariant, and caching the last written TrackPoint.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errNotFound(path)
		}
		return nil, errIO(err)
	}
	tf := &File{path: path, f: f}
	if err := tf.checkIntegrity(); err != nil {
		f.Close()
		return nil, err
	}
	h, err := tf.readHeader()
	if err != nil {
		f.Close()
		return nil, err
	}
	tf.flightID = h.FlightID()
	lp, err := tf.lastTrackPoint(h.Count())
	if err != nil {
		f.Close()
		return nil, err
	}
	tf.lastPoint = lp
	return tf, nil
}

// OpenOrCreate opens the file at path if it exists, otherwise creates it
// for flightID.
func OpenOrCreate(path, flightID string) (*File, error) {
	tf, err := Open(path)
	if err == nil {
		return tf, nil
	}
	if te, ok := AsTrackError(err); ok && te.Kind == ErrNotFound {
		return Create(path, flightID)
	}
	return nil, err
}

func (tf *File) checkIntegrity() error {
	h, err := tf.readHeader()
	if err != nil {
		return err
	}
	if !h.checkMagic() {
		return &Error{Kind: ErrInvalidMagicNumber}
	}
	info, err := tf.f.Stat()
	if err != nil {
		return errIO(err)
	}
	expected := headerSize + int(h.Count())*recordSlotSize
	actual := int(info.Size())
	if actual != expected {
		return errInvalidFileLength(expected, actual)
	}
	return nil
}

func (tf *File) readHeader() (Header, error) {
	buf := make([]byte, headerSize)
	if _, err := tf.f.ReadAt(buf, 0); err != nil {
		return Header{}, errIO(err)
	}
	return decodeHeader(buf)
}

func (tf *File) writeHeader(h Header) error {
	if _, err := tf.f.WriteAt(h.encode(), 0); err != nil {
		return errIO(err)
	}
	return nil
}

func (tf *File) lastTrackPoint(count uint64) (*TrackPoint, error) {
	idx := int64(count) - 1
	for idx >= 0 {
		r, err := tf.readAt(int(idx))
		if err != nil {
			return nil, err
		}
		if r.Point != nil {
			return r.Point, nil
		}
		idx--
	}
	return nil, nil
}

// FlightID returns the flight id this file was created for.
func (tf *File) FlightID() string { return tf.flightID }

// Count returns the current record count, read fresh from the header.
func (tf *File) Count() (uint64, error) {
	h, err := tf.readHeader()
	if err != nil {
		return 0, err
	}
	return h.Count(), nil
}

// MtimeMs returns the header's updated_at timestamp, read fresh.
func (tf *File) MtimeMs() (uint64, error) {
	h, err := tf.readHeader()
	if err != nil {
		return 0, err
	}
	return h.UpdatedAtMs(), nil
}

// GetHeader returns a fresh copy of the header.
func (tf *File) GetHeader() (Header, error) {
	return tf.readHeader()
}

// Departure returns the header's departure code, empty if unset.
func (tf *File) Departure() (string, error) {
	h, err := tf.readHeader()
	if err != nil {
		return "", err
	}
	return h.Departure(), nil
}

// Arrival returns the header's arrival code, empty if unset.
func (tf *File) Arrival() (string, error) {
	h, err := tf.readHeader()
	if err != nil {
		return "", err
	}
	return h.Arrival(), nil
}

// SetDeparture sets the header's departure code. Callers are expected to
// only call this while the field is empty; File does not itself enforce
// the set-exactly-once rule, the ingest engine does.
func (tf *File) SetDeparture(code string) error {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	h, err := tf.readHeader()
	if err != nil {
		return err
	}
	h.setDeparture(code)
	return tf.writeHeader(h)
}

// SetArrival sets the header's arrival code, see SetDeparture.
func (tf *File) SetArrival(code string) error {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	h, err := tf.readHeader()
	if err != nil {
		return err
	}
	h.setArrival(code)
	return tf.writeHeader(h)
}

// Append persists r, applying the dedup-collapse rule and, for
// TrackPoints, the cumulative-distance accounting. The returned bool
// reports whether r collapsed into the existing last slot instead of
// growing the file, for callers that surface ingest stats.
func (tf *File) Append(r Record) (bool, error) {
	tf.mu.Lock()
	defer tf.mu.Unlock()

	h, err := tf.readHeader()
	if err != nil {
		return false, err
	}
	count := int(h.Count())

	collapse := false
	if count >= 2 {
		prev, err := tf.readAt(count - 2)
		if err != nil {
			return false, err
		}
		last, err := tf.readAt(count - 1)
		if err != nil {
			return false, err
		}
		if r.equalForDedup(last) && last.equalForDedup(prev) {
			collapse = true
		}
	}

	if r.Point != nil {
		r = tf.withDistance(r)
	}

	data := encodeRecord(r)
	var offset int64
	if collapse {
		offset = headerSize + int64(count-1)*recordSlotSize
	} else {
		offset = headerSize + int64(count)*recordSlotSize
	}
	if _, err := tf.f.WriteAt(data, offset); err != nil {
		return false, errIO(err)
	}

	if !collapse {
		h.inc()
		if err := tf.writeHeader(h); err != nil {
			return false, err
		}
	}
	return collapse, nil
}

// withDistance fills in r.Point.Distance from the cached last TrackPoint
// and updates that cache, leaving the timestamp supplied by the caller
// untouched.
func (tf *File) withDistance(r Record) Record {
	tp := *r.Point
	base := tf.lastPoint
	if base == nil {
		base = &tp
	}
	tp.Distance = base.Distance + haversineNM(base.Lat, base.Lng, tp.Lat, tp.Lng)
	tf.lastPoint = &tp
	return Record{Point: &tp}
}

// ReadAt returns the record at position pos.
func (tf *File) ReadAt(pos int) (Record, error) {
	h, err := tf.readHeader()
	if err != nil {
		return Record{}, err
	}
	if pos < 0 || uint64(pos) >= h.Count() {
		return Record{}, errIndex(pos)
	}
	return tf.readAt(pos)
}

func (tf *File) readAt(pos int) (Record, error) {
	buf := make([]byte, recordSlotSize)
	offset := int64(headerSize) + int64(pos)*int64(recordSlotSize)
	if _, err := tf.f.ReadAt(buf, offset); err != nil {
		return Record{}, errIO(err)
	}
	return decodeRecord(buf)
}

// ReadRange returns up to n records starting at pos, truncated to the
// file end.
func (tf *File) ReadRange(pos, n int) ([]Record, error) {
	h, err := tf.readHeader()
	if err != nil {
		return nil, err
	}
	count := int(h.Count())
	if pos >= count || n <= 0 {
		return nil, nil
	}
	if pos+n > count {
		n = count - pos
	}
	out := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		r, err := tf.readAt(pos + i)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// ReadAll returns every record currently in the file.
func (tf *File) ReadAll() ([]Record, error) {
	h, err := tf.readHeader()
	if err != nil {
		return nil, err
	}
	return tf.ReadRange(0, int(h.Count()))
}

// Destroy unlinks the underlying file. The File must not be used
// afterwards.
func (tf *File) Destroy() error {
	tf.f.Close()
	if err := os.Remove(tf.path); err != nil {
		return errIO(err)
	}
	return nil
}

// Close releases the underlying file handle without removing it.
func (tf *File) Close() error {
	return tf.f.Close()
}
