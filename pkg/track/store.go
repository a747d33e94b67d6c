package track

import (
	"path/filepath"

	"github.com/google/uuid"
)

const (
	subkeyLength   = 3
	nestingLevel   = 2
	minFlightIDLen = subkeyLength * nestingLevel
)

// Store resolves flight ids to sharded track file paths under a single
// root directory: folder/id[0:3]/id[3:6]/<id>.bin.
type Store struct {
	root string
}

// NewStore returns a Store rooted at dir. The directory is not created
// until the first file is.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// validateFlightID requires a flight id of at least
// subkeyLength*nestingLevel printable ASCII bytes, since the first two
// subkeys are sliced directly from it to build the shard path.
func validateFlightID(id string) error {
	if len(id) < minFlightIDLen {
		return errInvalidFlightID("flight id too short to shard")
	}
	if len(id) > flightIDFieldLen {
		return errInvalidFlightID("flight id longer than the 36-byte header field")
	}
	for i := 0; i < minFlightIDLen; i++ {
		c := id[i]
		if c < 0x20 || c > 0x7e {
			return errInvalidFlightID("flight id contains non-ASCII byte in shard prefix")
		}
	}
	// The header's flight_id field is sized for a UUID; when a caller
	// sends a full 36-byte id it must actually parse as one, catching
	// malformed client ids before a shard directory is created for them.
	if len(id) == flightIDFieldLen {
		if _, err := uuid.Parse(id); err != nil {
			return errInvalidFlightID("36-byte flight id is not a well-formed UUID")
		}
	}
	return nil
}

// PathFor returns the on-disk path for flightID without touching the
// filesystem.
func (s *Store) PathFor(flightID string) (string, error) {
	if err := validateFlightID(flightID); err != nil {
		return "", err
	}
	sub1 := flightID[0:subkeyLength]
	sub2 := flightID[subkeyLength : subkeyLength*2]
	return filepath.Join(s.root, sub1, sub2, flightID+".bin"), nil
}

// Open opens the existing track file for flightID.
func (s *Store) Open(flightID string) (*File, error) {
	path, err := s.PathFor(flightID)
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// OpenOrCreate opens or creates the track file for flightID.
func (s *Store) OpenOrCreate(flightID string) (*File, error) {
	path, err := s.PathFor(flightID)
	if err != nil {
		return nil, err
	}
	return OpenOrCreate(path, flightID)
}

// Exists reports whether a track file already exists for flightID.
func (s *Store) Exists(flightID string) (bool, error) {
	path, err := s.PathFor(flightID)
	if err != nil {
		return false, err
	}
	tf, err := Open(path)
	if err != nil {
		if te, ok := AsTrackError(err); ok && te.Kind == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	tf.Close()
	return true, nil
}
