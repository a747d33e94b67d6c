package track

// TrackPoint is a sampled telemetry snapshot of one aircraft at one
// instant. Distance is filled in by the store on append and is never
// supplied by a client.
type TrackPoint struct {
	TsMs         uint64
	Lat          float64
	Lng          float64
	HdgTrue      float64
	AltAMSL      float64
	AltAGL       float64
	GndElevation float64
	Crs          float64
	IAS          float64
	TAS          float64
	GS           float64
	APMaster     bool
	GearPct      int64
	Flaps        int64
	OnGnd        bool
	OnRwy        bool
	WindVel      float64
	WindDir      float64
	Distance     float64
}

// TouchDown is a discrete landing event.
type TouchDown struct {
	TsMs    uint64
	Bank    float64
	HdgMag  float64
	HdgTrue float64
	VelNrm  float64
	Pitch   float64
	Lat     float64
	Lng     float64
}

// kind discriminates the two variants of a Record's union.
type kind uint8

const (
	kindTrackPoint kind = 1
	kindTouchDown  kind = 2
)

// Record is the tagged union {TrackPoint, TouchDown} persisted as a
// single fixed-size slot in a track file.
type Record struct {
	Point     *TrackPoint
	TouchDown *TouchDown
}

// Ts returns the record's timestamp regardless of variant.
func (r Record) Ts() uint64 {
	if r.Point != nil {
		return r.Point.TsMs
	}
	if r.TouchDown != nil {
		return r.TouchDown.TsMs
	}
	return 0
}

// equalForDedup is the relation the append path collapses runs under:
// two TrackPoints are equal iff every field except TsMs and Distance is
// bitwise equal; TouchDowns are never considered equal.
func (r Record) equalForDedup(other Record) bool {
	if r.Point == nil || other.Point == nil {
		return false
	}
	a, b := r.Point, other.Point
	return a.Lat == b.Lat &&
		a.Lng == b.Lng &&
		a.HdgTrue == b.HdgTrue &&
		a.AltAMSL == b.AltAMSL &&
		a.AltAGL == b.AltAGL &&
		a.GndElevation == b.GndElevation &&
		a.Crs == b.Crs &&
		a.IAS == b.IAS &&
		a.TAS == b.TAS &&
		a.GS == b.GS &&
		a.APMaster == b.APMaster &&
		a.GearPct == b.GearPct &&
		a.Flaps == b.Flaps &&
		a.OnGnd == b.OnGnd &&
		a.OnRwy == b.OnRwy &&
		a.WindVel == b.WindVel &&
		a.WindDir == b.WindDir
}

const (
	trackPointPayloadSize = 136 // 16 f64/i64 fields + 3 bool bytes, padded to 8-byte boundary
	slotHeaderSize        = 8   // 1-byte discriminator padded to natural (8-byte) alignment
	recordSlotSize        = slotHeaderSize + trackPointPayloadSize
)

func encodeTrackPoint(tp *TrackPoint, buf []byte) {
	off := 0
	putU64(buf[off:off+8], tp.TsMs)
	off += 8
	putF64(buf[off:off+8], tp.Lat)
	off += 8
	putF64(buf[off:off+8], tp.Lng)
	off += 8
	putF64(buf[off:off+8], tp.HdgTrue)
	off += 8
	putF64(buf[off:off+8], tp.AltAMSL)
	off += 8
	putF64(buf[off:off+8], tp.AltAGL)
	off += 8
	putF64(buf[off:off+8], tp.GndElevation)
	off += 8
	putF64(buf[off:off+8], tp.Crs)
	off += 8
	putF64(buf[off:off+8], tp.IAS)
	off += 8
	putF64(buf[off:off+8], tp.TAS)
	off += 8
	putF64(buf[off:off+8], tp.GS)
	off += 8
	putBool(buf[off:off+1], tp.APMaster)
	off += 1
	putI64(buf[off:off+8], tp.GearPct)
	off += 8
	putI64(buf[off:off+8], tp.Flaps)
	off += 8
	putBool(buf[off:off+1], tp.OnGnd)
	off += 1
	putBool(buf[off:off+1], tp.OnRwy)
	off += 1
	putF64(buf[off:off+8], tp.WindVel)
	off += 8
	putF64(buf[off:off+8], tp.WindDir)
	off += 8
	putF64(buf[off:off+8], tp.Distance)
}

func decodeTrackPoint(buf []byte) *TrackPoint {
	tp := &TrackPoint{}
	off := 0
	tp.TsMs = getU64(buf[off : off+8])
	off += 8
	tp.Lat = getF64(buf[off : off+8])
	off += 8
	tp.Lng = getF64(buf[off : off+8])
	off += 8
	tp.HdgTrue = getF64(buf[off : off+8])
	off += 8
	tp.AltAMSL = getF64(buf[off : off+8])
	off += 8
	tp.AltAGL = getF64(buf[off : off+8])
	off += 8
	tp.GndElevation = getF64(buf[off : off+8])
	off += 8
	tp.Crs = getF64(buf[off : off+8])
	off += 8
	tp.IAS = getF64(buf[off : off+8])
	off += 8
	tp.TAS = getF64(buf[off : off+8])
	off += 8
	tp.GS = getF64(buf[off : off+8])
	off += 8
	tp.APMaster = getBool(buf[off : off+1])
	off += 1
	tp.GearPct = getI64(buf[off : off+8])
	off += 8
	tp.Flaps = getI64(buf[off : off+8])
	off += 8
	tp.OnGnd = getBool(buf[off : off+1])
	off += 1
	tp.OnRwy = getBool(buf[off : off+1])
	off += 1
	tp.WindVel = getF64(buf[off : off+8])
	off += 8
	tp.WindDir = getF64(buf[off : off+8])
	off += 8
	tp.Distance = getF64(buf[off : off+8])
	return tp
}

func encodeTouchDown(td *TouchDown, buf []byte) {
	off := 0
	putU64(buf[off:off+8], td.TsMs)
	off += 8
	putF64(buf[off:off+8], td.Bank)
	off += 8
	putF64(buf[off:off+8], td.HdgMag)
	off += 8
	putF64(buf[off:off+8], td.HdgTrue)
	off += 8
	putF64(buf[off:off+8], td.VelNrm)
	off += 8
	putF64(buf[off:off+8], td.Pitch)
	off += 8
	putF64(buf[off:off+8], td.Lat)
	off += 8
	putF64(buf[off:off+8], td.Lng)
}

func decodeTouchDown(buf []byte) *TouchDown {
	td := &TouchDown{}
	off := 0
	td.TsMs = getU64(buf[off : off+8])
	off += 8
	td.Bank = getF64(buf[off : off+8])
	off += 8
	td.HdgMag = getF64(buf[off : off+8])
	off += 8
	td.HdgTrue = getF64(buf[off : off+8])
	off += 8
	td.VelNrm = getF64(buf[off : off+8])
	off += 8
	td.Pitch = getF64(buf[off : off+8])
	off += 8
	td.Lat = getF64(buf[off : off+8])
	off += 8
	td.Lng = getF64(buf[off : off+8])
	return td
}

// encodeRecord writes r into a fresh recordSlotSize-byte slot.
func encodeRecord(r Record) []byte {
	buf := make([]byte, recordSlotSize)
	switch {
	case r.Point != nil:
		buf[0] = byte(kindTrackPoint)
		encodeTrackPoint(r.Point, buf[slotHeaderSize:])
	case r.TouchDown != nil:
		buf[0] = byte(kindTouchDown)
		encodeTouchDown(r.TouchDown, buf[slotHeaderSize:])
	}
	return buf
}

// decodeRecord parses a recordSlotSize-byte slot.
func decodeRecord(buf []byte) (Record, error) {
	if len(buf) < recordSlotSize {
		return Record{}, &Error{Kind: ErrInsufficientData, Ident: "track entry", Got: len(buf)}
	}
	switch kind(buf[0]) {
	case kindTrackPoint:
		return Record{Point: decodeTrackPoint(buf[slotHeaderSize:])}, nil
	case kindTouchDown:
		return Record{TouchDown: decodeTouchDown(buf[slotHeaderSize:])}, nil
	default:
		return Record{}, &Error{Kind: ErrInsufficientData, Ident: "track entry discriminator", Got: int(buf[0])}
	}
}
