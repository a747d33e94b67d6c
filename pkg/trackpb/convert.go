package trackpb

import "github.com/tangomike/tm-grpc/pkg/track"

// RecordToWire converts a stored record into its wire form, carrying the
// store-owned timestamp and distance along with the client fields.
func RecordToWire(r track.Record) *TrackMessage {
	msg := &TrackMessage{}
	if r.Point != nil {
		msg.Point = PointToWire(r.Point)
	}
	if r.TouchDown != nil {
		msg.TouchDown = TouchDownToWire(r.TouchDown)
	}
	return msg
}

// PointToWire converts a stored TrackPoint into its wire form.
func PointToWire(p *track.TrackPoint) *TrackPoint {
	return &TrackPoint{
		TsMs: p.TsMs, Lat: p.Lat, Lng: p.Lng, HdgTrue: p.HdgTrue,
		AltAMSL: p.AltAMSL, AltAGL: p.AltAGL, GndElevation: p.GndElevation,
		Crs: p.Crs, IAS: p.IAS, TAS: p.TAS, GS: p.GS, APMaster: p.APMaster,
		GearPct: p.GearPct, Flaps: p.Flaps, OnGnd: p.OnGnd, OnRwy: p.OnRwy,
		WindVel: p.WindVel, WindDir: p.WindDir, Distance: p.Distance,
	}
}

// TouchDownToWire converts a stored TouchDown into its wire form.
func TouchDownToWire(td *track.TouchDown) *TouchDown {
	return &TouchDown{
		TsMs: td.TsMs, Bank: td.Bank, HdgMag: td.HdgMag, HdgTrue: td.HdgTrue,
		VelNrm: td.VelNrm, Pitch: td.Pitch, Lat: td.Lat, Lng: td.Lng,
	}
}

// ToRecord converts an inbound TrackMessage into a storage record. It
// reports false when neither variant is populated. The Distance on an
// inbound point is ignored downstream; the store computes its own.
func (m *TrackMessage) ToRecord() (track.Record, bool) {
	switch {
	case m.Point != nil:
		p := m.Point
		return track.Record{Point: &track.TrackPoint{
			TsMs: p.TsMs, Lat: p.Lat, Lng: p.Lng, HdgTrue: p.HdgTrue,
			AltAMSL: p.AltAMSL, AltAGL: p.AltAGL, GndElevation: p.GndElevation,
			Crs: p.Crs, IAS: p.IAS, TAS: p.TAS, GS: p.GS, APMaster: p.APMaster,
			GearPct: p.GearPct, Flaps: p.Flaps, OnGnd: p.OnGnd, OnRwy: p.OnRwy,
			WindVel: p.WindVel, WindDir: p.WindDir,
		}}, true
	case m.TouchDown != nil:
		td := m.TouchDown
		return track.Record{TouchDown: &track.TouchDown{
			TsMs: td.TsMs, Bank: td.Bank, HdgMag: td.HdgMag, HdgTrue: td.HdgTrue,
			VelNrm: td.VelNrm, Pitch: td.Pitch, Lat: td.Lat, Lng: td.Lng,
		}}, true
	default:
		return track.Record{}, false
	}
}
