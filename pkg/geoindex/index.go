package geoindex

import (
	"github.com/paulmach/orb"
	"github.com/uber/h3-go/v4"
)

// gridResolution buckets the catalogue coarsely enough that a handful of
// rings around the query cell always contains a real nearest neighbor,
// while keeping bucket counts small for ~80k airports worldwide.
const gridResolution = 3

// Index is an immutable nearest-airport lookup built once at startup and
// shared read-only across all ingest connections.
type Index struct {
	airports []Airport
	buckets  map[h3.Cell][]int // cell -> indices into airports
}

// Build indexes airports for nearest-neighbor queries. The returned Index
// keeps the given slice (it does not copy it) and never mutates it, so it
// is safe to share across goroutines without locking as long as the
// caller does not modify the slice afterwards.
func Build(airports []Airport) *Index {
	idx := &Index{
		airports: airports,
		buckets:  make(map[h3.Cell][]int, len(airports)),
	}
	for i, a := range airports {
		cell := idx.cellFor(a.Lng, a.Lat)
		idx.buckets[cell] = append(idx.buckets[cell], i)
	}
	return idx
}

func (idx *Index) cellFor(lng, lat float64) h3.Cell {
	ll := h3.NewLatLng(lat, lng)
	cell, err := h3.LatLngToCell(ll, gridResolution)
	if err != nil {
		return 0
	}
	return cell
}

// Nearest returns the airport whose distance2 from (lng, lat) is smallest,
// searching outward in h3 rings from the query point's cell until a
// candidate set is found, then one extra ring to guard against a closer
// airport just across a bucket boundary.
func (idx *Index) Nearest(lng, lat float64) (*Airport, bool) {
	origin := idx.cellFor(lng, lat)
	if origin == 0 {
		return idx.bruteForce(lng, lat)
	}

	const maxRing = 10
	hitAt := -1
	for k := 0; k <= maxRing; k++ {
		disk, err := h3.GridDisk(origin, k)
		if err != nil {
			break
		}
		for _, c := range disk {
			if _, ok := idx.buckets[c]; ok {
				hitAt = k
				break
			}
		}
		if hitAt != -1 {
			break
		}
	}
	if hitAt == -1 {
		return idx.bruteForce(lng, lat)
	}

	// one extra ring past the first non-empty disk guards against a
	// closer airport just across a bucket boundary.
	disk, err := h3.GridDisk(origin, hitAt+1)
	if err != nil {
		return idx.bruteForce(lng, lat)
	}
	var candidates []int
	for _, c := range disk {
		candidates = append(candidates, idx.buckets[c]...)
	}
	if len(candidates) == 0 {
		return idx.bruteForce(lng, lat)
	}

	best := -1
	bestD := 0.0
	for _, i := range candidates {
		d := distance2(&idx.airports[i], lng, lat)
		if best == -1 || d < bestD {
			best = i
			bestD = d
		}
	}
	if best == -1 {
		return nil, false
	}
	return &idx.airports[best], true
}

func (idx *Index) bruteForce(lng, lat float64) (*Airport, bool) {
	if len(idx.airports) == 0 {
		return nil, false
	}
	best := 0
	bestD := distance2(&idx.airports[0], lng, lat)
	for i := 1; i < len(idx.airports); i++ {
		d := distance2(&idx.airports[i], lng, lat)
		if d < bestD {
			best = i
			bestD = d
		}
	}
	return &idx.airports[best], true
}

// Bound returns the bounding box of the full catalogue.
func (idx *Index) Bound() orb.Bound {
	b := orb.Bound{Min: orb.Point{180, 90}, Max: orb.Point{-180, -90}}
	for _, a := range idx.airports {
		b = b.Extend(orb.Point{a.Lng, a.Lat})
	}
	return b
}

// Len returns the number of airports in the index.
func (idx *Index) Len() int { return len(idx.airports) }
