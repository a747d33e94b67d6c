package track

import (
	"encoding/binary"
	"math"
)

func putU64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }
func getU64(b []byte) uint64    { return binary.LittleEndian.Uint64(b) }

func putI64(b []byte, v int64) { binary.LittleEndian.PutUint64(b, uint64(v)) }
func getI64(b []byte) int64    { return int64(binary.LittleEndian.Uint64(b)) }

func putF64(b []byte, v float64) { binary.LittleEndian.PutUint64(b, math.Float64bits(v)) }
func getF64(b []byte) float64    { return math.Float64frombits(binary.LittleEndian.Uint64(b)) }

func putBool(b []byte, v bool) {
	if v {
		b[0] = 1
	} else {
		b[0] = 0
	}
}
func getBool(b []byte) bool { return b[0] != 0 }
