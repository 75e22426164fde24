// Package endian provides the byte order helpers used by the container codec.
//
// The splat container is little-endian on every platform. Readers and writers obtain
// the byte order through GetContainerEngine() instead of hard coding
// binary.LittleEndian, so the codec has a single place where the wire order is decided.
//
// # Basic Usage
//
//	engine := endian.GetContainerEngine()
//	count := engine.Uint32(buf[4:8])
//	x := endian.Float32(engine, buf[24:28])
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetContainerEngine returns the byte order of the splat container wire format.
func GetContainerEngine() EndianEngine {
	return binary.LittleEndian
}

// Float32 reads an IEEE 754 float32 from the first four bytes of b.
func Float32(engine EndianEngine, b []byte) float32 {
	return math.Float32frombits(engine.Uint32(b))
}

// PutFloat32 writes v as an IEEE 754 float32 into the first four bytes of b.
func PutFloat32(engine EndianEngine, b []byte, v float32) {
	engine.PutUint32(b, math.Float32bits(v))
}

// AppendFloat32 appends v as an IEEE 754 float32 to b.
func AppendFloat32(engine EndianEngine, b []byte, v float32) []byte {
	return engine.AppendUint32(b, math.Float32bits(v))
}
