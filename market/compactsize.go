// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"encoding/binary"

	"github.com/hivemind-chain/marketchain/fault"
)

// CompactSize length-prefix encoding: 1 byte for values < 0xfd, 3 bytes
// (marker 0xfd + uint16 LE) for values that fit uint16, 5 bytes (marker
// 0xfe + uint32 LE) for values that fit uint32, 9 bytes (marker 0xff +
// uint64 LE) otherwise.
const (
	compactSize16 = 0xfd
	compactSize32 = 0xfe
	compactSize64 = 0xff
)

// appendCompactSize appends the CompactSize encoding of n to buffer.
func appendCompactSize(buffer []byte, n uint64) []byte {
	switch {
	case n < compactSize16:
		return append(buffer, byte(n))
	case n <= 0xffff:
		b := make([]byte, 3)
		b[0] = compactSize16
		binary.LittleEndian.PutUint16(b[1:], uint16(n))
		return append(buffer, b...)
	case n <= 0xffffffff:
		b := make([]byte, 5)
		b[0] = compactSize32
		binary.LittleEndian.PutUint32(b[1:], uint32(n))
		return append(buffer, b...)
	default:
		b := make([]byte, 9)
		b[0] = compactSize64
		binary.LittleEndian.PutUint64(b[1:], n)
		return append(buffer, b...)
	}
}

// readCompactSize decodes a CompactSize value from the start of buffer,
// returning the value and the number of bytes consumed.
func readCompactSize(buffer []byte) (uint64, int, error) {
	if len(buffer) < 1 {
		return 0, 0, fault.ErrTruncatedRecord
	}
	marker := buffer[0]
	switch {
	case marker < compactSize16:
		return uint64(marker), 1, nil
	case marker == compactSize16:
		if len(buffer) < 3 {
			return 0, 0, fault.ErrTruncatedRecord
		}
		return uint64(binary.LittleEndian.Uint16(buffer[1:3])), 3, nil
	case marker == compactSize32:
		if len(buffer) < 5 {
			return 0, 0, fault.ErrTruncatedRecord
		}
		return uint64(binary.LittleEndian.Uint32(buffer[1:5])), 5, nil
	default: // compactSize64
		if len(buffer) < 9 {
			return 0, 0, fault.ErrTruncatedRecord
		}
		return binary.LittleEndian.Uint64(buffer[1:9]), 9, nil
	}
}

// appendString appends a CompactSize-length-prefixed UTF-8 string.
func appendString(buffer []byte, s string) []byte {
	buffer = appendCompactSize(buffer, uint64(len(s)))
	return append(buffer, s...)
}

// readString reads a CompactSize-length-prefixed string, returning the
// value and the total number of bytes consumed including the prefix.
func readString(buffer []byte) (string, int, error) {
	length, n, err := readCompactSize(buffer)
	if nil != err {
		return "", 0, err
	}
	end := n + int(length)
	if end < n || end > len(buffer) {
		return "", 0, fault.ErrLengthOverflow
	}
	return string(buffer[n:end]), end, nil
}

// appendBytes appends a CompactSize-length-prefixed byte string.
func appendBytes(buffer []byte, data []byte) []byte {
	buffer = appendCompactSize(buffer, uint64(len(data)))
	return append(buffer, data...)
}

// readBytes reads a CompactSize-length-prefixed byte string, returning a
// copy of the value and the total bytes consumed.
func readBytes(buffer []byte) ([]byte, int, error) {
	length, n, err := readCompactSize(buffer)
	if nil != err {
		return nil, 0, err
	}
	end := n + int(length)
	if end < n || end > len(buffer) {
		return nil, 0, fault.ErrLengthOverflow
	}
	out := make([]byte, length)
	copy(out, buffer[n:end])
	return out, end, nil
}

// appendFixed appends raw fixed-width bytes (identifiers) with no prefix.
func appendFixed(buffer []byte, data []byte) []byte {
	return append(buffer, data...)
}

// readFixed reads n raw bytes with no length prefix.
func readFixed(buffer []byte, n int) ([]byte, error) {
	if len(buffer) < n {
		return nil, fault.ErrTruncatedRecord
	}
	out := make([]byte, n)
	copy(out, buffer[:n])
	return out, nil
}

// appendUint64 appends a little-endian fixed-width 8-byte integer.
func appendUint64(buffer []byte, v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return append(buffer, b...)
}

// readUint64 reads a little-endian fixed-width 8-byte integer.
func readUint64(buffer []byte) (uint64, error) {
	if len(buffer) < 8 {
		return 0, fault.ErrTruncatedRecord
	}
	return binary.LittleEndian.Uint64(buffer[:8]), nil
}

// appendInt64 appends a little-endian fixed-width 8-byte signed integer,
// used for all fixed-point monetary fields (10^-8 coin units).
func appendInt64(buffer []byte, v int64) []byte {
	return appendUint64(buffer, uint64(v))
}

func readInt64(buffer []byte) (int64, error) {
	v, err := readUint64(buffer)
	return int64(v), err
}

// appendUint32 appends a little-endian fixed-width 4-byte integer, used
// for block heights.
func appendUint32(buffer []byte, v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return append(buffer, b...)
}

func readUint32(buffer []byte) (uint32, error) {
	if len(buffer) < 4 {
		return 0, fault.ErrTruncatedRecord
	}
	return binary.LittleEndian.Uint32(buffer[:4]), nil
}

// appendBool appends a single 0/1 byte.
func appendBool(buffer []byte, v bool) []byte {
	if v {
		return append(buffer, 1)
	}
	return append(buffer, 0)
}

func readBool(buffer []byte) (bool, error) {
	if len(buffer) < 1 {
		return false, fault.ErrTruncatedRecord
	}
	return buffer[0] != 0, nil
}

// appendHash appends a fixed 32-byte identifier with no length prefix.
func appendHash(buffer []byte, h Hash) []byte {
	return append(buffer, h[:]...)
}

func readHash(buffer []byte) (Hash, error) {
	var h Hash
	if len(buffer) < HashLength {
		return h, fault.ErrTruncatedRecord
	}
	copy(h[:], buffer[:HashLength])
	return h, nil
}

// appendHashes appends a CompactSize count followed by that many fixed
// 32-byte identifiers.
func appendHashes(buffer []byte, hs []Hash) []byte {
	buffer = appendCompactSize(buffer, uint64(len(hs)))
	for _, h := range hs {
		buffer = appendHash(buffer, h)
	}
	return buffer
}

func readHashes(buffer []byte) ([]Hash, int, error) {
	count, n, err := readCompactSize(buffer)
	if nil != err {
		return nil, 0, err
	}
	out := make([]Hash, count)
	cursor := n
	for i := range out {
		h, err := readHash(buffer[cursor:])
		if nil != err {
			return nil, 0, err
		}
		out[i] = h
		cursor += HashLength
	}
	return out, cursor, nil
}

// appendInt64s appends a CompactSize count followed by that many 8-byte
// little-endian signed integers.
func appendInt64s(buffer []byte, vs []int64) []byte {
	buffer = appendCompactSize(buffer, uint64(len(vs)))
	for _, v := range vs {
		buffer = appendInt64(buffer, v)
	}
	return buffer
}

func readInt64s(buffer []byte) ([]int64, int, error) {
	count, n, err := readCompactSize(buffer)
	if nil != err {
		return nil, 0, err
	}
	out := make([]int64, count)
	cursor := n
	for i := range out {
		v, err := readInt64(buffer[cursor:])
		if nil != err {
			return nil, 0, err
		}
		out[i] = v
		cursor += 8
	}
	return out, cursor, nil
}

// appendByteList appends a CompactSize count followed by that many raw
// single bytes (used for decision-function id lists, one byte per id).
func appendByteList(buffer []byte, vs []byte) []byte {
	buffer = appendCompactSize(buffer, uint64(len(vs)))
	return append(buffer, vs...)
}

func readByteList(buffer []byte) ([]byte, int, error) {
	count, n, err := readCompactSize(buffer)
	if nil != err {
		return nil, 0, err
	}
	end := n + int(count)
	if end < n || end > len(buffer) {
		return nil, 0, fault.ErrLengthOverflow
	}
	out := make([]byte, count)
	copy(out, buffer[n:end])
	return out, end, nil
}
