// Package wav serializes extracted sample bytes into a playable PCM
// container. The header layout is pinned to little-endian with an
// explicit struct so the byte sequence written is exact and portable.
package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// HeaderSize is the number of bytes preceding the sample payload.
const HeaderSize = 44

// Format describes the PCM stream the container advertises.
type Format struct {
	// Channels is the channel count; extracted groove audio is mono
	Channels uint16

	// SampleRate is the playback rate in samples per second
	SampleRate uint32

	// BitsPerSample is the sample bit depth
	BitsPerSample uint16
}

// DefaultFormat returns the format extracted audio is written with:
// mono, 44.1 kHz, 8 bits per sample.
func DefaultFormat() Format {
	return Format{
		Channels:      1,
		SampleRate:    44100,
		BitsPerSample: 8,
	}
}

// header is the canonical 44-byte RIFF/WAVE layout: a 12-byte group
// header, a 24-byte format descriptor chunk, and an 8-byte data chunk
// header. All multi-byte fields are little-endian.
type header struct {
	RIFF          [4]byte
	Size          uint32
	WAVE          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

// newHeader fills the fixed header fields for a payload of the given size.
func newHeader(f Format, dataSize uint32) header {
	bytesPerSample := uint32(f.BitsPerSample / 8)

	return header{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		Size:          36 + dataSize,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   1, // uncompressed PCM
		Channels:      f.Channels,
		SampleRate:    f.SampleRate,
		ByteRate:      f.SampleRate * uint32(f.Channels) * bytesPerSample,
		BlockAlign:    f.Channels * uint16(bytesPerSample),
		BitsPerSample: f.BitsPerSample,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
}

// Encode writes the container header followed by the raw sample bytes.
// The samples are exactly the data-chunk payload.
func Encode(w io.Writer, f Format, samples []byte) error {
	h := newHeader(f, uint32(len(samples)))

	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("failed to write container header: %v", err)
	}
	if _, err := w.Write(samples); err != nil {
		return fmt.Errorf("failed to write sample data: %v", err)
	}

	return nil
}

// WriteFile writes the sample bytes to path as a playable file.
func WriteFile(path string, f Format, samples []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %v", err)
	}
	defer file.Close()

	return Encode(file, f, samples)
}
