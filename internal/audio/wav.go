// Package audio wraps raw PCM samples in a WAV container.
package audio

import (
	"bytes"
	"encoding/binary"
)

// Speech output format. The Gemini speech endpoint always returns this
// format, so it is fixed here rather than read from the response.
const (
	SampleRate    = 24000
	Channels      = 1
	BitsPerSample = 16

	// HeaderSize is the length of the RIFF/WAVE header written by EncodeWAV
	HeaderSize = 44

	// ContentType is the MIME type of EncodeWAV output
	ContentType = "audio/wav"
)

// PCMFormat describes linear PCM samples
type PCMFormat struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

// SpeechFormat is the PCM format of synthesized speech
var SpeechFormat = PCMFormat{
	SampleRate:    SampleRate,
	Channels:      Channels,
	BitsPerSample: BitsPerSample,
}

// ByteRate returns the number of bytes per second of audio
func (f PCMFormat) ByteRate() int {
	return f.SampleRate * f.Channels * f.BitsPerSample / 8
}

// BlockAlign returns the number of bytes per sample frame
func (f PCMFormat) BlockAlign() int {
	return f.Channels * f.BitsPerSample / 8
}

// EncodeWAV returns a 44-byte header followed by pcm.
func EncodeWAV(pcm []byte, f PCMFormat) []byte {
	dataLen := len(pcm)

	buf := &bytes.Buffer{}
	buf.Grow(HeaderSize + dataLen)

	// RIFF header; size excludes the 8 bytes of "RIFF" and itself
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(HeaderSize-8+dataLen))
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(buf, binary.LittleEndian, uint16(f.Channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(f.SampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(f.ByteRate()))
	_ = binary.Write(buf, binary.LittleEndian, uint16(f.BlockAlign()))
	_ = binary.Write(buf, binary.LittleEndian, uint16(f.BitsPerSample))

	// data chunk
	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(pcm)

	return buf.Bytes()
}
