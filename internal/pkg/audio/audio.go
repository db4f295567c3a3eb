// Package audio converts the raw PCM returned by the speech model into
// a playable container. The model emits 16-bit little-endian mono PCM
// at 24 kHz, base64 encoded, with no header.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
)

const (
	DefaultSampleRate = 24000
	numChannels       = 1
	bitsPerSample     = 16
)

var ErrEmptyAudio = errors.New("empty audio payload")

// WAVFromBase64PCM decodes base64 PCM16 data and wraps it in a WAV header.
func WAVFromBase64PCM(b64 string, sampleRate int) ([]byte, error) {
	if b64 == "" {
		return nil, ErrEmptyAudio
	}
	pcm, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	return WAVFromPCM(pcm, sampleRate)
}

// WAVFromPCM wraps raw PCM16 mono samples in a WAV (RIFF) header.
func WAVFromPCM(pcm []byte, sampleRate int) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, ErrEmptyAudio
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8

	out := make([]byte, 0, 44+len(pcm))
	out = append(out, "RIFF"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(36+len(pcm)))
	out = append(out, "WAVE"...)
	out = append(out, "fmt "...)
	out = binary.LittleEndian.AppendUint32(out, 16)
	out = binary.LittleEndian.AppendUint16(out, 1) // PCM
	out = binary.LittleEndian.AppendUint16(out, numChannels)
	out = binary.LittleEndian.AppendUint32(out, uint32(sampleRate))
	out = binary.LittleEndian.AppendUint32(out, uint32(byteRate))
	out = binary.LittleEndian.AppendUint16(out, uint16(blockAlign))
	out = binary.LittleEndian.AppendUint16(out, bitsPerSample)
	out = append(out, "data"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(pcm)))
	out = append(out, pcm...)
	return out, nil
}
