package audio

import (
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWAVFromPCMHeader(t *testing.T) {
	pcm := make([]byte, 4800) // 100ms of silence at 24kHz
	wav, err := WAVFromPCM(pcm, 0)
	require.NoError(t, err)
	require.Len(t, wav, 44+len(pcm))

	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "fmt ", string(wav[12:16]))
	assert.Equal(t, uint32(DefaultSampleRate), binary.LittleEndian.Uint32(wav[24:28]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]), "mono")
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]), "bits per sample")
	assert.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(wav[40:44]))
}

func TestWAVFromBase64PCM(t *testing.T) {
	b64 := base64.StdEncoding.EncodeToString([]byte{0, 0, 1, 0})
	wav, err := WAVFromBase64PCM(b64, 16000)
	require.NoError(t, err)
	assert.Equal(t, uint32(16000), binary.LittleEndian.Uint32(wav[24:28]))
}

func TestWAVFromBase64PCMErrors(t *testing.T) {
	_, err := WAVFromBase64PCM("", DefaultSampleRate)
	assert.ErrorIs(t, err, ErrEmptyAudio)

	_, err = WAVFromBase64PCM("not-base64!!!", DefaultSampleRate)
	assert.Error(t, err)
}
