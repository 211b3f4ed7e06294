package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeToneFile(t *testing.T, frequencyHz float64, duration time.Duration, volume float64) *os.File {
	t.Helper()
	file, err := os.Create(filepath.Join(t.TempDir(), "tone.wav"))
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	require.NoError(t, WriteTone(file, frequencyHz, duration, volume))
	_, err = file.Seek(0, 0)
	require.NoError(t, err)
	return file
}

func decodeTone(t *testing.T, file *os.File) (*wav.Decoder, *audio.IntBuffer) {
	t.Helper()
	decoder := wav.NewDecoder(file)
	buf, err := decoder.FullPCMBuffer()
	require.NoError(t, err)
	return decoder, buf
}

func TestWriteTone_Format(t *testing.T) {
	file := writeToneFile(t, 880, 100*time.Millisecond, 0.12)

	header := make([]byte, 12)
	_, err := file.ReadAt(header, 0)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(header[0:4]))
	assert.Equal(t, "WAVE", string(header[8:12]))

	decoder, buf := decodeTone(t, file)
	assert.Equal(t, uint16(1), decoder.WavAudioFormat, "PCM")
	assert.Equal(t, uint16(1), decoder.NumChans, "mono")
	assert.Equal(t, uint32(44100), decoder.SampleRate)
	assert.Equal(t, uint16(16), decoder.BitDepth)
	assert.Len(t, buf.Data, 4410)
}

func TestWriteTone_StaysUnderVolume(t *testing.T) {
	volume := 0.12
	file := writeToneFile(t, 440, 50*time.Millisecond, volume)

	_, buf := decodeTone(t, file)
	require.NotEmpty(t, buf.Data)
	limit := int(volume*32767) + 1
	for _, sample := range buf.Data {
		assert.LessOrEqual(t, sample, limit)
		assert.GreaterOrEqual(t, sample, -limit)
	}
}

func TestWriteTone_Invalid(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "tone.wav"))
	require.NoError(t, err)
	defer file.Close()

	assert.Error(t, WriteTone(file, 0, time.Second, 0.1))
	assert.Error(t, WriteTone(file, 440, 0, 0.1))
}

func TestEnvelope(t *testing.T) {
	assert.InDelta(t, toneFloor, envelope(0, 100, 1000, 0.12), 1e-9)
	assert.InDelta(t, 0.12, envelope(100, 100, 1000, 0.12), 1e-9)
	assert.InDelta(t, toneFloor, envelope(1100, 100, 1000, 0.12), 1e-9)
	assert.Greater(t, envelope(300, 100, 1000, 0.12), envelope(600, 100, 1000, 0.12))
}

func TestExpandArgs(t *testing.T) {
	args := []string{"-q", fileToken, "prefix-" + fileToken}
	assert.Equal(t, []string{"-q", "/tmp/a.wav", "prefix-/tmp/a.wav"}, expandArgs(args, "/tmp/a.wav"))
	assert.Equal(t, fileToken, args[1], "input untouched")
}
