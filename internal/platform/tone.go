package platform

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrNoAudioPlayer indicates no supported command-line audio player was found.
var ErrNoAudioPlayer = errors.New("no audio player found")

const (
	toneSampleRate = 44100
	toneBitDepth   = 16
	wavFormatPCM   = 1
	toneAttack     = 20 * time.Millisecond
	toneFloor      = 0.0001
	fileToken      = "{file}"
)

type playerCommand struct {
	name string
	args []string
}

// TonePlayer renders a sine tone to a temporary WAV file and plays it with
// the host's audio player.
type TonePlayer struct {
	path string
	args []string
}

// NewTonePlayer picks the first available player for this OS.
func NewTonePlayer() (*TonePlayer, error) {
	for _, candidate := range tonePlayers() {
		path, err := exec.LookPath(candidate.name)
		if err != nil {
			continue
		}
		return &TonePlayer{path: path, args: candidate.args}, nil
	}
	return nil, ErrNoAudioPlayer
}

// PlayTone blocks until the tone finished playing.
func (player *TonePlayer) PlayTone(frequencyHz float64, duration time.Duration, volume float64) error {
	file, err := os.CreateTemp("", "focusdeck-chime-*.wav")
	if err != nil {
		return fmt.Errorf("create tone file: %w", err)
	}
	path := file.Name()
	defer os.Remove(path)

	if err := WriteTone(file, frequencyHz, duration, volume); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close tone file: %w", err)
	}

	output, err := exec.Command(player.path, expandArgs(player.args, path)...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("play tone: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// WriteTone encodes a mono 16-bit PCM WAV sine tone. The envelope ramps up
// over the first 20ms and then decays exponentially to silence at duration.
func WriteTone(w io.WriteSeeker, frequencyHz float64, duration time.Duration, volume float64) error {
	if frequencyHz <= 0 || duration <= 0 {
		return fmt.Errorf("invalid tone %.1fHz for %s", frequencyHz, duration)
	}
	volume = math.Max(toneFloor, math.Min(volume, 1))

	samples := int(math.Round(duration.Seconds() * toneSampleRate))
	attackSamples := int(toneAttack.Seconds() * toneSampleRate)
	decaySamples := max(samples-attackSamples, 1)
	data := make([]int, samples)
	for i := range data {
		gain := envelope(i, attackSamples, decaySamples, volume)
		data[i] = int(gain * math.Sin(2*math.Pi*frequencyHz*float64(i)/toneSampleRate) * math.MaxInt16)
	}

	encoder := wav.NewEncoder(w, toneSampleRate, toneBitDepth, 1, wavFormatPCM)
	if err := encoder.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: toneSampleRate},
		Data:           data,
		SourceBitDepth: toneBitDepth,
	}); err != nil {
		return fmt.Errorf("write wav samples: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("finish wav: %w", err)
	}
	return nil
}

// envelope follows exponential ramps between toneFloor and volume.
func envelope(sample, attackSamples, decaySamples int, volume float64) float64 {
	if sample < attackSamples {
		progress := float64(sample) / float64(attackSamples)
		return toneFloor * math.Pow(volume/toneFloor, progress)
	}
	progress := float64(sample-attackSamples) / float64(decaySamples)
	return volume * math.Pow(toneFloor/volume, progress)
}

func expandArgs(args []string, path string) []string {
	expanded := make([]string, len(args))
	for i, arg := range args {
		expanded[i] = strings.ReplaceAll(arg, fileToken, path)
	}
	return expanded
}
