package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/starcatch/internal/config"
)

// Source tells where a bank entry came from.
type Source string

const (
	SourceFile  Source = "file"
	SourceSynth Source = "synth"
)

type clip struct {
	buf    *beep.Buffer
	source Source
}

// Bank holds every configured sound fully decoded at the player sample rate.
type Bank struct {
	format beep.Format
	clips  map[string]clip
}

// LoadBank decodes every sound listed in sounds from dir. A sound whose file
// is missing or unreadable is replaced by a synthesized cue for its category,
// so the bank always contains every configured path.
func LoadBank(dir string, sounds config.SoundsConfig, logger *log.Logger) *Bank {
	b := &Bank{
		format: beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2},
		clips:  make(map[string]clip),
	}

	categories := []struct {
		name  string
		paths []string
	}{
		{"impact", sounds.Impact},
		{"pluck", sounds.Pluck},
		{"explosion", sounds.Explosion},
	}

	for _, cat := range categories {
		for variant, path := range cat.paths {
			if _, ok := b.clips[path]; ok {
				continue
			}
			buf, err := b.decodeFile(filepath.Join(dir, path))
			if err == nil {
				b.clips[path] = clip{buf: buf, source: SourceFile}
				continue
			}
			if !os.IsNotExist(err) && logger != nil {
				logger.Warn("sound unusable, synthesizing", "path", path, "error", err)
			}
			b.clips[path] = clip{buf: b.bufferOf(synthCue(cat.name, variant, sampleRate)), source: SourceSynth}
		}
	}

	return b
}

func (b *Bank) decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("audio: unsupported format %q", filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != b.format.SampleRate {
		s = beep.Resample(4, format.SampleRate, b.format.SampleRate, streamer)
	}
	buf := b.bufferOf(s)
	if err := streamer.Err(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("audio: read %s: %w", path, err)
	}
	return buf, nil
}

func (b *Bank) bufferOf(s beep.Streamer) *beep.Buffer {
	buf := beep.NewBuffer(b.format)
	buf.Append(s)
	return buf
}

// Streamer returns a fresh streamer over the sound, or false if the path is
// not in the bank.
func (b *Bank) Streamer(path string) (beep.StreamSeeker, bool) {
	c, ok := b.clips[path]
	if !ok {
		return nil, false
	}
	return c.buf.Streamer(0, c.buf.Len()), true
}

// Source reports where the sound was loaded from.
func (b *Bank) Source(path string) (Source, bool) {
	c, ok := b.clips[path]
	return c.source, ok
}

// Len returns the number of distinct sounds.
func (b *Bank) Len() int {
	return len(b.clips)
}

// Format returns the format shared by every clip.
func (b *Bank) Format() beep.Format {
	return b.format
}
