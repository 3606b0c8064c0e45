package timer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/maruel/natural"

	"github.com/ayoisaiah/tomato/config"
)

// SoundOpts returns the names of the alert sounds available in the sounds
// directory, sorted naturally.
func SoundOpts() []string {
	entries, err := os.ReadDir(config.SoundPath())
	if err != nil {
		return nil
	}

	var opts []string

	for _, v := range entries {
		if v.IsDir() {
			continue
		}

		name := v.Name()

		opts = append(opts, strings.TrimSuffix(name, filepath.Ext(name)))
	}

	sort.Sort(natural.StringSlice(opts))

	return opts
}

// prepSoundStream returns an audio stream for the specified sound, looked up
// in the sounds directory unless an absolute path is given.
func prepSoundStream(sound string) (beep.StreamSeekCloser, error) {
	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	// without extension, treat as OGG file
	if filepath.Ext(sound) == "" {
		sound += ".ogg"
	}

	if !filepath.IsAbs(sound) {
		sound = filepath.Join(config.SoundPath(), sound)
	}

	f, err := os.Open(sound)
	if err != nil {
		return nil, errSoundNotFound.Wrap(err)
	}

	switch filepath.Ext(sound) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, errInvalidSoundFormat
	}

	if err != nil {
		_ = f.Close()
		return nil, err
	}

	bufferSize := 10

	err = speaker.Init(
		format.SampleRate,
		format.SampleRate.N(time.Duration(int(time.Second)/bufferSize)),
	)
	if err != nil {
		return nil, err
	}

	err = stream.Seek(0)
	if err != nil {
		return nil, err
	}

	return stream, nil
}

// playSound plays the specified sound to completion at the given volume.
// Volume runs from 0 (muted) to 1 (full).
func playSound(sound string, volume float64) error {
	stream, err := prepSoundStream(sound)
	if err != nil {
		return err
	}

	attenuated := &effects.Volume{
		Streamer: stream,
		Base:     2,
		// 0 is the stream's native volume, each unit below halves it
		Volume: (volume - 1) * 5,
		Silent: volume == 0,
	}

	done := make(chan bool)

	speaker.Play(beep.Seq(attenuated, beep.Callback(func() {
		done <- true
	})))

	<-done

	_ = stream.Close()

	speaker.Clear()
	speaker.Close()

	return nil
}
