package audio

import (
	"encoding/binary"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// probeDuration determines an audio file's duration in seconds. WAV files
// are read directly from their RIFF header; anything else falls back to
// ffprobe when available. 0 means unknown, which the scheduler treats as
// "presume complete immediately".
func probeDuration(path string) float64 {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		if d := wavDuration(path); d > 0 {
			return d
		}
	}
	return ffprobeDuration(path)
}

// wavDuration computes duration from a canonical RIFF/WAVE header: data
// chunk size divided by the fmt chunk's byte rate.
func wavDuration(path string) float64 {
	f, err := os.Open(path) //nolint:gosec // G304: path is resolved under the configured audio dir
	if err != nil {
		return 0
	}
	defer func() { _ = f.Close() }()

	var riff [12]byte
	if _, err := io.ReadFull(f, riff[:]); err != nil {
		return 0
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return 0
	}

	var byteRate uint32
	// Walk the chunk list; fmt carries the byte rate, data the payload size.
	for {
		var header [8]byte
		if _, err := io.ReadFull(f, header[:]); err != nil {
			return 0
		}
		chunkID := string(header[0:4])
		chunkSize := binary.LittleEndian.Uint32(header[4:8])

		switch chunkID {
		case "fmt ":
			var fmtChunk [16]byte
			if chunkSize < 16 {
				return 0
			}
			if _, err := io.ReadFull(f, fmtChunk[:]); err != nil {
				return 0
			}
			byteRate = binary.LittleEndian.Uint32(fmtChunk[8:12])
			if skip := int64(chunkSize) - 16; skip > 0 {
				if _, err := f.Seek(skip, io.SeekCurrent); err != nil {
					return 0
				}
			}
		case "data":
			if byteRate == 0 {
				return 0
			}
			return float64(chunkSize) / float64(byteRate)
		default:
			// Chunks are word-aligned; odd sizes carry a pad byte.
			skip := int64(chunkSize)
			if chunkSize%2 == 1 {
				skip++
			}
			if _, err := f.Seek(skip, io.SeekCurrent); err != nil {
				return 0
			}
		}
	}
}

// ffprobeDuration asks ffprobe for the container duration. Returns 0 when
// ffprobe is missing or fails.
func ffprobeDuration(path string) float64 {
	ffprobe, err := exec.LookPath("ffprobe")
	if err != nil {
		return 0
	}
	out, err := exec.Command(ffprobe, //nolint:gosec // G204: fixed argument list
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path).Output()
	if err != nil {
		return 0
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
