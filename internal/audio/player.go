// Package audio starts playback of announcement files and answers duration
// queries. Playback is fire-and-forget through an OS-native player command;
// there is no completion callback, so the scheduler infers completion from
// elapsed time against Duration.
package audio

import (
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/proctorhq/proctor/internal/log"
)

// backend is one OS player command proctor knows how to drive.
type backend struct {
	command string
	args    func(path string) []string
}

// backends are tried in order; the first command present on PATH wins.
var backends = []backend{
	{command: "afplay", args: func(p string) []string { return []string{p} }},
	{command: "paplay", args: func(p string) []string { return []string{p} }},
	{command: "aplay", args: func(p string) []string { return []string{"-q", p} }},
	{command: "ffplay", args: func(p string) []string {
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", p}
	}},
}

// durationCacheTTL bounds how long a probed duration is reused. Durations
// sit on the 1-second tick path, so they must never hit the filesystem
// every tick; a short TTL still picks up swapped files between exams.
const durationCacheTTL = 5 * time.Minute

// Player plays audio files from a directory via an OS player command.
type Player struct {
	dir       string
	backend   *backend
	durations *cache.Cache
}

// NewPlayer creates a Player serving files from dir. If no player command
// is available the Player still works: Play logs and does nothing, and the
// scheduler's presume-complete policy keeps the exam clock moving.
func NewPlayer(dir string) *Player {
	p := &Player{
		dir:       dir,
		durations: cache.New(durationCacheTTL, 2*durationCacheTTL),
	}
	for i := range backends {
		if _, err := exec.LookPath(backends[i].command); err == nil {
			p.backend = &backends[i]
			break
		}
	}
	if p.backend == nil {
		log.Warn(log.CatAudio, "no audio player command found", "dir", dir)
	} else {
		log.Info(log.CatAudio, "audio player ready", "backend", p.backend.command, "dir", dir)
	}
	return p
}

// Backend returns the player command in use, or "" if none was found.
func (p *Player) Backend() string {
	if p.backend == nil {
		return ""
	}
	return p.backend.command
}

// Exists reports whether the referenced audio file is present. Checked
// live, not cached, so dropping a missing file in place is picked up.
func (p *Player) Exists(audioRef string) bool {
	if audioRef == "" {
		return false
	}
	_, err := os.Stat(p.resolve(audioRef))
	return err == nil
}

// Play starts playback of the referenced file and returns immediately.
// Failures are logged and swallowed: playback is attempted at most once per
// trigger and a broken file must never block the exam clock.
func (p *Player) Play(audioRef string) {
	path := p.resolve(audioRef)
	if p.backend == nil {
		log.Warn(log.CatAudio, "dropping playback, no player backend", "file", audioRef)
		return
	}
	if _, err := os.Stat(path); err != nil {
		log.Warn(log.CatAudio, "dropping playback, file missing", "file", audioRef)
		return
	}

	command := p.backend.command
	args := p.backend.args(path)
	log.SafeGo("audio.play", func() {
		cmd := exec.Command(command, args...) //nolint:gosec // G204: command is from the fixed backend table
		if err := cmd.Run(); err != nil {
			log.ErrorErr(log.CatAudio, "player command failed", err, "file", audioRef)
		}
	})
}

// Duration returns the referenced file's duration in seconds, or 0 when it
// cannot be determined. Results are cached.
func (p *Player) Duration(audioRef string) float64 {
	if audioRef == "" {
		return 0
	}
	if cached, ok := p.durations.Get(audioRef); ok {
		return cached.(float64)
	}

	seconds := probeDuration(p.resolve(audioRef))
	if seconds > 0 {
		p.durations.Set(audioRef, seconds, cache.DefaultExpiration)
	}
	return seconds
}

func (p *Player) resolve(audioRef string) string {
	return filepath.Join(p.dir, filepath.Clean(audioRef))
}
