package templates

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/proctorhq/proctor/internal/exam/domain"
	"github.com/proctorhq/proctor/internal/log"
)

// Preset carries the per-subject defaults the template file declares
// alongside its announcement list.
type Preset struct {
	Name            string
	DurationMinutes int
	DoubleSession   bool
}

// subjectEntry is the YAML shape of one subject block.
type subjectEntry struct {
	Name            string            `yaml:"name"`
	DurationMinutes int               `yaml:"duration_minutes"`
	DoubleSession   bool              `yaml:"double_session"`
	Instructions    []domain.Template `yaml:"instructions"`
}

type templateFile struct {
	Subjects []subjectEntry `yaml:"subjects"`
}

// Source loads and serves announcement templates. Lookups are idempotent
// and side-effect-free; Reload re-reads the backing file and is the only
// mutation path.
type Source struct {
	path string

	mu      sync.RWMutex
	entries map[string]subjectEntry
	order   []string
}

// Load builds a Source from the template file at path. An empty path loads
// the embedded default template set.
func Load(path string) (*Source, error) {
	s := &Source{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the backing file, replacing the template set wholesale.
// On failure the previous set is kept.
func (s *Source) Reload() error {
	raw := defaultTemplates
	if s.path != "" {
		data, err := os.ReadFile(s.path) //nolint:gosec // G304: path comes from config
		if err != nil {
			return fmt.Errorf("reading template file: %w", err)
		}
		raw = data
	}

	var parsed templateFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parsing template file: %w", err)
	}
	if len(parsed.Subjects) == 0 {
		return fmt.Errorf("template file declares no subjects")
	}

	entries := make(map[string]subjectEntry, len(parsed.Subjects))
	order := make([]string, 0, len(parsed.Subjects))
	for _, entry := range parsed.Subjects {
		if entry.Name == "" {
			log.Warn(log.CatTemplates, "skipping subject block without a name")
			continue
		}
		if entry.DurationMinutes <= 0 {
			entry.DurationMinutes = domain.DefaultDurationMinutes
		}
		if _, dup := entries[entry.Name]; dup {
			log.Warn(log.CatTemplates, "duplicate subject block, keeping first", "name", entry.Name)
			continue
		}
		entries[entry.Name] = entry
		order = append(order, entry.Name)
	}

	s.mu.Lock()
	s.entries = entries
	s.order = order
	s.mu.Unlock()

	log.Info(log.CatTemplates, "templates loaded", "path", s.describePath(), "subjects", len(order))
	return nil
}

// Templates returns the announcement templates for the subject name, in
// file order (not necessarily sorted by offset). An unknown name returns an
// empty set; that is not an error.
func (s *Source) Templates(subjectName string) []domain.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[subjectName]
	if !ok {
		return nil
	}
	out := make([]domain.Template, len(entry.Instructions))
	copy(out, entry.Instructions)
	return out
}

// secondSessionSuffix names the alternate announcement set a double-session
// subject uses when the template file declares one.
const secondSessionSuffix = " (second session)"

// TemplatesFor returns the announcement set for a subject. A double-session
// subject uses the "<name> (second session)" set when the file declares one,
// falling back to the subject's own set otherwise.
func (s *Source) TemplatesFor(subject domain.Subject) []domain.Template {
	if subject.DoubleSession {
		if alt := s.Templates(subject.Name + secondSessionSuffix); len(alt) > 0 {
			return alt
		}
	}
	return s.Templates(subject.Name)
}

// SubjectNames returns the subject names in file order.
func (s *Source) SubjectNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Preset returns the declared defaults for a subject name. Unknown names
// get the standard 90-minute single-session preset.
func (s *Source) Preset(name string) (Preset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[name]
	if !ok {
		return Preset{Name: name, DurationMinutes: domain.DefaultDurationMinutes}, false
	}
	return Preset{
		Name:            entry.Name,
		DurationMinutes: entry.DurationMinutes,
		DoubleSession:   entry.DoubleSession,
	}, true
}

// Path returns the backing file path, or "" when serving the embedded set.
func (s *Source) Path() string {
	return s.path
}

func (s *Source) describePath() string {
	if s.path == "" {
		return "(built-in)"
	}
	return s.path
}
