// Package domain contains the core entities for exam announcement
// scheduling: subjects, instructions, and the playback status state machine.
// It has no dependencies on storage, audio, or presentation code.
package domain
