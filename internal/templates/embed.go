// Package templates supplies, per subject name, the announcement templates
// the instruction generator consumes. The file format belongs to this
// package; the scheduler core only sees the parsed triples.
package templates

import _ "embed"

// defaultTemplates is the built-in template set used when no template file
// is configured. It mirrors a standard three-announcement exam flow per
// subject: an advance warning, the start call, and the end call.
//
//go:embed defaults.yaml
var defaultTemplates []byte
