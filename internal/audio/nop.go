package audio

// Nop is a silent sink for tests and --silent mode. Durations are unknown,
// so the scheduler presumes completion immediately after each trigger.
type Nop struct{}

// Play does nothing.
func (Nop) Play(string) {}

// Duration reports unknown.
func (Nop) Duration(string) float64 { return 0 }

// Exists reports false.
func (Nop) Exists(string) bool { return false }

// Backend names the sink.
func (Nop) Backend() string { return "silent" }
