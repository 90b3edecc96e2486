package emulator

const (
	DEFAULT_MAX_INSTRUCTIONS = 128  // Program capacity, in records.
	DEFAULT_MAX_LINE_LENGTH  = 128  // Record text bound, in bytes.
	DEFAULT_STEP_LIMIT       = 4096 // Execution loop iteration cap.
)

// Config holds the emulator limits. Zero fields take their defaults.
type Config struct {
	MaxInstructions int  // Program capacity.
	MaxLineLength   int  // Longer lines are truncated.
	StepLimit       int  // Maximum records executed by one Run.
	Verbose         bool // If set, traces every executed record.
}

// withDefaults returns the config with zero fields filled in.
func (cfg Config) withDefaults() Config {
	if cfg.MaxInstructions <= 0 {
		cfg.MaxInstructions = DEFAULT_MAX_INSTRUCTIONS
	}
	if cfg.MaxLineLength <= 0 {
		cfg.MaxLineLength = DEFAULT_MAX_LINE_LENGTH
	}
	if cfg.StepLimit <= 0 {
		cfg.StepLimit = DEFAULT_STEP_LIMIT
	}
	return cfg
}
