package compress

// Level names a degree of lossy simplification. The numeric values
// are part of the boundary ABI.
type Level uint8

const (
	None       Level = 0
	Minimal    Level = 1
	Balanced   Level = 2
	Aggressive Level = 3
	Extreme    Level = 4
)

func (l Level) String() string {
	switch l {
	case None:
		return "none"
	case Minimal:
		return "minimal"
	case Balanced:
		return "balanced"
	case Aggressive:
		return "aggressive"
	case Extreme:
		return "extreme"
	default:
		return "unknown"
	}
}

// LevelFromString parses a level name; unrecognized names map to
// Balanced.
func LevelFromString(s string) Level {
	switch s {
	case "none":
		return None
	case "minimal":
		return Minimal
	case "balanced":
		return Balanced
	case "aggressive":
		return Aggressive
	case "extreme":
		return Extreme
	default:
		return Balanced
	}
}

// Options is the fine-grained compression configuration. Zero value
// is the identity transform; use OptionsForLevel for the standard
// graduated presets.
type Options struct {
	Level Level

	StripLineComments  bool
	StripBlockComments bool
	StripDocstrings    bool
	CollapseBlankLines bool
	NormalizeSpaces    bool
	PreserveImports    bool
	PreserveSignatures bool

	// MaxBlankLines bounds consecutive blank lines when collapsing.
	MaxBlankLines int
}

// OptionsForLevel returns the toggles each named level implies.
func OptionsForLevel(level Level) Options {
	opts := Options{Level: level, MaxBlankLines: 1, PreserveImports: true, PreserveSignatures: true}
	switch level {
	case None:
		return Options{Level: None}
	case Minimal:
		opts.CollapseBlankLines = true
	case Balanced:
		opts.CollapseBlankLines = true
		opts.StripLineComments = true
		opts.StripBlockComments = true
	case Aggressive, Extreme:
		opts.CollapseBlankLines = true
		opts.StripLineComments = true
		opts.StripBlockComments = true
		opts.StripDocstrings = true
		opts.NormalizeSpaces = true
	}
	return opts
}
