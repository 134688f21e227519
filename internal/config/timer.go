package config

// ChoiceOption is the timer option that lets the user type a duration.
const ChoiceOption = "choice"

// TimerConfig configures the random duration picker.
type TimerConfig struct {
	// Options are whole minutes or ChoiceOption, picked uniformly.
	Options []string `yaml:"options"`
}

// AudioConfig configures countdown cues.
type AudioConfig struct {
	Enabled bool `yaml:"enabled"`

	// Player is the command that plays WAV data from stdin.
	// Empty means auto-detect (paplay, aplay, afplay).
	Player string `yaml:"player,omitempty"`

	SampleRate int `yaml:"sample_rate"`
}
