package config

// UIConfig holds user interface configuration.
type UIConfig struct {
	// Theme is "auto", "light" or "dark". Auto inspects COLORFGBG.
	Theme string `yaml:"theme"`
}
