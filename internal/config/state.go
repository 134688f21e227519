package config

// State backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// SQLite drivers. DriverModernc is pure Go; DriverCgo needs a cgo build.
const (
	DriverModernc = "sqlite"
	DriverCgo     = "sqlite3"
)

// StateConfig selects where the deck state is persisted.
type StateConfig struct {
	// Backend is "file" (one JSON document) or "sqlite" (key/value table).
	Backend string `yaml:"backend"`

	// Driver is the database/sql driver name for the sqlite backend.
	Driver string `yaml:"driver"`

	// Path overrides the default .flipdeck/state.{json,db} location.
	Path string `yaml:"path,omitempty"`
}
