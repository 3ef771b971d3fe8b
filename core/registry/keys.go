package registry

import "time"

// Keys and tags for import run status entries.
const (
	// KeyStatusPrefix prefixes the run serial for every status entry
	KeyStatusPrefix = "import:status:"

	// TagImportStatus groups all status entries in the in-memory backend
	TagImportStatus = "import-status"

	// StatusTTL bounds how long a finished run's status stays around
	StatusTTL = 24 * time.Hour
)

// StatusKey returns the registry key of a run.
func StatusKey(serial string) string {
	return KeyStatusPrefix + serial
}
