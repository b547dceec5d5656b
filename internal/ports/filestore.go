package ports

type FileStore interface {
	Dir() string

	// List returns names of all stored audio files, sorted.
	List() ([]string, error)

	// Locate finds the file produced for a sanitized title: the exact
	// <title>.<ext> when it exists, otherwise the newest <title>.* match.
	// Returns "" when nothing was found.
	Locate(safeTitle, preferExt string) (string, error)

	// Resolve maps a bare filename to its full on-disk path, rejecting
	// traversal and non-audio names.
	Resolve(name string) (string, error)

	Remove(name string) error

	// DiscardSidecar drops non-audio leftovers (.mhtml) the engine may
	// write next to the real file.
	DiscardSidecar(safeTitle string)
}
