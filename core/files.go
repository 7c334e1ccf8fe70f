package core

// FileStore persists opaque file contents under slash-separated relative paths.
type FileStore interface {
	// WriteFile replaces the whole content at path, creating missing parent directories.
	WriteFile(path string, data []byte) error
	ReadFile(path string) ([]byte, error)
	Exists(path string) (bool, error)
}
