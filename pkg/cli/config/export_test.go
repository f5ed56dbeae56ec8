package config

// NewLines returns a Lines config bound to a catalog path
func NewLines(path string) *Lines {
	return &Lines{path: path}
}
