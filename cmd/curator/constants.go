package main

// Default limits for CLI commands.
const (
	DefaultListLimit    = 600
	DefaultExportLimit  = 1500
	DefaultHistoryLimit = 50
)

// Valid export formats.
var validFormats = []string{"csv", "jsonl"}

// Valid listing namespaces.
var validNamespaces = []string{"raw", "curated"}
