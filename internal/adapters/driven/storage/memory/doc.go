// Package memory provides in-memory record sources and the embedded seed
// datasets served when no database is configured.
package memory
