// Package app wires settings, driven adapters and core services into a
// running portal. Driving adapters receive the assembled services from here.
package app
