// Package logging builds the structured loggers used across the tool.
package logging
