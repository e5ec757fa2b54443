// Package runtime provides the execution context for gitpilot commands.
//
// It ties the loaded configuration to the logger, the result printer and the
// tracer provider, and opens repository handles configured from them.
package runtime
