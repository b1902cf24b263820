// Package logging provides a simple leveled logging interface for the
// autodelete daemon and its admin CLI.
//
// It supports the following log levels:
//   - DEBUG: Policy decisions and session bookkeeping
//   - INFO: Deletions and lifecycle messages
//   - WARN: Exhausted delete retries and recoverable problems
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The log level is configured via the LOG_LEVEL environment variable, or
// forced to debug with DEBUG=true.
//
// Components that are unit tested take a [Sink] instead of calling the
// package functions directly; [For] returns a Sink that prefixes messages
// with the component name.
package logging
