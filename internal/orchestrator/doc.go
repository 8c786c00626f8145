// Package orchestrator feeds a command file to a supervised worker.
//
// The orchestrator creates the transport, arms the alert receiver, spawns
// the worker, and streams each non-blank line of the command file with a
// fixed pause between lines. It checks the alert once per line: after the
// alert fires no further commands are issued, but the stream is still
// closed and the worker is still waited on and reported.
package orchestrator
