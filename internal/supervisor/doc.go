// Package supervisor starts the worker and observes its termination.
//
// A Spawner creates the transport link and starts one worker on it. Two
// spawners are provided: ProcessSpawner runs the divpipe-worker binary as a
// child process over OS pipes, and GoroutineSpawner runs the worker in the
// current process over in-memory pipes. Both honor the same contract: the
// worker reads commands from the link's stream and raises the link's alert
// on fatal failure.
package supervisor
