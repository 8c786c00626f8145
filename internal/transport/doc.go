// Package transport provides the two channels that couple the orchestrator
// and the worker.
//
// The stream channel carries newline-terminated commands from the
// orchestrator to the worker in write order. The alert channel carries a
// single byte from the worker to the orchestrator when the worker fails
// fatally. The two channels are independent: an alert may be observed before,
// during, or after any given stream write.
package transport
