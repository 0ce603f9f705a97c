// Package plugin adapts the ring modulator to a native audio host's
// callback contract.
//
// The host loads the static Definitions table once, creates instances
// through a Host, and then drives each instance with parameter calls and
// per-block Process calls. Instance state lives only as long as the
// instance; nothing is persisted.
//
// Every callback reports a Result code. None of the callbacks invoked
// between Create and Release allocate, lock, or perform I/O.
package plugin
