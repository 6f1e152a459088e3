// Package shell drives the interactive operator loop on top of a
// control-channel session.
//
// Ownership boundary:
// - the Starting/Prompting/Dispatching/Exiting state machine
// - descriptor-set introspection with degraded fallback
// - builtin exit tokens and reply rendering
// - the one-shot single-command contract
//
// Line editing is injected through LineEditor so the loop runs against
// a plain reader, the bubbletea editor, or a scripted test double.
package shell
