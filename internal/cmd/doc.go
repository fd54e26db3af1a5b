// Package cmd contains the Cobra command tree of the interplist binary.
//
// Every subcommand loads a TOML program, stages it into a fresh command
// queue and then inspects the queue:
//
//	interplist dump prog.toml
//	interplist drain prog.toml
//	interplist seek --line 20 prog.toml
//	interplist seek --line 20 --after prog.toml
package cmd
