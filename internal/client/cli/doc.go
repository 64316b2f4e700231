// Package cli provides the interactive userfeed terminal client.
//
// It wires configuration, the random user HTTP client and a fetch pipeline
// to a small REPL. One fetch runs at startup; afterwards the user drives
// the pipeline with commands:
//   - fetch | refresh       re-run the fetch and print the outcome
//   - list | l              numbered users of the last successful fetch
//   - show <uuid>           details of one user
//   - find <street-number>  first user living at that street number
//   - status                current pipeline state
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends.
package cli
