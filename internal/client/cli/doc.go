// Package cli provides the interactive recordkeeper command-line client.
//
// It wires configuration, storage, the record store and the create pipeline
// behind a small REPL. The REPL only talks to services.RecordService and the
// identity resolver; it renders what they return and carries no rules of its
// own.
//
// Commands:
//   - list | l          show all records in creation order
//   - create | add      describe a new record and run the create pipeline
//   - show [id]         print one record
//   - edit [id]         open the editor (placeholder message)
//   - view [id]         open the preview (placeholder message)
//   - rename [id]       change name and description
//   - done [id]         mark a record completed
//   - delete [id]       remove a record after confirmation
//   - whoami | logout   show or forget the display name
//   - stats             operation counters
//   - exit | quit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
