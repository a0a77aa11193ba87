// Package cli provides the interactive poetry collection client.
//
// App wires a poem repository to a read-eval-print loop. On start it loads
// the collection, starts a background connectivity watcher that drives the
// online/offline marker in the prompt, and then executes user commands
// until "exit" or end of input.
//
// Commands:
//   - list, show, add, edit, delete
//   - search, category, sort, categories, reset
//   - reload, status, help, exit
//
// Descriptions may carry <b>/<strong>, <i>/<em> and <br>; they are rendered
// with terminal styles and stripped for list previews.
package cli
