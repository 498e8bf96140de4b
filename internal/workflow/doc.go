// Package workflow turns raw user input into record store mutations.
//
// The sale entry form validates a series/country/customer triple and
// reports the outcome as a short-lived Notification. The product import
// workflow splits free text into product names and merges them into the
// product set. Both are shared by the CLI, the terminal explorer and the
// HTTP API so every surface validates the same way.
package workflow
