// Package voting implements the vote ledger and aggregate-consistency core.
//
// Ledger owns the per-voter-per-target vote records and the toggle state
// machine. Counter derives a target's cached total from the ledger by full
// recount, never by increment. Service composes both inside one storage
// transaction per vote, retrying transparently on serialization conflicts.
package voting
