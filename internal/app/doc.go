// Package app wires the question, answer, and voting services into the
// single application service the HTTP layer talks to.
package app
