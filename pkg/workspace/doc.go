/*
Package workspace serializes edits of stored diagrams.

Every mutation of a diagram runs as lock, load, change, save. Edits of the same
diagram are mutually exclusive inside the process, and across processes when a
ports.Locker is configured.
*/
package workspace
