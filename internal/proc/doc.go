// Package proc answers two questions about other processes: is this PID
// still alive, and when did it start. Together they let the lock registry
// tell a live holder from a crashed one, and a genuine holder from an
// unrelated process that inherited a recycled PID.
package proc
