// Package interplist stages the commands produced by a program interpreter
// until an executor consumes them.
//
// Each staged record carries the source line, call level and remap level
// that were pending when it was appended (see SetLineNumber and
// SetInterpParams). Consumers either pop records in FIFO order with
// Dequeue, or walk the queue without removing anything using the cursor
// (RefreshCurrent, MoveNext, MoveLast) and the line searches FindByLine and
// FindNextAfterLine, which is how an executor resumes a program at an
// arbitrary line.
//
// The queue performs no locking. A producer and a consumer running on
// different goroutines must serialise their calls, including a
// SetInterpParams/Append pair that has to appear atomic.
package interplist
