// Package artifact folds a stream of typed generation deltas into live
// artifact state and writes the finished document through to the store.
//
// A producer outside this library decodes stream events into Delta values
// and hands them to Engine.Apply in arrival order. The engine owns the
// visibility heuristic, the idle/streaming lifecycle, and the best-effort
// persistence on finish.
package artifact
