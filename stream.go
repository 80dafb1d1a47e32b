package tableprint

import (
	"io"
	"iter"
	"slices"
)

// RenderSeq collects the records of seq and renders them. Column widths
// depend on the whole set, so nothing is rendered before seq is exhausted.
func RenderSeq[T any](opts Options, seq iter.Seq[T]) string {
	return Render(opts, slices.Collect(seq)...)
}

// WriteSeq is the iterator form of [Write].
func WriteSeq[T any](w io.Writer, opts Options, seq iter.Seq[T]) error {
	return Write(w, opts, slices.Collect(seq)...)
}

// WriteChan drains ch and writes the table. It is a thin wrapper around
// [WriteSeq].
func WriteChan[T any](w io.Writer, opts Options, ch <-chan T) error {
	return WriteSeq(w, opts, chanToIter(ch))
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}
