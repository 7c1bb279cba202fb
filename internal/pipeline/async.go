package pipeline

import (
	"context"
	"fmt"
)

// Outcome is the completion signal of a background conversion: either the
// output path and result, or an error suitable for showing to a user.
type Outcome struct {
	Input  string
	Output string
	Result *Result
	Err    error
}

// ConvertAsync runs ConvertFile on its own goroutine so an interactive
// caller's event loop keeps running. Exactly one Outcome is delivered: to
// done (if non-nil, called from the worker goroutine) and on the returned
// channel, which is buffered and then closed. Cancelling ctx stops the
// conversion between stages.
func ConvertAsync(ctx context.Context, inputPath, outputPath string, opts Options, done func(Outcome)) <-chan Outcome {
	if outputPath == "" {
		outputPath = DefaultOutputPath(inputPath)
	}
	ch := make(chan Outcome, 1)

	go func() {
		defer close(ch)

		out := Outcome{Input: inputPath, Output: outputPath}
		func() {
			defer func() {
				if r := recover(); r != nil {
					out.Err = fmt.Errorf("conversion panicked: %v", r)
				}
			}()
			if err := ctx.Err(); err != nil {
				out.Err = err
				return
			}
			out.Result, out.Err = convertFile(ctx, inputPath, outputPath, opts)
		}()

		if done != nil {
			done(out)
		}
		ch <- out
	}()
	return ch
}
