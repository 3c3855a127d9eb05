package iterator

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/koto-lang/koto/value"
)

// userGenIterator drives a value.Generator's Body on its own goroutine,
// trading each produced value for a "keep going" signal across two
// unbuffered channels. This is the Go-idiomatic stand-in for suspending a
// second bytecode VM mid-execution: Body calls yield(v), which blocks the
// goroutine until Next is called again.
//
// Note: if a consumer stops calling Next before the generator is
// exhausted (e.g. because it was composed with Take), the goroutine is
// left parked forever on its yield call. There's no finalizer hook on the
// Iterator interface to unpark it; this is a known leak shared by every
// channel-based coroutine emulation and is judged acceptable for a
// single-process embeddable script runtime.
type userGenIterator struct {
	body    func(args []value.Value, yield func(value.Value) error) error
	args    []value.Value
	resume  chan struct{}
	yielded chan Output
	group   *errgroup.Group
	started bool
	done    bool
}

// NewUserGenerator returns an Iterator that drives gen.Body with args.
func NewUserGenerator(gen *value.Generator, args []value.Value) Iterator {
	return &userGenIterator{body: gen.Body, args: args}
}

// start launches the body on its own goroutine under an errgroup.Group, so
// that a panic recovered inside the body becomes a regular error the group
// can report rather than crashing the process, and so Next can reap the
// goroutine with Wait once the body returns or panics.
func (it *userGenIterator) start() {
	it.resume = make(chan struct{})
	it.yielded = make(chan Output)
	it.group = &errgroup.Group{}
	it.group.Go(func() (err error) {
		defer close(it.yielded)
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in generator body: %v", r)
				it.yielded <- ErrorOutput(err)
			}
		}()
		bodyErr := it.body(it.args, func(v value.Value) error {
			it.yielded <- ValueOutput(v)
			<-it.resume
			return nil
		})
		if bodyErr != nil {
			it.yielded <- ErrorOutput(bodyErr)
			return bodyErr
		}
		return nil
	})
}

func (it *userGenIterator) Next() (Output, bool) {
	if it.done {
		return Output{}, false
	}
	if !it.started {
		it.started = true
		it.start()
	} else {
		it.resume <- struct{}{}
	}
	out, ok := <-it.yielded
	if !ok {
		it.done = true
		it.group.Wait() // reap the goroutine; its error already surfaced via the channel
		return Output{}, false
	}
	if out.Kind == KindError {
		it.done = true
		it.group.Wait()
	}
	return out, true
}

func (it *userGenIterator) SizeHint() int { return 0 }

// MakeCopy restarts the generator from scratch with the same arguments,
// rather than attempting to fork the running goroutine's suspended state.
// A copy therefore replays the generator's full sequence independently of
// how far the original has progressed.
func (it *userGenIterator) MakeCopy() Iterator {
	return &userGenIterator{body: it.body, args: it.args}
}
