package git

import "context"

// AsyncInvoker starts git and returns immediately with a Future.
// The process is reaped on its own goroutine whether or not anyone awaits it.
type AsyncInvoker struct {
	settings *settings
}

var _ Invoker = (*AsyncInvoker)(nil)

// NewAsyncInvoker creates a non-blocking invoker.
func NewAsyncInvoker(opts ...Option) *AsyncInvoker {
	return &AsyncInvoker{settings: newSettings(opts)}
}

// Go starts git in dir. Cancelling ctx kills the process on a best-effort basis.
func (a *AsyncInvoker) Go(ctx context.Context, dir string, args ...string) *Future[string] {
	f := newFuture[string]()

	p := a.settings.prepare(ctx, dir, args)
	if p.startErr == nil {
		p.startErr = p.cmd.Start()
	}
	if p.startErr != nil {
		f.resolve(p.finish())
		return f
	}

	go func() {
		p.waitErr = p.cmd.Wait()
		f.resolve(p.finish())
	}()
	return f
}

// Run starts git and awaits its result.
func (a *AsyncInvoker) Run(ctx context.Context, dir string, args ...string) (string, error) {
	return a.Go(ctx, dir, args...).Await(ctx)
}

// GoAndDecode is the asynchronous form of RunAndDecode.
func GoAndDecode[R any](ctx context.Context, inv *AsyncInvoker, dir string, decode func(string) (R, error), args ...string) *Future[R] {
	return Then(inv.Go(ctx, dir, args...), decode)
}
