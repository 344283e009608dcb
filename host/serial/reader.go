package serial

import (
	"context"
	"io"
)

// timeoutReader turns the (0, io.EOF) a timed-out serial read returns
// into a retry, until ctx is done
type timeoutReader struct {
	ctx context.Context
	r   io.Reader
}

// NewTimeoutReader wraps a port with a read timeout so that a quiet line
// does not look like end of stream. Reads end with ctx.Err() once ctx is done.
func NewTimeoutReader(ctx context.Context, r io.Reader) io.Reader {
	return &timeoutReader{ctx: ctx, r: r}
}

func (t *timeoutReader) Read(b []byte) (int, error) {
	for {
		if err := t.ctx.Err(); err != nil {
			return 0, err
		}
		n, err := t.r.Read(b)
		if n == 0 && err == io.EOF {
			continue
		}
		return n, err
	}
}
