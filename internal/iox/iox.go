// Package iox contains io extensions.
package iox

import (
	"context"
	"io"
)

// ReadAllContext is like io.ReadAll except that it performs the read
// in a background goroutine and returns early with the context error
// if the context expires first. When that happens, the background
// goroutine keeps reading until r is exhausted or fails and its result
// is discarded. To unblock such a goroutine the caller should close
// the connection feeding the reader, where possible.
func ReadAllContext(ctx context.Context, r io.Reader) ([]byte, error) {
	datach, errch := make(chan []byte, 1), make(chan error, 1) // buffered
	go func() {
		data, err := io.ReadAll(r)
		if err != nil {
			errch <- err
			return
		}
		datach <- data
	}()
	select {
	case data := <-datach:
		return data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errch:
		return nil, err
	}
}
