package vos

import (
	"io"
	"os"
)

// VIO holds the standard streams of a command.
type VIO interface {
	Stdin() io.ReadCloser
	Stdout() io.WriteCloser
	Stderr() io.WriteCloser
}

func NewVIOAdapter(stdin io.ReadCloser, stdout, stderr io.WriteCloser) *VIOAdapter {
	return &VIOAdapter{
		IStdin:  stdin,
		IStdout: stdout,
		IStderr: stderr,
	}
}

// NewVIOFromWriters wraps plain readers and writers, nil values are replaced
// with closed or discarding streams.
func NewVIOFromWriters(stdin io.Reader, stdout, stderr io.Writer) *VIOAdapter {
	var in io.ReadCloser = &ClosedReader{}
	if stdin != nil {
		in = io.NopCloser(stdin)
	}
	return NewVIOAdapter(in, nopCloser(stdout), nopCloser(stderr))
}

func NewNullIO() VIO {
	return NewVIOAdapter(&ClosedReader{}, &NopWriteCloser{}, &NopWriteCloser{})
}

type VIOAdapter struct {
	IStdin  io.ReadCloser
	IStdout io.WriteCloser
	IStderr io.WriteCloser
}

var _ VIO = (*VIOAdapter)(nil)

func (pr *VIOAdapter) Stdin() io.ReadCloser {
	return pr.IStdin
}

func (pr *VIOAdapter) Stdout() io.WriteCloser {
	return pr.IStdout
}

func (pr *VIOAdapter) Stderr() io.WriteCloser {
	return pr.IStderr
}

// ClosedReader implements io.Reader and always returns ErrClosed on Read.
type ClosedReader struct{}

var _ io.ReadCloser = (*ClosedReader)(nil)

func (*ClosedReader) Read([]byte) (int, error) {
	return 0, os.ErrClosed
}

func (*ClosedReader) Close() error {
	return nil
}

// NopWriteCloser discards everything written to it.
type NopWriteCloser struct{}

var _ io.WriteCloser = (*NopWriteCloser)(nil)

func (*NopWriteCloser) Write(b []byte) (int, error) {
	return len(b), nil
}

func (*NopWriteCloser) Close() error {
	return nil
}

type writeNopCloser struct{ io.Writer }

func (writeNopCloser) Close() error {
	return nil
}

func nopCloser(w io.Writer) io.WriteCloser {
	if w == nil {
		return &NopWriteCloser{}
	}
	return writeNopCloser{w}
}
