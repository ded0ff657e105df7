package pagination

import (
	"bufio"
	"bytes"
	"errors"
	"net"
	"net/http"
)

// captureWriter buffers the handler's response so it can be reshaped.
// Flushed, hijacked and informational responses switch it to pass-through
// and are never reshaped.
type captureWriter struct {
	http.ResponseWriter

	buf         bytes.Buffer
	status      int
	wroteHeader bool
	passthrough bool
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *captureWriter) WriteHeader(code int) {
	if w.passthrough {
		w.ResponseWriter.WriteHeader(code)
		return
	}
	if code >= 100 && code < 200 {
		w.passthrough = true
		w.ResponseWriter.WriteHeader(code)
		return
	}
	if w.wroteHeader {
		return
	}
	w.status = code
	w.wroteHeader = true
}

func (w *captureWriter) Write(b []byte) (int, error) {
	if w.passthrough {
		return w.ResponseWriter.Write(b)
	}
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.buf.Write(b)
}

func (w *captureWriter) Flush() {
	if !w.passthrough {
		_ = w.release()
		w.passthrough = true
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *captureWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("pagination: underlying response writer does not support hijacking")
	}
	w.passthrough = true
	return hj.Hijack()
}

func (w *captureWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// empty reports whether the handler produced nothing at all.
func (w *captureWriter) empty() bool {
	return !w.wroteHeader && w.buf.Len() == 0
}

// release writes the buffered response to the client unchanged.
func (w *captureWriter) release() error {
	if w.wroteHeader {
		w.ResponseWriter.WriteHeader(w.status)
	}
	if w.buf.Len() == 0 {
		return nil
	}
	_, err := w.ResponseWriter.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}
