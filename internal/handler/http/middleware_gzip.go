package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/MKhiriev/gig-sync/internal/app"
	"github.com/MKhiriev/gig-sync/internal/utils"
)

var (
	gzipWriterPool = sync.Pool{New: func() any { return gzip.NewWriter(nil) }}
	gzipReaderPool = sync.Pool{New: func() any { return new(gzip.Reader) }}
)

// withGZip inflates gzip request bodies and compresses responses for clients
// that accept gzip. Readers and writers are pooled.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.Contains(req.Header.Get("Content-Encoding"), "gzip") && req.Body != nil {
			zr := gzipReaderPool.Get().(*gzip.Reader)
			if err := zr.Reset(req.Body); err != nil {
				gzipReaderPool.Put(zr)
				utils.WriteError(w, app.MsgInvalidGzip, http.StatusBadRequest)
				return
			}

			req.Body = &pooledReadCloser{Reader: zr, release: func() {
				_ = zr.Close()
				gzipReaderPool.Put(zr)
			}}
			req.Header.Del("Content-Encoding")
		}

		if !strings.Contains(req.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, req)
			return
		}

		zw := gzipWriterPool.Get().(*gzip.Writer)
		zw.Reset(w)
		defer func() {
			_ = zw.Close()
			gzipWriterPool.Put(zw)
		}()

		next.ServeHTTP(&gzipResponseWriter{ResponseWriter: w, gzipWriter: zw}, req)
	})
}

type pooledReadCloser struct {
	io.Reader
	release func()
	closed  bool
}

func (p *pooledReadCloser) Close() error {
	if !p.closed {
		p.closed = true
		p.release()
	}
	return nil
}

type gzipResponseWriter struct {
	http.ResponseWriter
	gzipWriter *gzip.Writer
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gzipWriter.Write(data)
}
