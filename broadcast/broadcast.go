// Package broadcast serves a live MJPEG preview of annotated frames over
// HTTP, so a run can be watched in a browser while it processes.
package broadcast

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hybridgroup/mjpeg"
	"gocv.io/x/gocv"
)

// Preview is an HTTP MJPEG stream fed from processed frames. Publish is
// called from the processing worker once per frame; viewers attach and
// detach freely without affecting the run.
type Preview struct {
	addr   string
	stream *mjpeg.Stream
	server *http.Server

	mu      sync.Mutex
	running bool
}

// NewPreview creates a preview server that will listen on addr.
func NewPreview(addr string) *Preview {
	return &Preview{
		addr:   addr,
		stream: mjpeg.NewStream(),
	}
}

// Start begins serving the stream at "/". Safe to call once per Preview.
func (p *Preview) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return fmt.Errorf("preview already running on %s", p.addr)
	}

	mux := http.NewServeMux()
	mux.Handle("/", p.stream)
	p.server = &http.Server{
		Addr:         p.addr,
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	p.running = true

	go func() {
		if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("[%s][BROADCAST] preview server: %v\n",
				time.Now().Format("15:04:05.000"), err)
		}
	}()
	return nil
}

// Publish encodes one frame as JPEG and pushes it to connected viewers.
// Encoding failures are dropped; the preview is best-effort and must never
// stall the processing worker.
func (p *Preview) Publish(frame gocv.Mat) {
	p.mu.Lock()
	running := p.running
	p.mu.Unlock()
	if !running || frame.Empty() {
		return
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, frame)
	if err != nil {
		return
	}
	defer buf.Close()
	p.stream.UpdateJPEG(buf.GetBytes())
}

// Stop shuts the preview server down, waiting briefly for viewers.
func (p *Preview) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return nil
	}
	p.running = false

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return p.server.Shutdown(ctx)
}
