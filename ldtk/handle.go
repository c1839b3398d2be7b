package ldtk

import (
	"log"
	"sync"
	"sync/atomic"
)

// Handle is the loader side of a project: the scene graph polls it once per
// pass and does nothing until the project is resident.
//
// Every load is numbered when it starts. A result is only published if no
// later load has published first, so overlapping reloads settle on the
// newest request.
type Handle struct {
	path    string
	project atomic.Pointer[Project]
	err     atomic.Pointer[error]
	version atomic.Uint64

	seq       atomic.Uint64
	mu        sync.Mutex
	published uint64
}

// NewHandle returns a handle that is ready immediately.
func NewHandle(p *Project) *Handle {
	h := &Handle{}
	if p != nil {
		h.publish(h.seq.Add(1), p, nil)
	}
	return h
}

// LoadAsync starts reading path on a goroutine.
func LoadAsync(path string) *Handle {
	h := &Handle{path: path}
	go h.reload(h.seq.Add(1))
	return h
}

// Reload reads the project again in the background. The previous project stays
// visible until the new one is parsed.
func (h *Handle) Reload() {
	if h == nil || h.path == "" {
		return
	}
	go h.reload(h.seq.Add(1))
}

func (h *Handle) reload(n uint64) {
	p, err := Load(h.path)
	if err != nil {
		log.Printf("ldtk: load %s: %v", h.path, err)
	}
	h.publish(n, p, err)
}

// publish stores the outcome of load n and reports whether it was kept. A
// load that finishes after a newer one has published is dropped.
func (h *Handle) publish(n uint64, p *Project, err error) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n <= h.published {
		return false
	}
	h.published = n
	if err != nil {
		h.err.Store(&err)
		return true
	}
	h.err.Store(nil)
	h.project.Store(p)
	h.version.Add(1)
	return true
}

// Project returns the loaded project, if any.
func (h *Handle) Project() (*Project, bool) {
	if h == nil {
		return nil, false
	}
	p := h.project.Load()
	return p, p != nil
}

// Set replaces the project. Used by loaders that parse elsewhere.
func (h *Handle) Set(p *Project) {
	if h == nil {
		return
	}
	h.publish(h.seq.Add(1), p, nil)
}

// Version increases every time a new project becomes visible.
func (h *Handle) Version() uint64 {
	if h == nil {
		return 0
	}
	return h.version.Load()
}

// Err returns the last load error, or ErrNotReady while nothing has loaded.
func (h *Handle) Err() error {
	if h == nil {
		return ErrNotReady
	}
	if e := h.err.Load(); e != nil {
		return *e
	}
	if h.project.Load() == nil {
		return ErrNotReady
	}
	return nil
}

// Path is the file the handle loads from.
func (h *Handle) Path() string {
	if h == nil {
		return ""
	}
	return h.path
}
