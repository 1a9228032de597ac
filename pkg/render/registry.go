package render

import "sync"

// Registry tracks live textures and materials so a scene can account for
// and release everything it allocated.
type Registry struct {
	mu        sync.Mutex
	textures  map[*Texture]struct{}
	materials map[*Material]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		textures:  make(map[*Texture]struct{}),
		materials: make(map[*Material]struct{}),
	}
}

// TrackTexture records t as live and returns it.
func (r *Registry) TrackTexture(t *Texture) *Texture {
	if t == nil {
		return nil
	}
	r.mu.Lock()
	r.textures[t] = struct{}{}
	r.mu.Unlock()
	return t
}

// TrackMaterial records m as live and returns it.
func (r *Registry) TrackMaterial(m *Material) *Material {
	if m == nil {
		return nil
	}
	r.mu.Lock()
	r.materials[m] = struct{}{}
	r.mu.Unlock()
	return m
}

// DisposeTexture releases t. Untracked or nil textures are ignored.
func (r *Registry) DisposeTexture(t *Texture) {
	if t == nil {
		return
	}
	r.mu.Lock()
	_, ok := r.textures[t]
	delete(r.textures, t)
	r.mu.Unlock()
	if ok {
		t.Dispose()
	}
}

// DisposeMaterial releases m. Its texture map is left to its own owner.
func (r *Registry) DisposeMaterial(m *Material) {
	if m == nil {
		return
	}
	r.mu.Lock()
	_, ok := r.materials[m]
	delete(r.materials, m)
	r.mu.Unlock()
	if ok {
		m.Dispose()
	}
}

// Live returns the number of tracked textures and materials.
func (r *Registry) Live() (textures, materials int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.textures), len(r.materials)
}

// DisposeAll releases every tracked resource.
func (r *Registry) DisposeAll() {
	r.mu.Lock()
	textures, materials := r.textures, r.materials
	r.textures = make(map[*Texture]struct{})
	r.materials = make(map[*Material]struct{})
	r.mu.Unlock()
	for m := range materials {
		m.Dispose()
	}
	for t := range textures {
		t.Dispose()
	}
}
