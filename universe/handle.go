package universe

import "github.com/mlange-42/ark/ecs"

// Handle is a cheap reference to one entity. The zero-entity handle is
// the root sentinel: it exists() false but can still enumerate the root
// entities as its children.
type Handle struct {
	u *Universe
	e ecs.Entity
}

// Exists reports whether the handle points at a real entity.
func (h Handle) Exists() bool {
	return h.u != nil && h.e != (ecs.Entity{}) && h.u.world.Alive(h.e)
}

// Name returns the entity's unique name, or "" for the root sentinel.
func (h Handle) Name() string {
	p := h.Param()
	if p == nil {
		return ""
	}
	return p.Name
}

// Param returns the immutable entity description, nil for the root
// sentinel.
func (h Handle) Param() *Param {
	if !h.Exists() {
		return nil
	}
	return h.u.paramMap.Get(h.e)
}

// State returns a copy of the entity's last computed frame state.
func (h Handle) State() State {
	if !h.Exists() {
		return State{}
	}
	return *h.u.stateMap.Get(h.e)
}

// IsBody reports whether the entity has a visible model.
func (h Handle) IsBody() bool {
	p := h.Param()
	return p != nil && p.Model != nil
}

// Parent returns the parent handle, or the root sentinel for roots.
func (h Handle) Parent() Handle {
	if !h.Exists() {
		return Handle{u: h.u}
	}
	return Handle{u: h.u, e: h.u.attachMap.Get(h.e).Parent}
}

// AllParents returns the ancestor chain nearest-first, excluding the
// root sentinel.
func (h Handle) AllParents() []Handle {
	var parents []Handle
	for p := h.Parent(); p.Exists(); p = p.Parent() {
		parents = append(parents, p)
	}
	return parents
}

// AllChildren returns the transitive descendant set. On the root
// sentinel this is every entity in the universe.
func (h Handle) AllChildren() []Handle {
	if h.u == nil {
		return nil
	}
	var all []Handle
	for _, c := range h.u.children[h.e] {
		child := Handle{u: h.u, e: c}
		all = append(all, child)
		all = append(all, child.AllChildren()...)
	}
	return all
}
