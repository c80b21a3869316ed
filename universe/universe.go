// Package universe stores the entity hierarchy of a planetary system
// and computes per-frame positions from orbital motion.
package universe

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"
)

// Universe owns the entity arena. Entities are created once at load and
// never added or removed afterwards.
type Universe struct {
	world *ecs.World

	mapper    *ecs.Map3[Param, State, Attachment]
	paramMap  *ecs.Map1[Param]
	stateMap  *ecs.Map1[State]
	attachMap *ecs.Map1[Attachment]

	order  []ecs.Entity // load order, all entities
	bodies []ecs.Entity // load order, Model-bearing entities only
	byName map[string]ecs.Entity
	index  map[ecs.Entity]int

	// Direct children per entity; the zero entity keys the roots.
	children map[ecs.Entity][]ecs.Entity

	// Frame scratch, reused across ComputeFrame calls.
	rel []r3.Vec
	abs []r3.Vec
}

// New builds the hierarchy from entity params: inserts every entity,
// joins parents by name, and caches the children lists. An entity whose
// parent name matches nothing becomes a root. Duplicate names and
// parent cycles fail the load.
func New(params []Param) (*Universe, error) {
	world := ecs.NewWorld()
	u := &Universe{
		world:     world,
		mapper:    ecs.NewMap3[Param, State, Attachment](world),
		paramMap:  ecs.NewMap1[Param](world),
		stateMap:  ecs.NewMap1[State](world),
		attachMap: ecs.NewMap1[Attachment](world),
		byName:    make(map[string]ecs.Entity, len(params)),
		index:     make(map[ecs.Entity]int, len(params)),
		children:  make(map[ecs.Entity][]ecs.Entity),
		rel:       make([]r3.Vec, len(params)),
		abs:       make([]r3.Vec, len(params)),
	}

	for i := range params {
		p := params[i]
		if _, dup := u.byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate entity name %q", p.Name)
		}
		e := u.mapper.NewEntity(&p, &State{}, &Attachment{})
		u.byName[p.Name] = e
		u.index[e] = len(u.order)
		u.order = append(u.order, e)
		if p.Model != nil {
			u.bodies = append(u.bodies, e)
		}
	}

	// Join parents by name.
	for _, e := range u.order {
		p := u.paramMap.Get(e)
		if p.ParentName == "" {
			u.children[ecs.Entity{}] = append(u.children[ecs.Entity{}], e)
			continue
		}
		parent, ok := u.byName[p.ParentName]
		if !ok {
			slog.Warn("parent name not found, entity becomes a root",
				"entity", p.Name, "parent", p.ParentName)
			u.children[ecs.Entity{}] = append(u.children[ecs.Entity{}], e)
			continue
		}
		u.attachMap.Get(e).Parent = parent
		u.children[parent] = append(u.children[parent], e)
	}

	// The parent graph must be acyclic or frame computation and
	// descendant expansion would never terminate.
	for _, e := range u.order {
		steps := 0
		for p := u.attachMap.Get(e).Parent; p != (ecs.Entity{}); p = u.attachMap.Get(p).Parent {
			steps++
			if steps > len(u.order) {
				return nil, fmt.Errorf("parent cycle involving entity %q", u.paramMap.Get(e).Name)
			}
		}
	}

	return u, nil
}

// ComputeFrame recomputes every entity's State for the given epoch. The
// full set is finished before the method returns; nothing reads a
// partially updated frame.
func (u *Universe) ComputeFrame(epoch float64) {
	// Pass 1: position relative to the parent. Entities without both a
	// parent and an orbit sit at their parent's origin.
	for i, e := range u.order {
		p := u.paramMap.Get(e)
		if p.Orbit != nil && u.attachMap.Get(e).Parent != (ecs.Entity{}) {
			u.rel[i] = p.Orbit.At(epoch)
		} else {
			u.rel[i] = r3.Vec{}
		}
	}

	// Pass 2: absolute position by summing the ancestor chain. Reads
	// only pass-1 results, so chain depth costs no extra propagation.
	for i, e := range u.order {
		pos := u.rel[i]
		for p := u.attachMap.Get(e).Parent; p != (ecs.Entity{}); p = u.attachMap.Get(p).Parent {
			pos = r3.Add(pos, u.rel[u.index[p]])
		}
		u.abs[i] = pos
	}

	// Publish the finished frame.
	for i, e := range u.order {
		p := u.paramMap.Get(e)
		st := u.stateMap.Get(e)
		st.Position = u.abs[i]
		st.RotationAngle = 0
		st.CloudDisp = 0
		if p.Model != nil {
			st.RotationAngle = spinAngle(epoch, p.Model.RotationPeriod)
		}
		if p.Clouds != nil {
			st.CloudDisp = spinAngle(-epoch, p.Clouds.Period)
		}
	}
}

// Len returns the number of entities.
func (u *Universe) Len() int {
	return len(u.order)
}

// All returns every entity in load order.
func (u *Universe) All() []Handle {
	return u.handles(u.order)
}

// Bodies returns the Model-bearing entities in load order. The camera
// cycles focus through this list.
func (u *Universe) Bodies() []Handle {
	return u.handles(u.bodies)
}

// Find looks an entity up by name.
func (u *Universe) Find(name string) (Handle, bool) {
	e, ok := u.byName[name]
	if !ok {
		return Handle{u: u}, false
	}
	return Handle{u: u, e: e}, true
}

// Root returns the sentinel handle above all roots. It does not exist,
// but its children are the root entities.
func (u *Universe) Root() Handle {
	return Handle{u: u}
}

// ResidencySet returns the bodies whose textures should stay resident
// while the given body is focused: the body itself, its ancestors, and
// its parent's transitive descendants, deduplicated.
func (u *Universe) ResidencySet(focused Handle) []Handle {
	seen := make(map[Handle]bool)
	var set []Handle
	add := func(h Handle) {
		if h.IsBody() && !seen[h] {
			seen[h] = true
			set = append(set, h)
		}
	}

	add(focused)
	for _, p := range focused.AllParents() {
		add(p)
	}
	for _, s := range focused.Parent().AllChildren() {
		add(s)
	}
	return set
}

func (u *Universe) handles(entities []ecs.Entity) []Handle {
	hs := make([]Handle, len(entities))
	for i, e := range entities {
		hs[i] = Handle{u: u, e: e}
	}
	return hs
}

// spinAngle converts an epoch and a period into a wrapped rotation
// phase. A zero period means no motion.
func spinAngle(epoch, period float64) float64 {
	if period == 0 {
		return 0
	}
	a := 2 * math.Pi * math.Mod(epoch/period, 1)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
