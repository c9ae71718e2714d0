// Package world implements the collision pipeline's top-level object:
// CollisionWorld ties the broad phase and narrow phase together into the
// add/remove/update/iterate API spec.md §4.I describes.
package world

import (
	"github.com/rs/zerolog"

	"github.com/go-collide/collide/pkg/broadphase"
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/narrowphase"
	"github.com/go-collide/collide/pkg/query"
	"github.com/go-collide/collide/pkg/shape"
)

// CollisionObjectHandle identifies a registered object, stable across
// World.Update calls for as long as the object lives.
type CollisionObjectHandle uint64

// CollisionObject is spec.md §3's object record: pose, shape, groups,
// query type, and the opaque per-object payload the caller attaches.
type CollisionObject struct {
	Handle      CollisionObjectHandle
	Position    mathx.Isometry
	Shape       shape.Shape
	Groups      CollisionGroups
	QueryType   GeometricQueryType
	UserData    interface{}
	proxyHandle broadphase.ProxyHandle
	timestamp   uint64
}

func (o *CollisionObject) AABB() bv.AABB { return o.Shape.AABB(o.Position) }

type pairKey struct{ a, b CollisionObjectHandle }

func makePairKey(a, b CollisionObjectHandle) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// activePair is the per-pair narrow-phase state kept alive for as long as
// the broad phase reports the pair as active. Exactly one of generator or
// proximity is set, decided when the pair starts from the pair's combined
// query kind (§4.I step 3).
type activePair struct {
	a, b      CollisionObjectHandle
	generator narrowphase.ContactManifoldGenerator
	proximity narrowphase.ProximityDetector
	manifold  *narrowphase.Manifold
	status    query.ProximityStatus
}

// World is spec.md §4.I's CollisionWorld: an object slab, a DBVT-backed
// broad phase, and a cache of live narrow-phase pair state, driven
// entirely by explicit Update calls (§5: single-threaded, cooperative).
type World struct {
	objects     map[CollisionObjectHandle]*CollisionObject
	nextHandle  CollisionObjectHandle
	broadPhase  *broadphase.BroadPhase[CollisionObjectHandle]
	dispatcher  *narrowphase.ContactDispatcher
	pairs       map[pairKey]*activePair
	dirty       map[CollisionObjectHandle]bool
	namedFilter map[string]broadphase.PairFilter[CollisionObjectHandle]
	timestamp   uint64
	log         zerolog.Logger
}

// NewWorld creates an empty collision world. looseMargin is the
// construction-time parameter spec.md §4.I's `add` refers to: how much
// every proxy's AABB is loosened by in the broad phase, trading tree
// churn under small motions against looser (more conservative) overlap
// tests.
func NewWorld(looseMargin float64) *World {
	return &World{
		objects:     make(map[CollisionObjectHandle]*CollisionObject),
		broadPhase:  broadphase.NewBroadPhase[CollisionObjectHandle](looseMargin),
		dispatcher:  narrowphase.NewContactDispatcher(),
		pairs:       make(map[pairKey]*activePair),
		dirty:       make(map[CollisionObjectHandle]bool),
		namedFilter: make(map[string]broadphase.PairFilter[CollisionObjectHandle]),
		log:         zerolog.Nop(),
	}
}

// SetLogger installs a zerolog.Logger the world writes diagnostics to
// (pair start/stop events, dropped pairs). Defaults to a no-op logger so
// embedding the world never forces logging output on a caller.
func (w *World) SetLogger(log zerolog.Logger) { w.log = log }

// Add allocates a new object, registers its broad-phase proxy, and
// returns its handle. The object is not queryable (it won't appear in any
// interference iterator, nor generate any pair) until the next Update
// call, matching spec.md §4.I.
func (w *World) Add(position mathx.Isometry, shp shape.Shape, groups CollisionGroups, queryType GeometricQueryType, userData interface{}) CollisionObjectHandle {
	w.nextHandle++
	handle := w.nextHandle

	obj := &CollisionObject{
		Handle:    handle,
		Position:  position,
		Shape:     shp,
		Groups:    groups,
		QueryType: queryType,
		UserData:  userData,
		timestamp: w.timestamp,
	}
	obj.proxyHandle = w.broadPhase.CreateProxy(obj.AABB(), handle)
	w.objects[handle] = obj
	w.dirty[handle] = true

	w.log.Debug().Uint64("handle", uint64(handle)).Msg("object added")
	return handle
}

// Remove unregisters objects, dropping their broad-phase proxies (which
// emits end-of-proximity for every pair that involved them) and their
// narrow-phase pair state. The removal may be deferred to the next Update
// if called from inside one; called directly it takes effect immediately,
// as nothing here depends on broad-phase traversal order.
func (w *World) Remove(handles ...CollisionObjectHandle) {
	proxies := make([]broadphase.ProxyHandle, 0, len(handles))
	for _, h := range handles {
		obj, ok := w.objects[h]
		if !ok {
			continue
		}
		proxies = append(proxies, obj.proxyHandle)
	}

	w.broadPhase.Remove(proxies, func(p broadphase.Pair[CollisionObjectHandle]) {
		w.dropPair(p.DataA, p.DataB)
	})

	for _, h := range handles {
		delete(w.objects, h)
		delete(w.dirty, h)
	}
}

func (w *World) dropPair(a, b CollisionObjectHandle) {
	key := makePairKey(a, b)
	if _, ok := w.pairs[key]; ok {
		delete(w.pairs, key)
		w.dispatcher.Forget(uint64(a), uint64(b))
		w.log.Debug().Uint64("a", uint64(a)).Uint64("b", uint64(b)).Msg("pair ended")
	}
}

// SetPosition moves an object, flagging it for broad-phase re-examination
// on the next Update.
func (w *World) SetPosition(handle CollisionObjectHandle, position mathx.Isometry) {
	obj, ok := w.objects[handle]
	if !ok {
		return
	}
	obj.Position = position
	obj.timestamp = w.timestamp
	w.dirty[handle] = true
}

// SetShape swaps an object's geometry, flagging it for broad-phase
// re-examination on the next Update.
func (w *World) SetShape(handle CollisionObjectHandle, shp shape.Shape) {
	obj, ok := w.objects[handle]
	if !ok {
		return
	}
	obj.Shape = shp
	obj.timestamp = w.timestamp
	w.dirty[handle] = true
}

// Object returns the registered object for handle, the snapshot accessor
// supplementing spec.md §4.I per SPEC_FULL.md (grounded on
// original_source/ncollide_pipeline's CollisionObjectSet lookup).
func (w *World) Object(handle CollisionObjectHandle) (*CollisionObject, bool) {
	obj, ok := w.objects[handle]
	return obj, ok
}

// SetPairFilter registers a named broad-phase pair filter, composed (AND)
// with every other registered filter and with CollisionGroups
// compatibility. Supplements spec.md §4.I per SPEC_FULL.md's named-filter
// registry.
func (w *World) SetPairFilter(name string, f broadphase.PairFilter[CollisionObjectHandle]) {
	w.namedFilter[name] = f
}

// RemovePairFilter unregisters a named filter.
func (w *World) RemovePairFilter(name string) {
	delete(w.namedFilter, name)
}

func (w *World) activeFilter() broadphase.PairFilter[CollisionObjectHandle] {
	composite := broadphase.NewCompositeFilter[CollisionObjectHandle](
		broadphase.NewGroupFilter(func(h CollisionObjectHandle) broadphase.Groups {
			return w.objects[h].Groups
		}),
	)
	for _, f := range w.namedFilter {
		composite.Add(f)
	}
	return composite
}

// Update runs spec.md §4.I's five-step algorithm: push moved/resized
// proxies into the broad phase, collect started/ended pairs, allocate or
// drop narrow-phase state for them, then run every active pair's
// generator before bumping the timestamp.
func (w *World) Update() {
	for handle := range w.dirty {
		obj, ok := w.objects[handle]
		if !ok {
			continue
		}
		w.broadPhase.SetProxyBV(obj.proxyHandle, obj.AABB())
	}
	w.dirty = make(map[CollisionObjectHandle]bool)

	filter := w.activeFilter()
	w.broadPhase.Update(filter, func(p broadphase.Pair[CollisionObjectHandle]) {
		if p.Started {
			w.startPair(p.DataA, p.DataB)
		} else {
			w.dropPair(p.DataA, p.DataB)
		}
	})

	for _, ap := range w.pairs {
		w.runPair(ap)
	}

	w.timestamp++
}

func (w *World) startPair(a, b CollisionObjectHandle) {
	key := makePairKey(a, b)
	if _, ok := w.pairs[key]; ok {
		return
	}
	objA, okA := w.objects[a]
	objB, okB := w.objects[b]
	if !okA || !okB {
		return
	}

	ap := &activePair{a: a, b: b}
	if objA.QueryType.Kind == QueryProximity || objB.QueryType.Kind == QueryProximity {
		ap.proximity = &narrowphase.SupportMapProximity{}
	} else if gen, ok := w.dispatcher.Generator(uint64(a), uint64(b), objA.Shape, objB.Shape); ok {
		ap.generator = gen
		ap.manifold = narrowphase.NewManifold3D()
	} else {
		return
	}

	w.pairs[key] = ap
	w.log.Debug().Uint64("a", uint64(a)).Uint64("b", uint64(b)).Msg("pair started")
}

func pairMargin(a, b GeometricQueryType) mathx.Scalar {
	ma, mb := a.bubble(), b.bubble()
	if ma > mb {
		return ma
	}
	return mb
}

func (w *World) runPair(ap *activePair) {
	objA, okA := w.objects[ap.a]
	objB, okB := w.objects[ap.b]
	if !okA || !okB {
		return
	}
	margin := pairMargin(objA.QueryType, objB.QueryType)

	if ap.proximity != nil {
		ap.status = ap.proximity.Update(objA.Position, objA.Shape, objB.Position, objB.Shape, margin)
		return
	}
	if ap.generator != nil {
		ap.generator.GenerateContacts(objA.Position, objA.Shape, objB.Position, objB.Shape, margin, ap.manifold)
	}
}

// ContactPair is one active contacts-mode pair and its manifold (which
// may currently hold zero points, if the pair is recognized but not yet
// touching).
type ContactPair struct {
	A, B     CollisionObjectHandle
	Manifold *narrowphase.Manifold
}

// ProximityPair is one active proximity-mode pair and its current status.
type ProximityPair struct {
	A, B   CollisionObjectHandle
	Status query.ProximityStatus
}

// ContactPairs returns every active pair currently generating contacts
// (as opposed to a pure proximity pair), alongside its manifold.
func (w *World) ContactPairs() []ContactPair {
	var out []ContactPair
	for _, ap := range w.pairs {
		if ap.manifold == nil {
			continue
		}
		out = append(out, ContactPair{ap.a, ap.b, ap.manifold})
	}
	return out
}

// ContactManifolds is an alias for ContactPairs restricted to pairs with
// at least one surviving contact point, matching spec.md §4.I's
// contact_manifolds() iterator (contact_pairs() reports every active
// contact-mode pair, manifold or not).
func (w *World) ContactManifolds() []*narrowphase.Manifold {
	var out []*narrowphase.Manifold
	for _, ap := range w.pairs {
		if ap.manifold != nil && len(ap.manifold.Points) > 0 {
			out = append(out, ap.manifold)
		}
	}
	return out
}

// ProximityPairs returns every active proximity-mode pair and its current
// status.
func (w *World) ProximityPairs() []ProximityPair {
	var out []ProximityPair
	for _, ap := range w.pairs {
		if ap.proximity == nil {
			continue
		}
		out = append(out, ProximityPair{ap.a, ap.b, ap.status})
	}
	return out
}

// InterferencesWithAABB reports every object (passing groups) whose AABB
// overlaps box.
func (w *World) InterferencesWithAABB(box bv.AABB, groups CollisionGroups) []CollisionObjectHandle {
	var out []CollisionObjectHandle
	for h, obj := range w.objects {
		if !groups.CanInteract(obj.Groups) {
			continue
		}
		if obj.AABB().Intersects(box) {
			out = append(out, h)
		}
	}
	return out
}

// InterferencesWithPoint reports every object (passing groups) whose
// shape contains p.
func (w *World) InterferencesWithPoint(p mathx.Vec3, groups CollisionGroups) []CollisionObjectHandle {
	var out []CollisionObjectHandle
	for h, obj := range w.objects {
		if !groups.CanInteract(obj.Groups) {
			continue
		}
		pq, ok := obj.Shape.(shape.PointQuery)
		if !ok {
			continue
		}
		if _, inside := pq.ProjectPoint(obj.Position, p, true); inside {
			out = append(out, h)
		}
	}
	return out
}

// InterferencesWithRay reports every object (passing groups) a ray hits
// within [0, maxToi], in no particular order; use FirstInterferenceWithRay
// for the nearest one.
func (w *World) InterferencesWithRay(ray mathx.Ray, maxToi mathx.Scalar, groups CollisionGroups) []CollisionObjectHandle {
	var out []CollisionObjectHandle
	for h, obj := range w.objects {
		if !groups.CanInteract(obj.Groups) {
			continue
		}
		rc, ok := obj.Shape.(shape.RayCaster)
		if !ok {
			continue
		}
		if _, hit := rc.CastRay(obj.Position, ray, maxToi, true); hit {
			out = append(out, h)
		}
	}
	return out
}

// rayCostFn implements broadphase.CostFn so FirstInterferenceWithRay can
// drive a best-first search: the bounding-volume cost is the ray's entry
// TOI into the box (a valid lower bound on the true hit TOI), and the
// leaf cost is the exact TOI from the object's own CastRay.
type rayCostFn struct {
	world  *World
	ray    mathx.Ray
	maxToi mathx.Scalar
	groups CollisionGroups
}

func (c *rayCostFn) ComputeBVCost(bounds bv.AABB) (float64, bool) {
	toi, _, hit := bounds.IntersectsRay(c.ray, 0, c.maxToi)
	if !hit {
		return 0, false
	}
	return toi, true
}

func (c *rayCostFn) ComputeLeafCost(handle CollisionObjectHandle) (float64, mathx.RayIntersection, bool) {
	obj, ok := c.world.objects[handle]
	if !ok || !c.groups.CanInteract(obj.Groups) {
		return 0, mathx.RayIntersection{}, false
	}
	rc, ok := obj.Shape.(shape.RayCaster)
	if !ok {
		return 0, mathx.RayIntersection{}, false
	}
	hit, ok := rc.CastRay(obj.Position, c.ray, c.maxToi, true)
	if !ok {
		return 0, mathx.RayIntersection{}, false
	}
	return hit.TOI, hit, true
}

// FirstInterferenceWithRay finds the nearest object (passing groups) a ray
// hits within [0, maxToi], using a best-first search over the broad
// phase's DBVT rather than testing every object, per spec.md §4.I.
func (w *World) FirstInterferenceWithRay(ray mathx.Ray, maxToi mathx.Scalar, groups CollisionGroups) (CollisionObjectHandle, mathx.RayIntersection, bool) {
	_, handle, hit, found := broadphase.BestFirstSearch[CollisionObjectHandle, mathx.RayIntersection](w.broadPhase, &rayCostFn{world: w, ray: ray, maxToi: maxToi, groups: groups})
	return handle, hit, found
}
