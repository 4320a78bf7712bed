// SPDX-License-Identifier: MIT

package graph

import (
	"sync"

	"github.com/dagreduce/lambdag/defs"
	"github.com/dagreduce/lambdag/internal/bitset"
	"github.com/dagreduce/lambdag/primop"
	"github.com/dagreduce/lambdag/term"
)

// registry is the arena a single DAG allocates its nodes from. It plays
// the role the teacher's pool.go/multipool.go object pools play for
// *node[V] values, repurposed here to track liveness rather than reuse:
// every allocated node gets a monotonic id and a bit in live, and
// freeDeadNode clears that bit, so spec.md invariant 6 ("no leaks": every
// allocated node is either reachable from the root or has been freed) is
// a single bitset.Count comparison in tests instead of a GC-dependent
// heuristic. Pools of *Var/*Lam/... are still sync.Pool-backed, exactly
// the way the teacher pools *node[V], to keep repeated whnf/norm passes
// over hot paths allocation-light.
type registry struct {
	mu      sync.Mutex
	nextID  uint64
	live    bitset.BitSet
	total   uint64
	freed   uint64

	varPool sync.Pool
	lamPool sync.Pool
	slfPool sync.Pool
	allPool sync.Pool
	appPool sync.Pool
	annPool sync.Pool
	datPool sync.Pool
	csePool sync.Pool
	letPool sync.Pool
	litPool sync.Pool
	oprPool sync.Pool
	typPool sync.Pool
	refPool sync.Pool
}

func newRegistry() *registry {
	return &registry{}
}

func (r *registry) alloc() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.total++
	r.live.Set(uint(id))
	return id
}

// free marks n's id as no longer live and returns it to its kind's pool
// for reuse by a later newX call, the same get/put discipline the
// teacher's pool.go applies to *node[V]. It is idempotent: a node reached
// twice by freeDeadNode (which cannot happen in correct operation, but
// would under a malformed graph) is only handed back to its pool once.
func (r *registry) free(n Node) {
	r.mu.Lock()
	id := n.arenaID()
	live := r.live.Test(uint(id))
	if live {
		r.live.Clear(uint(id))
		r.freed++
	}
	r.mu.Unlock()

	if !live {
		return
	}
	switch n := n.(type) {
	case *Var:
		r.varPool.Put(n)
	case *Lam:
		r.lamPool.Put(n)
	case *Slf:
		r.slfPool.Put(n)
	case *All:
		r.allPool.Put(n)
	case *App:
		r.appPool.Put(n)
	case *Ann:
		r.annPool.Put(n)
	case *Dat:
		r.datPool.Put(n)
	case *Cse:
		r.csePool.Put(n)
	case *Let:
		r.letPool.Put(n)
	case *Lit:
		r.litPool.Put(n)
	case *Opr:
		r.oprPool.Put(n)
	case *Typ:
		r.typPool.Put(n)
	case *Ref:
		r.refPool.Put(n)
	}
}

// Stats reports the arena's lifetime allocation counters, the basis for
// DAG.Stats / cmd/lambdag's --stats flag: the teacher's pool.Stats()
// (live, total) pattern, extended with freed since this arena never
// discards a node's id the way the teacher's GC-backed pools can.
func (r *registry) Stats() (live, total, freed uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint64(r.live.Count()), r.total, r.freed
}

// LiveCount reports how many allocated nodes have not been freed.
func (r *registry) LiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live.Count()
}

// IsLive reports whether id still has a live bit set.
func (r *registry) IsLive(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live.Test(uint(id))
}

func (r *registry) newVar(name string) *Var {
	v, _ := r.varPool.Get().(*Var)
	if v == nil {
		v = &Var{}
	} else {
		*v = Var{}
	}
	v.Name = name
	v.id = r.alloc()
	return v
}

func (r *registry) newLam(bind *Var, bod Node) *Lam {
	n, _ := r.lamPool.Get().(*Lam)
	if n == nil {
		n = &Lam{}
	} else {
		*n = Lam{}
	}
	n.Var = bind
	n.Bod = bod
	n.id = r.alloc()
	n.bodCell = attach(n, slotBod, bod)
	return n
}

func (r *registry) newSlf(bind *Var, bod Node) *Slf {
	n, _ := r.slfPool.Get().(*Slf)
	if n == nil {
		n = &Slf{}
	} else {
		*n = Slf{}
	}
	n.Var = bind
	n.Bod = bod
	n.id = r.alloc()
	n.bodCell = attach(n, slotBod, bod)
	return n
}

func (r *registry) newAll(bind *Var, uses term.Uses, dom, img Node) *All {
	n, _ := r.allPool.Get().(*All)
	if n == nil {
		n = &All{}
	} else {
		*n = All{}
	}
	n.Var = bind
	n.Uses = uses
	n.Dom = dom
	n.Img = img
	n.id = r.alloc()
	n.domCell = attach(n, slotDom, dom)
	n.imgCell = attach(n, slotImg, img)
	return n
}

func (r *registry) newApp(fun, arg Node) *App {
	n, _ := r.appPool.Get().(*App)
	if n == nil {
		n = &App{}
	} else {
		*n = App{}
	}
	n.Fun = fun
	n.Arg = arg
	n.id = r.alloc()
	n.funCell = attach(n, slotFun, fun)
	n.argCell = attach(n, slotArg, arg)
	return n
}

func (r *registry) newAnn(typ, exp Node) *Ann {
	n, _ := r.annPool.Get().(*Ann)
	if n == nil {
		n = &Ann{}
	} else {
		*n = Ann{}
	}
	n.Typ = typ
	n.Exp = exp
	n.id = r.alloc()
	n.typCell = attach(n, slotTyp, typ)
	n.expCell = attach(n, slotExp, exp)
	return n
}

func (r *registry) newDat(bod Node) *Dat {
	n, _ := r.datPool.Get().(*Dat)
	if n == nil {
		n = &Dat{}
	} else {
		*n = Dat{}
	}
	n.Bod = bod
	n.id = r.alloc()
	n.bodCell = attach(n, slotBod, bod)
	return n
}

func (r *registry) newCse(bod Node) *Cse {
	n, _ := r.csePool.Get().(*Cse)
	if n == nil {
		n = &Cse{}
	} else {
		*n = Cse{}
	}
	n.Bod = bod
	n.id = r.alloc()
	n.bodCell = attach(n, slotBod, bod)
	return n
}

func (r *registry) newLet() *Let {
	n, _ := r.letPool.Get().(*Let)
	if n == nil {
		n = &Let{}
	} else {
		*n = Let{}
	}
	n.id = r.alloc()
	return n
}

func (r *registry) newLit(v primop.Literal) *Lit {
	n, _ := r.litPool.Get().(*Lit)
	if n == nil {
		n = &Lit{}
	} else {
		*n = Lit{}
	}
	n.Val = v
	n.id = r.alloc()
	return n
}

func (r *registry) newOpr(op primop.Op) *Opr {
	n, _ := r.oprPool.Get().(*Opr)
	if n == nil {
		n = &Opr{}
	} else {
		*n = Opr{}
	}
	n.Op = op
	n.id = r.alloc()
	return n
}

func (r *registry) newTyp() *Typ {
	n, _ := r.typPool.Get().(*Typ)
	if n == nil {
		n = &Typ{}
	} else {
		*n = Typ{}
	}
	n.id = r.alloc()
	return n
}

func (r *registry) newRef(link defs.Link) *Ref {
	n, _ := r.refPool.Get().(*Ref)
	if n == nil {
		n = &Ref{}
	} else {
		*n = Ref{}
	}
	n.Link = link
	n.id = r.alloc()
	return n
}
