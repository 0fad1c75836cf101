package rastershm

import (
	"github.com/emirpasic/gods/trees/btree"
	"github.com/emirpasic/gods/utils"
	"github.com/torizon/rastershm/util"
)

const handleTreeOrder = 16

type HandleKind uint8

const (
	KindPool HandleKind = iota
	KindBuffer
)

func (self HandleKind) String() string {
	switch self {
	case KindPool:
		return "pool"
	case KindBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

type handleEntry struct {
	kind    HandleKind
	value   interface{}
	destroy func()
}

// HandleTable binds live pools and buffers to opaque int32 handles, standing
// in for the protocol dispatch substrate's object registry. Destructor
// callbacks run exactly once, when the handle is destroyed.
type HandleTable struct {
	tree     *btree.Tree
	seq      *util.Sequence
	capacity int
}

func NewHandleTable() *HandleTable {
	return NewHandleTableWithCapacity(0)
}

// NewHandleTableWithCapacity bounds the number of live handles; capacity 0
// means unbounded. A full table reports allocation failure, which the
// controller translates into an out-of-memory notification.
func NewHandleTableWithCapacity(capacity int) *HandleTable {
	return &HandleTable{
		tree:     btree.NewWith(handleTreeOrder, utils.Int32Comparator),
		seq:      util.NewSequence(1),
		capacity: capacity,
	}
}

func (self *HandleTable) Create(kind HandleKind, value interface{}, destroy func()) (int32, error) {
	if self.capacity > 0 && self.tree.Size() >= self.capacity {
		return 0, &AllocationError{What: kind.String() + " handle"}
	}
	id := self.seq.Next()
	self.tree.Put(id, &handleEntry{kind: kind, value: value, destroy: destroy})
	return id, nil
}

func (self *HandleTable) Get(id int32) (interface{}, HandleKind, bool) {
	v, found := self.tree.Get(id)
	if !found {
		return nil, 0, false
	}
	entry := v.(*handleEntry)
	return entry.value, entry.kind, true
}

// Destroy removes the handle and runs its destructor. Destroying an unknown
// handle is a no-op returning false.
func (self *HandleTable) Destroy(id int32) bool {
	v, found := self.tree.Get(id)
	if !found {
		return false
	}
	self.tree.Remove(id)
	entry := v.(*handleEntry)
	if entry.destroy != nil {
		entry.destroy()
	}
	return true
}

func (self *HandleTable) Size() int {
	return self.tree.Size()
}

// Each visits live handles in id order.
func (self *HandleTable) Each(visit func(id int32, kind HandleKind, value interface{})) {
	it := self.tree.Iterator()
	for it.Next() {
		entry := it.Value().(*handleEntry)
		visit(it.Key().(int32), entry.kind, entry.value)
	}
}
