package dwarf

import "container/list"

// dieLRU is a bounded offset->DIERef cache sized to cover a typical CU
// (8k entries is enough in practice), kept separate from the full
// in-memory DIE arena so lookups stay cheap even though this
// implementation happens to keep every DIE resident.
type dieLRU struct {
	capacity int
	ll       *list.List
	index    map[int64]*list.Element
}

type dieLRUEntry struct {
	offset int64
	ref    DIERef
}

func newDIELRU(capacity int) *dieLRU {
	return &dieLRU{
		capacity: capacity,
		ll:       list.New(),
		index:    make(map[int64]*list.Element),
	}
}

func (c *dieLRU) get(offset int64) (DIERef, bool) {
	el, ok := c.index[offset]
	if !ok {
		return DIERef{}, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*dieLRUEntry).ref, true
}

func (c *dieLRU) put(offset int64, ref DIERef) {
	if el, ok := c.index[offset]; ok {
		el.Value.(*dieLRUEntry).ref = ref
		c.ll.MoveToFront(el)
		return
	}

	el := c.ll.PushFront(&dieLRUEntry{offset: offset, ref: ref})
	c.index[offset] = el

	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.index, oldest.Value.(*dieLRUEntry).offset)
		}
	}
}
