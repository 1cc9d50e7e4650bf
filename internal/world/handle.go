package world

// OwnerID names a registry member. The lower 32 bits index a slot in the
// handle table and the upper 32 bits carry that slot's generation, which is
// bumped on removal so stale IDs stop resolving.
type OwnerID uint64

func newOwnerID(index, generation uint32) OwnerID {
	return OwnerID(uint64(generation)<<32 | uint64(index))
}

func (id OwnerID) index() uint32      { return uint32(id) }
func (id OwnerID) generation() uint32 { return uint32(id >> 32) }

// handleTable allocates OwnerIDs with generational indices and a free list.
type handleTable struct {
	slots    []handleSlot
	freeList []uint32
}

type handleSlot struct {
	generation uint32
	owner      *Owner
}

func (h *handleTable) alloc(o *Owner) OwnerID {
	if n := len(h.freeList); n > 0 {
		idx := h.freeList[n-1]
		h.freeList = h.freeList[:n-1]
		h.slots[idx].owner = o
		return newOwnerID(idx, h.slots[idx].generation)
	}
	// Generation starts at 1 so the zero OwnerID never resolves.
	h.slots = append(h.slots, handleSlot{generation: 1, owner: o})
	return newOwnerID(uint32(len(h.slots)-1), 1)
}

func (h *handleTable) get(id OwnerID) *Owner {
	idx := id.index()
	if int(idx) >= len(h.slots) {
		return nil
	}
	slot := &h.slots[idx]
	if slot.generation != id.generation() {
		return nil
	}
	return slot.owner
}

func (h *handleTable) free(id OwnerID) {
	idx := id.index()
	if int(idx) >= len(h.slots) {
		return
	}
	slot := &h.slots[idx]
	if slot.generation != id.generation() {
		return // already freed
	}
	slot.generation++
	slot.owner = nil
	h.freeList = append(h.freeList, idx)
}
