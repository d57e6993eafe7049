package seating

// RelationIndex holds the symmetric "sit together" graph built from Party.RelatedTo.
type RelationIndex struct {
	adj map[uint]map[uint]struct{}
}

// BuildIndex builds the index from the full guest list. It is cheap enough to rebuild
// on every guest-list change.
func BuildIndex(parties []Party) *RelationIndex {
	idx := &RelationIndex{adj: make(map[uint]map[uint]struct{})}
	for _, p := range parties {
		for _, rel := range p.RelatedTo {
			if rel == p.ID {
				continue
			}
			idx.link(p.ID, rel)
			idx.link(rel, p.ID)
		}
	}
	return idx
}

func (idx *RelationIndex) link(a, b uint) {
	set, ok := idx.adj[a]
	if !ok {
		set = make(map[uint]struct{})
		idx.adj[a] = set
	}
	set[b] = struct{}{}
}

// Related returns the ids directly linked to id.
func (idx *RelationIndex) Related(id uint) []uint {
	if idx == nil {
		return nil
	}
	out := make([]uint, 0, len(idx.adj[id]))
	for rel := range idx.adj[id] {
		out = append(out, rel)
	}
	return out
}

// ConnectedGroup returns every id reachable from id, id included.
func (idx *RelationIndex) ConnectedGroup(id uint) map[uint]struct{} {
	group := map[uint]struct{}{id: {}}
	if idx == nil {
		return group
	}
	stack := []uint{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for rel := range idx.adj[cur] {
			if _, seen := group[rel]; seen {
				continue
			}
			group[rel] = struct{}{}
			stack = append(stack, rel)
		}
	}
	return group
}
