package storagegroup

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// AttachmentMap is the ALU to HLU assignment of one storage group. Both
// directions are unique. It does no locking of its own; the owning Group
// guards it.
type AttachmentMap struct {
	hluByALU map[int]int
	aluByHLU map[int]int
}

// NewAttachmentMap returns an empty map.
func NewAttachmentMap() *AttachmentMap {
	return &AttachmentMap{
		hluByALU: make(map[int]int),
		aluByHLU: make(map[int]int),
	}
}

// newAttachmentMap builds a map from array state, rejecting duplicates.
func newAttachmentMap(mappings []Mapping) (*AttachmentMap, error) {
	m := NewAttachmentMap()
	for _, p := range mappings {
		if prev, ok := m.hluByALU[p.ALU]; ok {
			return nil, fmt.Errorf("alu %d mapped twice (hlu %d and %d)", p.ALU, prev, p.HLU)
		}
		if prev, ok := m.aluByHLU[p.HLU]; ok {
			return nil, fmt.Errorf("hlu %d used twice (alu %d and %d)", p.HLU, prev, p.ALU)
		}
		m.hluByALU[p.ALU] = p.HLU
		m.aluByHLU[p.HLU] = p.ALU
	}
	return m, nil
}

// HLU returns the HLU assigned to alu.
func (m *AttachmentMap) HLU(alu int) (int, bool) {
	hlu, ok := m.hluByALU[alu]
	return hlu, ok
}

// HasALU reports whether alu holds an HLU.
func (m *AttachmentMap) HasALU(alu int) bool {
	_, ok := m.hluByALU[alu]
	return ok
}

// HasHLU reports whether hlu is taken.
func (m *AttachmentMap) HasHLU(hlu int) bool {
	_, ok := m.aluByHLU[hlu]
	return ok
}

// HLUs returns the assigned HLUs, ascending.
func (m *AttachmentMap) HLUs() []int {
	hlus := lo.Keys(m.aluByHLU)
	slices.Sort(hlus)
	return hlus
}

// ALUs returns the attached ALUs, ascending.
func (m *AttachmentMap) ALUs() []int {
	alus := lo.Keys(m.hluByALU)
	slices.Sort(alus)
	return alus
}

// Mappings returns all pairs ordered by HLU.
func (m *AttachmentMap) Mappings() []Mapping {
	return lo.Map(m.HLUs(), func(hlu int, _ int) Mapping {
		return Mapping{HLU: hlu, ALU: m.aluByHLU[hlu]}
	})
}

// Len returns the number of assignments.
func (m *AttachmentMap) Len() int {
	return len(m.hluByALU)
}

// Assign records alu as hlu. The caller guarantees alu is unassigned and
// hlu is free; breaking that is a programming error and panics.
func (m *AttachmentMap) Assign(alu, hlu int) {
	if prev, ok := m.hluByALU[alu]; ok {
		panic(fmt.Sprintf("storagegroup: alu %d already assigned hlu %d", alu, prev))
	}
	if prev, ok := m.aluByHLU[hlu]; ok {
		panic(fmt.Sprintf("storagegroup: hlu %d already assigned to alu %d", hlu, prev))
	}
	m.hluByALU[alu] = hlu
	m.aluByHLU[hlu] = alu
}

// Unassign removes alu and returns the HLU it held. Unknown ALUs are a no-op.
func (m *AttachmentMap) Unassign(alu int) (int, bool) {
	hlu, ok := m.hluByALU[alu]
	if !ok {
		return 0, false
	}
	delete(m.hluByALU, alu)
	delete(m.aluByHLU, hlu)
	return hlu, true
}
