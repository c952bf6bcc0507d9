package content

import (
	"strings"

	"github.com/yungbote/linguabridge-backend/internal/types"
)

// Resolved is the merged view of a static catalog entry and its runtime
// activity row. Payload fields always come from the catalog (content
// authorship is the source of truth for pedagogical material); runtime
// metadata only fills structural fields the catalog left blank.
type Resolved struct {
	ExternalID     string         `json:"external_id"`
	UnitExternalID string         `json:"unit_external_id"`
	Type           string         `json:"type"`
	ComponentKey   string         `json:"component_key,omitempty"`
	OrderIndex     int            `json:"order_index"`
	Title          string         `json:"title,omitempty"`
	Payload        map[string]any `json:"payload,omitempty"`
}

type Resolver struct {
	byID  map[string]*entry
	byRef map[string]*entry
}

type entry struct {
	unit *UnitDef
	def  *ActivityDef
}

func NewResolver(c *Catalog) *Resolver {
	r := &Resolver{
		byID:  map[string]*entry{},
		byRef: map[string]*entry{},
	}
	if c == nil {
		return r
	}
	for ui := range c.Units {
		u := &c.Units[ui]
		for ai := range u.Activities {
			a := &u.Activities[ai]
			e := &entry{unit: u, def: a}
			r.byID[a.ExternalID] = e
			if ref := strings.TrimSpace(a.ContentRef); ref != "" {
				r.byRef[ref] = e
			}
		}
	}
	return r
}

// Resolve looks an activity up by external id or content reference and merges
// in the optional runtime row. The second return is false when no catalog
// entry exists; callers render a graceful fallback, this is not an error.
func (r *Resolver) Resolve(idOrRef string, runtime *types.Activity) (Resolved, bool) {
	idOrRef = strings.TrimSpace(idOrRef)
	if idOrRef == "" {
		return Resolved{}, false
	}
	e, ok := r.byID[idOrRef]
	if !ok {
		e, ok = r.byRef[idOrRef]
	}
	if !ok {
		return Resolved{}, false
	}
	return merge(e.unit, e.def, runtime), true
}

func merge(unit *UnitDef, def *ActivityDef, runtime *types.Activity) Resolved {
	out := Resolved{
		ExternalID:     def.ExternalID,
		UnitExternalID: unit.ExternalID,
		Type:           def.Type,
		ComponentKey:   def.ComponentKey,
		OrderIndex:     def.OrderIndex,
		Title:          def.Title,
		Payload:        def.Payload,
	}
	if runtime == nil {
		return out
	}
	if out.Type == "" {
		out.Type = runtime.Type
	}
	if out.ComponentKey == "" {
		out.ComponentKey = runtime.ComponentKey
	}
	if out.Title == "" {
		out.Title = runtime.Title
	}
	if out.OrderIndex == 0 && runtime.OrderIndex != 0 {
		out.OrderIndex = runtime.OrderIndex
	}
	return out
}
