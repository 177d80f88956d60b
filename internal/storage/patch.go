package storage

import "github.com/linkward/linkward/internal/models"

// Patch is a three-state mutation for a single attribute: the zero value
// leaves the attribute untouched, Set replaces it, Remove deletes it.
type Patch[T any] struct {
	op    patchOp
	value T
}

type patchOp int

const (
	opNone patchOp = iota
	opSet
	opRemove
)

// Set builds a patch that replaces the attribute with v.
func Set[T any](v T) Patch[T] {
	return Patch[T]{op: opSet, value: v}
}

// Remove builds a patch that deletes the attribute.
func Remove[T any]() Patch[T] {
	return Patch[T]{op: opRemove}
}

// Value returns the replacement value and whether the patch is a Set.
func (p Patch[T]) Value() (T, bool) {
	return p.value, p.op == opSet
}

// IsRemove reports whether the patch deletes the attribute.
func (p Patch[T]) IsRemove() bool {
	return p.op == opRemove
}

// IsZero reports whether the patch leaves the attribute untouched.
func (p Patch[T]) IsZero() bool {
	return p.op == opNone
}

// LinkPatch is one link-table update: any combination of attribute
// mutations plus exactly one log entry. Store adapters must apply the whole
// patch as a single write so a record is never left with a changed field
// but a missing log line from that call.
type LinkPatch struct {
	Destination Patch[string]
	Description Patch[string]
	StartDate   Patch[int64]
	EndDate     Patch[int64]

	// Aliases patches whole entries by domain. Entries absent from the map
	// are left untouched; fields inside an entry are never patched
	// individually.
	Aliases map[string]Patch[models.AliasRule]

	// DeletedDate, when non-nil, marks the record soft-deleted.
	DeletedDate *int64

	// LogKey/LogLines is the audit entry appended with this patch. An
	// empty LogKey appends nothing (used only by store-internal calls).
	LogKey   string
	LogLines []string
}

// Apply mutates rec in place. Shared by the store backends that implement
// partial updates as read-modify-write.
func (p LinkPatch) Apply(rec *models.LinkRecord) {
	if v, ok := p.Destination.Value(); ok {
		rec.Destination = v
	}
	if v, ok := p.Description.Value(); ok {
		rec.Description = &v
	} else if p.Description.IsRemove() {
		rec.Description = nil
	}
	if v, ok := p.StartDate.Value(); ok {
		rec.StartDate = &v
	} else if p.StartDate.IsRemove() {
		rec.StartDate = nil
	}
	if v, ok := p.EndDate.Value(); ok {
		rec.EndDate = &v
	} else if p.EndDate.IsRemove() {
		rec.EndDate = nil
	}
	for domain, ap := range p.Aliases {
		if rule, ok := ap.Value(); ok {
			if rec.Aliases == nil {
				rec.Aliases = make(map[string]models.AliasRule)
			}
			rec.Aliases[domain] = rule
		} else if ap.IsRemove() {
			delete(rec.Aliases, domain)
		}
	}
	if p.DeletedDate != nil {
		d := *p.DeletedDate
		rec.DeletedDate = &d
	}
	if p.LogKey != "" {
		if rec.Logs == nil {
			rec.Logs = make(map[string][]string)
		}
		rec.Logs[p.LogKey] = append([]string(nil), p.LogLines...)
	}
}
