// Package models defines the persisted link record and the request and
// response shapes of the lifecycle and resolution entry points.
package models

// AliasRule is a per-domain override of the default availability window.
// A missing bound falls back to the record's own bound at resolution time.
type AliasRule struct {
	StartDate *int64 `json:"startdate,omitempty"`
	EndDate   *int64 `json:"enddate,omitempty"`
}

// LinkRecord is the persisted entity mapping a short identifier to its
// destination and lifecycle metadata. All dates are Unix milliseconds.
//
// Logs is an append-only audit trail keyed by the epoch-millisecond
// timestamp of the mutating operation. Two operations landing on the same
// millisecond overwrite each other's entry; this is a known limitation.
type LinkRecord struct {
	ID          string               `json:"id"`
	Destination string               `json:"destination"`
	Description *string              `json:"description,omitempty"`
	CreatedDate int64                `json:"createddate"`
	DeletedDate *int64               `json:"deleteddate,omitempty"`
	StartDate   *int64               `json:"startdate,omitempty"`
	EndDate     *int64               `json:"enddate,omitempty"`
	Aliases     map[string]AliasRule `json:"aliases"`
	Logs        map[string][]string  `json:"logs"`
}

// Deleted reports whether the record is soft-deleted. A deleted record is
// terminal: no further mutation is ever applied to it.
func (r *LinkRecord) Deleted() bool {
	return r.DeletedDate != nil
}

// Clone returns a deep copy so callers can hand records across goroutines
// without sharing the alias and log maps.
func (r *LinkRecord) Clone() *LinkRecord {
	c := *r
	if r.Description != nil {
		d := *r.Description
		c.Description = &d
	}
	c.DeletedDate = cloneInt64(r.DeletedDate)
	c.StartDate = cloneInt64(r.StartDate)
	c.EndDate = cloneInt64(r.EndDate)
	if r.Aliases != nil {
		c.Aliases = make(map[string]AliasRule, len(r.Aliases))
		for k, v := range r.Aliases {
			c.Aliases[k] = AliasRule{StartDate: cloneInt64(v.StartDate), EndDate: cloneInt64(v.EndDate)}
		}
	}
	if r.Logs != nil {
		c.Logs = make(map[string][]string, len(r.Logs))
		for k, v := range r.Logs {
			lines := make([]string, len(v))
			copy(lines, v)
			c.Logs[k] = lines
		}
	}
	return &c
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
