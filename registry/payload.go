package registry

import "slices"

// Payload is a canned response: either a single Record or a Rows set.
type Payload interface {
	isPayload()
}

// Record is a single result row keyed by column name.
type Record map[string]any

// Rows is an ordered record set.
type Rows []Record

func (Record) isPayload() {}
func (Rows) isPayload()   {}

// IsEmpty reports whether p carries no data. A nil payload, an empty Record
// and an empty Rows are all empty.
func IsEmpty(p Payload) bool {
	switch v := p.(type) {
	case Record:
		return len(v) == 0
	case Rows:
		return len(v) == 0
	default:
		return true
	}
}

// AsRows views p as a record set. A non-empty Record becomes a one-row set.
func AsRows(p Payload) Rows {
	switch v := p.(type) {
	case Rows:
		if v == nil {
			return Rows{}
		}
		return v
	case Record:
		if len(v) == 0 {
			return Rows{}
		}
		return Rows{v}
	default:
		return Rows{}
	}
}

// First returns the first record of p, or an empty Record when there is none.
func First(p Payload) Record {
	switch v := p.(type) {
	case Record:
		if v == nil {
			return Record{}
		}
		return v
	case Rows:
		if len(v) == 0 || v[0] == nil {
			return Record{}
		}
		return v[0]
	default:
		return Record{}
	}
}

// Columns returns the sorted union of the keys of every record.
func (r Rows) Columns() []string {
	var cols []string
	for _, rec := range r {
		for k := range rec {
			if !slices.Contains(cols, k) {
				cols = append(cols, k)
			}
		}
	}
	slices.Sort(cols)
	return cols
}
