package entity

import "time"

// ObjectType identifies a CRM object collection.
type ObjectType string

const (
	ObjectAccount     ObjectType = "Account"
	ObjectOpportunity ObjectType = "Opportunity"
)

// Known returns true for the object types the dashboard works with.
func (t ObjectType) Known() bool {
	return t == ObjectAccount || t == ObjectOpportunity
}

// Record is a CRM record: named fields mapped to scalar or nested-reference
// values. The primary identifier lives under the "Id" key and is assigned by
// whichever backend created the record. Records are never mutated in place;
// edits travel as a patch of field values submitted atomically.
type Record map[string]any

// ID returns the record's primary identifier, or "" when absent.
func (r Record) ID() string {
	id, _ := r["Id"].(string)

	return id
}

// Clone returns a copy deep enough that callers cannot alias the source:
// the map itself and any directly nested Record values are copied.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}

	out := make(Record, len(r))
	for k, v := range r {
		if nested, ok := v.(map[string]any); ok {
			inner := make(map[string]any, len(nested))
			for nk, nv := range nested {
				inner[nk] = nv
			}
			out[k] = inner

			continue
		}
		out[k] = v
	}

	return out
}

// QueryResult is the normalized envelope every read operation returns,
// matching the CRM query endpoint's wire shape.
type QueryResult struct {
	TotalSize int      `json:"totalSize"`
	Done      bool     `json:"done"`
	Records   []Record `json:"records"`
}

// Clone deep-copies the result so fixture data stays immutable.
func (q *QueryResult) Clone() *QueryResult {
	if q == nil {
		return nil
	}

	out := &QueryResult{TotalSize: q.TotalSize, Done: q.Done}
	if q.Records != nil {
		out.Records = make([]Record, len(q.Records))
		for i, rec := range q.Records {
			out.Records[i] = rec.Clone()
		}
	}

	return out
}

// SaveResult is the envelope returned by record create calls; update and
// delete report success with no body.
type SaveResult struct {
	ID      string   `json:"id,omitempty"`
	Success bool     `json:"success"`
	Errors  []string `json:"errors,omitempty"`
}

// DashboardSnapshot bundles the four aggregate views loaded by one refresh
// cycle. It is derived state, recomputed on every load and never cached
// beyond the current cycle.
type DashboardSnapshot struct {
	Accounts             *QueryResult `json:"accounts"`
	Opportunities        *QueryResult `json:"opportunities"`
	StageDistribution    *QueryResult `json:"stageDistribution"`
	IndustryDistribution *QueryResult `json:"industryDistribution"`
	LoadedAt             time.Time    `json:"loadedAt"`
}
