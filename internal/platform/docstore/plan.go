package docstore

// Plan is a declarative read-only view over one source collection.
// Stages run in order: match, joins, computed fields, group, project, window.
type Plan struct {
	Source   string
	Match    Filter
	Sort     []Sort
	Expand   []string
	Joins    []Join
	Computed []Computed
	Group    *Group
	// Project keeps only the listed top-level fields. Empty keeps everything.
	Project []string
	Window  *Window
}

// Join attaches documents of another collection whose ForeignField equals the
// local value. When the local value is an array, matches follow the array's
// order.
type Join struct {
	From         string
	LocalField   string
	ForeignField string
	As           string
	// Match adds constant conditions on the joined collection.
	Match  Filter
	Expand []string
	// Project restricts every joined document. Empty keeps every field.
	Project []string
	// Joins run on the joined documents before they are attached.
	Joins []Join

	// First embeds the first match (or nil) instead of an array.
	First bool
	// Unwind emits one document per match and drops documents without any.
	Unwind bool
	// Distinct ignores repeated values in an array local field.
	Distinct bool
}

// Op is a computed-field or accumulator operation.
type Op int

const (
	// OpSize counts the values at Path.
	OpSize Op = iota + 1
	// OpContains is true when any value at Path equals Value.
	OpContains
	// OpSum adds the numeric values at Path.
	OpSum
	// OpCount counts grouped documents. Only valid in a Group.
	OpCount
)

// Computed derives a field from a document, typically from a join result.
type Computed struct {
	Field string
	Op    Op
	Path  string
	Value any
}

// Group folds every document into one. An empty input yields one document of zeros.
type Group struct {
	Accumulators []Accumulator
}

type Accumulator struct {
	Field string
	Op    Op
	Path  string
}

// Window is a skip/limit page over the final result.
type Window struct {
	Skip  int
	Limit int
}

func (p Plan) dropsRows() bool {
	for _, j := range p.Joins {
		if j.Unwind {
			return true
		}
	}
	return false
}
