package ports

// Record is one fixed-arity dataset tuple. Catalogs give the positions their
// meaning through projector functions: for cars Name is the country, Label the
// population rank and Items the top sellers; for movies Name is the title,
// Label the director and Items the actors.
type Record struct {
	Name  string   `json:"name"`
	Label string   `json:"label"`
	Year  int      `json:"year"`
	Items []string `json:"items"`
}

// Dataset is the complete, read-only record set for one catalog.
// It is loaded once at startup and never mutated afterwards.
type Dataset struct {
	Catalog string   `json:"catalog"`
	Source  string   `json:"source,omitempty"` // where the records came from (file path, "embedded", db path)
	Records []Record `json:"records"`
}

// Reply is the outcome of dispatching one query.
//
// Exactly one of two shapes is produced: Terminate is true and Answers is nil
// (the exit action fired), or Answers holds at least one line. Pattern and
// Captures are empty when no pattern matched.
type Reply struct {
	Answers   []string `json:"answers,omitempty"`
	Terminate bool     `json:"terminate,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	Captures  []string `json:"captures,omitempty"`
}

// Answerer resolves a normalized token sequence into a Reply. Implemented
// in-process by the app and remotely by the socket client, so the query loop
// does not care which one it talks to.
type Answerer interface {
	Answer(tokens []string) (Reply, error)
}
