package parser

// Row is one aligned translation pair from a result table.
type Row struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Section groups the rows of one part of speech category. Name is the
// category key carried by the page markup, e.g. "subst" or "verb".
type Section struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows,omitempty"`
}
