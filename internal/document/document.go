package document

// Section is one titled structural unit of a parsed manuscript. Sections are
// immutable once handed to an audit run.
type Section struct {
	SectionID int    `json:"section_id"`
	Type      string `json:"type"`
	Text      string `json:"text"`
	Level     int    `json:"level"`
}

// Reference is one raw citation string from the manuscript's reference list.
type Reference struct {
	RawText string `json:"raw_text"`
}

// Document is the parsed input to a full audit.
type Document struct {
	DocID      string      `json:"doc_id"`
	Title      string      `json:"title"`
	Sections   []Section   `json:"sections"`
	References []Reference `json:"references"`
}
