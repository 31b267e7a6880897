package model

// ProcessingError records a per-file extraction problem without aborting the
// batch.
type ProcessingError struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// Envelope holds every document extracted from one email/source folder.
// Document order is insertion order; the engine relies on it for first-found
// fallbacks.
type Envelope struct {
	Folder       string            `json:"folder"`
	Documents    []Document        `json:"-"`
	Errors       []ProcessingError `json:"errors,omitempty"`
	EmailSubject string            `json:"email_subject,omitempty"`
	EmailSender  string            `json:"email_sender,omitempty"`
}

// NewEnvelope creates an empty envelope for a source folder.
func NewEnvelope(folder string) *Envelope {
	return &Envelope{Folder: folder}
}

// Add appends a document, preserving insertion order.
func (e *Envelope) Add(doc Document) {
	e.Documents = append(e.Documents, doc)
}

// AddError logs a per-file error.
func (e *Envelope) AddError(file, message string) {
	e.Errors = append(e.Errors, ProcessingError{File: file, Message: message})
}

// ByKind returns the documents of one kind, in insertion order.
func (e *Envelope) ByKind(kind Kind) []Document {
	var out []Document
	for _, doc := range e.Documents {
		if doc.Kind() == kind {
			out = append(out, doc)
		}
	}
	return out
}

// HasKind reports whether at least one document of the kind exists.
func (e *Envelope) HasKind(kind Kind) bool {
	for _, doc := range e.Documents {
		if doc.Kind() == kind {
			return true
		}
	}
	return false
}

// SumByKind sums the kind-specific totals of all documents of one kind.
func (e *Envelope) SumByKind(kind Kind) float64 {
	var sum float64
	for _, doc := range e.Documents {
		if doc.Kind() == kind {
			sum += doc.Total()
		}
	}
	return sum
}

// FirstTotal returns the first non-zero total among documents of the kind,
// or 0 when none has one.
func (e *Envelope) FirstTotal(kind Kind) float64 {
	for _, doc := range e.Documents {
		if doc.Kind() == kind && doc.Total() > 0 {
			return doc.Total()
		}
	}
	return 0
}

// FirstDueDate returns the first non-empty due date among documents of the
// kind.
func (e *Envelope) FirstDueDate(kind Kind) string {
	for _, doc := range e.Documents {
		if doc.Kind() == kind && doc.DueDate() != "" {
			return doc.DueDate()
		}
	}
	return ""
}

// FirstOrderNumber returns the first non-empty order number across all
// documents, in insertion order.
func (e *Envelope) FirstOrderNumber() string {
	for _, doc := range e.Documents {
		if doc.OrderNumber() != "" {
			return doc.OrderNumber()
		}
	}
	return ""
}

// HasDocNumber reports whether any document carries its own number.
func (e *Envelope) HasDocNumber() bool {
	for _, doc := range e.Documents {
		if doc.DocNumber() != "" {
			return true
		}
	}
	return false
}

// HasDueDate reports whether any document carries a due date.
func (e *Envelope) HasDueDate() bool {
	for _, doc := range e.Documents {
		if doc.DueDate() != "" {
			return true
		}
	}
	return false
}
