package api

import (
	"bytes"

	"github.com/google/uuid"
)

// Form builds a multipart/form-data body. Parts appear on the wire in the
// order they were added; the boundary is a fresh random token per instance
// so encoded bodies are unique across forms but reproducible within one.
type Form struct {
	boundary string
	body     bytes.Buffer
}

// NewForm constructs an empty form with a random boundary.
func NewForm() *Form {
	return &Form{boundary: uuid.NewString()}
}

// Boundary returns the boundary token framing the parts.
func (f *Form) Boundary() string { return f.boundary }

// ContentType returns the value for the request Content-Type header.
func (f *Form) ContentType() string {
	return "multipart/form-data; boundary=" + f.boundary
}

// AddField appends a plain text field.
func (f *Form) AddField(name, value string) {
	f.body.WriteString("--" + f.boundary + "\r\n")
	f.body.WriteString(`Content-Disposition: form-data; name="` + name + `"` + "\r\n\r\n")
	f.body.WriteString(value + "\r\n")
}

// AddFile appends a binary file part.
func (f *Form) AddFile(name, filename, mimeType string, data []byte) {
	f.body.WriteString("--" + f.boundary + "\r\n")
	f.body.WriteString(`Content-Disposition: form-data; name="` + name + `"; filename="` + filename + `"` + "\r\n")
	f.body.WriteString("Content-Type: " + mimeType + "\r\n\r\n")
	f.body.Write(data)
	f.body.WriteString("\r\n")
}

// Encode returns the finalized body including the closing boundary. The
// form itself is not consumed; Encode may be called more than once.
func (f *Form) Encode() []byte {
	out := make([]byte, 0, f.body.Len()+len(f.boundary)+8)
	out = append(out, f.body.Bytes()...)
	out = append(out, "--"+f.boundary+"--\r\n"...)
	return out
}
