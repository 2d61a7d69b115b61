package emsapi

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// Upload is a file selected for the profile picture field.
type Upload struct {
	Filename string
	Content  []byte
}

type payloadField struct {
	name  string
	value string
}

// Payload is the multipart form body of a create or update request.
// Scalar fields keep their insertion order; at most one file can be
// attached. A field set to the empty string is sent as an explicit
// empty value, which the API reads as "clear this field".
type Payload struct {
	fields    []payloadField
	fileField string
	file      *Upload
}

// NewPayload returns an empty payload.
func NewPayload() *Payload {
	return &Payload{}
}

// Set appends a scalar field. Setting the same name twice keeps both
// values; callers are expected to set each field at most once.
func (p *Payload) Set(name, value string) {
	p.fields = append(p.fields, payloadField{name: name, value: value})
}

// AttachFile adds the file part under the given field name.
func (p *Payload) AttachFile(field string, upload Upload) {
	p.fileField = field
	p.file = &upload
}

// Get returns the value of a scalar field.
func (p *Payload) Get(name string) (string, bool) {
	for _, field := range p.fields {
		if field.name == name {
			return field.value, true
		}
	}

	return "", false
}

// Has reports whether a scalar field is present, even with an empty value.
func (p *Payload) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Names returns the scalar field names in insertion order.
func (p *Payload) Names() []string {
	names := make([]string, 0, len(p.fields))
	for _, field := range p.fields {
		names = append(names, field.name)
	}

	return names
}

// File returns the attached file part, if any.
func (p *Payload) File() (string, *Upload, bool) {
	if p.file == nil {
		return "", nil, false
	}

	return p.fileField, p.file, true
}

// Encode renders the payload as a multipart/form-data body and returns
// it together with its Content-Type header value.
func (p *Payload) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, field := range p.fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %q: %w", field.name, err)
		}
	}

	if p.file != nil {
		part, err := writer.CreateFormFile(p.fileField, p.file.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part %q: %w", p.fileField, err)
		}
		if _, err = part.Write(p.file.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write file content: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
