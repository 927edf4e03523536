package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
)

// FormData is a multipart/form-data body, used for media uploads. It is sent
// with its own multipart content type; no JSON encoding is applied.
type FormData struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name, value string
}

type formFile struct {
	field, filename string
	content         []byte
}

// NewFormData returns an empty form. Fields and files keep insertion order.
func NewFormData() *FormData {
	return &FormData{}
}

// Add appends a text field.
func (f *FormData) Add(name, value string) *FormData {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// AddFile appends a file part.
func (f *FormData) AddFile(field, filename string, content []byte) *FormData {
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
	return f
}

func (f *FormData) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", err
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// encodeBody serializes the request body once so it can be replayed on retry.
// GET requests never carry a body. An empty content type for a non-nil body
// means JSON.
func encodeBody(method string, body any) ([]byte, string, error) {
	if body == nil || method == http.MethodGet {
		return nil, "", nil
	}
	if form, ok := body.(*FormData); ok {
		if form == nil {
			return nil, "", nil
		}
		b, ct, err := form.encode()
		if err != nil {
			return nil, "", fmt.Errorf("encode form data: %w", err)
		}
		return b, ct, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("encode json body: %w", err)
	}
	return b, "", nil
}
