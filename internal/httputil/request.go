package httputil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNoFile means the multipart form has no part under the requested field.
var ErrNoFile = errors.New("no file uploaded")

// ErrTooLarge means the request body exceeded the configured limit.
var ErrTooLarge = errors.New("request body too large")

// Upload is a file read from a multipart form.
type Upload struct {
	Name string
	Data []byte
}

// multipartMemory is how much of a form is buffered in memory before
// net/http spills file parts to disk.
const multipartMemory = 8 << 20

// ParseUpload limits the body to maxBytes, parses the multipart form and reads
// the file under field. Form values stay available through r.FormValue.
func ParseUpload(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) (*Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ErrTooLarge
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, ErrNoFile
		}
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, ErrNoFile
		}
		return nil, fmt.Errorf("read form file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read form file: %w", err)
	}

	return &Upload{Name: header.Filename, Data: data}, nil
}
