package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"convertify/internal/domain"
	"convertify/internal/domain/services"
)

// FilesPrefix is the URL path under which LocalStorage objects are served.
const FilesPrefix = "/files/"

// ContentTyper resolves the MIME type of a format token.
type ContentTyper interface {
	ContentType(token string) string
}

// LocalStorage writes objects to <root>/<folder>/<publicID>.<format> and
// serves them under PUBLIC_BASE_URL/files/.
type LocalStorage struct {
	root    string
	baseURL string
	types   ContentTyper
	logger  *slog.Logger
}

var _ services.ObjectStorage = (*LocalStorage)(nil)

// NewLocalStorage creates the root directory if needed
func NewLocalStorage(root, publicBaseURL string, types ContentTyper, logger *slog.Logger) (*LocalStorage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalStorage{
		root:    root,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		types:   types,
		logger:  logger,
	}, nil
}

// Upload writes the object. With Overwrite=false an existing object is a conflict.
func (s *LocalStorage) Upload(ctx context.Context, obj services.UploadObject) (*services.StoredObject, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := objectPath(obj)
	if err != nil {
		return nil, err
	}
	full := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !obj.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(full, flags, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("object '%s' already exists", rel),
				ResourceType: "object",
				ResourceID:   rel,
			}
		}
		return nil, fmt.Errorf("open object: %w", err)
	}
	if _, err := f.Write(obj.Content); err != nil {
		f.Close()
		return nil, fmt.Errorf("write object: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close object: %w", err)
	}

	s.logger.Info("object stored", "path", rel, "bytes", len(obj.Content))

	return &services.StoredObject{
		URL:      s.baseURL + FilesPrefix + escapePath(rel),
		PublicID: strings.TrimSuffix(rel, path.Ext(rel)),
		Bytes:    len(obj.Content),
	}, nil
}

// Handler serves stored objects. Mount it at FilesPrefix.
func (s *LocalStorage) Handler() http.Handler {
	files := http.StripPrefix(strings.TrimSuffix(FilesPrefix, "/"), http.FileServer(http.Dir(s.root)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		if s.types != nil {
			w.Header().Set("Content-Type", s.types.ContentType(strings.TrimPrefix(path.Ext(r.URL.Path), ".")))
		}
		files.ServeHTTP(w, r)
	})
}

// objectPath returns folder/publicID.format, rejecting names that would
// escape the storage root.
func objectPath(obj services.UploadObject) (string, error) {
	if obj.PublicID == "" || obj.Format == "" {
		return "", errors.New("object needs a public id and a format")
	}
	for _, part := range []string{obj.Folder, obj.PublicID, obj.Format} {
		if strings.ContainsAny(part, `/\`) || part == "." || part == ".." {
			return "", fmt.Errorf("invalid object name component %q", part)
		}
	}
	name := obj.PublicID + "." + obj.Format
	if obj.Folder == "" {
		return name, nil
	}
	return obj.Folder + "/" + name, nil
}

func escapePath(rel string) string {
	parts := strings.Split(rel, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
