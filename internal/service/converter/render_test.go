package converter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"convertify/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDOCXToPDF_Success(t *testing.T) {
	runner := writingRunner(t, 2048)
	d, root := newTestDispatcher(t, runner)

	result, err := d.Convert(context.Background(), buildDOCX(t, "hi"), "docx", "pdf")
	require.NoError(t, err)
	assert.Len(t, result.Bytes, 2048)

	require.Len(t, runner.calls, 1)
	call := runner.calls[0]
	assert.Equal(t, "soffice", call[0])
	assert.Contains(t, call, "--headless")
	assert.Equal(t, "pdf", argAfter(call, "--convert-to"))
	assert.True(t, strings.HasPrefix(call[1], "-env:UserInstallation=file://"))

	outdir := argAfter(call, "--outdir")
	assert.Equal(t, root, filepath.Dir(outdir))
	assert.Equal(t, filepath.Join(outdir, "input.docx"), call[len(call)-1])

	requireEmptyDir(t, root)
}

func TestDOCXToPDF_EmptyOutput(t *testing.T) {
	d, root := newTestDispatcher(t, writingRunner(t, 12))

	_, err := d.Convert(context.Background(), buildDOCX(t, "hi"), "docx", "pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmptyOutput))

	var emptyErr *domain.EmptyOutputError
	require.True(t, errors.As(err, &emptyErr))
	assert.Equal(t, 12, emptyErr.Size)
	assert.Equal(t, "docx-to-pdf", emptyErr.Route)

	requireEmptyDir(t, root)
}

func TestDOCXToPDF_ProcessFailure(t *testing.T) {
	runner := &fakeRunner{fn: func(string, []string) ([]byte, error) {
		return []byte("  Error: source file could not be loaded\n"), errors.New("exit status 1")
	}}
	d, root := newTestDispatcher(t, runner)

	_, err := d.Convert(context.Background(), buildDOCX(t, "hi"), "docx", "pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRender))

	var renderErr *domain.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "libreoffice", renderErr.Tool)
	assert.Equal(t, "Error: source file could not be loaded", renderErr.Message)

	requireEmptyDir(t, root)
}

func TestDOCXToPDF_NoOutputFile(t *testing.T) {
	runner := &fakeRunner{fn: func(string, []string) ([]byte, error) { return nil, nil }}
	d, root := newTestDispatcher(t, runner)

	_, err := d.Convert(context.Background(), buildDOCX(t, "hi"), "docx", "pdf")

	var renderErr *domain.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "no output produced", renderErr.Message)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	requireEmptyDir(t, root)
}

func TestDOCXToPDF_ConcurrentCallsUseDistinctDirectories(t *testing.T) {
	runner := writingRunner(t, 512)
	d, root := newTestDispatcher(t, runner)
	payload := buildDOCX(t, "hi")

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = d.Convert(context.Background(), payload, "docx", "pdf")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	seen := make(map[string]bool)
	for _, call := range runner.calls {
		dir := argAfter(call, "--outdir")
		assert.False(t, seen[dir], "directory %s reused", dir)
		seen[dir] = true
	}
	assert.Len(t, seen, n)
	requireEmptyDir(t, root)
}
