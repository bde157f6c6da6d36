// Package fsys abstracts the file system the project model and incremental
// pipeline read scripts and caches from, so the same analysis code runs
// against a real project checkout or an in-memory test fixture.
package fsys

import (
	"context"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/url"

	"github.com/viant/gdlang/internal/gderrors"
)

// FileSystem is the narrow surface the project model and incremental
// pipeline need: enough to discover script files, read their content, and
// persist cache state, without leaking a concrete storage backend.
type FileSystem interface {
	FileExists(ctx context.Context, path string) (bool, error)
	DirectoryExists(ctx context.Context, path string) (bool, error)
	ReadAllText(ctx context.Context, path string) (string, error)
	WriteAllText(ctx context.Context, path string, content string) error
	GetFiles(ctx context.Context, dir string, suffix string) ([]string, error)
	Join(elem ...string) string
}

// AFS adapts github.com/viant/afs's Service to FileSystem, giving the
// project model uniform access to local disk, in-memory, and remote object
// storage URLs through the same interface.
type AFS struct {
	service afs.Service
}

// NewAFS wraps a fresh afs.Service. Passing nil uses afs.New().
func NewAFS(service afs.Service) *AFS {
	if service == nil {
		service = afs.New()
	}
	return &AFS{service: service}
}

func (a *AFS) FileExists(ctx context.Context, path string) (bool, error) {
	ok, err := a.service.Exists(ctx, path)
	if err != nil {
		return false, gderrors.NewAccessDenied(path, err)
	}
	return ok, nil
}

func (a *AFS) DirectoryExists(ctx context.Context, path string) (bool, error) {
	return a.FileExists(ctx, path)
}

func (a *AFS) ReadAllText(ctx context.Context, path string) (string, error) {
	data, err := a.service.DownloadWithURL(ctx, path)
	if err != nil {
		if ok, existsErr := a.service.Exists(ctx, path); existsErr == nil && !ok {
			return "", gderrors.NewFileNotFound(path, err)
		}
		return "", gderrors.NewAccessDenied(path, err)
	}
	return string(data), nil
}

func (a *AFS) WriteAllText(ctx context.Context, path string, content string) error {
	if err := a.service.Upload(ctx, path, 0644, strings.NewReader(content)); err != nil {
		return gderrors.NewAccessDenied(path, err)
	}
	return nil
}

func (a *AFS) GetFiles(ctx context.Context, dir string, suffix string) ([]string, error) {
	var found []string
	visitor := func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if suffix == "" || strings.HasSuffix(info.Name(), suffix) {
			found = append(found, url.Join(baseURL, parent, info.Name()))
		}
		return true, nil
	}
	if err := a.service.Walk(ctx, dir, visitor); err != nil {
		return nil, gderrors.NewAccessDenied(dir, err)
	}
	sort.Strings(found)
	return found, nil
}

func (a *AFS) Join(elem ...string) string {
	return url.Join(elem[0], elem[1:]...)
}

// Memory is an in-memory FileSystem used by tests and by the incremental
// pipeline's own fixtures, avoiding real disk I/O for deterministic runs.
type Memory struct {
	mu    sync.RWMutex
	files map[string]string
}

// NewMemory builds an empty in-memory file system.
func NewMemory() *Memory {
	return &Memory{files: map[string]string{}}
}

// Put seeds or overwrites a file's content.
func (m *Memory) Put(path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
}

func (m *Memory) FileExists(_ context.Context, path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[path]
	return ok, nil
}

func (m *Memory) DirectoryExists(ctx context.Context, path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	prefix := strings.TrimSuffix(path, "/") + "/"
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) ReadAllText(_ context.Context, path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.files[path]
	if !ok {
		return "", gderrors.NewFileNotFound(path, nil)
	}
	return content, nil
}

func (m *Memory) WriteAllText(_ context.Context, path string, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
	return nil
}

func (m *Memory) GetFiles(_ context.Context, dir string, suffix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	prefix := strings.TrimSuffix(dir, "/") + "/"
	var found []string
	for p := range m.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		if suffix == "" || strings.HasSuffix(p, suffix) {
			found = append(found, p)
		}
	}
	sort.Strings(found)
	return found, nil
}

func (m *Memory) Join(elem ...string) string {
	return url.Join(elem[0], elem[1:]...)
}
