package akonadi

import (
	"os"
	"path/filepath"

	"github.com/kdepim/akonadi.go/pkg/logger"
	"github.com/kdepim/akonadi.go/pkg/models"
)

// PayloadLoader reads payload data the server delivered as a file reference.
type PayloadLoader interface {
	LoadPayload(name string) ([]byte, error)
}

// FilePayloadLoader reads external payloads from disk. Relative names are
// resolved against Dir.
type FilePayloadLoader struct {
	Dir string
}

func (l FilePayloadLoader) LoadPayload(name string) ([]byte, error) {
	if !filepath.IsAbs(name) && l.Dir != "" {
		name = filepath.Join(l.Dir, name)
	}
	return os.ReadFile(name)
}

// ProtocolHelper converts between models and their wire form where that
// depends on collaborators: the attribute types known to the application,
// the location of external payloads and logging of tolerated anomalies.
//
// A ProtocolHelper holds no per-call state and is safe for concurrent use.
type ProtocolHelper struct {
	logger     logger.Logger
	attributes *models.AttributeFactory
	payloads   PayloadLoader
}

type Option func(*ProtocolHelper)

func WithLogger(l logger.Logger) Option {
	return func(h *ProtocolHelper) {
		h.logger = l
	}
}

func WithAttributeFactory(f *models.AttributeFactory) Option {
	return func(h *ProtocolHelper) {
		h.attributes = f
	}
}

func WithPayloadLoader(l PayloadLoader) Option {
	return func(h *ProtocolHelper) {
		h.payloads = l
	}
}

// NewProtocolHelper returns a helper that logs nothing, knows the built-in
// attribute types and reads external payloads relative to the working directory.
func NewProtocolHelper(opts ...Option) *ProtocolHelper {
	h := &ProtocolHelper{
		logger:     logger.Nop(),
		attributes: models.NewAttributeFactory(),
		payloads:   FilePayloadLoader{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
