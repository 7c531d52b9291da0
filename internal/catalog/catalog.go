// Package catalog holds the static, per-category fee structures used to
// price tokenized real-estate assets. The catalog is loaded once and is
// read-only for the lifetime of the process.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"estatefees/internal/models"

	"gopkg.in/yaml.v3"
)

const DefaultCurrency = "USD"

var (
	ErrDuplicateCategory = errors.New("duplicate category id")
	ErrEmptyCategoryID   = errors.New("category id must not be empty")
)

//go:embed catalog.yaml
var embedded []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

type document struct {
	Categories []models.CategoryFeeStructure `yaml:"categories"`
}

// Catalog is an immutable, ordered set of category fee structures.
type Catalog struct {
	order   []string
	entries map[string]models.CategoryFeeStructure
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(bytes.NewReader(embedded))
	})
	return defaultCatalog, defaultErr
}

// LoadFile reads a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a YAML catalog document.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return New(doc.Categories)
}

// New builds a catalog from already decoded structures.
func New(structures []models.CategoryFeeStructure) (*Catalog, error) {
	c := &Catalog{
		order:   make([]string, 0, len(structures)),
		entries: make(map[string]models.CategoryFeeStructure, len(structures)),
	}
	for _, s := range structures {
		id := strings.TrimSpace(s.CategoryID)
		if id == "" {
			return nil, ErrEmptyCategoryID
		}
		if _, exists := c.entries[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, id)
		}
		s.CategoryID = id
		if s.Currency == "" {
			s.Currency = DefaultCurrency
		}
		c.order = append(c.order, id)
		c.entries[id] = s.Clone()
	}
	return c, nil
}

// Get returns a copy of the category fee structure for id.
func (c *Catalog) Get(id string) (models.CategoryFeeStructure, bool) {
	if c == nil {
		return models.CategoryFeeStructure{}, false
	}
	s, ok := c.entries[id]
	if !ok {
		return models.CategoryFeeStructure{}, false
	}
	return s.Clone(), true
}

// List returns copies of all entries in catalog order.
func (c *Catalog) List() []models.CategoryFeeStructure {
	out := make([]models.CategoryFeeStructure, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id].Clone())
	}
	return out
}

func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

func (c *Catalog) Len() int {
	return len(c.order)
}

// Summaries returns the list view used by the category picker.
func (c *Catalog) Summaries() []models.CategorySummary {
	out := make([]models.CategorySummary, 0, len(c.order))
	for _, id := range c.order {
		s := c.entries[id]
		out = append(out, models.CategorySummary{
			CategoryID:        s.CategoryID,
			CategoryName:      s.CategoryName,
			BasePropertyValue: s.BasePropertyValue,
			Currency:          s.Currency,
			TotalPercentage:   s.TotalPercentage,
			FeeCount:          len(s.FeeItems),
		})
	}
	return out
}
