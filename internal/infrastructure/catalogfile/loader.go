package catalogfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/AnujNegi10/kfc-v3-new/internal/domain"
	"gopkg.in/yaml.v3"
)

// menuFile is the document form: a top-level "products" list
type menuFile struct {
	Products []domain.Product `yaml:"products"`
}

// Load reads a catalog seed file. YAML and JSON are both accepted, either as a
// bare list of products or as a document with a "products" key.
func Load(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	products, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return products, nil
}

// Parse decodes and validates catalog seed data
func Parse(data []byte) ([]domain.Product, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid catalog document: %w", err)
	}
	if len(root.Content) == 0 {
		return []domain.Product{}, nil
	}

	var products []domain.Product
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&products); err != nil {
			return nil, fmt.Errorf("invalid product list: %w", err)
		}
	case yaml.MappingNode:
		var file menuFile
		if err := doc.Decode(&file); err != nil {
			return nil, fmt.Errorf("invalid catalog document: %w", err)
		}
		products = file.Products
	default:
		return nil, fmt.Errorf("invalid catalog document: expected a list or a mapping, line %d", doc.Line)
	}

	if err := validate(products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func validate(products []domain.Product) error {
	seen := make(map[string]bool, len(products))
	for i, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("product #%d (%q) has no id", i+1, p.Name)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("product %s has no name", p.ID)
		}
		if p.Price < 0 {
			return fmt.Errorf("product %s has negative price %.2f", p.ID, p.Price)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate product id %s", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
