package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/mockcoach/pkg/plan"
)

// PlanMetadata is the frontmatter of a plan stored as a markdown note. The note body becomes
// the plan description unless the frontmatter sets one.
type PlanMetadata struct {
	Name          string   `json:"name,omitempty" mapstructure:"name"`
	Description   string   `json:"description,omitempty" mapstructure:"description"`
	Profile       string   `json:"profile,omitempty" mapstructure:"profile"`
	Participants  []string `json:"participants" mapstructure:"participants"`
	NoInteraction bool     `json:"no_interaction,omitempty" mapstructure:"no_interaction"`
	Failures      []any    `json:"failures,omitempty" mapstructure:"failures"`
	Steps         []any    `json:"steps" mapstructure:"steps"`
}

// Vault reads plan documents from a Loam repository.
type Vault struct {
	Repo *loam.TypedRepository[PlanMetadata]
}

// New creates a vault over an existing typed repository.
func New(repo *loam.TypedRepository[PlanMetadata]) *Vault {
	return &Vault{Repo: repo}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string) (*Vault, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// The vault never writes plans, and read-only mode keeps Loam out of its sandbox behavior.
	repo, err := loam.Init(absPath, loam.WithReadOnly(true))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[PlanMetadata](repo)), nil
}

// List returns the plan ids in the vault, without file extensions.
func (v *Vault) List(ctx context.Context) ([]string, error) {
	docs, err := v.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		id := trimExtension(doc.ID)
		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: plan '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Load reads one plan.
func (v *Vault) Load(ctx context.Context, id string) (*plan.Document, error) {
	doc, err := v.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	return toDocument(id, doc.Data, doc.Content)
}

func toDocument(id string, meta PlanMetadata, content string) (*plan.Document, error) {
	// Re-encoding hands the generic step and failure items to the same decoder as plan files.
	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan %s: %w", id, err)
	}
	doc, err := plan.Parse(data, "json")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	if doc.Name == "" {
		doc.Name = trimExtension(id)
	}
	if doc.Description == "" {
		doc.Description = strings.TrimSpace(content)
	}
	return doc, nil
}

func trimExtension(id string) string {
	return filepath.ToSlash(strings.TrimSuffix(id, filepath.Ext(id)))
}
