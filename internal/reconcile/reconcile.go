package reconcile

import (
	"fmt"
	"log/slog"
	"strings"

	"shelfsync/internal/catalog"
	"shelfsync/internal/config"
	"shelfsync/internal/render"
	"shelfsync/internal/services"
	"shelfsync/internal/vault"
)

// Outcome classifies what the reconciler did with one item.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// preservedFields are frontmatter keys the user owns. They survive a
// metadata refresh even though the sync never writes them, matched
// case-insensitively.
var preservedFields = map[string]struct{}{
	"rating": {},
	"status": {},
	"notes":  {},
	"review": {},
}

// Reconciler applies one catalog item to the vault.
type Reconciler struct {
	cfg      *config.Config
	store    *vault.Store
	renderer *render.Renderer
	logger   *slog.Logger
}

// New creates a Reconciler.
func New(cfg *config.Config, store *vault.Store, renderer *render.Renderer, logger *slog.Logger) *Reconciler {
	return &Reconciler{cfg: cfg, store: store, renderer: renderer, logger: logger}
}

// Apply reconciles one item against the vault under the given mode and
// reports the outcome. Failures are returned alongside OutcomeFailed so the
// caller can keep working through the rest of the batch.
func (r *Reconciler) Apply(item *catalog.Item, mode config.SyncMode) (Outcome, error) {
	path := r.store.NotePath(item.Title())
	exists := r.store.Exists(path)

	if exists {
		switch mode {
		case config.SyncCreateOnly:
			r.logger.Debug("note exists, skipping", "path", path)
			return OutcomeSkipped, nil
		case config.SyncUpdateMetadata:
			if err := r.refreshMetadata(path, item); err != nil {
				return OutcomeFailed, fmt.Errorf("update metadata for %s: %w", path, err)
			}
			return OutcomeUpdated, nil
		case config.SyncFullOverwrite:
			// fall through to a full render
		}
	}

	content := r.renderNote(item)
	if err := r.store.Write(path, content); err != nil {
		return OutcomeFailed, fmt.Errorf("write %s: %w", path, err)
	}
	if exists {
		return OutcomeUpdated, nil
	}
	return OutcomeCreated, nil
}

// renderNote produces the full note content. An unreadable template is not
// fatal: the item falls back to the built-in layout.
func (r *Reconciler) renderNote(item *catalog.Item) string {
	template, found, err := r.store.Template()
	if err != nil {
		wrapped := services.Wrap(services.ErrTemplate, "reconcile", "resolve template", "", err)
		r.logger.Warn("template unavailable, using default layout", "error", wrapped)
		return r.renderer.DefaultContent(item)
	}
	if found {
		return r.renderer.FromTemplate(template, item)
	}
	return r.renderer.DefaultContent(item)
}

// refreshMetadata rewrites only the frontmatter of an existing note. A note
// with no frontmatter gains a block at the top. A note whose frontmatter
// still contains template tokens is treated as template-based: substitution
// runs over the whole note so the tokens resolve in place.
func (r *Reconciler) refreshMetadata(path string, item *catalog.Item) error {
	content, err := r.store.Read(path)
	if err != nil {
		return err
	}

	old, body, ok := vault.SplitFrontmatter(content)
	if !ok {
		fresh := r.renderer.Frontmatter(item)
		return r.store.Write(path, vault.JoinFrontmatter(fresh, "\n"+content))
	}

	if strings.TrimSpace(r.cfg.Output.TemplateFile) != "" && strings.Contains(old, "{{") {
		return r.store.Write(path, r.renderer.FromTemplate(content, item))
	}

	fresh := r.renderer.Frontmatter(item)
	if kept := userFields(old, fresh); len(kept) > 0 {
		fresh += "\n" + strings.Join(kept, "\n")
	}
	return r.store.Write(path, vault.JoinFrontmatter(fresh, body))
}

// userFields collects old frontmatter lines worth carrying forward: the
// preserved user keys, plus any key the fresh block does not write.
func userFields(old, fresh string) []string {
	var kept []string
	for _, line := range strings.Split(old, "\n") {
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if _, preserve := preservedFields[strings.ToLower(key)]; preserve || !strings.Contains(fresh, key+":") {
			kept = append(kept, line)
		}
	}
	return kept
}
