package translation

import (
	"context"

	"bitbucket.org/mmdatafocus/menu_backend/config"
	"bitbucket.org/mmdatafocus/menu_backend/models"
	"bitbucket.org/mmdatafocus/menu_backend/utils"
	"github.com/sirupsen/logrus"
)

// Translator is owned by the service instance and injected where needed, so
// tests can substitute a fake provider and inspect the cache.
type Translator struct {
	provider   Provider
	cache      *cache
	sourceLang string
}

// NewTranslator builds a translator with a bounded cache. A nil provider is
// valid and means pure passthrough.
func NewTranslator(provider Provider, cacheSize int) (*Translator, error) {
	c, err := newCache(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Translator{
		provider:   provider,
		cache:      c,
		sourceLang: config.DefaultSourceLanguage(),
	}, nil
}

// NewTranslatorFromEnv wires the provider and cache size from env.
func NewTranslatorFromEnv() (*Translator, error) {
	return NewTranslator(NewProviderFromEnv(), config.TranslationCacheSize())
}

func (t *Translator) SourceLang() string {
	return t.sourceLang
}

// CachedTexts reports how many source texts currently have cached
// translations. Exposed for tests and diagnostics.
func (t *Translator) CachedTexts() int {
	return t.cache.len()
}

// Translate is strictly best-effort: identity when target equals source (no
// cache touch), cached result when present, otherwise one provider call. Any
// failure, including a missing provider, falls back to the source text and
// never surfaces an error or blocks rendering.
func (t *Translator) Translate(ctx context.Context, text, targetLang string) string {
	targetLang = utils.NormalizeLanguage(targetLang)
	if text == "" || targetLang == "" || targetLang == t.sourceLang {
		return text
	}

	if translated, ok := t.cache.get(text, t.sourceLang, targetLang); ok {
		return translated
	}

	if t.provider == nil {
		return text
	}

	translated, err := t.provider.Translate(ctx, text, t.sourceLang, targetLang)
	if err != nil {
		config.GetLogger().WithFields(logrus.Fields{
			"module":      "translation",
			"target_lang": targetLang,
		}).Debug("translation failed; serving source text: " + err.Error())
		return text
	}

	t.cache.put(text, t.sourceLang, targetLang, translated)
	return translated
}

// TranslateMenu translates every leaf string of an assembled menu tree into
// the target language, field by field: each field is either the source text
// or a whole translation of it, never a partial mix. The input tree is left
// untouched; a translated copy is returned. Identity target returns the
// input as-is.
func (t *Translator) TranslateMenu(ctx context.Context, tree *models.MenuTree, targetLang string) *models.MenuTree {
	targetLang = utils.NormalizeLanguage(targetLang)
	if tree == nil || targetLang == "" || targetLang == t.sourceLang {
		return tree
	}

	out := &models.MenuTree{
		Restaurant: tree.Restaurant,
		Template:   tree.Template,
		Categories: make([]*models.MenuBranch, 0, len(tree.Categories)),
		Skipped:    tree.Skipped,
	}

	// The restaurant header is content too. Location stays as written: it is
	// a postal address, not prose.
	if tree.Restaurant != nil {
		restaurant := *tree.Restaurant
		restaurant.Name = t.Translate(ctx, restaurant.Name, targetLang)
		restaurant.CategoryTag = t.Translate(ctx, restaurant.CategoryTag, targetLang)
		out.Restaurant = &restaurant
	}

	for _, branch := range tree.Categories {
		translatedBranch := &models.MenuBranch{
			MenuCategory: branch.MenuCategory,
			Items:        make([]*models.MenuLeaf, 0, len(branch.Items)),
		}
		translatedBranch.Name = t.Translate(ctx, branch.Name, targetLang)
		translatedBranch.Description = t.Translate(ctx, branch.Description, targetLang)

		for _, leaf := range branch.Items {
			translatedLeaf := &models.MenuLeaf{
				MenuItem: leaf.MenuItem,
				Price:    leaf.Price,
			}
			translatedLeaf.Name = t.Translate(ctx, leaf.Name, targetLang)
			translatedLeaf.Description = t.Translate(ctx, leaf.Description, targetLang)

			allergens := make([]models.Allergen, len(leaf.Allergens))
			copy(allergens, leaf.Allergens)
			for i := range allergens {
				allergens[i].Name = t.Translate(ctx, allergens[i].Name, targetLang)
				allergens[i].Description = t.Translate(ctx, allergens[i].Description, targetLang)
			}
			translatedLeaf.Allergens = allergens

			translatedBranch.Items = append(translatedBranch.Items, translatedLeaf)
		}
		out.Categories = append(out.Categories, translatedBranch)
	}

	return out
}
