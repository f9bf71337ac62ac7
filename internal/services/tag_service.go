package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"decaf/internal/models"
	"decaf/internal/repositories"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the canonical URL-safe identifier for a tag name:
// lowercase, runs of non-alphanumerics collapsed to a single hyphen,
// leading and trailing hyphens stripped. Deterministic and idempotent.
func Slugify(name string) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// TagService creates tags and idempotently reconciles lists of raw tag
// names onto recipes, deduplicating by slug.
type TagService struct {
	tagRepo repositories.TagRepository
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo repositories.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// CreateTag creates a single tag from a raw name. The name is trimmed
// and the slug computed; an existing name or slug is a conflict.
func (s *TagService) CreateTag(name string) (*models.Tag, error) {
	trimmed := strings.TrimSpace(name)
	tag := &models.Tag{
		Name: trimmed,
		Slug: Slugify(trimmed),
	}
	if err := s.tagRepo.Create(tag); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, models.ConflictError("Tag already exists")
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// AddTagsToRecipe ensures a tag row exists for each requested name and
// links each to the recipe, returning the final tag set.
//
// Exact-name matches (case-sensitive) are the fast path; everything else
// falls back to slug lookup, so names that only differ in case or
// punctuation resolve to the existing tag. Insert races lose gracefully:
// a unique violation on the tag insert triggers a re-read by slug, and a
// unique violation on the junction insert means the link already exists.
// Calling this twice with the same input is a no-op the second time.
func (s *TagService) AddTagsToRecipe(recipeID string, tagNames []string) ([]models.Tag, error) {
	if len(tagNames) == 0 {
		return nil, models.BadRequestError("At least one tag name is required")
	}

	existing, err := s.tagRepo.GetByNames(tagNames)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing tags: %w", err)
	}

	existingNames := make(map[string]bool, len(existing))
	seen := make(map[string]bool, len(tagNames))
	resolved := make([]models.Tag, 0, len(tagNames))
	for _, tag := range existing {
		existingNames[tag.Name] = true
		if !seen[tag.ID] {
			seen[tag.ID] = true
			resolved = append(resolved, tag)
		}
	}

	for _, name := range tagNames {
		if existingNames[name] {
			continue
		}
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}

		tag, err := s.resolveBySlug(trimmed)
		if err != nil {
			return nil, err
		}
		if !seen[tag.ID] {
			seen[tag.ID] = true
			resolved = append(resolved, *tag)
		}
	}

	for _, tag := range resolved {
		if err := s.tagRepo.LinkToRecipe(recipeID, tag.ID); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				continue // already linked
			}
			return nil, fmt.Errorf("failed to link tag %s: %w", tag.ID, err)
		}
	}

	return resolved, nil
}

// resolveBySlug finds the tag a trimmed name normalizes to, creating it
// if missing. A lost insert race resolves to the row the winner created.
func (s *TagService) resolveBySlug(trimmed string) (*models.Tag, error) {
	slug := Slugify(trimmed)

	tag, err := s.tagRepo.GetBySlug(slug)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up tag by slug %s: %w", slug, err)
	}

	newTag := &models.Tag{Name: trimmed, Slug: slug}
	err = s.tagRepo.Create(newTag)
	if err == nil {
		return newTag, nil
	}
	if !errors.Is(err, repositories.ErrDuplicate) {
		return nil, fmt.Errorf("failed to create tag %s: %w", trimmed, err)
	}

	// Another call created the same slug between our lookup and insert.
	tag, err = s.tagRepo.GetBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read tag by slug %s: %w", slug, err)
	}
	return tag, nil
}
