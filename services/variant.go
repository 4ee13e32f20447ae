package services

import (
	"context"
	"fmt"
	"strings"

	"extend-xmlrpc/dto"
	"extend-xmlrpc/models"
)

const (
	VariantBDN = "bdn"
	VariantMy  = "my"

	DefaultPublicationTaxonomy = "publication"
)

// Variant fills in the output members that differ between method flavors:
// the shape of categories, the secondary taxonomy and the author fields.
type Variant interface {
	Name() string
	Decorate(ctx context.Context, host Host, post *models.Post, out *dto.PostStruct) error
}

// VariantByName returns the variant registered under name.
func VariantByName(name, publicationTaxonomy string) (Variant, error) {
	switch name {
	case VariantBDN:
		if publicationTaxonomy == "" {
			publicationTaxonomy = DefaultPublicationTaxonomy
		}
		return bdnVariant{publicationTaxonomy: publicationTaxonomy}, nil
	case VariantMy:
		return myVariant{}, nil
	default:
		return nil, fmt.Errorf("unknown getPosts variant %q", name)
	}
}

// bdnVariant: categories with parent ids, publications, wp_authors
type bdnVariant struct {
	publicationTaxonomy string
}

func (bdnVariant) Name() string { return VariantBDN }

func (v bdnVariant) Decorate(ctx context.Context, host Host, post *models.Post, out *dto.PostStruct) error {
	cats, err := host.Categories(ctx, post)
	if err != nil {
		return fmt.Errorf("categories of post %d: %w", post.ID, err)
	}
	categories := make([]dto.CategoryStruct, 0, len(cats))
	for _, c := range cats {
		categories = append(categories, dto.CategoryStruct{Name: c.Name, Parent: c.Parent})
	}
	out.Categories = categories

	pubs, err := host.Terms(ctx, post, v.publicationTaxonomy)
	if err != nil {
		return fmt.Errorf("%s terms of post %d: %w", v.publicationTaxonomy, post.ID, err)
	}
	out.Publications = termNames(pubs)

	coauthors, err := host.Coauthors(ctx, post)
	if err != nil {
		return fmt.Errorf("coauthors of post %d: %w", post.ID, err)
	}
	if len(coauthors) == 0 {
		author, err := host.Author(ctx, post)
		if err != nil {
			return fmt.Errorf("author of post %d: %w", post.ID, err)
		}
		coauthors = []models.User{*author}
	}
	authors := make([]dto.AuthorStruct, 0, len(coauthors))
	for _, u := range coauthors {
		authors = append(authors, dto.NewAuthorStruct(u))
	}
	out.Authors = authors
	return nil
}

// myVariant: flat category names, mt_keywords, wp_author_display_name
type myVariant struct{}

func (myVariant) Name() string { return VariantMy }

func (myVariant) Decorate(ctx context.Context, host Host, post *models.Post, out *dto.PostStruct) error {
	cats, err := host.Categories(ctx, post)
	if err != nil {
		return fmt.Errorf("categories of post %d: %w", post.ID, err)
	}
	out.Categories = termNames(cats)

	tags, err := host.Tags(ctx, post)
	if err != nil {
		return fmt.Errorf("tags of post %d: %w", post.ID, err)
	}
	keywords := strings.Join(termNames(tags), ", ")
	out.Keywords = &keywords

	author, err := host.Author(ctx, post)
	if err != nil {
		return fmt.Errorf("author of post %d: %w", post.ID, err)
	}
	display := author.DisplayName
	out.AuthorDisplay = &display
	return nil
}

func termNames(terms []models.Term) []string {
	names := make([]string, 0, len(terms))
	for _, t := range terms {
		names = append(names, t.Name)
	}
	return names
}
