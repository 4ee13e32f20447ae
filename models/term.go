package models

// Built-in taxonomies
const (
	TaxonomyCategory = "category"
	TaxonomyPostTag  = "post_tag"
)

// Term is a categorization label within one taxonomy
// Collection: terms
type Term struct {
	ID       int64  `bson:"_id" json:"id" yaml:"id"`
	Name     string `bson:"name" json:"name" yaml:"name"`
	Slug     string `bson:"slug" json:"slug" yaml:"slug"`
	Taxonomy string `bson:"taxonomy" json:"taxonomy" yaml:"taxonomy"`
	Parent   int64  `bson:"parent" json:"parent" yaml:"parent"`
}
