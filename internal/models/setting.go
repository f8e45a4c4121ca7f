package models

import (
	"time"
)

// Setting is an admin-editable key/value pair. Values are stored as strings
// regardless of logical type: boolean settings use the literal strings
// "true"/"false", numeric settings use decimal strings. Admin tooling must
// honor this convention when round-tripping values.
type Setting struct {
	Key         string    `json:"key" db:"key"`
	Value       string    `json:"value" db:"value"`
	Description string    `json:"description,omitempty" db:"description"`
	Category    string    `json:"category" db:"category"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultSettings seeds the settings table on first admin read when it is
// empty. Keys are stable; values are plain strings per the convention above.
var DefaultSettings = []Setting{
	{Key: "site_title", Value: "Research Editing Studio", Description: "Site title shown in the header and page titles", Category: "general"},
	{Key: "site_tagline", Value: "Clear writing for serious research", Description: "Short tagline under the site title", Category: "general"},
	{Key: "contact_email", Value: "hello@example.com", Description: "Address shown on the contact page", Category: "contact"},
	{Key: "posts_per_page", Value: "10", Description: "Blog index page size (decimal string)", Category: "blog"},
	{Key: "blog_enabled", Value: "true", Description: "Show the blog section (\"true\"/\"false\")", Category: "blog"},
}
