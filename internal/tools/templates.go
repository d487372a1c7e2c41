package tools

import (
	"fmt"
	"strings"
)

// Template is a social media target frame.
type Template struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	AspectRatio string `json:"aspect_ratio"`
}

var templates = []Template{
	newTemplate("Instagram Post", 1080, 1080, "1:1"),
	newTemplate("Instagram Story", 1080, 1920, "9:16"),
	newTemplate("Facebook Post", 1200, 630, "1.91:1"),
	newTemplate("Facebook Cover", 820, 312, "2.63:1"),
	newTemplate("Twitter Post", 1200, 675, "16:9"),
	newTemplate("Twitter Header", 1500, 500, "3:1"),
	newTemplate("LinkedIn Post", 1200, 627, "1.91:1"),
	newTemplate("LinkedIn Cover", 1584, 396, "4:1"),
	newTemplate("YouTube Thumbnail", 1280, 720, "16:9"),
	newTemplate("Pinterest Pin", 1000, 1500, "2:3"),
}

func newTemplate(name string, w, h int, ratio string) Template {
	return Template{
		Name:        name,
		Slug:        slug(name),
		Width:       w,
		Height:      h,
		AspectRatio: ratio,
	}
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// Templates returns a copy of the template catalog in display order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// FindTemplate looks a template up by display name or slug, ignoring case.
func FindTemplate(key string) (Template, error) {
	k := slug(key)
	for _, t := range templates {
		if t.Slug == k {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, key)
}
