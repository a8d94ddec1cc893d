package posts

import (
	"fmt"
	"strings"
)

const (
	MaxContentLength = 240
	MaxImages        = 4
	maxImageName     = 128
)

// DedupeImageNames renames repeated names so every image gets a distinct storage key.
// The n-th repeat of a name gets the suffix " (n)"; the first occurrence is kept as is.
// Generated names are registered too, so a later literal "a.png (1)" is renamed again,
// and a suffix already used by an earlier literal is skipped.
func DedupeImageNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}

	seen := make(map[string]int, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		count, exists := seen[name]
		if !exists {
			seen[name] = 0
			out = append(out, name)
			continue
		}

		// Skip suffixes already taken by a literal name earlier in the list
		renamed := ""
		for {
			count++
			renamed = fmt.Sprintf("%s (%d)", name, count)
			if _, taken := seen[renamed]; !taken {
				break
			}
		}
		seen[name] = count
		seen[renamed] = 0
		out = append(out, renamed)
	}
	return out
}

func validateImageNames(names []string) error {
	if len(names) > MaxImages {
		return NewValidationError("images", fmt.Sprintf("at most %d images allowed", MaxImages))
	}
	for _, name := range names {
		switch {
		case strings.TrimSpace(name) == "":
			return NewValidationError("images", "image name must not be empty")
		case strings.ContainsAny(name, "/\\"):
			return NewValidationError("images", "image name must not contain path separators")
		case len(name) > maxImageName:
			return NewValidationError("images", fmt.Sprintf("image name exceeds %d bytes", maxImageName))
		}
	}
	return nil
}
