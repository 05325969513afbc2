package style

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/promptview/promptview"
)

// Specificity ranks a selector as (id count, class count, tag count),
// compared lexicographically — the same model as CSS.
type Specificity [3]int

// Compare returns -1, 0, or 1 as s ranks below, equal to, or above o.
func (s Specificity) Compare(o Specificity) int {
	for i := range s {
		if s[i] != o[i] {
			if s[i] < o[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

var selectorPartPattern = regexp.MustCompile(`^[#.]?[a-zA-Z0-9_-]+$`)

// selectorPart is one simple selector: a bare tag, ".class", or "#id".
// All three match against block tags; they differ only in specificity.
type selectorPart struct {
	tag     string
	id      string
	classes []string
}

func parsePart(raw string) (selectorPart, error) {
	if !selectorPartPattern.MatchString(raw) {
		return selectorPart{}, fmt.Errorf("style: invalid selector part %q", raw)
	}
	switch {
	case strings.HasPrefix(raw, "#"):
		return selectorPart{id: raw[1:]}, nil
	case strings.HasPrefix(raw, "."):
		return selectorPart{classes: []string{raw[1:]}}, nil
	default:
		return selectorPart{tag: raw}, nil
	}
}

func (p selectorPart) specificity() Specificity {
	s := Specificity{}
	if p.id != "" {
		s[0] = 1
	}
	s[1] = len(p.classes)
	if p.tag != "" {
		s[2] = 1
	}
	return s
}

func (p selectorPart) matches(b *promptview.Block) bool {
	if len(b.Tags()) == 0 {
		return false
	}
	if p.id != "" && !b.HasTag(p.id) {
		return false
	}
	for _, cls := range p.classes {
		if !b.HasTag(cls) {
			return false
		}
	}
	if p.tag != "" && !b.HasTag(p.tag) {
		return false
	}
	return true
}

// Selector matches blocks by their tags. A space-separated selector such
// as "task .nested" matches a block tagged ".nested" with an ancestor
// tagged "task" anywhere above it.
type Selector struct {
	raw         string
	parts       []selectorPart
	specificity Specificity
}

// ParseSelector parses a selector string.
func ParseSelector(raw string) (*Selector, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, fmt.Errorf("style: empty selector")
	}
	sel := &Selector{raw: raw}
	for _, f := range fields {
		part, err := parsePart(f)
		if err != nil {
			return nil, err
		}
		sel.parts = append(sel.parts, part)
		spec := part.specificity()
		for i := range sel.specificity {
			sel.specificity[i] += spec[i]
		}
	}
	return sel, nil
}

// Raw returns the selector source string.
func (s *Selector) Raw() string {
	return s.raw
}

// Specificity returns the combined specificity of all parts.
func (s *Selector) Specificity() Specificity {
	return s.specificity
}

// Matches reports whether the block matches this selector. For descendant
// selectors the block must match the last part, and each earlier part
// must match some strictly higher ancestor, in order.
func (s *Selector) Matches(b *promptview.Block) bool {
	last := len(s.parts) - 1
	if !s.parts[last].matches(b) {
		return false
	}
	current := b.Parent()
	for i := last - 1; i >= 0; i-- {
		found := false
		for current != nil {
			if s.parts[i].matches(current) {
				found = true
				current = current.Parent()
				break
			}
			current = current.Parent()
		}
		if !found {
			return false
		}
	}
	return true
}
