package style

import (
	"github.com/promptview/promptview"
)

// Rule pairs a selector with style declarations.
type Rule struct {
	Selector     *Selector
	Declarations Props
	order        int
}

// Manager holds style rules and resolves them against blocks. Construct
// one explicitly and inject it into the renderer; create a fresh instance
// per test to keep rule sets isolated.
//
// Registration calls are the only mutations. Resolution is read-only, so
// concurrent Resolve calls are safe as long as no registration runs at
// the same time — reader/writer discipline is the caller's concern.
type Manager struct {
	rules []*Rule
	next  int
}

// NewManager creates an empty style manager.
func NewManager() *Manager {
	return &Manager{}
}

// AddRule registers one rule. Later-registered rules of equal specificity
// override earlier ones.
func (m *Manager) AddRule(selector string, declarations Props) error {
	sel, err := ParseSelector(selector)
	if err != nil {
		return err
	}
	m.rules = append(m.rules, &Rule{
		Selector:     sel,
		Declarations: declarations,
		order:        m.next,
	})
	m.next++
	return nil
}

// AddStyle registers the same declarations under several selectors.
func (m *Manager) AddStyle(selectors []string, declarations Props) error {
	for _, sel := range selectors {
		if err := m.AddRule(sel, declarations); err != nil {
			return err
		}
	}
	return nil
}

// Reset removes every registered rule.
func (m *Manager) Reset() {
	m.rules = nil
	m.next = 0
}

// Rules returns the registered rules in registration order.
func (m *Manager) Rules() []*Rule {
	return m.rules
}

// Resolve computes the block's effective style: inherited properties from
// the ancestor chain (excluding the format family), then matching rules
// by specificity with later-registration tiebreak, then the block's
// inline style at maximum priority. The second return lists inline style
// tokens that named no known directive; the renderer surfaces them as
// undefined-style errors.
//
// Resolve is a pure function of the tree's current tags and styles; it
// never mutates the manager or the tree.
func (m *Manager) Resolve(b *promptview.Block) (Props, []string) {
	props := Props{}

	// Inherited properties first, nearest ancestor winning.
	if parent := b.Parent(); parent != nil {
		inherited, _ := m.Resolve(parent)
		for k, v := range inherited {
			if Inheritable(k) {
				props[k] = v
			}
		}
	}

	// Matching rules, ranked by (specificity, registration order).
	type winner struct {
		spec  Specificity
		order int
	}
	winners := map[string]winner{}
	for _, rule := range m.rules {
		if !rule.Selector.Matches(b) {
			continue
		}
		spec := rule.Selector.Specificity()
		for prop, value := range rule.Declarations {
			prev, seen := winners[prop]
			if seen {
				cmp := spec.Compare(prev.spec)
				if cmp < 0 || (cmp == 0 && rule.order < prev.order) {
					continue
				}
			}
			winners[prop] = winner{spec: spec, order: rule.order}
			props[prop] = value
		}
	}

	// Inline style wins over everything.
	inline, unknown := ParseTokens(b.Styles())
	for k, v := range inline {
		props[k] = v
	}
	return props, unknown
}
