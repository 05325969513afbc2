package style

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Sheet is the YAML form of a rule set:
//
//	rules:
//	  - selector: "task"
//	    props:
//	      format: markdown
//	  - selector: "task .important"
//	    props:
//	      children-format: list
//	      bullet: "-"
type Sheet struct {
	Rules []SheetRule `yaml:"rules"`
}

// SheetRule is one rule entry in a stylesheet.
type SheetRule struct {
	Selector string         `yaml:"selector"`
	Props    map[string]any `yaml:"props"`
}

// LoadSheet parses a YAML stylesheet and registers its rules on the
// manager in document order, so the usual later-wins tiebreak applies.
func (m *Manager) LoadSheet(data []byte) error {
	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return fmt.Errorf("style: parse sheet: %w", err)
	}
	for _, rule := range sheet.Rules {
		if rule.Selector == "" {
			return fmt.Errorf("style: sheet rule missing selector")
		}
		if err := m.AddRule(rule.Selector, Props(rule.Props)); err != nil {
			return err
		}
	}
	return nil
}
