package keywords

import "strings"

// Rule pairs an exact trigger string with the card sent when it matches.
type Rule struct {
	Trigger  string   `mapstructure:"trigger" json:"trigger"`
	Response Response `mapstructure:"response" json:"response"`
}

// Response describes the reply card and its link buttons.
type Response struct {
	Embed   Embed    `mapstructure:"embed" json:"embed"`
	Buttons []Button `mapstructure:"buttons" json:"buttons"`
}

// Embed holds the card text. Color is a hex string such as "0x0099ff".
type Embed struct {
	Title       string `mapstructure:"title" json:"title"`
	Description string `mapstructure:"description" json:"description"`
	Color       string `mapstructure:"color" json:"color"`
}

// Button is a link button. Label is nil when the file omits it, which is
// different from an explicitly empty label.
type Button struct {
	Label *string `mapstructure:"label" json:"label"`
	URL   string  `mapstructure:"url" json:"url"`
	Emoji string  `mapstructure:"emoji" json:"emoji"`
}

// Table is an ordered, read-only list of rules.
type Table struct {
	rules []Rule
}

// NewTable copies rules into a new table, preserving order.
func NewTable(rules []Rule) *Table {
	return &Table{rules: append([]Rule(nil), rules...)}
}

// Empty returns a table with no rules.
func Empty() *Table {
	return &Table{}
}

// Len returns the number of rules.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}

// Rules returns a copy of the rules in table order.
func (t *Table) Rules() []Rule {
	if t == nil {
		return nil
	}
	return append([]Rule(nil), t.rules...)
}

// Match returns the first rule whose trigger equals text with surrounding
// whitespace removed. Comparison is case-sensitive.
func (t *Table) Match(text string) (Rule, bool) {
	if t == nil {
		return Rule{}, false
	}
	text = strings.TrimSpace(text)
	for _, rule := range t.rules {
		if rule.Trigger == text {
			return rule, true
		}
	}
	return Rule{}, false
}
