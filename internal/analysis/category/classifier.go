package category

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyPool = errors.New("category rule has no responses")

// Rule 描述一个分类的关键词、回复池与建议池。
type Rule struct {
	Category    Label
	Keywords    []string
	Responses   []string
	Suggestions []string
}

// Table is an immutable, ordered rule list plus the fallback rule used when
// no keyword matches.
type Table struct {
	rules    []Rule
	fallback Rule
}

// NewTable validates and copies the supplied rules.
func NewTable(rules []Rule, fallback Rule) (*Table, error) {
	copied := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if len(rule.Responses) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyPool, rule.Category)
		}
		copied = append(copied, cloneRule(rule))
	}
	if len(fallback.Responses) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPool, fallback.Category)
	}

	return &Table{rules: copied, fallback: cloneRule(fallback)}, nil
}

// DefaultTable returns the built-in mental health rule table.
func DefaultTable() *Table {
	table, err := NewTable(defaultRules, defaultFallback)
	if err != nil {
		panic(err)
	}
	return table
}

// Classify 将文本归入第一个命中的分类，未命中时返回兜底分类。
func (t *Table) Classify(text string) Label {
	normalized := strings.ToLower(text)
	for _, rule := range t.rules {
		for _, keyword := range rule.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(normalized, strings.ToLower(keyword)) {
				return rule.Category
			}
		}
	}
	return t.fallback.Category
}

// Rule looks up the rule for label. The returned rule shares no memory with
// the table.
func (t *Table) Rule(label Label) (Rule, bool) {
	for _, rule := range t.rules {
		if rule.Category == label {
			return cloneRule(rule), true
		}
	}
	if t.fallback.Category == label {
		return cloneRule(t.fallback), true
	}
	return Rule{}, false
}

// Match classifies text and returns the matching rule.
func (t *Table) Match(text string) Rule {
	rule, _ := t.Rule(t.Classify(text))
	return rule
}

func cloneRule(rule Rule) Rule {
	return Rule{
		Category:    rule.Category,
		Keywords:    append([]string(nil), rule.Keywords...),
		Responses:   append([]string(nil), rule.Responses...),
		Suggestions: append([]string(nil), rule.Suggestions...),
	}
}
