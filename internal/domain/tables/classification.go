package tables

import (
	"sort"
	"strings"
)

// Classification answers slug, conference and position group lookups. Build
// one with New and pass it to the builders.
type Classification struct {
	conferences   map[string]string
	slugOverrides map[string]string
	groupPriority []string
	positions     map[string]string
}

// Option applies a configuration option to a Classification.
type Option func(*Classification)

// WithConferences replaces the college to conference table.
func WithConferences(m map[string]string) Option {
	return func(c *Classification) {
		if m != nil {
			c.conferences = copyMap(m)
		}
	}
}

// WithSlugOverrides replaces the slug override table.
func WithSlugOverrides(m map[string]string) Option {
	return func(c *Classification) {
		if m != nil {
			c.slugOverrides = copyMap(m)
		}
	}
}

// WithGroupPriority replaces the conference group display order.
func WithGroupPriority(order []string) Option {
	return func(c *Classification) {
		if len(order) > 0 {
			c.groupPriority = append([]string(nil), order...)
		}
	}
}

// New returns the default tables with opts applied.
func New(opts ...Option) *Classification {
	c := &Classification{
		conferences:   defaultConferences(),
		slugOverrides: defaultSlugOverrides(),
		groupPriority: defaultGroupPriority(),
		positions:     positionIndex(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CollegeName trims name and substitutes UnknownCollege for blanks.
func CollegeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return UnknownCollege
	}
	return name
}

// Slug derives the URL slug for a college display name. It is never empty.
func (c *Classification) Slug(college string) string {
	name := CollegeName(college)
	if s, ok := c.slugOverrides[name]; ok {
		return s
	}
	if s := Slugify(name); s != "" {
		return s
	}
	return Slugify(UnknownCollege)
}

// Slugify lower-cases s, spells & as "and", and collapses every run of
// characters outside [a-z0-9] into one hyphen.
func Slugify(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), "&", "and")

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteByte(ch)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// Conference looks up college by exact trimmed name.
func (c *Classification) Conference(college string) string {
	if conf, ok := c.conferences[CollegeName(college)]; ok {
		return conf
	}
	return FallbackConference
}

// Group is the home page grouping label. It equals the conference.
func (c *Classification) Group(college string) string {
	return c.Conference(college)
}

// Colleges returns every classified college name, sorted.
func (c *Classification) Colleges() []string {
	out := make([]string, 0, len(c.conferences))
	for name := range c.conferences {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// GroupPriority returns the conference group display order.
func (c *Classification) GroupPriority() []string {
	return append([]string(nil), c.groupPriority...)
}

// PositionGroup maps a raw position code to a canonical group.
func (c *Classification) PositionGroup(code string) string {
	if g, ok := c.positions[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return g
	}
	return GroupOther
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
