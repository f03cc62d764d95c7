package domain

import "fmt"

// Filter selects which conversations the inspector sidebar lists.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterStarred   Filter = "starred"
	FilterMessenger Filter = Filter(PlatformMessenger)
	FilterInstagram Filter = Filter(PlatformInstagram)
	FilterWebsite   Filter = Filter(PlatformWebsite)
	FilterArchived  Filter = "archived"
)

var Filters = []Filter{FilterAll, FilterStarred, FilterMessenger, FilterInstagram, FilterWebsite, FilterArchived}

func (f Filter) Valid() bool {
	for _, v := range Filters {
		if f == v {
			return true
		}
	}
	return false
}

// Platform returns the platform a filter narrows to, if it is a platform filter.
func (f Filter) Platform() (Platform, bool) {
	p := Platform(f)
	return p, p.Valid()
}

func ParseFilter(s string) (Filter, error) {
	f := Filter(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown filter %q", s)
	}
	return f, nil
}

// Matches reports whether c belongs in the list selected by f.
func (f Filter) Matches(c *Conversation) bool {
	switch f {
	case FilterArchived:
		return c.Archived
	case FilterAll:
		return !c.Archived
	case FilterStarred:
		return c.Starred && !c.Archived
	}
	if p, ok := f.Platform(); ok {
		return c.Platform == p && !c.Archived
	}
	return false
}
