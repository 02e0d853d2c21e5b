package developer

import "strings"

// Framework is a technology tag attached to a Developer. Two frameworks are
// the same when their names match case-insensitively.
type Framework struct {
	Name string `json:"name" yaml:"name"`
}

func (f Framework) Equal(other Framework) bool {
	return strings.EqualFold(f.Name, other.Name)
}

type Developer struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	IsJunior   bool        `json:"isJunior" yaml:"isJunior"`
	Frameworks []Framework `json:"frameworks" yaml:"frameworks"`
}

// Clone returns a deep copy; the framework slice is never shared.
func (d Developer) Clone() Developer {
	out := d
	out.Frameworks = make([]Framework, len(d.Frameworks))
	copy(out.Frameworks, d.Frameworks)
	return out
}

// HasFramework reports whether name is already in the list, ignoring case.
func (d Developer) HasFramework(name string) bool {
	probe := Framework{Name: name}
	for _, f := range d.Frameworks {
		if f.Equal(probe) {
			return true
		}
	}
	return false
}

// FrameworkNames returns the framework names in list order.
func (d Developer) FrameworkNames() []string {
	names := make([]string, 0, len(d.Frameworks))
	for _, f := range d.Frameworks {
		names = append(names, f.Name)
	}
	return names
}

// Empty is the reset state of a draft.
func Empty() Developer {
	return Developer{Frameworks: []Framework{}}
}

func CloneAll(in []Developer) []Developer {
	out := make([]Developer, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
