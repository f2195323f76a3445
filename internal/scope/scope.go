package scope

import "fmt"

type Lifetime int

const (
	Transient Lifetime = iota
	Singleton
	PerContainer
	PerContainerInherited
	PerResolution
)

func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	case PerContainer:
		return "container"
	case PerContainerInherited:
		return "skipContainer"
	case PerResolution:
		return "resolution"
	default:
		return "unknown"
	}
}

// Cached reports whether instances with this lifetime are stored in a
// container cache and therefore owned, and disposed, by that container.
func (l Lifetime) Cached() bool {
	return l == Singleton || l == PerContainer || l == PerContainerInherited
}

func Parse(s string) (Lifetime, error) {
	switch s {
	case "", "transient":
		return Transient, nil
	case "singleton":
		return Singleton, nil
	case "container", "perContainer":
		return PerContainer, nil
	case "skipContainer", "perContainerInherited":
		return PerContainerInherited, nil
	case "resolution", "perResolution":
		return PerResolution, nil
	default:
		return Transient, fmt.Errorf("unknown lifetime %q", s)
	}
}

func (l Lifetime) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Lifetime) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
