package loaders

type ResourceType uint8

const (
	ResourceTypeNone ResourceType = iota
	ResourceTypeShader
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeShader:
		return "shader"
	default:
		return "none"
	}
}

// Resource is the raw result of a loader.
type Resource struct {
	Name     string
	Type     ResourceType
	FullPath string
	DataSize uint64
	Data     interface{}
}
