package convert

// BuiltIn returns the built-in converters in registration order.
func BuiltIn() []Converter {
	return []Converter{
		Paragraph{},
		Heading{},
		List{},
		Todo{},
		Quote{},
		Code{},
		Divider{},
		Callout{},
		Toggle{},
		Table{},
		Bookmark{},
		Embed{},
		Image{},
		File{},
		Video{},
		Audio{},
		Columns{},
		SyncedBlock{},
		Unsupported{},
	}
}

// DefaultRegistry returns a registry populated with BuiltIn.
func DefaultRegistry(opts ...RegistryOption) *Registry {
	registry := NewRegistry(opts...)
	registry.Register(BuiltIn()...)
	return registry
}
