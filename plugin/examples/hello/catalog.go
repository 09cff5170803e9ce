package hello

import (
	"sort"

	"github.com/leeforge/modkit/plugin"
)

// Manifest identifiers of the bundled plugins.
const (
	IIDHelloPlugin      = "org.example.HelloPlugin"
	IIDHelloTool        = "org.example.HelloTool"
	IIDHelloWorldPlugin = "org.example.HelloWorldPlugin"
	IIDHelloFeature     = "org.example.HelloFeature"
	IIDScriptHelloWorld = "org.example.PythonHelloWorld"
)

// Catalog maps manifest identifiers to plugin factories.
func Catalog() map[string]plugin.Factory {
	return map[string]plugin.Factory{
		IIDHelloPlugin:      NewHelloPlugin,
		IIDHelloTool:        NewHelloTool,
		IIDHelloWorldPlugin: NewHelloWorldPlugin,
		IIDHelloFeature:     NewFeaturePlugin,
		IIDScriptHelloWorld: NewScriptPlugin,
	}
}

// IIDs returns the catalog identifiers, sorted.
func IIDs() []string {
	catalog := Catalog()
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
