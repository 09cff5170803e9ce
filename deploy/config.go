package deploy

// Config locates build outputs, script sources and the host plugins
// directory. Source paths are relative to the working directory unless
// absolute.
type Config struct {
	// NativeSource holds one directory per native plugin project.
	NativeSource string `mapstructure:"native-source" json:"nativeSource" yaml:"native-source" default:"cpp_examples"`
	// BuildDir is the build output directory inside a native project.
	BuildDir string `mapstructure:"build-dir" json:"buildDir" yaml:"build-dir" default:"vsbuild/src/RelWithDebInfo"`
	// LibraryExt and SymbolsExt name the required library and the optional
	// debug symbols produced by a native build.
	LibraryExt string `mapstructure:"library-ext" json:"libraryExt" yaml:"library-ext" default:".dll"`
	SymbolsExt string `mapstructure:"symbols-ext" json:"symbolsExt" yaml:"symbols-ext" default:".pdb"`

	// ScriptSource holds script plugins, as folders or single .py files.
	ScriptSource string `mapstructure:"script-source" json:"scriptSource" yaml:"script-source" default:"python_examples"`

	// Target is the host plugins directory. Required.
	Target string `mapstructure:"target" json:"target" yaml:"target"`
}
