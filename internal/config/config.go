package config

type Config struct {
	InputPath    string
	OutputPath   string
	ProfilesPath string
	PreviewDir   string
	Workers      int
	DPI          int
	CircularCrop bool
	Transparent  bool
	ShowStats    bool
	Debug        bool
	BuildVersion string
}

// ExportOptions is the subset of settings that crosses the worker boundary.
type ExportOptions struct {
	CircularCrop bool
	Transparent  bool
}
