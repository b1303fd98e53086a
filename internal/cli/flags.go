package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// AnalyzeCommand builds forests for trace files and archived traces.
type AnalyzeCommand struct {
	IDs    []string `long:"id" description:"Archived trace ID (repeatable)"`
	Top    int      `long:"top" description:"Rows per breakdown (0 uses analysis.top)" default:"0"`
	Marker string   `long:"marker" description:"Override the marker event that selects the main thread"`

	globals *GlobalFlags
	version string
}

// TasksCommand prints the task tree of one trace.
type TasksCommand struct {
	ID     string  `long:"id" description:"Archived trace ID (instead of a file)"`
	Depth  int     `long:"depth" description:"Maximum depth to print (0 = unlimited)" default:"0"`
	MinMs  float64 `long:"min-ms" description:"Hide tasks shorter than this many milliseconds" default:"0"`
	Marker string  `long:"marker" description:"Override the marker event that selects the main thread"`

	globals *GlobalFlags
	version string
}

// ImportCommand stores a raw trace file in the archive.
type ImportCommand struct {
	Label string `long:"label" description:"Label for the trace (defaults to the file name)"`

	globals *GlobalFlags
	version string
}

// ListCommand lists archived traces.
type ListCommand struct {
	Limit int    `long:"limit" description:"Maximum results" default:"20"`
	Label string `long:"label" description:"Only traces with this label"`

	globals *GlobalFlags
	version string
}

// RemoveCommand deletes an archived trace.
type RemoveCommand struct {
	ID string `long:"id" description:"Trace ID (required)"`

	globals *GlobalFlags
	version string
}

// StatusCommand shows archive statistics and a config summary.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}
