package paths

import (
	"flag"
	"path/filepath"
)

// SetupFilePathFlag creates a new string flag with the passed name with a sane
// default for the path to the file, if found using the Find function. If not,
// the flag defaults to an empty string.
func SetupFilePathFlag(fileName, flagName string, flagPtr *string) {
	flag.StringVar(flagPtr, flagName, Find(fileName), "Path to "+fileName)
}

// SetupSearchPathFlag registers a flag whose value, a list of directories
// separated like $PATH, is prepended to the Default finder's directories.
func SetupSearchPathFlag(flagName string) {
	flag.Func(flagName, "Directories to search for maps, separated like $PATH", func(v string) error {
		Default.Dirs = append(filepath.SplitList(v), Default.Dirs...)
		return nil
	})
}
