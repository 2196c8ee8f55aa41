// Package paths locates map documents and their assets on disk.
package paths

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// EnvSearchPath names the environment variable holding extra directories to
// search, separated by os.PathListSeparator.
const EnvSearchPath = "TMX_PATH"

// Finder looks for files in an ordered list of directories.
type Finder struct {
	Dirs []string
}

// Default searches the working directory followed by $TMX_PATH.
var Default = &Finder{Dirs: defaultDirs()}

func defaultDirs() []string {
	dirs := []string{"."}
	if env := os.Getenv(EnvSearchPath); env != "" {
		dirs = append(dirs, filepath.SplitList(env)...)
	}
	return dirs
}

// Find returns the path of the first existing fileName within the search
// directories, or "" if there is none. fileName must be relative and must
// not climb out of the search directory.
func (f *Finder) Find(fileName string) string {
	if !Clean(fileName) {
		glog.Warningf("paths.Find(%q): refusing unclean name", fileName)
		return ""
	}
	for _, dir := range f.Dirs {
		path := filepath.Join(dir, fileName)
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			glog.V(1).Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Open locates fileName like Find and opens it.
func (f *Finder) Open(fileName string) (interface {
	io.ReadCloser
	io.Seeker
}, error) {
	path := f.Find(fileName)
	if path == "" {
		return nil, errors.Wrapf(os.ErrNotExist, "paths.Open(%q): not found in %v", fileName, f.Dirs)
	}
	return os.Open(path)
}

// Find uses the Default finder.
func Find(fileName string) string {
	return Default.Find(fileName)
}

// Clean reports whether name is a relative path that stays inside the
// directory it is joined to.
func Clean(name string) bool {
	if name == "" || filepath.IsAbs(name) {
		return false
	}
	c := filepath.Clean(name)
	return c != ".." && !strings.HasPrefix(c, ".."+string(filepath.Separator))
}
