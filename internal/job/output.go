package job

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wesen/encodeq/internal/codec"
)

// OutputPath returns the job's output path. Before ResolveOutputPath it
// recomputes a preview against current filesystem state; afterwards it
// always returns the frozen path.
func (j *Job) OutputPath() string {
	if j.resolved != "" {
		return j.resolved
	}
	return j.computeOutputPath()
}

// ResolveOutputPath freezes the output path. The first call computes it
// from current filesystem state; later calls return the cached value
// even if the filesystem changed in between. The orchestrator calls
// this once per job before the encode starts, so the collision check
// and the actual encode target cannot diverge.
func (j *Job) ResolveOutputPath() string {
	if j.resolved == "" {
		j.resolved = j.computeOutputPath()
	}
	return j.resolved
}

// computeOutputPath picks a path that is never the input path and never
// an existing file: <dir>/<stem><ext>, then <stem>_encoded<ext> when
// that would overwrite the input, then zero-padded _001/_002/…
// suffixes until a free name is found. It never fails; creating the
// directory is the caller's responsibility.
func (j *Job) computeOutputPath() string {
	ext := ".mp4"
	if c := codec.ContainerByID(j.Settings.ContainerID); c != nil {
		ext = c.Extension
	}

	dir := j.Settings.OutputDir
	if dir == "" {
		dir = filepath.Dir(j.Input)
	}

	base := filepath.Base(j.Input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	out := filepath.Join(dir, stem+ext)
	if out == filepath.Clean(j.Input) {
		out = filepath.Join(dir, stem+"_encoded"+ext)
	}

	origStem := strings.TrimSuffix(filepath.Base(out), ext)
	for counter := 1; exists(out); counter++ {
		out = filepath.Join(dir, fmt.Sprintf("%s_%03d%s", origStem, counter, ext))
	}
	return out
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
