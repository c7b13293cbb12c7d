package ide

import "strings"

type Installation struct {
	Name string
	Path string
}

type IDE struct {
	Identifier string
	Name       string
	Aliases    []string
	// OnDiscover returns the installations found on this host, cached between calls.
	OnDiscover func() []Installation
	// OnMatch reports whether path is an installation of this IDE.
	OnMatch func(path string) (Installation, bool)
}

// Discovery filters a static list of candidate paths down to the ones that exist
// and names them. Results are kept until Invalidate is called.
type Discovery struct {
	EditorName string
	Candidates []string
	Exists     func(path string) bool

	installations []Installation
	cached        bool
}

func (d *Discovery) Installations() []Installation {
	if !d.cached {
		d.installations = d.find()
		d.cached = true
	}

	result := make([]Installation, len(d.installations))
	copy(result, d.installations)
	return result
}

func (d *Discovery) Invalidate() {
	d.installations = nil
	d.cached = false
}

func (d *Discovery) find() []Installation {
	var existing []string
	for _, path := range d.Candidates {
		if d.Exists(path) {
			existing = append(existing, path)
		}
	}

	if len(existing) == 0 {
		return nil
	}

	lcp := LongestCommonPrefix(existing)
	if len(existing) == 1 || (len(existing) == 2 && anySuffixAtTopLevel(existing, lcp)) {
		return []Installation{{Name: d.EditorName, Path: existing[0]}}
	}

	installations := make([]Installation, 0, len(existing))
	for _, path := range existing {
		installations = append(installations, Installation{
			Name: d.EditorName + " (" + path[len(lcp):] + ")",
			Path: path,
		})
	}
	return installations
}

// a suffix without separators sits next to the other install, not in a sibling folder
func anySuffixAtTopLevel(paths []string, lcp string) bool {
	for _, path := range paths {
		if !strings.ContainsAny(path[len(lcp):], `/\`) {
			return true
		}
	}
	return false
}

// FindByPath returns the installation whose path equals p exactly.
func FindByPath(installations []Installation, p string) (Installation, bool) {
	for _, installation := range installations {
		if installation.Path == p {
			return installation, true
		}
	}
	return Installation{}, false
}

// LongestCommonPrefix compares byte by byte against the first path and stops at
// the first divergence or at the end of the shortest path.
func LongestCommonPrefix(paths []string) string {
	if len(paths) == 0 {
		return ""
	}

	base := len(paths[0])
	for _, path := range paths[1:] {
		base = min(base, len(path))
		for i := 0; i < base; i++ {
			if path[i] != paths[0][i] {
				base = i
				break
			}
		}
	}

	return paths[0][:base]
}
