// Package bicepver rewrites version strings inside Azure Bicep sources.
//
// A versioned Bicep module declares its own version through a metadata
// statement and pins the modules it consumes through container registry
// references:
//
//	metadata version = '1.3.0'
//	module storage 'br:acr.azurecr.io/bicep/storage:v1.3.0' = { ... }
//
// Cutting a release means updating both forms consistently across a whole
// tree of .bicep files, which is tedious and error prone by hand. This
// package finds both forms with anchored regular expressions and rewrites
// them to a target version, reporting how many places changed per file.
package bicepver

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/fsx"
)

// ErrInvalidVersion indicates that the target version is not a plain
// MAJOR.MINOR.PATCH version number.
var ErrInvalidVersion = errors.New("bicepver: invalid version")

const versionPattern = `[0-9]+\.[0-9]+\.[0-9]+`

// metadataVersionRegexp matches a `metadata version = '...'` statement at
// the beginning of a line. The current version is not anchored to the
// version pattern on purpose: we also want to rewrite placeholder values
// left behind by templates.
var metadataVersionRegexp = regexp.MustCompile(`(?m)^(\s*metadata\s+version\s*=\s*')([^']*)(')`)

// registryRefRegexp matches the version tag of a `br:` registry reference.
var registryRefRegexp = regexp.MustCompile(`(br:[A-Za-z0-9./_-]+:)v` + versionPattern)

// validVersionRegexp matches a plain MAJOR.MINOR.PATCH version.
var validVersionRegexp = regexp.MustCompile(`^` + versionPattern + `$`)

// IsValidVersion returns whether version is a plain MAJOR.MINOR.PATCH
// version number without the leading "v".
func IsValidVersion(version string) bool {
	return validVersionRegexp.MatchString(version)
}

// Rewrite returns a copy of source where every version metadata statement
// and registry reference carries the given target version, along with the
// number of places whose version actually changed.
func Rewrite(source []byte, version string) ([]byte, int) {
	changes := 0
	out := metadataVersionRegexp.ReplaceAllFunc(source, func(match []byte) []byte {
		// Workaround: Go regexps cannot expand submatches inside
		// ReplaceAllFunc, so we match again within the match.
		groups := metadataVersionRegexp.FindSubmatch(match)
		replacement := fmt.Sprintf("%s%s%s", groups[1], version, groups[3])
		if !bytes.Equal(match, []byte(replacement)) {
			changes++
		}
		return []byte(replacement)
	})
	out = registryRefRegexp.ReplaceAllFunc(out, func(match []byte) []byte {
		groups := registryRefRegexp.FindSubmatch(match)
		replacement := fmt.Sprintf("%sv%s", groups[1], version)
		if !bytes.Equal(match, []byte(replacement)) {
			changes++
		}
		return []byte(replacement)
	})
	return out, changes
}

// RewriteFile rewrites the versions inside the given file in place and
// returns the number of changed places. A file already at the target
// version yields zero changes and is not touched. We preserve the file
// permissions when writing.
func RewriteFile(path, version string) (int, error) {
	if !IsValidVersion(version) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}
	data, err := fsx.ReadFile(path)
	if err != nil {
		return 0, err
	}
	out, changes := Rewrite(data, version)
	if changes <= 0 {
		return 0, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return 0, err
	}
	return changes, nil
}

// ListBicepFiles returns the paths of all the .bicep files in the tree
// rooted at root, in lexical order.
func ListBicepFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".bicep") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
