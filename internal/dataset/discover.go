package dataset

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/pkg/errors"
)

var imageRegexp = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|bmp|tiff?)$`)

// DiscoverImages returns the image files beneath root in lexical order. When
// root is itself a file it is returned as is, whatever its extension.
func DiscoverImages(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(err, "discover images")
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	entries := make([]string, 0)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if imageRegexp.MatchString(d.Name()) {
			entries = append(entries, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "discover images")
	}
	sort.Strings(entries)
	return entries, nil
}
