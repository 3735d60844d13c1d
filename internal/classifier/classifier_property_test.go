package classifier

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"tidy/internal/extmap"
	"tidy/internal/scanner"
)

// genFilename generates filenames with an optional extension and
// an optional leading dot.
func genFilename() gopter.Gen {
	return gopter.CombineGens(
		gen.Bool(), // leading dot
		gen.SliceOfN(6, gen.AlphaChar()).Map(func(chars []rune) string { return string(chars) }),
		gen.Bool(), // has extension
		gen.SliceOfN(3, gen.RuneRange('a', 'z')).Map(func(chars []rune) string { return string(chars) }),
	).Map(func(vals []interface{}) string {
		name := vals[1].(string)
		if vals[0].(bool) {
			name = "." + name
		}
		if vals[2].(bool) {
			name += "." + vals[3].(string)
		}
		return name
	})
}

func TestClassificationDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	m, err := extmap.New(map[string]string{
		"jpg": "Images",
		"png": "Images",
		"pdf": "Documents",
		"mp3": "Music",
	}, "")
	if err != nil {
		t.Fatalf("extmap.New failed: %v", err)
	}

	properties.Property("Classification is deterministic and total", prop.ForAll(
		func(name string, includeHidden bool) bool {
			entry := scanner.FileEntry{Name: name, Hidden: len(name) > 0 && name[0] == '.'}
			opts := Options{IncludeHidden: includeHidden}

			first := Classify(entry, m, opts)
			second := Classify(entry, m, opts)

			if *first != *second {
				t.Logf("non-deterministic classification for %q: %+v vs %+v", name, first, second)
				return false
			}

			// Every entry reaches exactly one terminal decision.
			if first.IsClassified() == first.IsSkipped() {
				t.Logf("invalid classification state for %q: %+v", name, first)
				return false
			}

			// Hidden files are only classified when includeHidden is set.
			if entry.Hidden && !includeHidden && !first.IsSkipped() {
				t.Logf("hidden file %q was not skipped", name)
				return false
			}

			// Classified entries always carry a non-empty destination folder.
			if first.IsClassified() && first.Folder == "" {
				t.Logf("classified entry %q has empty folder", name)
				return false
			}

			return true
		},
		genFilename(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
