package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// Built-in theme definitions.
//
//go:embed themes/*.theme
var embeddedThemes embed.FS

// Themes is the embedded theme directory, rooted at the theme files.
var Themes fs.FS = mustSub(embeddedThemes, "themes")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(fmt.Sprintf("assets: %v", err))
	}
	return sub
}

// ThemeNames lists the embedded themes without their extension.
func ThemeNames() []string {
	entries, err := fs.ReadDir(Themes, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), ".theme"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ThemeFile returns a copy of an embedded theme definition.
func ThemeFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(Themes, name+".theme")
	if err != nil {
		return nil, fmt.Errorf("theme %s not embedded", name)
	}
	return data, nil
}
