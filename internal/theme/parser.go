package theme

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strings"

	"github.com/example/photobooth/internal/render"
)

var nrgbaType = reflect.TypeOf(color.NRGBA{})

// Parse reads a theme definition from an io.Reader.
// The format is a simple key-value pair per line: Key: #RRGGBB or #RRGGBBAA
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if err := t.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return nil, err
		}
	}
	return t, scanner.Err()
}

// Set assigns one palette entry by field name. Unknown keys are ignored
// so newer theme files still load.
func (t *Theme) Set(key, value string) error {
	if key == "Name" {
		t.Name = value
		return nil
	}
	field := reflect.ValueOf(t).Elem().FieldByName(key)
	if !field.IsValid() || field.Type() != nrgbaType {
		return nil
	}
	col, err := render.ParseHex(value)
	if err != nil {
		return fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	field.Set(reflect.ValueOf(col))
	return nil
}

// Apply sets every entry of overrides, typically a [theme.<name>] config
// section. Keys match field names case-insensitively.
func (t *Theme) Apply(overrides map[string]string) error {
	typ := reflect.TypeOf(*t)
	for k, v := range overrides {
		for i := 0; i < typ.NumField(); i++ {
			if strings.EqualFold(typ.Field(i).Name, k) {
				if err := t.Set(typ.Field(i).Name, v); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}

// WriteTo writes t in the format Parse reads.
func (t *Theme) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", t.Name)
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type != nrgbaType {
			continue
		}
		c := val.Field(i).Interface().(color.NRGBA)
		if c.A == 0xff {
			fmt.Fprintf(&b, "%s: #%02x%02x%02x\n", typ.Field(i).Name, c.R, c.G, c.B)
		} else {
			fmt.Fprintf(&b, "%s: #%02x%02x%02x%02x\n", typ.Field(i).Name, c.R, c.G, c.B, c.A)
		}
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
