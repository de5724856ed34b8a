package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type OutputFormat string

const (
	FormatCLI  OutputFormat = "cli"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

type GenericFormatter struct{}

func NewGenericFormatter() *GenericFormatter {
	return &GenericFormatter{}
}

func (f *GenericFormatter) Format(data any, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return f.formatJSON(data)
	case FormatYAML:
		return f.formatYAML(data)
	case FormatCLI, "":
		return f.formatCLI(data)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (f *GenericFormatter) formatJSON(data any) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (f *GenericFormatter) formatYAML(data any) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (f *GenericFormatter) formatCLI(data any) (string, error) {
	if data == nil {
		return "No data\n", nil
	}

	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "No data\n", nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return f.formatTable(v)
	default:
		var sb strings.Builder
		f.formatTree(&sb, v, 0)
		return sb.String(), nil
	}
}

func fieldName(field reflect.StructField) string {
	if tag := field.Tag.Get("json"); tag != "" && tag != "-" {
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return name
		}
	}
	return field.Name
}

func cellString(v reflect.Value) string {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "-"
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = cellString(v.Index(i))
		}
		if len(parts) == 0 {
			return "-"
		}
		return strings.Join(parts, ",")
	case reflect.String:
		if v.Len() == 0 {
			return "-"
		}
	}
	return fmt.Sprintf("%v", v.Interface())
}

// formatTable renders a slice of structs as aligned columns named after the
// json tags. Anything else is printed one element per line.
func (f *GenericFormatter) formatTable(v reflect.Value) (string, error) {
	if v.Len() == 0 {
		return "No data\n", nil
	}

	first := v.Index(0)
	for first.Kind() == reflect.Ptr || first.Kind() == reflect.Interface {
		first = first.Elem()
	}

	if first.Kind() != reflect.Struct {
		var sb strings.Builder
		for i := 0; i < v.Len(); i++ {
			sb.WriteString(cellString(v.Index(i)) + "\n")
		}
		return sb.String(), nil
	}

	t := first.Type()
	var headers []string
	var fields []int
	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}
		headers = append(headers, strings.ToUpper(fieldName(t.Field(i))))
		fields = append(fields, i)
	}

	rows := make([][]string, v.Len())
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for r := range rows {
		elem := v.Index(r)
		for elem.Kind() == reflect.Ptr || elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}
		row := make([]string, len(fields))
		for j, idx := range fields {
			row[j] = cellString(elem.Field(idx))
			widths[j] = max(widths[j], len(row[j]))
		}
		rows[r] = row
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i == len(cells)-1 {
				sb.WriteString(cell)
			} else {
				sb.WriteString(fmt.Sprintf("%-*s  ", widths[i], cell))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String(), nil
}

func (f *GenericFormatter) formatTree(sb *strings.Builder, v reflect.Value, indent int) {
	prefix := strings.Repeat("  ", indent)

	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}

	nested := func(name string, fv reflect.Value) {
		for fv.Kind() == reflect.Ptr || fv.Kind() == reflect.Interface {
			if fv.IsNil() {
				return
			}
			fv = fv.Elem()
		}
		switch fv.Kind() {
		case reflect.Struct, reflect.Map:
			if fv.Kind() == reflect.Map && fv.Len() == 0 {
				return
			}
			sb.WriteString(fmt.Sprintf("%s%s:\n", prefix, name))
			f.formatTree(sb, fv, indent+1)
		case reflect.Slice, reflect.Array:
			if fv.Len() == 0 {
				return
			}
			sb.WriteString(fmt.Sprintf("%s%s:\n", prefix, name))
			f.formatTree(sb, fv, indent+1)
		default:
			sb.WriteString(fmt.Sprintf("%s%s: %v\n", prefix, name, fv.Interface()))
		}
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if t.Field(i).IsExported() {
				nested(fieldName(t.Field(i)), v.Field(i))
			}
		}

	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, key := range keys {
			nested(fmt.Sprint(key.Interface()), v.MapIndex(key))
		}

	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			for elem.Kind() == reflect.Ptr || elem.Kind() == reflect.Interface {
				elem = elem.Elem()
			}
			if elem.Kind() == reflect.Struct || elem.Kind() == reflect.Map {
				sb.WriteString(fmt.Sprintf("%s[%d]:\n", prefix, i))
				f.formatTree(sb, elem, indent+1)
			} else {
				sb.WriteString(fmt.Sprintf("%s- %v\n", prefix, elem.Interface()))
			}
		}

	default:
		sb.WriteString(fmt.Sprintf("%s%v\n", prefix, v.Interface()))
	}
}
