package portal

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/segmentio/encoding/json"
)

// Filter is a single predicate on a (possibly nested) attribute, e.g.
// run.dataset_id == 10440. Filters passed together form a conjunction.
type Filter struct {
	Path  []string
	Op    string
	Value any
}

// Eq returns an equality filter for a dotted path of snake case names.
func Eq(path string, value any) Filter {
	return Filter{Path: strings.Split(path, "."), Op: "_eq", Value: value}
}

func (f Filter) String() string {
	return fmt.Sprintf("%s %s %v", strings.Join(f.Path, "."), f.Op, f.Value)
}

// DatasetFilters returns the filters selecting all entities belonging to a
// dataset, keyed by entity type name. The relation chain differs per type,
// e.g. an annotation shape belongs to an annotation, which belongs to a run,
// which belongs to the dataset.
func DatasetFilters(datasetID int64) map[string][]Filter {
	return map[string][]Filter{
		"annotation":      {Eq("run.dataset_id", datasetID)},
		"annotationshape": {Eq("annotation.run.dataset_id", datasetID)},
		"annotationfile":  {Eq("tomogram_voxel_spacing.run.dataset_id", datasetID)},
		"tomogram":        {Eq("run.dataset_id", datasetID)},
		"tiltseries":      {Eq("run.dataset_id", datasetID)},
		"dataset":         {Eq("id", datasetID)},
		"run":             {Eq("dataset_id", datasetID)},
		"alignment":       {Eq("run.dataset_id", datasetID)},
	}
}

// WhereClause renders filters as a GraphQL input object, e.g. {run:
// {datasetId: {_eq: 10440}}}. Returns the empty string, if there are no
// filters.
func WhereClause(filters []Filter) (string, error) {
	if len(filters) == 0 {
		return "", nil
	}
	root := make(map[string]any)
	for _, f := range filters {
		if len(f.Path) == 0 {
			return "", fmt.Errorf("filter without path: %v", f)
		}
		if !strings.HasPrefix(f.Op, "_") {
			return "", fmt.Errorf("filter without operator: %v", f)
		}
		node := root
		for i, p := range f.Path {
			key := strcase.ToLowerCamel(p)
			next, ok := node[key]
			if !ok {
				m := make(map[string]any)
				node[key] = m
				node = m
				continue
			}
			m, ok := next.(map[string]any)
			if !ok || (i < len(f.Path)-1 && hasOperator(m)) {
				return "", fmt.Errorf("conflicting filter path: %v", f)
			}
			node = m
		}
		if _, ok := node[f.Op]; ok {
			return "", fmt.Errorf("duplicate filter: %v", f)
		}
		if hasField(node) {
			return "", fmt.Errorf("conflicting filter path: %v", f)
		}
		node[f.Op] = literal{f.Value}
	}
	var sb strings.Builder
	if err := writeObject(&sb, root); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// hasOperator reports whether a node compares a value, operator keys start
// with an underscore.
func hasOperator(node map[string]any) bool {
	for k := range node {
		if strings.HasPrefix(k, "_") {
			return true
		}
	}
	return false
}

// hasField reports whether a node descends into a relation or attribute.
func hasField(node map[string]any) bool {
	for k := range node {
		if !strings.HasPrefix(k, "_") {
			return true
		}
	}
	return false
}

// literal wraps a leaf value.
type literal struct {
	v any
}

func writeObject(sb *strings.Builder, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	sb.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		switch v := m[k].(type) {
		case map[string]any:
			if err := writeObject(sb, v); err != nil {
				return err
			}
		case literal:
			s, err := formatValue(v.v)
			if err != nil {
				return err
			}
			sb.WriteString(s)
		}
	}
	sb.WriteString("}")
	return nil
}

func formatValue(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "null", nil
	case string:
		b, err := json.Marshal(t)
		return string(b), err
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case json.Number:
		return t.String(), nil
	default:
		return "", fmt.Errorf("unsupported filter value type %T", v)
	}
}
