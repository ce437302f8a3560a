package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"hubctl/pkg/logging"
)

var indexRegex = regexp.MustCompile(`^[1-9][0-9]*$`)

// IsIndexArgument reports whether s is a 1-based list position: a positive
// integer without leading zeros.
func IsIndexArgument(s string) bool {
	return indexRegex.MatchString(s)
}

// record returns the JSON view of item so fields can be read by key.
func record[L any](item L) (map[string]any, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("failed to read list item: %w", err)
	}
	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("list item is not an object: %w", err)
	}
	return rec, nil
}

func fieldString(rec map[string]any, key string) string {
	v, ok := rec[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// primaryKey reads the string primary key of item.
func primaryKey[L any](item L, key string) (string, error) {
	rec, err := record(item)
	if err != nil {
		return "", err
	}
	v, ok := rec[key]
	if !ok {
		return "", &MissingKeyError{Key: key}
	}
	s, ok := v.(string)
	if !ok {
		return "", &KeyTypeError{Key: key, Type: fmt.Sprintf("%T", v), Item: compactJSON(rec)}
	}
	return s, nil
}

func compactJSON(rec map[string]any) string {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Sprintf("%v", rec)
	}
	return string(data)
}

// SortItems returns a copy of items ordered case-insensitively by sortKey.
// Items with equal keys keep their relative order. An empty sortKey returns an
// unsorted copy.
func SortItems[L any](items []L, sortKey string) ([]L, error) {
	sorted := slices.Clone(items)
	if sortKey == "" {
		return sorted, nil
	}

	type keyed struct {
		key  string
		item L
	}
	entries := make([]keyed, len(sorted))
	for i, item := range sorted {
		rec, err := record(item)
		if err != nil {
			return nil, err
		}
		entries[i] = keyed{key: strings.ToLower(fieldString(rec, sortKey)), item: item}
	}
	slices.SortStableFunc(entries, func(a, b keyed) int {
		return strings.Compare(a.key, b.key)
	})
	for i, e := range entries {
		sorted[i] = e.item
	}
	return sorted, nil
}

// TranslateToID resolves idOrIndex to an id. Values that are not index
// arguments are returned unchanged without checking that they exist; only an
// index causes listFn to be called. The list is sorted the same way it is
// displayed, so index k is the k-th row the user saw.
func TranslateToID[L any](ctx context.Context, sorting Sorting, idOrIndex string, listFn ListFunc[L]) (string, error) {
	if idOrIndex == "" || !IsIndexArgument(idOrIndex) {
		return idOrIndex, nil
	}

	// Index arguments are all digits, so Atoi can only fail by overflowing; such
	// an index is past the end of any list.
	index, convErr := strconv.Atoi(idOrIndex)

	items, err := listFn(ctx)
	if err != nil {
		return "", err
	}
	sorted, err := SortItems(items, sorting.SortKeyName)
	if err != nil {
		return "", err
	}
	if convErr != nil {
		return "", &IndexRangeError{Input: idOrIndex, Count: len(sorted)}
	}
	if index > len(sorted) {
		return "", &IndexRangeError{Index: index, Count: len(sorted)}
	}

	id, err := primaryKey(sorted[index-1], sorting.PrimaryKeyName)
	if err != nil {
		return "", err
	}
	logging.Debug("Selection", "translated index %d to id %s", index, id)
	return id, nil
}

// ConvertToID resolves typed input against an already sorted list. An exact
// primary key match wins over index interpretation. It returns false when input
// matches neither, so a prompt can ask again.
func ConvertToID[L any](input string, primaryKeyName string, sorted []L) (string, bool, error) {
	ids, err := primaryKeys(sorted, primaryKeyName)
	if err != nil {
		return "", false, err
	}
	id, ok := convertInIDs(input, ids)
	return id, ok, nil
}

func primaryKeys[L any](items []L, key string) ([]string, error) {
	ids := make([]string, len(items))
	for i, item := range items {
		id, err := primaryKey(item, key)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func convertInIDs(input string, ids []string) (string, bool) {
	if input == "" {
		return "", false
	}
	if slices.Contains(ids, input) {
		return input, true
	}
	if !IsIndexArgument(input) {
		return "", false
	}
	index, err := strconv.Atoi(input)
	if err != nil || index > len(ids) {
		return "", false
	}
	return ids[index-1], true
}
