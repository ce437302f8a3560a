package selection

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoItems is returned when there was nothing to select from. The user has
// already been told; commands exit successfully.
var ErrNoItems = errors.New("no items to select from")

// ErrStaleDefault is matched (errors.Is) by GetItemFunc errors that mean a
// stored default no longer refers to an accessible item.
var ErrStaleDefault = errors.New("stored default no longer exists")

// ListFunc fetches the candidates for a selection.
type ListFunc[L any] func(ctx context.Context) ([]L, error)

// GetItemFunc fetches one item by id.
type GetItemFunc[L any] func(ctx context.Context, id string) (L, error)

// Sorting names the unique key of an item and the key lists are sorted by.
// Keys are JSON field names.
type Sorting struct {
	PrimaryKeyName string
	// SortKeyName may be empty to keep the order the list was returned in.
	SortKeyName string
}

// Naming holds the user facing names of the item type.
type Naming struct {
	ItemName       string
	PluralItemName string
}

// Item returns the singular name, "item" when unset.
func (n Naming) Item() string {
	if n.ItemName == "" {
		return "item"
	}
	return n.ItemName
}

// Plural returns the plural name, derived from ItemName when unset.
func (n Naming) Plural() string {
	if n.PluralItemName != "" {
		return n.PluralItemName
	}
	if n.ItemName != "" {
		return n.ItemName + "s"
	}
	return "items"
}

// TableField is one column of the list shown while selecting.
type TableField struct {
	Label string
	// Key is the JSON field name the value is read from.
	Key string
}

// Config describes how items of one type are listed and identified.
type Config struct {
	Sorting
	Naming
	// TableFields defaults to the sort key followed by the primary key.
	TableFields []TableField
	// VerboseFields are appended to TableFields when verbose output was requested.
	VerboseFields []TableField
}

func (c Config) fields(verbose bool) []TableField {
	fields := c.TableFields
	if len(fields) == 0 {
		if c.SortKeyName != "" && c.SortKeyName != c.PrimaryKeyName {
			fields = append(fields, TableField{Label: labelFor(c.SortKeyName), Key: c.SortKeyName})
		}
		fields = append(fields, TableField{Label: labelFor(c.PrimaryKeyName), Key: c.PrimaryKeyName})
	}
	if verbose {
		fields = append(append([]TableField{}, fields...), c.VerboseFields...)
	}
	return fields
}

func labelFor(key string) string {
	if key == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range key {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	label := b.String()
	return strings.ToUpper(label[:1]) + label[1:]
}

// IndexRangeError reports an index outside the list. Input holds the index as
// typed when it does not fit an int; Index is zero then.
type IndexRangeError struct {
	Index int
	Input string
	Count int
}

func (e *IndexRangeError) Error() string {
	index := e.Input
	if index == "" {
		index = strconv.Itoa(e.Index)
	}
	return fmt.Sprintf("invalid index %s (enter an id or index between 1 and %d inclusive)", index, e.Count)
}

// MissingKeyError reports a list item without the primary key field.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("did not find key %s in data", e.Key)
}

// KeyTypeError reports a primary key field that is not a string.
type KeyTypeError struct {
	Key  string
	Type string
	Item string
}

func (e *KeyTypeError) Error() string {
	return fmt.Sprintf("invalid type %s for primary key %s in %s", e.Type, e.Key, e.Item)
}
