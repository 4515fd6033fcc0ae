package sexp

import (
	"fmt"
	"strconv"
)

// S-expression navigation helpers

// GetNodeName returns the first atom of a list (the node keyword)
func GetNodeName(s Sexp) (string, error) {
	list, ok := s.(*List)
	if !ok {
		return "", fmt.Errorf("expected list, got atom %s", s)
	}

	head := list.Head()
	if head == nil {
		return "", fmt.Errorf("expected keyword at head of list, got empty list")
	}

	atom, ok := head.(Atom)
	if !ok {
		return "", fmt.Errorf("expected keyword at head of list, got %s", head)
	}

	return string(atom), nil
}

// FindNode returns the first child list whose keyword matches key
// Example: FindNode(sexp, "pins") finds (pins U1-1 U2-3) in a net
func FindNode(s Sexp, key string) (*List, bool) {
	list, ok := s.(*List)
	if !ok {
		return nil, false
	}

	for _, item := range list.elements {
		if name, err := GetNodeName(item); err == nil && name == key {
			return item.(*List), true
		}
	}

	return nil, false
}

// FindAllNodes finds all child lists with the given keyword
func FindAllNodes(s Sexp, key string) []*List {
	var results []*List

	list, ok := s.(*List)
	if !ok {
		return results
	}

	for _, item := range list.elements {
		if name, err := GetNodeName(item); err == nil && name == key {
			results = append(results, item.(*List))
		}
	}

	return results
}

// GetListItems returns all items in a list (excluding the first keyword)
// Example: GetListItems((pins U1-1 U2-3)) returns [U1-1, U2-3]
func GetListItems(s Sexp) []Sexp {
	list, ok := s.(*List)
	if !ok || list.Len() <= 1 {
		return []Sexp{}
	}
	return list.Items()[1:]
}

// Typed value extraction helpers

// GetString extracts the atom at the given index in a list
// Index 0 is the keyword, 1 is first value, etc.
func GetString(s Sexp, index int) (string, error) {
	list, ok := s.(*List)
	if !ok {
		return "", fmt.Errorf("expected list, got atom %s", s)
	}

	if index < 0 || index >= list.Len() {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, list.Len())
	}

	atom, ok := list.elements[index].(Atom)
	if !ok {
		return "", fmt.Errorf("expected atom at index %d, got list %s", index, list.elements[index])
	}

	return string(atom), nil
}

// GetFloat extracts a float64 value at the given index
func GetFloat(s Sexp, index int) (float64, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}

	return val, nil
}

// AtomFloat parses a single atom as a float64
func AtomFloat(s Sexp) (float64, error) {
	atom, ok := s.(Atom)
	if !ok {
		return 0, fmt.Errorf("expected numeric atom, got list %s", s)
	}

	val, err := strconv.ParseFloat(string(atom), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", string(atom), err)
	}

	return val, nil
}

// GetInt extracts an int value at the given index
func GetInt(s Sexp, index int) (int, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}

	return val, nil
}

// GetList extracts the nested list at the given index
func GetList(s Sexp, index int) (*List, error) {
	list, ok := s.(*List)
	if !ok {
		return nil, fmt.Errorf("expected list, got atom %s", s)
	}

	if index < 0 || index >= list.Len() {
		return nil, fmt.Errorf("index %d out of bounds (length %d)", index, list.Len())
	}

	sub, ok := list.elements[index].(*List)
	if !ok {
		return nil, fmt.Errorf("expected list at index %d, got atom %s", index, list.elements[index])
	}

	return sub, nil
}
