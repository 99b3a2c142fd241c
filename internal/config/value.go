package config

import "strings"

// StringValue represents a string configuration value with its source.
type StringValue struct {
	Value  string
	Source ConfigSource
}

// BoolValue represents a bool configuration value with its source.
type BoolValue struct {
	Value  bool
	Source ConfigSource
}

// StringSliceValue represents a list configuration value with its source.
type StringSliceValue struct {
	Value  []string
	Source ConfigSource
}

// NewStringValue creates a new StringValue with default source.
func NewStringValue(value string) StringValue {
	return StringValue{Value: value, Source: SourceDefault}
}

// NewBoolValue creates a new BoolValue with default source.
func NewBoolValue(value bool) BoolValue {
	return BoolValue{Value: value, Source: SourceDefault}
}

// NewStringSliceValue creates a new StringSliceValue with default source.
func NewStringSliceValue(value ...string) StringSliceValue {
	return StringSliceValue{Value: value, Source: SourceDefault}
}

// String joins the list with commas.
func (v StringSliceValue) String() string {
	return strings.Join(v.Value, ",")
}
