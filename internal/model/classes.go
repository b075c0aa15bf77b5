package model

import (
	"fmt"
	"strings"
)

// InsulinClass is the dosing category an insulin belongs to. Membership is
// static and resolved once per name when the catalog is built.
type InsulinClass int

const (
	ClassUnclassified InsulinClass = iota
	ClassStandardLongActing
	ClassUltraLongActing
	ClassRapidActing
)

// AllClasses lists the dosing classes in display order.
var AllClasses = []InsulinClass{
	ClassStandardLongActing,
	ClassUltraLongActing,
	ClassRapidActing,
}

var classNames = map[InsulinClass]string{
	ClassUnclassified:       "unclassified",
	ClassStandardLongActing: "standard-long-acting",
	ClassUltraLongActing:    "ultra-long-acting",
	ClassRapidActing:        "rapid-acting",
}

var classLabels = map[InsulinClass]string{
	ClassUnclassified:       "Unclassified",
	ClassStandardLongActing: "Standard Long-Acting",
	ClassUltraLongActing:    "Ultra Long-Acting",
	ClassRapidActing:        "Rapid-Acting",
}

var classAliases = map[string]InsulinClass{
	"standard-long-acting": ClassStandardLongActing,
	"long-acting":          ClassStandardLongActing,
	"long":                 ClassStandardLongActing,
	"basal":                ClassStandardLongActing,
	"ultra-long-acting":    ClassUltraLongActing,
	"ultra":                ClassUltraLongActing,
	"weekly":               ClassUltraLongActing,
	"rapid-acting":         ClassRapidActing,
	"rapid":                ClassRapidActing,
	"bolus":                ClassRapidActing,
}

// classMembers holds the static class-membership sets keyed by insulin name.
var classMembers = map[string]InsulinClass{
	"Tresiba":  ClassStandardLongActing,
	"Toujeo":   ClassStandardLongActing,
	"Lantus":   ClassStandardLongActing,
	"Basaglar": ClassStandardLongActing,
	"Levemir":  ClassStandardLongActing,

	"Awiqli": ClassUltraLongActing,

	"Trurapi":   ClassRapidActing,
	"NovoRapid": ClassRapidActing,
	"Humalog":   ClassRapidActing,
	"Apidra":    ClassRapidActing,
	"Fiasp":     ClassRapidActing,
}

// ClassOf returns the class for an insulin name, or ClassUnclassified when the
// name is in none of the membership sets.
func ClassOf(name string) InsulinClass {
	if c, ok := classMembers[name]; ok {
		return c
	}
	for member, c := range classMembers {
		if strings.EqualFold(member, name) {
			return c
		}
	}
	return ClassUnclassified
}

// String returns the canonical kebab-case name.
func (c InsulinClass) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return fmt.Sprintf("InsulinClass(%d)", int(c))
}

// Label returns a human readable name.
func (c InsulinClass) Label() string {
	return classLabels[c]
}

// ParseClass accepts the canonical names and a few short aliases.
func ParseClass(s string) (InsulinClass, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", "-")
	key = strings.ReplaceAll(key, " ", "-")
	if c, ok := classAliases[key]; ok {
		return c, nil
	}
	return ClassUnclassified, fmt.Errorf("unknown insulin category %q", s)
}

func (c InsulinClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *InsulinClass) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = ClassUnclassified
		return nil
	}
	for cls, name := range classNames {
		if name == string(b) {
			*c = cls
			return nil
		}
	}
	parsed, err := ParseClass(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
