package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var wordSeparators = strings.NewReplacer("_", " ", "-", " ", ".", " ")

// Title turns an identifier into words for display.
// Example: "feature_provider" -> "Feature Provider"
func Title(s string) string {
	return cases.Title(language.English).String(wordSeparators.Replace(s))
}

// UpperCamelCase converts an identifier to UpperCamelCase.
// Example: "hello-world_tool" -> "HelloWorldTool"
func UpperCamelCase(s string) string {
	return strings.ReplaceAll(Title(s), " ", "")
}
