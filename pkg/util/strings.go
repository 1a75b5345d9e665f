package util

import "strings"

func RemoveDuplicateStrings(strings []string, ignoreList []string) []string {
	presentStrings := make(map[string]bool)
	var list []string

	for _, ignoreString := range ignoreList {
		presentStrings[ignoreString] = true
	}

	for _, item := range strings {
		if _, value := presentStrings[item]; !value && item != "" {
			presentStrings[item] = true
			list = append(list, item)
		}
	}
	return list
}

// SplitList flattens comma separated values, eg. from a repeated CLI flag,
// trimming whitespace and dropping blanks and duplicates.
func SplitList(values []string) []string {
	var items []string

	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			items = append(items, strings.TrimSpace(item))
		}
	}

	return RemoveDuplicateStrings(items, nil)
}

func TrimString(s string, length int) string {
	if len(s) <= length {
		return s
	}

	return s[:length]
}
