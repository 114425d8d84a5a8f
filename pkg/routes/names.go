package routes

import "strings"

// NamespaceSeparator joins nested namespaces and route names.
const NamespaceSeparator = ":"

// QualifiedName joins a namespace and a name. An empty side is dropped.
func QualifiedName(namespace, name string) string {
	switch {
	case namespace == "":
		return name
	case name == "":
		return namespace
	}
	return namespace + NamespaceSeparator + name
}

// SplitName separates the namespace from the final name component.
func SplitName(qualified string) (namespace, name string) {
	i := strings.LastIndex(qualified, NamespaceSeparator)
	if i < 0 {
		return "", qualified
	}
	return qualified[:i], qualified[i+1:]
}

// JoinPath concatenates path segments with exactly one slash between them.
// The result always starts with "/"; a trailing slash on the last non-empty
// segment is kept.
func JoinPath(prefix, pattern string) string {
	p := strings.Trim(prefix, "/")
	q := strings.TrimLeft(pattern, "/")

	switch {
	case p == "" && q == "":
		return "/"
	case p == "":
		return "/" + q
	case q == "":
		if strings.HasSuffix(prefix, "/") {
			return "/" + p + "/"
		}
		return "/" + p
	}
	return "/" + p + "/" + q
}
