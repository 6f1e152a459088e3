package protocol

import "strings"

// Compatible reports whether two protocol versions interoperate. Only the
// major component is compared; minor revisions stay wire compatible.
func Compatible(client string, server string) bool {
	return versionMajor(client) == versionMajor(server)
}

func versionMajor(v string) string {
	major, _, _ := strings.Cut(strings.TrimSpace(v), ".")
	return major
}
