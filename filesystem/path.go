package filesystem

import "strings"

// splitParent splits p into its directory part and final segment after
// trimming trailing slashes. dir is "" when p has no slash, "/" when the
// final segment sits directly under root.
func splitParent(p string) (dir, base string) {
	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" {
		if strings.HasPrefix(p, "/") {
			return "/", ""
		}
		return "", ""
	}
	i := strings.LastIndexByte(trimmed, '/')
	if i < 0 {
		return "", trimmed
	}
	if i == 0 {
		return "/", trimmed[1:]
	}
	return trimmed[:i], trimmed[i+1:]
}

// ComposePath applies a cd-style path to the canonical path cur. Absolute
// paths restart from root, ".." pops a segment (never above root) and "."
// or empty segments are skipped.
func ComposePath(cur, p string) string {
	var segs []string
	if !strings.HasPrefix(p, "/") {
		segs = splitSegments(cur)
	}
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segs) > 0 {
				segs = segs[:len(segs)-1]
			}
		default:
			segs = append(segs, seg)
		}
	}
	return "/" + strings.Join(segs, "/")
}

func splitSegments(p string) []string {
	var segs []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}
