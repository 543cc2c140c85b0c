package alpm

import "strings"

// VerCmp compares two package versions of the form [epoch:]pkgver[-pkgrel]
// and returns <0, 0 or >0 when a is older than, equal to or newer than b.
// It follows the same rules as pacman's vercmp(8): epochs dominate, version
// segments of digits compare numerically, segments of letters compare
// lexically, and the release parts are only consulted when both versions
// carry one.
func VerCmp(a, b string) int {
	if a == b {
		return 0
	}

	epochA, verA, relA, hasRelA := parseEVR(a)
	epochB, verB, relB, hasRelB := parseEVR(b)

	ret := rpmVerCmp(epochA, epochB)
	if ret == 0 {
		ret = rpmVerCmp(verA, verB)
		if ret == 0 && hasRelA && hasRelB {
			ret = rpmVerCmp(relA, relB)
		}
	}
	return ret
}

// parseEVR splits a version into its epoch, version and release components.
// The epoch must be a leading run of digits followed by ':'; when absent it
// defaults to "0". The release is everything after the last '-'.
func parseEVR(evr string) (epoch, version, release string, hasRelease bool) {
	i := 0
	for i < len(evr) && isDigit(evr[i]) {
		i++
	}

	epoch = "0"
	rest := evr
	if i < len(evr) && evr[i] == ':' {
		if i > 0 {
			epoch = evr[:i]
		}
		rest = evr[i+1:]
	}

	if j := strings.LastIndexByte(rest, '-'); j >= 0 {
		return epoch, rest[:j], rest[j+1:], true
	}
	return epoch, rest, "", false
}

// rpmVerCmp compares two version fragments segment by segment. Segments are
// maximal runs of digits or of letters; anything else separates them. A
// numeric segment always beats an alphabetic one, and a trailing alphabetic
// segment never beats the end of the string, so 1.0 is newer than 1.0rc1.
func rpmVerCmp(a, b string) int {
	if a == b {
		return 0
	}

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		sepStartA, sepStartB := i, j
		for i < len(a) && !isAlnum(a[i]) {
			i++
		}
		for j < len(b) && !isAlnum(b[j]) {
			j++
		}
		if i >= len(a) || j >= len(b) {
			break
		}

		// The longer separator run wins, so 1..0 is newer than 1.0.
		if i-sepStartA != j-sepStartB {
			if i-sepStartA < j-sepStartB {
				return -1
			}
			return 1
		}

		isnum := isDigit(a[i])
		endA, endB := i, j
		if isnum {
			for endA < len(a) && isDigit(a[endA]) {
				endA++
			}
			for endB < len(b) && isDigit(b[endB]) {
				endB++
			}
		} else {
			for endA < len(a) && isAlpha(a[endA]) {
				endA++
			}
			for endB < len(b) && isAlpha(b[endB]) {
				endB++
			}
		}

		segA := a[i:endA]
		segB := b[j:endB]

		// The segment type is taken from a, so b's segment may be empty
		// when the types differ. Numeric beats alphabetic.
		if segB == "" {
			if isnum {
				return 1
			}
			return -1
		}

		if isnum {
			segA = strings.TrimLeft(segA, "0")
			segB = strings.TrimLeft(segB, "0")
			if len(segA) != len(segB) {
				if len(segA) > len(segB) {
					return 1
				}
				return -1
			}
		}

		if segA != segB {
			if segA < segB {
				return -1
			}
			return 1
		}

		i, j = endA, endB
	}

	if i >= len(a) && j >= len(b) {
		return 0
	}
	if (i >= len(a) && !isAlphaAt(b, j)) || isAlphaAt(a, i) {
		return -1
	}
	return 1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isDigit(c) || isAlpha(c)
}

func isAlphaAt(s string, i int) bool {
	return i < len(s) && isAlpha(s[i])
}
