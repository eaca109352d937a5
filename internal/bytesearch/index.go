package bytesearch

import "bytes"

// Index returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// It is equivalent to bytes.Index but biases the candidate scan toward
// the rarest byte of the needle instead of the first one, which keeps the
// number of full verifications low on text-like haystacks.
//
// Algorithm:
//  1. Identify the rarest byte in needle using the frequency table.
//  2. Use bytes.IndexByte to find candidates for this byte in haystack.
//  3. For each candidate, verify the full needle match.
//  4. Return the position of the first match or -1 if not found.
func Index(haystack, needle []byte) int {
	needleLen := len(needle)
	haystackLen := len(haystack)

	// Empty needle matches at start (mimics bytes.Index behavior).
	if needleLen == 0 {
		return 0
	}

	if haystackLen == 0 || needleLen > haystackLen {
		return -1
	}

	if needleLen == 1 {
		return bytes.IndexByte(haystack, needle[0])
	}

	rareByte, rareIdx := selectRareByte(needle)

	searchStart := 0
	for {
		candidatePos := bytes.IndexByte(haystack[searchStart:], rareByte)
		if candidatePos == -1 {
			return -1 // rare byte absent, needle cannot exist
		}
		candidatePos += searchStart

		// The rare byte sits rareIdx bytes into the needle, so the needle
		// would have to start that far back from the candidate.
		needleStart := candidatePos - rareIdx
		if needleStart >= 0 && needleStart+needleLen <= haystackLen {
			if bytes.Equal(haystack[needleStart:needleStart+needleLen], needle) {
				return needleStart
			}
		}

		searchStart = candidatePos + 1
		if searchStart >= haystackLen {
			return -1
		}
	}
}
