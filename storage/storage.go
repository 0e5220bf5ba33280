// Package storage fetches recordings from object storage so the analysis
// pipeline can run against them. Only decodable audio objects are listed;
// everything else under a prefix is skipped.
package storage

import "strings"

// Object describes one stored recording.
type Object struct {
	Key  string
	Size int64
}

// audioExts are the extensions the decoder can handle.
var audioExts = []string{".wav"}

// IsAudioKey reports whether a key names a decodable recording.
func IsAudioKey(key string) bool {
	k := strings.ToLower(key)
	for _, ext := range audioExts {
		if strings.HasSuffix(k, ext) {
			return true
		}
	}
	return false
}

// LooksLikePrefix reports whether a key should be treated as a folder:
// it ends with a slash or its last path element has no extension.
func LooksLikePrefix(key string) bool {
	if key == "" {
		return false
	}
	if strings.HasSuffix(key, "/") {
		return true
	}
	tail := key
	if i := strings.LastIndex(key, "/"); i >= 0 {
		tail = key[i+1:]
	}
	return !strings.Contains(tail, ".")
}
