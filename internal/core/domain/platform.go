package domain

import "strings"

// Storage-layer platform names. The UI label "Instagram Business" maps to
// the single storage name "instagram"; the alias lives only in this file.
const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedin"
	PlatformTikTok    = "tiktok"
)

// aliasInstagramBusiness is the UI-facing name for the Instagram storage
// platform.
const aliasInstagramBusiness = "instagram_business"

var knownPlatforms = map[string]struct{}{
	PlatformFacebook:  {},
	PlatformInstagram: {},
	PlatformTwitter:   {},
	PlatformLinkedIn:  {},
	PlatformTikTok:    {},
}

// CanonicalPlatform normalises a platform name to its storage-layer form.
// It resolves UI aliases and reports whether the name is a known platform.
func CanonicalPlatform(name string) (string, bool) {
	p := strings.ToLower(strings.TrimSpace(name))
	if p == aliasInstagramBusiness {
		p = PlatformInstagram
	}
	_, ok := knownPlatforms[p]
	return p, ok
}

// DisplayPlatform converts a storage-layer platform name into the
// UI-facing form.
func DisplayPlatform(name string) string {
	if p, _ := CanonicalPlatform(name); p == PlatformInstagram {
		return aliasInstagramBusiness
	}
	return name
}

// SamePlatform reports whether two platform names refer to the same
// destination after alias resolution.
func SamePlatform(a, b string) bool {
	ca, _ := CanonicalPlatform(a)
	cb, _ := CanonicalPlatform(b)
	return ca == cb
}
