package mime

import "encoding/base64"

// segment is a fixed byte pattern expected at a fixed offset from the start
// of the content.
type segment struct {
	off int
	pat string
}

type signature struct {
	mime string
	segs []segment
}

// signatures is scanned in order and the first full match wins. Container
// formats carry a length field before their format tag, so those match the
// tag at its real offset (RIFF at 8, MP4/QuickTime boxes at 4).
var signatures = []signature{
	// Image
	{"image/gif", []segment{{0, "GIF87a"}}},
	{"image/gif", []segment{{0, "GIF89a"}}},
	{"image/jpeg", []segment{{0, "\xFF\xD8\xFF"}}},
	{"image/png", []segment{{0, "\x89PNG\x0D\x0A\x1A\x0A"}}},
	{"image/svg+xml", []segment{{0, "<?xml "}}},
	{"image/svg+xml", []segment{{0, "<svg "}}},
	{"image/webp", []segment{{0, "RIFF"}, {8, "WEBPVP8 "}}},
	{"image/x-icon", []segment{{0, "\x00\x00\x01\x00"}}},
	// Audio
	{"audio/mpeg", []segment{{0, "ID3"}}},
	{"audio/mpeg", []segment{{0, "\xFF\x0E"}}},
	{"audio/mpeg", []segment{{0, "\xFF\x0F"}}},
	{"audio/ogg", []segment{{0, "OggS"}}},
	{"audio/wav", []segment{{0, "RIFF"}, {8, "WAVEfmt "}}},
	{"audio/x-flac", []segment{{0, "fLaC"}}},
	// Video
	{"video/avi", []segment{{0, "RIFF"}, {8, "AVI LIST"}}},
	{"video/mp4", []segment{{4, "ftyp"}}},
	{"video/mpeg", []segment{{0, "\x00\x00\x01\x0B"}}},
	{"video/quicktime", []segment{{4, "moov"}}},
	{"video/webm", []segment{{0, "\x1A\x45\xDF\xA3"}}},
}

func (s signature) matches(data []byte) bool {
	for _, seg := range s.segs {
		end := seg.off + len(seg.pat)
		if end > len(data) || string(data[seg.off:end]) != seg.pat {
			return false
		}
	}
	return true
}

// Sniff returns the mime type implied by the leading bytes of data, or the
// empty string when no signature matches.
func Sniff(data []byte) string {
	for _, sig := range signatures {
		if sig.matches(data) {
			return sig.mime
		}
	}
	return ""
}

// DataURL renders data as a base64 data URI. A non-empty mimeType is used
// verbatim; otherwise the type is sniffed from the content. Unrecognized
// content produces a typeless URI ("data:;base64,...").
func DataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = Sniff(data)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
