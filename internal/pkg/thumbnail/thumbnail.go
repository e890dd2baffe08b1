package thumbnail

import (
	"net/url"
	"strconv"
	"strings"
)

type Format string

const (
	FormatWebP Format = "webp"
	FormatPNG  Format = "png"
)

// Builder points image references at a resizing proxy laid out as <base>/<w>x<h>/<format>/<path>.
type Builder struct {
	base string
}

func New(base string) *Builder {
	return &Builder{base: strings.TrimRight(base, "/")}
}

// URL returns "" for an empty src. Without a base the source is returned untouched.
func (b *Builder) URL(src string, width, height int, format Format) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	if b == nil || b.base == "" {
		return src
	}

	path := src
	// absolute and protocol-relative sources keep only their path
	if u, err := url.Parse(src); err == nil && (u.IsAbs() || u.Host != "") {
		path = u.EscapedPath()
	}
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(b.base)
	sb.WriteByte('/')
	sb.WriteString(strconv.Itoa(width))
	sb.WriteByte('x')
	sb.WriteString(strconv.Itoa(height))
	sb.WriteByte('/')
	sb.WriteString(string(format))
	sb.WriteByte('/')
	sb.WriteString(path)
	return sb.String()
}
