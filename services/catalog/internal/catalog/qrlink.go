package catalog

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultQRSize is the pixel size requested from the external renderer.
const DefaultQRSize = 200

// BuildEntryLink returns the URL a table's QR code points at. The base is
// normalized so pasting a full entry link as the base does not duplicate
// the /order path.
func BuildEntryLink(base, table string) string {
	clean := base
	if idx := strings.Index(clean, "/order"); idx >= 0 {
		clean = clean[:idx]
	}
	clean = strings.TrimSuffix(clean, "/")
	return fmt.Sprintf("%s/order?table=%s", clean, url.QueryEscape(table))
}

// RendererImageURL returns the external QR renderer URL for a link.
// Rendering happens outside this service.
func RendererImageURL(link string, size int) string {
	if size <= 0 {
		size = DefaultQRSize
	}
	return fmt.Sprintf("https://api.qrserver.com/v1/create-qr-code/?size=%dx%d&data=%s",
		size, size, url.QueryEscape(link))
}
