package v1

import (
	"net/url"
	"strconv"
	"strings"
)

// pageLinks renders an RFC 8288 Link header for the list endpoint.
func pageLinks(u *url.URL, page, pageSize int, totalPages int64) string {
	if totalPages == 0 {
		return ""
	}

	link := func(p int64, rel string) string {
		q := u.Query()
		q.Set("page", strconv.FormatInt(p, 10))
		q.Set("page_size", strconv.Itoa(pageSize))
		ref := url.URL{Path: u.Path, RawQuery: q.Encode()}
		return "<" + ref.String() + `>; rel="` + rel + `"`
	}

	current := int64(page)
	links := []string{link(1, "first")}
	if current > 1 {
		links = append(links, link(min(current-1, totalPages), "prev"))
	}
	if current < totalPages {
		links = append(links, link(current+1, "next"))
	}
	links = append(links, link(totalPages, "last"))
	return strings.Join(links, ", ")
}
