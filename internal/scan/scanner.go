// Package scan derives post metadata from existing blog documents: a
// tolerant tag scanner, a keyword-based series classifier and the
// extractor that combines them into one record per document.
package scan

import (
	"html"
	"regexp"
	"strings"
)

// Result carries the raw signals one document scan produced. Signals the
// document does not have stay at their zero value.
type Result struct {
	MetaTags map[string]string
	Title    string
	Author   string
	Date     string
	Body     string
	VideoID  string
}

// contentMarkers mark the containers whose inner text counts as body text.
var contentMarkers = []string{
	"article-content",
	"video-container",
	"poster-container",
}

var embedPattern = regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]+)`)

// state is the scanner's accumulator: which capture region the cursor is
// inside, plus a div depth counter so nested divs inside a content
// container do not end capture early.
type state struct {
	inTitle   bool
	titleDone bool
	inAuthor  bool
	inDate    bool
	inContent bool
	depth     int
}

// Scan runs a single left-to-right pass over the document text. It never
// fails: markup that does not match a known shape is skipped, and a broken
// document simply yields fewer signals.
func Scan(doc string) Result {
	res := Result{MetaTags: make(map[string]string)}
	var st state
	var title, author, date, body strings.Builder

	text := func(data string) {
		data = strings.TrimSpace(html.UnescapeString(data))
		if data == "" {
			return
		}
		switch {
		case st.inTitle:
			title.WriteString(data)
		case st.inAuthor:
			author.WriteString(data)
		case st.inDate:
			date.WriteString(data)
		case st.inContent:
			body.WriteString(data)
			body.WriteByte(' ')
		}
	}

	i := 0
	for i < len(doc) {
		lt := strings.IndexByte(doc[i:], '<')
		if lt < 0 {
			text(doc[i:])
			break
		}
		if lt > 0 {
			text(doc[i : i+lt])
		}
		i += lt

		if strings.HasPrefix(doc[i:], "<!--") {
			end := strings.Index(doc[i+4:], "-->")
			if end < 0 {
				break
			}
			i += 4 + end + 3
			continue
		}

		gt := strings.IndexByte(doc[i:], '>')
		if gt < 0 {
			// unterminated tag, nothing more to recognize
			break
		}
		raw := doc[i+1 : i+gt]
		i += gt + 1

		raw = strings.TrimSpace(raw)
		if raw == "" || raw[0] == '!' || raw[0] == '?' {
			continue
		}
		if raw[0] == '/' {
			endTag(&st, tagName(raw[1:]))
			continue
		}
		name, attrs := parseTag(raw)
		startTag(&st, &res, name, attrs)
	}

	res.Title = title.String()
	res.Author = author.String()
	res.Date = date.String()
	res.Body = strings.TrimSuffix(body.String(), " ")
	return res
}

func startTag(st *state, res *Result, name string, attrs map[string]string) {
	switch {
	case name == "meta":
		content := attrs["content"]
		if n := attrs["name"]; n != "" {
			res.MetaTags[n] = content
		} else if p := attrs["property"]; p != "" {
			res.MetaTags[p] = content
		}

	case name == "title":
		if !st.titleDone {
			st.inTitle = true
		}

	case name == "span" && attrs["class"] == "post-author":
		st.inAuthor = true

	case name == "span" && attrs["class"] == "post-date":
		st.inDate = true

	case name == "div" && hasContentMarker(attrs["class"]):
		st.inContent = true
		st.depth = 1

	case name == "iframe" && strings.Contains(attrs["src"], "youtube.com/embed/"):
		if res.VideoID == "" {
			if m := embedPattern.FindStringSubmatch(attrs["src"]); m != nil {
				res.VideoID = m[1]
			}
		}

	case st.inContent && name == "div":
		st.depth++
	}
}

func endTag(st *state, name string) {
	switch {
	case name == "title":
		if st.inTitle {
			st.inTitle = false
			st.titleDone = true
		}
	case name == "span" && st.inAuthor:
		st.inAuthor = false
	case name == "span" && st.inDate:
		st.inDate = false
	case name == "div" && st.inContent:
		st.depth--
		if st.depth <= 0 {
			st.inContent = false
		}
	}
}

func hasContentMarker(class string) bool {
	for _, m := range contentMarkers {
		if strings.Contains(class, m) {
			return true
		}
	}
	return false
}

func tagName(raw string) string {
	end := 0
	for end < len(raw) && !isSpace(raw[end]) && raw[end] != '/' {
		end++
	}
	return strings.ToLower(raw[:end])
}

// parseTag splits a start tag's inner text into a lowercase name and an
// attribute map. Quoting is tolerated loosely: double, single or bare
// values all work, and a missing closing quote swallows the rest.
func parseTag(raw string) (string, map[string]string) {
	raw = strings.TrimSuffix(raw, "/")

	end := 0
	for end < len(raw) && !isSpace(raw[end]) {
		end++
	}
	name := strings.ToLower(raw[:end])
	rest := raw[end:]

	attrs := make(map[string]string)
	k := 0
	for k < len(rest) {
		for k < len(rest) && isSpace(rest[k]) {
			k++
		}
		start := k
		for k < len(rest) && rest[k] != '=' && !isSpace(rest[k]) {
			k++
		}
		key := strings.ToLower(rest[start:k])
		if key == "" {
			k++
			continue
		}
		for k < len(rest) && isSpace(rest[k]) {
			k++
		}
		if k >= len(rest) || rest[k] != '=' {
			attrs[key] = ""
			continue
		}
		k++
		for k < len(rest) && isSpace(rest[k]) {
			k++
		}
		var val string
		if k < len(rest) && (rest[k] == '"' || rest[k] == '\'') {
			quote := rest[k]
			k++
			if q := strings.IndexByte(rest[k:], quote); q >= 0 {
				val = rest[k : k+q]
				k += q + 1
			} else {
				val = rest[k:]
				k = len(rest)
			}
		} else {
			start = k
			for k < len(rest) && !isSpace(rest[k]) {
				k++
			}
			val = rest[start:k]
		}
		attrs[key] = html.UnescapeString(val)
	}
	return name, attrs
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
