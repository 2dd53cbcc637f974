package opengraph

import (
	"strconv"
	"strings"
	"text/template"
	"time"

	"golang.org/x/net/html"
)

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta http-equiv="refresh" content="0; url={{ .URL }}" />
    {{ .Metadata }}
    <title>{{ .Title }}</title>
</head>
<body>
    <h1>{{ .Title }}</h1>
</body>
</html>`

var (
	minReleaseUnix = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxReleaseUnix = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

var tmpl = template.Must(template.New("opengraph").Parse(documentTemplate))

// Document accumulates metadata nodes and renders them once.
type Document struct {
	url      string
	title    string
	nodes    []Node
	rendered bool
}

// New starts a document for url, seeded with a title node.
func New(url, title string) *Document {
	return &Document{
		url:   url,
		title: title,
		nodes: []Node{NewNode("title", title)},
	}
}

// URL returns the page the document points at.
func (d *Document) URL() string {
	return d.url
}

// Title returns the display title.
func (d *Document) Title() string {
	return d.title
}

// Nodes returns a copy of the explicitly added nodes.
func (d *Document) Nodes() []Node {
	out := make([]Node, len(d.nodes))
	copy(out, d.nodes)
	return out
}

// SetType appends a "type" node.
func (d *Document) SetType(kind string) *Document {
	return d.add(NewNode("type", kind))
}

// SetImage appends an "image" node.
func (d *Document) SetImage(image string) *Document {
	return d.add(NewNode("image", image))
}

// SetDescription appends a "description" node.
func (d *Document) SetDescription(description string) *Document {
	return d.add(NewNode("description", description))
}

// SetSiteName appends a "site_name" node.
func (d *Document) SetSiteName(name string) *Document {
	return d.add(NewNode("site_name", name))
}

// SetReleaseDate appends a "video:release_date" node with the timestamp in
// RFC 3339 UTC. It panics if the year falls outside 0-9999.
func (d *Document) SetReleaseDate(unix int64) *Document {
	if unix < minReleaseUnix || unix > maxReleaseUnix {
		panic("opengraph: release timestamp out of range: " + strconv.FormatInt(unix, 10))
	}
	t := time.Unix(unix, 0).UTC()
	return d.add(NewNode("video:release_date", t.Format(time.RFC3339)))
}

// SetDuration appends a "video:duration" node in seconds.
func (d *Document) SetDuration(seconds int64) *Document {
	return d.add(NewNode("video:duration", strconv.FormatInt(seconds, 10)))
}

// Render produces the HTML page. The document is spent afterwards; calling
// Render or any setter again panics.
func (d *Document) Render() string {
	d.mustBeOpen()
	d.rendered = true

	nodes := append(d.nodes,
		NewOGNode("title", d.title),
		NewNode("title", d.title),
		NewOGNode("url", d.url),
	)
	d.nodes = nil

	lines := make([]string, 0, len(nodes))
	for _, node := range nodes {
		lines = append(lines, node.HTML())
	}

	var b strings.Builder
	err := tmpl.Execute(&b, struct {
		URL      string
		Title    string
		Metadata string
	}{
		URL:      html.EscapeString(d.url),
		Title:    html.EscapeString(d.title),
		Metadata: strings.Join(lines, "\n"),
	})
	if err != nil {
		// The template is static and the data is plain strings.
		panic("opengraph: render template: " + err.Error())
	}
	return b.String()
}

func (d *Document) add(node Node) *Document {
	d.mustBeOpen()
	d.nodes = append(d.nodes, node)
	return d
}

func (d *Document) mustBeOpen() {
	if d.rendered {
		panic("opengraph: document already rendered")
	}
}
