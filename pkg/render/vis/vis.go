package vis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"

	"github.com/matzehuels/netviz/pkg/network"
)

// DefaultScriptURL is the vis-network standalone build loaded by the page.
const DefaultScriptURL = "https://unpkg.com/vis-network@9.1.9/standalone/umd/vis-network.min.js"

const defaultTitle = "Network"

type RenderOption func(*renderer)

type renderer struct {
	title     string
	scriptURL string
}

// WithTitle sets the page title. An empty title keeps the default.
func WithTitle(title string) RenderOption {
	return func(r *renderer) {
		if title != "" {
			r.title = title
		}
	}
}

// WithScriptURL loads vis-network from url instead of [DefaultScriptURL].
func WithScriptURL(url string) RenderOption {
	return func(r *renderer) {
		if url != "" {
			r.scriptURL = url
		}
	}
}

type pageData struct {
	Title     string
	ScriptURL string
	Width     string
	Height    string
	Directed  template.JS
	Nodes     template.JS
	Edges     template.JS
	Options   template.JS
}

// RenderHTML renders net as a self-contained HTML page. Nodes, edges and
// the network's render configuration are embedded as JSON; edge tooltips
// are shown as HTML so the "<br>" joining reverse-edge titles breaks lines.
func RenderHTML(net *network.Network, opts ...RenderOption) ([]byte, error) {
	r := &renderer{title: defaultTitle, scriptURL: DefaultScriptURL}
	for _, opt := range opts {
		opt(r)
	}
	if net == nil {
		net = &network.Network{Config: network.DefaultRenderConfig()}
	}

	nodes := net.Nodes
	if nodes == nil {
		nodes = []network.Node{}
	}
	edges := net.Edges
	if edges == nil {
		edges = []network.Edge{}
	}

	data := pageData{
		Title:     r.title,
		ScriptURL: r.scriptURL,
		Width:     orDefault(net.Width, "100%"),
		Height:    orDefault(net.Height, "100%"),
		Directed:  template.JS(strconv.FormatBool(net.Directed)),
	}
	var err error
	if data.Nodes, err = marshalJS(nodes); err != nil {
		return nil, fmt.Errorf("encode nodes: %w", err)
	}
	if data.Edges, err = marshalJS(edges); err != nil {
		return nil, fmt.Errorf("encode edges: %w", err)
	}
	if data.Options, err = marshalJS(net.Config); err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// marshalJS relies on encoding/json escaping <, > and & so the result is
// safe inside a script element.
func marshalJS(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

var page = template.Must(template.New("network").Parse(pageTemplate))

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="{{.ScriptURL}}"></script>
    <style>
        html, body { margin: 0; padding: 0; height: 100%; }
        #network { width: {{.Width}}; height: {{.Height}}; border: 1px solid lightgray; }
    </style>
</head>
<body>
    <div id="network"></div>
    <script>
        function htmlTitle(html) {
            const el = document.createElement("div");
            el.innerHTML = html;
            return el;
        }
        const directed = {{.Directed}};
        const nodes = {{.Nodes}}.map(n => Object.assign({}, n, {title: htmlTitle(n.title)}));
        const edges = {{.Edges}}.map(e => {
            const out = Object.assign(directed ? {arrows: "to"} : {}, e);
            if (e.title) {
                out.title = htmlTitle(e.title);
            } else {
                delete out.title;
            }
            return out;
        });
        const options = {{.Options}};
        new vis.Network(
            document.getElementById("network"),
            {nodes: new vis.DataSet(nodes), edges: new vis.DataSet(edges)},
            options
        );
    </script>
</body>
</html>
`
