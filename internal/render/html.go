package render

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WriteHTML renders the result area as an HTML fragment.
// Step text is escaped; only emphasized segments are wrapped in <strong>.
func WriteHTML(w io.Writer, view View) error {
	section := element(atom.Section, "class", "result")
	section.AppendChild(field("problemText", "Problem", view.Problem))
	section.AppendChild(field("answerText", "Answer", view.Answer))

	steps := element(atom.Ul, "id", "stepsList")
	for _, step := range view.Steps {
		item := element(atom.Li)
		for _, segment := range step.Segments {
			if segment.Emphasized {
				strong := element(atom.Strong)
				strong.AppendChild(text(segment.Text))
				item.AppendChild(strong)
				continue
			}
			item.AppendChild(text(segment.Text))
		}
		steps.AppendChild(item)
	}
	section.AppendChild(steps)

	section.AppendChild(field("processingTime", "Processing time", view.ProcessingTime))
	section.AppendChild(field("tokensUsed", "Tokens used", view.TokensUsed))

	if err := html.Render(w, section); err != nil {
		return fmt.Errorf("html.Render > %w", err)
	}
	return nil
}

func field(id, label, value string) *html.Node {
	p := element(atom.P, "id", id)
	strong := element(atom.Strong)
	strong.AppendChild(text(label + ": "))
	p.AppendChild(strong)
	p.AppendChild(text(value))
	return p
}

// element builds a node; attrs are key/value pairs
func element(a atom.Atom, attrs ...string) *html.Node {
	node := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		node.Attr = append(node.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return node
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
