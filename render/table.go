// Package render formats ranked publications for the host UI, which
// displays raw HTML.
package render

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/trangdata/askalex/core"
)

// Row is one rendered publication: a linked title with its abstract, and
// the similarity score formatted to three decimals.
type Row struct {
	Publication string
	Similarity  string
}

// requiredColumns maps each column the table renders to its presence
// check on a document.
var requiredColumns = map[string]func(*core.Document) bool{
	"title":        func(d *core.Document) bool { return d.Title != "" },
	"abstract":     func(d *core.Document) bool { return d.Abstract != "" },
	"url":          func(d *core.Document) bool { return d.URL != "" },
	"similarities": (*core.Document).HasSimilarity,
}

// PublicationRows converts ranked documents into display rows for the
// host UI. Every rendered column must be present on every document; a
// hard error lists whichever are missing.
func PublicationRows(docs core.Collection) ([]Row, error) {
	missing := map[string]bool{}
	for _, doc := range docs {
		for column, present := range requiredColumns {
			if !present(doc) {
				missing[column] = true
			}
		}
	}
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("missing columns in input documents: %s", strings.Join(names, ", "))
	}

	rows := make([]Row, len(docs))
	for i, doc := range docs {
		rows[i] = Row{
			Publication: fmt.Sprintf(
				`<p style="font-weight: bold; font-size: larger"><a href=%q>%s</a></p><p>%s</p>`,
				doc.URL, html.EscapeString(doc.Title), html.EscapeString(doc.Abstract)),
			Similarity: fmt.Sprintf("%.3f", doc.Similarity),
		}
	}
	return rows, nil
}
