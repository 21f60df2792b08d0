package disbursement

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

//go:embed templates/salary_slip.html
var templateFS embed.FS

//go:generate mockgen -source=renderer.go -destination=mock/renderer_mock.go -package=mock
type Renderer interface {
	Render(v SlipView) ([]byte, error)
}

type pdfRenderer struct {
	tmpl *template.Template
}

func NewPDFRenderer() (Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/salary_slip.html")
	if err != nil {
		return nil, fmt.Errorf("parse salary slip template: %w", err)
	}
	return &pdfRenderer{tmpl: tmpl}, nil
}

// angleQuotes keeps field text from being read as markup once the document is
// unescaped for the PDF writer.
var angleQuotes = strings.NewReplacer("<", "\u2039", ">", "\u203a")

func (v SlipView) plainText() SlipView {
	for _, f := range []*string{&v.EmployeeID, &v.FirstName, &v.LastName, &v.Email, &v.Department, &v.Designation} {
		*f = angleQuotes.Replace(*f)
	}
	return v
}

// RenderHTML returns the slip document before PDF conversion.
func (r *pdfRenderer) RenderHTML(v SlipView) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, v.plainText()); err != nil {
		return "", fmt.Errorf("render salary slip: %w", err)
	}
	return buf.String(), nil
}

func (r *pdfRenderer) Render(v SlipView) ([]byte, error) {
	doc, err := r.RenderHTML(v)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Salary Slip "+v.Month, true)
	pdf.SetAuthor("Payroll", true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	_, lineHt := pdf.GetFontSize()

	// the basic html writer prints entities verbatim and only knows cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	htmlWriter := pdf.HTMLBasicNew()
	htmlWriter.Write(lineHt*1.5, tr(html.UnescapeString(doc)))

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("write salary slip pdf: %w", err)
	}
	return out.Bytes(), nil
}
