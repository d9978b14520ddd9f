package pages

import (
	"strings"

	"github.com/aletheia/portal"
	"github.com/aletheia/portal/api"
	"github.com/aletheia/portal/format"
	"github.com/aletheia/portal/h"
)

var documentTypes = []string{"lease", "receipt", "notice", "other"}

func (p *Pages) documents(c *portal.Context) error {
	landlord := viewerOf(c).role == portal.RoleLandlord

	err := c.Render(p.layout(c, "#/documents", "Documents",
		h.Div(h.Class("page-header"),
			h.Div(
				h.H1(h.Text("Documents")),
				h.P(h.Class("muted"), h.Text("Leases, receipts and notices in one place.")),
			),
			h.Button(h.ID("upload-doc"), h.OpenDialog("modal-upload-document"), h.Text("+ Upload")),
		),
		h.Table(h.Class("data-table"),
			h.THead(h.Tr(
				h.Th(h.Text("Name")), h.Th(h.Text("Type")), h.Th(h.Text("Size")),
				h.Th(h.Text("Uploaded")), h.Th(),
			)),
			emptyRow("documents-body", 5, "Loading..."),
		),
		p.uploadDialog(c, landlord),
	))
	if err != nil {
		return err
	}

	docs, err := c.API().ListDocuments(c.Context())
	if err != nil {
		return failed(c, err, emptyRow("documents-body", 5, "Failed to load documents."))
	}
	if len(docs) == 0 {
		return c.Render(emptyRow("documents-body", 5, "No documents yet"))
	}
	return c.Render(h.TBody(h.ID("documents-body"), h.Map(docs, func(d api.Document) h.H {
		return h.Tr(
			h.Td(h.Strong(h.Text(d.Name))),
			h.Td(h.Span(h.Class("badge badge-gray"), h.Text(format.Title(d.Type)))),
			h.Td(h.Text(docSize(d.FileSize))),
			h.Td(h.Text(format.DateString(d.CreatedAt))),
			h.Td(h.A(h.Href(d.FileURL), h.Target("_blank"), h.Rel("noopener"), h.Text("Open"))),
		)
	})))
}

func docSize(n int64) string {
	if n <= 0 {
		return format.Empty
	}
	return format.FileSize(n)
}

func (p *Pages) uploadDialog(c *portal.Context, landlord bool) h.H {
	return dialog("modal-upload-document", "Upload Document",
		h.Form(h.ID("form-upload-document"), submitAndClose(c, p.uploadDocument),
			field("Name", h.Input(h.Name("name"), h.Type("text"), h.Placeholder("e.g. Lease agreement 2025"), h.Required())),
			field("Type", h.Select(h.Name("type"), h.Map(documentTypes, func(t string) h.H {
				return h.Option(h.Value(t), h.Text(format.Title(t)))
			}))),
			field("File URL", h.Input(h.Name("file_url"), h.Type("url"), h.Placeholder("https://"), h.Required())),
			h.If(landlord, field("Building ID (optional)", h.Input(h.Name("building_id"), h.Type("text")))),
			h.Button(h.Type("submit"), h.Text("Upload")),
		),
	)
}

func (p *Pages) onUploadDocument(c *portal.Context) error {
	var req api.UploadDocumentRequest
	if err := c.Decode(&req); err != nil {
		return err
	}
	fileURL := strings.TrimSpace(c.FormValue("file_url"))
	if fileURL == "" {
		c.Toast(portal.ToastError, "A file URL is required")
		return nil
	}
	if _, err := c.API().UploadDocument(c.Context(), req, fileURL); err != nil {
		return err
	}
	c.Reload()
	c.Toast(portal.ToastSuccess, "Document uploaded")
	return nil
}
