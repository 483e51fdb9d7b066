package scoreapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strings"
)

// UploadPDF stores a PDF document remotely and returns its reference.
func (c *Client) UploadPDF(ctx context.Context, filename string, file io.Reader) (*UploadedDocument, error) {
	filename = path.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." || filename == "/" {
		return nil, ErrMissingFile
	}
	if file == nil {
		return nil, fmt.Errorf("%w: file content is required", ErrValidation)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy pdf content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	var doc UploadedDocument
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/pdf",
		body:        &body,
		contentType: writer.FormDataContentType(),
	}, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// PDFViewerURL builds the browser URL of the bundled PDF viewer for a stored
// document. No request is made. The held token, if any, is embedded in the
// document URL because the viewer cannot send headers.
func (c *Client) PDFViewerURL(fileID string) string {
	docURL := c.publicURL + "/pdf/" + url.PathEscape(fileID)
	if token, ok := c.creds.Current(); ok {
		docURL += "?" + url.Values{"token": {token}}.Encode()
	}
	return c.publicURL + "/pdfjs/web/viewer.html?" + url.Values{"file": {docURL}}.Encode()
}
