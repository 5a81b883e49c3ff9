package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	config "github.com/wanjiku2684/course_academy/configs"
	"github.com/wanjiku2684/course_academy/models"
)

// PDFEngine converts rendered certificate HTML into PDF bytes. It is a
// package variable so tests can swap in a fake that does not need a
// headless browser.
var PDFEngine = generatePDFFromHTML

// RenderCertificatePDF renders the certificate into a single-page landscape
// PDF and writes it under the certificates directory, keyed by the
// certificate's internal id. Re-rendering the same certificate overwrites
// the same file. All displayed fields come from the certificate's
// denormalized snapshot, so the output never drifts when the course is
// edited later.
func RenderCertificatePDF(cert models.Certificate) (string, error) {
	html, err := renderCertificateHTML(cert)
	if err != nil {
		return "", fmt.Errorf("render certificate html: %w", err)
	}

	pdfBytes, err := PDFEngine(html)
	if err != nil {
		return "", fmt.Errorf("print certificate pdf: %w", err)
	}

	dir := certificatesDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create certificates directory: %w", err)
	}

	path := ArtifactPath(cert.ID.String())
	if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
		return "", fmt.Errorf("write certificate artifact: %w", err)
	}

	return path, nil
}

// ArtifactPath is the durable location of a certificate's PDF, derived
// only from its internal id.
func ArtifactPath(certID string) string {
	return filepath.Join(certificatesDir(), fmt.Sprintf("certificate-%s.pdf", certID))
}

func certificatesDir() string {
	return config.ConfigOr("CERTIFICATES_DIR", "certificates")
}

func renderCertificateHTML(cert models.Certificate) (string, error) {
	templatePath := config.ConfigOr("CERTIFICATE_TEMPLATE", filepath.Join("templates", "certificate.html"))
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName    string
		CourseTitle    string
		InstructorName string
		CompletionDate string
		CertificateID  string
	}{
		StudentName:    cert.StudentName,
		CourseTitle:    cert.CourseTitle,
		InstructorName: cert.InstructorName,
		CompletionDate: cert.CompletionDate.Format("January 2, 2006"),
		CertificateID:  cert.CertificateID,
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().
				WithLandscape(true).
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}
