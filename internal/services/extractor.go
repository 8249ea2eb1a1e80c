package services

import (
	"context"
	"mime"
	"path/filepath"
	"strings"

	"careercrafter/career-crafter-api/internal/models"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type DocumentExtractor interface {
	// DetectFormat fails with UnsupportedFormatError for anything but PDF and DOCX.
	DetectFormat(filename, contentType string) (models.DocumentFormat, error)
	// Extract never invokes a parser for an unsupported file.
	Extract(ctx context.Context, file UploadedFile) (models.ResumeDocument, error)
}

type documentExtractor struct {
	parsers    map[models.DocumentFormat]TextParser
	vocabulary *SkillVocabulary
}

func NewDocumentExtractor(pdfParser, docxParser TextParser, vocabulary *SkillVocabulary) DocumentExtractor {
	return &documentExtractor{
		parsers: map[models.DocumentFormat]TextParser{
			models.FormatPDF:  pdfParser,
			models.FormatDOCX: docxParser,
		},
		vocabulary: vocabulary,
	}
}

func (e *documentExtractor) DetectFormat(filename, contentType string) (models.DocumentFormat, error) {
	unsupported := &UnsupportedFormatError{Filename: filename, ContentType: contentType}

	byExt := formatFromExtension(filename)
	byType, typeKnown := formatFromContentType(contentType)
	if !typeKnown {
		return "", unsupported
	}

	switch {
	case byExt != "" && byType != "" && byExt != byType:
		return "", unsupported
	case byExt != "":
		return byExt, nil
	case byType != "" && filepath.Ext(filename) == "":
		return byType, nil
	default:
		return "", unsupported
	}
}

func formatFromExtension(filename string) models.DocumentFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return models.FormatPDF
	case ".docx":
		return models.FormatDOCX
	default:
		return ""
	}
}

// formatFromContentType reports ok=false for a declared type we reject. Empty
// and generic binary types carry no information and are accepted.
func formatFromContentType(contentType string) (models.DocumentFormat, bool) {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}

	switch mediaType {
	case "", "application/octet-stream":
		return "", true
	case mimePDF, "application/x-pdf":
		return models.FormatPDF, true
	case mimeDOCX:
		return models.FormatDOCX, true
	default:
		return "", false
	}
}

func (e *documentExtractor) Extract(ctx context.Context, file UploadedFile) (models.ResumeDocument, error) {
	format, err := e.DetectFormat(file.Filename, file.ContentType)
	if err != nil {
		return models.ResumeDocument{}, err
	}

	if len(file.Data) == 0 {
		return models.ResumeDocument{}, &ExtractionError{Message: "the uploaded document is empty"}
	}
	if err := ctx.Err(); err != nil {
		return models.ResumeDocument{}, err
	}

	parser, ok := e.parsers[format]
	if !ok || parser == nil {
		return models.ResumeDocument{}, &UnsupportedFormatError{Filename: file.Filename, ContentType: file.ContentType}
	}

	text, err := parser.ExtractText(file.Data)
	if err != nil {
		return models.ResumeDocument{}, &ExtractionError{
			Message: "Failed to extract text from " + strings.ToUpper(string(format)),
			Err:     err,
		}
	}
	if strings.TrimSpace(text) == "" {
		return models.ResumeDocument{}, &ExtractionError{Message: "no readable text found in the document"}
	}

	resume := ParseResumeText(text, e.vocabulary)
	resume.Format = format
	return resume, nil
}
