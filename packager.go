package rocthinc

import "context"

// ArchiveFilename is the download name for packed exports.
const ArchiveFilename = "conversation_export.zip"

// PDFPlaceholder is the body of the entry written when PDF output is
// requested. Actual PDF generation is out of scope.
const PDFPlaceholder = "PDF export is not implemented yet in this build. " +
	"Use the LaTeX file to compile a PDF locally."

// Filename returns the archive entry name for the format.
func (f Format) Filename() string {
	switch f {
	case FormatMarkdown:
		return "conversation.md"
	case FormatLaTeX:
		return "conversation.tex"
	case FormatPDF:
		return "README_PDF.txt"
	}
	return string(f)
}

// Entry is one named file inside an export archive. Entry order is
// preserved by the packager.
type Entry struct {
	Name string
	Data []byte
}

// Packager bundles rendered documents into a single downloadable container.
type Packager interface {
	Pack(entries []Entry) ([]byte, error)
}

// Archive is a packed export ready to be returned to the caller.
type Archive struct {
	Filename string
	Data     []byte
}

// Exporter is the single logical operation exposed to transports: fetch a
// URL, extract its conversation, render the requested formats, and pack
// them into an archive.
type Exporter interface {
	Export(ctx context.Context, url string, formats []Format) (*Archive, error)
}
