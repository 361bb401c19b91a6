// Package rocthinc exports shared web pages and AI-chat transcripts as
// downloadable document archives. Given a URL it acquires the page (plain
// HTTP or a rendered browser fetch), extracts either structured
// conversation turns or flat page text, and serializes the result into
// Markdown and LaTeX documents bundled as a zip.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, http/).
package rocthinc
