// Package ingest converts uploaded files into domain Documents. Plain text is
// decoded as UTF-8 (a leading byte order mark is honored and removed);
// Markdown, HTML, and PDF files are reduced to their readable text first.
package ingest
