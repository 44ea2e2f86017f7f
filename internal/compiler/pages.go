package compiler

import "github.com/pdfcpu/pdfcpu/pkg/api"

// CountPages returns the number of pages in the PDF at path.
func CountPages(path string) (int, error) {
	return api.PageCountFile(path)
}
