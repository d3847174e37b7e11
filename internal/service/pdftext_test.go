package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPDFTextRejectsNonPDF(t *testing.T) {
	_, err := ExtractPDFText([]byte("this is not a pdf"))
	assert.Error(t, err)
}

func TestExtractPDFTextRejectsTruncatedPDF(t *testing.T) {
	_, err := ExtractPDFText([]byte("%PDF-1.4\n"))
	assert.Error(t, err)
}
