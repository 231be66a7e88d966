package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentDisposition(t *testing.T) {
	assert.Equal(t, "attachment", contentDisposition(""))
	assert.Equal(t, `attachment; filename=lieferschein.pdf`, contentDisposition("lieferschein.pdf"))
	assert.Equal(t, `attachment; filename="Lieferschein 03.11.pdf"`, contentDisposition("Lieferschein 03.11.pdf"))
}
