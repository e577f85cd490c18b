package api

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormEncodesPartsInInsertionOrder(t *testing.T) {
	form := NewForm()
	form.AddField("caption", "hello")
	form.AddFile("image", "a.jpg", "image/jpeg", []byte{0xFF, 0xD8})

	boundary := form.Boundary()
	body := form.Encode()

	want := []byte(fmt.Sprintf(
		"--%s\r\n"+
			"Content-Disposition: form-data; name=\"caption\"\r\n\r\n"+
			"hello\r\n"+
			"--%s\r\n"+
			"Content-Disposition: form-data; name=\"image\"; filename=\"a.jpg\"\r\n"+
			"Content-Type: image/jpeg\r\n\r\n"+
			"\xFF\xD8\r\n"+
			"--%s--\r\n",
		boundary, boundary, boundary,
	))
	require.Equal(t, want, body)

	fieldIdx := bytes.Index(body, []byte(`name="caption"`))
	fileIdx := bytes.Index(body, []byte(`name="image"`))
	require.Less(t, fieldIdx, fileIdx)
}

func TestFormContentTypeCarriesBoundary(t *testing.T) {
	form := NewForm()
	require.Equal(t, "multipart/form-data; boundary="+form.Boundary(), form.ContentType())
	require.NotEmpty(t, form.Boundary())
}

func TestFormBoundariesAreUniquePerInstance(t *testing.T) {
	a, b := NewForm(), NewForm()
	require.NotEqual(t, a.Boundary(), b.Boundary())
}

func TestFormEncodeIsRepeatable(t *testing.T) {
	form := NewForm()
	form.AddField("k", "v")
	first := form.Encode()
	second := form.Encode()
	require.Equal(t, first, second)
	require.True(t, strings.HasSuffix(string(first), "--"+form.Boundary()+"--\r\n"))
}
