package emsapi_test

import (
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/veles-works/ems-console/internal/emsapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// An explicitly empty field must survive encoding as a present-but-empty
// part; the API reads that as "clear this field", which is different
// from the field being absent.
func TestPayload_EncodeKeepsExplicitEmptyValues(t *testing.T) {
	t.Parallel()

	payload := emsapi.NewPayload()
	payload.Set("job_title", "Engineer")
	payload.Set("profile_picture", "")

	body, contentType, err := payload.Encode()
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(1 << 20)
	require.NoError(t, err)
	defer form.RemoveAll()

	assert.Equal(t, []string{"Engineer"}, form.Value["job_title"])
	picture, present := form.Value["profile_picture"]
	require.True(t, present, "cleared field must still be transmitted")
	assert.Equal(t, []string{""}, picture)
}

func TestPayload_FileRoundTrip(t *testing.T) {
	t.Parallel()

	payload := emsapi.NewPayload()
	payload.AttachFile("profile_picture", emsapi.Upload{Filename: "me.jpg", Content: []byte{0xFF, 0xD8}})

	body, contentType, err := payload.Encode()
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	reader := multipart.NewReader(body, params["boundary"])
	part, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "profile_picture", part.FormName())
	assert.Equal(t, "me.jpg", part.FileName())

	content, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, content)
}
