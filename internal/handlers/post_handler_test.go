package handlers_test

import (
	"encoding/json"
	"testing"

	"kicau/internal/handlers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageSourcesUnmarshal(t *testing.T) {
	var req handlers.CreatePostRequest

	require.NoError(t, json.Unmarshal([]byte(`{"content":"a","image":"/one.png"}`), &req))
	assert.Equal(t, handlers.ImageSources{"/one.png"}, req.Image)

	req = handlers.CreatePostRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"content":"a","image":["/1.png","/2.png"]}`), &req))
	assert.Equal(t, handlers.ImageSources{"/1.png", "/2.png"}, req.Image)

	req = handlers.CreatePostRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"content":"a","image":""}`), &req))
	assert.Empty(t, req.Image)

	req = handlers.CreatePostRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"content":"a"}`), &req))
	assert.Empty(t, req.Image)

	assert.Error(t, json.Unmarshal([]byte(`{"content":"a","image":42}`), &req))
}
