package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	in := []byte(`<svg xmlns="http://www.w3.org/2000/svg" onload="alert(1)">` +
		`<script>alert(2)</script>` +
		`<a href="javascript:alert(3)"><circle r='4' onclick='x()'/></a>` +
		`<foreignObject><body>hi</body></foreignObject>` +
		`</svg>`)

	out, err := Sanitize(in)
	require.NoError(t, err)

	s := string(out)
	assert.NotContains(t, s, "script")
	assert.NotContains(t, s, "onload")
	assert.NotContains(t, s, "onclick")
	assert.NotContains(t, s, "javascript:")
	assert.NotContains(t, s, "foreignObject")
	assert.Contains(t, s, "<circle r='4'/>")
}

func TestSanitize_RejectsNonSVG(t *testing.T) {
	_, err := Sanitize([]byte("<html></html>"))
	assert.ErrorIs(t, err, ErrNotSVG)
}

func TestSanitize_DoctypeEntitiesAndEmbeds(t *testing.T) {
	in := []byte(`<?xml version="1.0"?><!DOCTYPE svg [<!ENTITY x "boom">]>` +
		`<svg xmlns="http://www.w3.org/2000/svg"><rect onmouseover=steal() width="1"/>` +
		`<iframe src="https://evil.example"></iframe><embed src="x.swf"/></svg>`)

	out, err := Sanitize(in)
	require.NoError(t, err)

	s := string(out)
	assert.NotContains(t, s, "DOCTYPE")
	assert.NotContains(t, s, "ENTITY")
	assert.NotContains(t, s, "onmouseover")
	assert.NotContains(t, s, "iframe")
	assert.NotContains(t, s, "embed")
	assert.Contains(t, s, `<rect width="1"/>`)
}
