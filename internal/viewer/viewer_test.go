package viewer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/san-kum/contrastviz/internal/artifact"
)

func TestDescribeCounts(t *testing.T) {
	for _, total := range []int{1, 2, 5, 11, 101} {
		d := Describe(total)
		assert.Len(t, d, total+1, "total %d", total)
		assert.Equal(t, "Initial Misaligned Spaces", d[0].Title)
		assert.Equal(t, "Combined Multimodal Space", d[len(d)-1].Title)
	}
}

func TestDescribePhases(t *testing.T) {
	d := Describe(101)
	assert.Equal(t, "Beginning Alignment (Step 1)", d[1].Title)
	assert.Equal(t, "Progressive Alignment (Step 25)", d[25].Title)
	assert.Equal(t, "Approaching Alignment (Step 50)", d[50].Title)
	assert.Equal(t, "Near-Complete Alignment (Step 75)", d[75].Title)
	assert.Equal(t, "Complete Alignment", d[100].Title)
}

func TestNewPageNaming(t *testing.T) {
	p := NewPage(101)
	assert.Equal(t, 3, p.Digits)
	assert.Equal(t, "step_000.png", p.FrameName(0))
	assert.Equal(t, "step_100.png", p.FrameName(100))
	assert.Equal(t, artifact.CombinedName, p.FrameName(101))

	l := artifact.New("out", 100, 2)
	assert.Equal(t, l.FrameName(42), p.FrameName(42))
}

func parse(t *testing.T, p Page) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(context.Background(), &buf, p))
	doc, err := html.Parse(&buf)
	require.NoError(t, err)
	return doc
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func byID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == id
	}
}

func TestWriteEmbedsConfig(t *testing.T) {
	p := NewPage(11)
	doc := parse(t, p)

	script := find(doc, byID(ConfigScriptID))
	require.NotNil(t, script, "config script missing")
	assert.Equal(t, "application/json", attr(script, "type"))
	require.NotNil(t, script.FirstChild)

	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(script.FirstChild.Data), &cfg))
	assert.Equal(t, 11, cfg.TotalFrames)
	assert.Equal(t, 2, cfg.FileDigits)
	assert.Equal(t, "step_", cfg.ImagePrefix)
	assert.Equal(t, ".png", cfg.ImageExtension)
	assert.Equal(t, "combined_space.png", cfg.CombinedImagePath)
	assert.Len(t, cfg.Descriptions, 12)
}

func TestWriteHasControls(t *testing.T) {
	doc := parse(t, NewPage(5))

	for _, id := range []string{
		"currentFrame", "beforeFrame", "afterFrame", "comparisonSlider",
		"playButton", "prevButton", "nextButton", "firstButton", "lastButton",
		"speedSlider", "loopToggle", "pingpongToggle", "themeToggle", "infoModal",
		"frameTitle", "frameDescription", "technicalDetails",
	} {
		assert.NotNil(t, find(doc, byID(id)), "element %s missing", id)
	}

	img := find(doc, byID("currentFrame"))
	assert.Equal(t, "step_0.png", attr(img, "src"))

	total := find(doc, byID("totalSteps"))
	require.NotNil(t, total.FirstChild)
	assert.Equal(t, "6", total.FirstChild.Data)
}

func TestWriteEscapesTitle(t *testing.T) {
	p := NewPage(3)
	p.Title = "<b>aligned</b>"

	var buf bytes.Buffer
	require.NoError(t, Write(context.Background(), &buf, p))
	assert.NotContains(t, buf.String(), "<b>aligned</b>")
	assert.Contains(t, buf.String(), "&lt;b&gt;aligned&lt;/b&gt;")
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "html")
	path, err := WriteFile(context.Background(), dir, NewPage(4))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, artifact.ViewerName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
}
