package html_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	navhtml "github.com/aretw0/navbind/pkg/adapters/html"
	"github.com/aretw0/navbind/pkg/domain"
	"github.com/aretw0/navbind/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLDocument_Contract(t *testing.T) {
	ports.RunDocumentContract(t, func(t *testing.T, ids ...string) ports.DocumentFixture {
		var sb strings.Builder
		sb.WriteString("<html><body>")
		for _, id := range ids {
			fmt.Fprintf(&sb, `<button id="%s">%s</button>`, id, id)
		}
		sb.WriteString("</body></html>")

		doc, err := navhtml.Parse(strings.NewReader(sb.String()))
		require.NoError(t, err)
		return ports.DocumentFixture{Document: doc, Dispatcher: doc}
	})
}

func TestParse_IDsAndFirstWins(t *testing.T) {
	doc, err := navhtml.Parse(strings.NewReader(`
		<div id="wrap">
			<a id="logIn" href="/old">first</a>
			<button id="logIn">second</button>
			<span id="">empty</span>
		</div>`))
	require.NoError(t, err)

	assert.Equal(t, []string{"wrap", "logIn"}, doc.IDs())

	el, ok := doc.ElementByID("logIn")
	require.True(t, ok)
	assert.Equal(t, "a", el.(*navhtml.Element).Tag())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, navhtml.DefaultPage(), 0o644))

	doc, err := navhtml.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"signUp", "logIn"}, doc.IDs())

	_, err = navhtml.ParseFile(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}

func TestRender_Unchanged(t *testing.T) {
	doc, err := navhtml.ParseDefault()
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, doc.Render(&sb))
	assert.Contains(t, sb.String(), `<button id="signUp" type="button">Sign up</button>`)
	assert.NotContains(t, sb.String(), navhtml.ActivationFormID)
}

func TestRenderActivatable(t *testing.T) {
	doc, err := navhtml.Parse(strings.NewReader(`<html><body>
		<button id="signUp" type="button">Sign up</button>
		<a id="logIn" href="#">Log in</a>
		<div id="promo">Promo</div>
		<button id="other">Unbound</button>
	</body></html>`))
	require.NoError(t, err)

	noop := func(context.Context, domain.ActivationEvent) {}
	for _, id := range []string{"signUp", "logIn", "promo"} {
		el, ok := doc.ElementByID(id)
		require.True(t, ok)
		el.AddEventListener(domain.EventClick, noop)
	}

	var sb strings.Builder
	err = doc.RenderActivatable(&sb, func(id string) string { return "/_activate/" + id })
	require.NoError(t, err)
	out := sb.String()

	assert.Contains(t, out, `<button id="signUp" type="submit" form="navbind-activate" formaction="/_activate/signUp" formmethod="post">`)
	assert.Contains(t, out, `<a id="logIn" href="/_activate/logIn">`)
	assert.Contains(t, out, `<div id="promo" data-activate="/_activate/promo">`)
	assert.Contains(t, out, `<button id="other">Unbound</button>`)
	assert.Contains(t, out, `<form id="navbind-activate" method="post" hidden="">`)

	// The parsed tree itself is untouched
	sb.Reset()
	require.NoError(t, doc.Render(&sb))
	assert.NotContains(t, sb.String(), "_activate")
}

func TestRenderActivatable_NothingBound(t *testing.T) {
	doc, err := navhtml.ParseDefault()
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, doc.RenderActivatable(&sb, func(id string) string { return "/" + id }))
	assert.NotContains(t, sb.String(), navhtml.ActivationFormID)
}
