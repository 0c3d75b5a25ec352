package main

import (
	"bytes"
	"context"
	"path/filepath"
	"storefront/internal/api/apitest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t       *testing.T
	srv     *apitest.Server
	session string
}

func newCLI(t *testing.T) *cli {
	return &cli{
		t:       t,
		srv:     apitest.NewServer(t),
		session: filepath.Join(t.TempDir(), "session.yaml"),
	}
}

func (c *cli) run(stdin string, args ...string) (string, string, error) {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	username, password = "", ""

	rootCmd.SetArgs(append([]string{
		"--endpoint", c.srv.Endpoint(),
		"--session-backend", "file",
		"--session-file", c.session,
		"--search-debounce", "10ms",
		"--log-level", "error",
	}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func (c *cli) login() {
	c.t.Helper()
	_, _, err := c.run("", "register", "-u", "crio.do", "-p", "learnbydoing")
	require.NoError(c.t, err)
	out, _, err := c.run("crio.do\nlearnbydoing\n", "login")
	require.NoError(c.t, err)
	require.Contains(c.t, out, "Logged in successfully")
}

func TestProductsAndSearch(t *testing.T) {
	c := newCLI(t)

	out, _, err := c.run("", "products")
	require.NoError(t, err)
	assert.Contains(t, out, "Basketball")
	assert.Contains(t, out, "iPhone XR")

	out, _, err = c.run("", "search", "sports")
	require.NoError(t, err)
	assert.Contains(t, out, "YONEX Smash Badminton Racquet")
	assert.NotContains(t, out, "iPhone XR")

	out, _, err = c.run("", "search", "nothing-like-this")
	require.NoError(t, err)
	assert.Contains(t, out, "No products found")
}

func TestCartRequiresLogin(t *testing.T) {
	c := newCLI(t)

	out, stderr, err := c.run("", "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart is empty")
	assert.Contains(t, stderr, "not logged in")

	_, stderr, err = c.run("", "cart", "add", "upLK9JbQ4rMhTwt4")
	assert.Error(t, err)
	assert.Contains(t, stderr, "Login to add an item to the cart")
}

func TestCartSession(t *testing.T) {
	c := newCLI(t)
	c.login()

	out, _, err := c.run("", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "crio.do\n", out)

	out, _, err = c.run("", "cart", "add", "upLK9JbQ4rMhTwt4")
	require.NoError(t, err)
	assert.Contains(t, out, "Basketball")

	_, stderr, err := c.run("", "cart", "add", "upLK9JbQ4rMhTwt4")
	assert.Error(t, err)
	assert.Contains(t, stderr, "Item already in cart")

	_, _, err = c.run("", "cart", "set", "upLK9JbQ4rMhTwt4", "3")
	require.NoError(t, err)

	_, stderr, err = c.run("", "cart", "add", "missing-product")
	assert.Error(t, err)
	assert.Contains(t, stderr, "Product doesn't exist")

	out, _, err = c.run("", "cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Order Details")
	assert.Contains(t, out, "$300.00")

	out, _, err = c.run("", "cart", "rm", "upLK9JbQ4rMhTwt4")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart is empty")

	_, _, err = c.run("", "logout")
	require.NoError(t, err)
	_, stderr, err = c.run("", "whoami")
	assert.Error(t, err)
	assert.Contains(t, stderr, "not logged in")
}

func TestBrowse(t *testing.T) {
	c := newCLI(t)
	c.login()

	script := strings.Join([]string{
		"phones",
		"",
		":add v4sLtEcMpzabRyfx",
		":inc v4sLtEcMpzabRyfx",
		":add v4sLtEcMpzabRyfx",
		":cart",
		":quit",
	}, "\n") + "\n"

	out, _, err := c.run(script, "browse")
	require.NoError(t, err)
	assert.Contains(t, out, "iPhone XR")
	assert.Contains(t, out, "Item already in cart")
	assert.Contains(t, out, "Order Details")
	assert.Contains(t, out, "$200.00")
}
