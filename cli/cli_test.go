package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/junaidrashid-git/storefront/models"
	"github.com/junaidrashid-git/storefront/spreadsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspace struct {
	t      *testing.T
	dir    string
	config string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
environment: test
database:
  driver: sqlite
  url: `+filepath.Join(dir, "shop.db")+`
  log_level: silent
auth:
  jwt_secret: cli-secret
  session_file: `+filepath.Join(dir, "session")+`
  bcrypt_cost: 4
log:
  level: error
`), 0o600))
	return &workspace{t: t, dir: dir, config: cfg}
}

// run executes one storefront invocation and returns its combined output.
func (w *workspace) run(args ...string) (string, error) {
	w.t.Helper()
	root, a := newRootCmd()
	defer a.close()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", w.config}, args...))
	err := root.Execute()
	return out.String(), err
}

func (w *workspace) mustRun(args ...string) string {
	w.t.Helper()
	out, err := w.run(args...)
	require.NoError(w.t, err, out)
	return out
}

func TestShoppingSession(t *testing.T) {
	w := newWorkspace(t)

	catalog := filepath.Join(w.dir, "catalog.xlsx")
	f, err := os.Create(catalog)
	require.NoError(t, err)
	require.NoError(t, spreadsheet.WriteProducts(f, []models.Product{
		{ID: "p-shirt", Name: "Shirt", Price: 100, Category: "apparel"},
		{ID: "p-socks", Name: "Socks", Price: 50, Category: "apparel"},
	}))
	require.NoError(t, f.Close())

	assert.Contains(t, w.mustRun("catalog", "import", catalog), "2 created, 0 updated, 0 skipped")
	assert.Contains(t, w.mustRun("products", "--sort", "price", "--order", "asc"), "Socks")
	assert.Contains(t, w.mustRun("product", "p-shirt"), "₹100")

	assert.Contains(t, w.mustRun("whoami"), "Not signed in.")
	_, err = w.run("cart")
	assert.ErrorIs(t, err, errNotSignedIn)

	w.mustRun("signup", "--email", "asha@example.com", "--password", "secret1", "--name", "Asha Rao")
	assert.Contains(t, w.mustRun("signin", "--email", "asha@example.com", "--password", "secret1"), "Signed in as Asha Rao")
	assert.Contains(t, w.mustRun("whoami"), "Asha Rao <asha@example.com>")

	w.mustRun("cart", "add", "p-shirt", "-q", "2")
	out := w.mustRun("cart", "add", "p-socks")
	assert.Contains(t, out, "Total: ₹250")

	out = w.mustRun("cart", "set", "p-socks", "3")
	assert.Contains(t, out, "Total: ₹350")
	out = w.mustRun("cart", "remove", "p-socks")
	assert.Contains(t, out, "Total: ₹200")
	w.mustRun("cart", "add", "p-socks")

	assert.Contains(t, w.mustRun("checkout"), "2 items, total ₹250")
	assert.Contains(t, w.mustRun("cart"), "Your cart is empty.")
	assert.Contains(t, w.mustRun("orders"), "2 × Shirt")

	export := filepath.Join(w.dir, "orders.xlsx")
	assert.Contains(t, w.mustRun("orders", "export", export), "Exported 1 orders")
	info, err := os.Stat(export)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	assert.Contains(t, w.mustRun("profile", "--name", "Asha R."), "Asha R.")

	assert.Contains(t, w.mustRun("signout"), "Signed out.")
	assert.Contains(t, w.mustRun("whoami"), "Not signed in.")
}

func TestCheckoutOfEmptyCartFails(t *testing.T) {
	w := newWorkspace(t)
	w.mustRun("signup", "--email", "asha@example.com", "--password", "secret1", "--name", "Asha")
	w.mustRun("signin", "--email", "asha@example.com", "--password", "secret1")

	out, err := w.run("checkout")
	require.Error(t, err)
	assert.Contains(t, out, "cart is empty")
}

func TestMigrate(t *testing.T) {
	w := newWorkspace(t)
	assert.Contains(t, w.mustRun("migrate"), "up to date")
}
