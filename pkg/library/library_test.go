package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture lays out a small library tree:
//
//	root/
//	  AdvancedHunting/persistence.kql
//	  ResourceGraph/vms.arg
//	  Identity/signins.kql
//	  Network/Scoped/nsg_hits.kql
//	  Network/firewall.kql
//	  Network/notes.txt
func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	write("AdvancedHunting/persistence.kql", "DeviceEvents | take 5")
	write("ResourceGraph/vms.arg", "resources | where type =~ 'microsoft.compute/virtualmachines'")
	write("Identity/signins.kql", "SigninLogs | where UserPrincipalName == '{{UserPrincipalName}}'")
	write("Network/Scoped/nsg_hits.kql", "AzureNetworkAnalytics_CL | where ResourceId == '{{ResourceId}}'")
	write("Network/firewall.kql", "AzureDiagnostics | where Category == 'AzureFirewallNetworkRule'")
	write("Network/notes.txt", "not a query")
	return root
}

func TestCategoriesExcludesReserved(t *testing.T) {
	root := fixture(t)

	cats, err := Categories(root)
	require.NoError(t, err)

	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Identity", "Network"}, names)
}

func TestCategoriesMissingRoot(t *testing.T) {
	_, err := Categories(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestTemplates(t *testing.T) {
	root := fixture(t)

	templates, err := Templates(filepath.Join(root, "Network"), ExtWorkspace)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "firewall", templates[0].Name)
	assert.Equal(t, "Network", templates[0].Category)

	text, err := templates[0].Text()
	require.NoError(t, err)
	assert.Contains(t, text, "AzureFirewallNetworkRule")
}

func TestTemplatesMissingDir(t *testing.T) {
	_, err := Templates(filepath.Join(t.TempDir(), "absent"), ExtWorkspace)

	var missing *MissingFolderError
	assert.ErrorAs(t, err, &missing)
}

func TestScopedDir(t *testing.T) {
	root := fixture(t)

	dir, err := ScopedDir(filepath.Join(root, "Network"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Network", FolderScoped), dir)

	_, err = ScopedDir(filepath.Join(root, "Identity"))
	var missing *MissingFolderError
	assert.ErrorAs(t, err, &missing)
}

func TestBackendDir(t *testing.T) {
	root := fixture(t)

	dir, err := BackendDir(root, FolderHunting)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FolderHunting), dir)

	_, err = BackendDir(t.TempDir(), FolderInventory)
	var missing *MissingFolderError
	assert.ErrorAs(t, err, &missing)
}

func TestSearchByContent(t *testing.T) {
	root := fixture(t)

	matches, err := Search(root, "SigninLogs", []string{ExtWorkspace}, FolderHunting, FolderInventory)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "signins", matches[0].Name)
}

func TestSearchByFileName(t *testing.T) {
	root := fixture(t)

	matches, err := Search(root, "firewall", []string{ExtWorkspace}, FolderHunting, FolderInventory)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "firewall", matches[0].Name)
}

func TestSearchCaseSensitive(t *testing.T) {
	root := fixture(t)

	matches, err := Search(root, "signinlogs", []string{ExtWorkspace}, FolderHunting, FolderInventory)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchKeywordIsLiteral(t *testing.T) {
	root := fixture(t)

	// Regex metacharacters in the keyword match literally, not as a pattern.
	matches, err := Search(root, "== '{{UserPrincipalName}}'", []string{ExtWorkspace}, FolderHunting, FolderInventory)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "signins", matches[0].Name)
}

func TestSearchSkipsReservedFolders(t *testing.T) {
	root := fixture(t)

	matches, err := Search(root, "DeviceEvents", []string{ExtWorkspace}, FolderHunting, FolderInventory)
	require.NoError(t, err)
	assert.Empty(t, matches)

	// Without the skip list the hunting folder is searchable.
	matches, err = Search(root, "DeviceEvents", []string{ExtWorkspace})
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestInlineTemplate(t *testing.T) {
	tpl := Inline("adhoc", "Heartbeat | take 1")
	text, err := tpl.Text()
	require.NoError(t, err)
	assert.Equal(t, "Heartbeat | take 1", text)
}
