package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Flyrell/shopsum/internal/secret"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPrompt returns a PromptFunc that feeds pre-determined responses.
func mockPrompt(responses ...string) PromptFunc {
	i := 0
	return func(_ string) (string, error) {
		if i >= len(responses) {
			return "", errors.New("no more mock responses")
		}
		resp := responses[i]
		i++
		return resp, nil
	}
}

// mockConfirm returns a ConfirmFunc that returns a pre-determined answer.
func mockConfirm(answer bool) ConfirmFunc {
	return func(_ string) (bool, error) {
		return answer, nil
	}
}

func execSecretSet(env environment, prompt PromptFunc, args ...string) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := secretSetCmd
	cmd.SetOut(stdout)
	value, hasValue := "", false
	if len(args) > 1 {
		value, hasValue = args[1], true
	}
	err := runSecretSet(cmd, env, PromptKit{Secret: prompt}, args[0], value, hasValue)
	return stdout.String(), err
}

func TestSecretSet_WithValue(t *testing.T) {
	env, homeDir, _ := testEnvironment(t, nil)

	stdout, err := execSecretSet(env, mockPrompt(), "SHOPIFY_STORE_URL", "shop.myshopify.com")
	require.NoError(t, err)
	assert.Contains(t, stdout, "secret 'SHOPIFY_STORE_URL' saved")

	v, err := secret.NewFileStore(homeDir).Get("SHOPIFY_STORE_URL")
	require.NoError(t, err)
	assert.Equal(t, "shop.myshopify.com", v)
}

func TestSecretSet_PromptsWhenValueOmitted(t *testing.T) {
	env, homeDir, _ := testEnvironment(t, nil)

	_, err := execSecretSet(env, mockPrompt("  shpat_123  "), "shopify_ogthread_access_token")
	require.NoError(t, err)

	v, err := secret.NewFileStore(homeDir).Get("SHOPIFY_OGTHREAD_ACCESS_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "shpat_123", v)

	info, err := os.Stat(secret.DefaultPath(homeDir))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSecretSet_EmptyValue(t *testing.T) {
	env, _, _ := testEnvironment(t, nil)

	_, err := execSecretSet(env, mockPrompt(""), "SHOPIFY_ACCESS_TOKEN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestSecretSet_InvalidName(t *testing.T) {
	env, _, _ := testEnvironment(t, nil)

	_, err := execSecretSet(env, mockPrompt(), "---", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid secret name")
}

func TestSecretSet_WarnsWhenShadowed(t *testing.T) {
	env, _, _ := testEnvironment(t, map[string]string{"SHOPIFY_ACCESS_TOKEN": "from-env"})

	stdout, err := execSecretSet(env, mockPrompt(), "SHOPIFY_ACCESS_TOKEN", "stored")
	require.NoError(t, err)
	assert.Contains(t, stdout, "also set in the environment")
}

func execSecretList(env environment) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := secretListCmd
	cmd.SetOut(stdout)
	err := runSecretList(cmd, env)
	return stdout.String(), err
}

func TestSecretList_Empty(t *testing.T) {
	env, _, _ := testEnvironment(t, map[string]string{"HOME": "/home/x"})

	stdout, err := execSecretList(env)
	require.NoError(t, err)
	assert.Contains(t, stdout, "no secrets found")
}

func TestSecretList_AllSources(t *testing.T) {
	env, homeDir, workDir := testEnvironment(t, map[string]string{
		"SHOPIFY_STORE_URL": "env.myshopify.com",
		"PATH":              "/usr/bin",
	})
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".env"),
		[]byte("SHOPIFY_STORE_URL=dotenv.myshopify.com\nSHOPIFY_ACCESS_TOKEN=shpat_dotenv\n"), 0600))
	require.NoError(t, secret.NewFileStore(homeDir).Set("SHOPIFY_OGTHREAD_URL", "og.myshopify.com"))

	stdout, err := execSecretList(env)
	require.NoError(t, err)

	assert.Contains(t, stdout, "SHOPIFY_STORE_URL")
	assert.Contains(t, stdout, "environment (shadows .env)")
	assert.Contains(t, stdout, "SHOPIFY_ACCESS_TOKEN")
	assert.Contains(t, stdout, "SHOPIFY_OGTHREAD_URL")
	assert.Contains(t, stdout, "secrets.json")
	assert.NotContains(t, stdout, "PATH")
	assert.NotContains(t, stdout, "shpat_dotenv")
	assert.NotContains(t, stdout, "myshopify.com")
}

func execSecretRemove(env environment, confirm ConfirmFunc, name string) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := secretRemoveCmd
	cmd.SetOut(stdout)
	err := runSecretRemove(cmd, env, confirm, name)
	return stdout.String(), err
}

func TestSecretRemove(t *testing.T) {
	env, homeDir, _ := testEnvironment(t, nil)
	files := secret.NewFileStore(homeDir)
	require.NoError(t, files.Set("SHOPIFY_ACCESS_TOKEN", "shpat_123"))

	stdout, err := execSecretRemove(env, AlwaysYes(), "SHOPIFY_ACCESS_TOKEN")
	require.NoError(t, err)
	assert.Contains(t, stdout, "removed")

	_, err = files.Get("SHOPIFY_ACCESS_TOKEN")
	assert.ErrorIs(t, err, secret.ErrNotFound)
}

func TestSecretRemove_Declined(t *testing.T) {
	env, homeDir, _ := testEnvironment(t, nil)
	files := secret.NewFileStore(homeDir)
	require.NoError(t, files.Set("SHOPIFY_ACCESS_TOKEN", "shpat_123"))

	stdout, err := execSecretRemove(env, mockConfirm(false), "SHOPIFY_ACCESS_TOKEN")
	require.NoError(t, err)
	assert.Contains(t, stdout, "cancelled")

	v, err := files.Get("SHOPIFY_ACCESS_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "shpat_123", v)
}

func TestSecretRemove_Unknown(t *testing.T) {
	env, _, _ := testEnvironment(t, nil)

	_, err := execSecretRemove(env, AlwaysYes(), "SHOPIFY_ACCESS_TOKEN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not stored")
}

func TestSecretSubcommandsRegistered(t *testing.T) {
	names := make([]string, 0)
	for _, c := range secretCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"set", "list", "remove"}, names)
}
