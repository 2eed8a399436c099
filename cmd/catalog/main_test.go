package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/catalog-api/internal/pkg/config"
	"github.com/99minutos/catalog-api/internal/pkg/security"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestHashPassword_Arg(t *testing.T) {
	out, err := runCmd(t, "", "hash-password", "--cost", "4", "AdminPass123")
	require.NoError(t, err)
	assert.True(t, security.VerifyPassword("AdminPass123", out))

	cost, err := bcrypt.Cost([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, 4, cost)
}

func TestHashPassword_Stdin(t *testing.T) {
	out, err := runCmd(t, "Passw0rd1\n", "hash-password", "--cost", "4")
	require.NoError(t, err)
	assert.True(t, security.VerifyPassword("Passw0rd1", out))
}

func TestHashPassword_OutputSeedsAdmin(t *testing.T) {
	out, err := runCmd(t, "", "hash-password", "--cost", "4", "Seeded123")
	require.NoError(t, err)

	cfg, err := config.LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":          "s3cret",
		"ADMIN_PASSWORD_HASH": out,
	}))
	require.NoError(t, err)
	assert.True(t, security.VerifyPassword("Seeded123", cfg.Seed.AdminPasswordHash))
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := runCmd(t, "\n", "hash-password")
	assert.Error(t, err)
}
