package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/AnujNegi10/kfc-v3-new/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestSeedThenSearch(t *testing.T) {
	t.Setenv("KIOSK_STORE_DRIVER", "badger")
	t.Setenv("KIOSK_STORE_PATH", filepath.Join(t.TempDir(), "catalog"))

	out := run(t, "seed", "--file", filepath.Join("..", "..", "data", "menu.yaml"))
	assert.Equal(t, "seeded 15 products\n", out)

	tests := []struct {
		query []string
		want  []string
	}{
		{[]string{"7 up"}, []string{"7UP 500ml"}},
		{[]string{"zinger"}, []string{"Veg Zinger Burger", "Mighty Zinger Burger", "Classic Zinger Burger"}},
		{[]string{"pizza"}, []string{}},
	}

	for _, tt := range tests {
		var products []domain.Product
		require.NoError(t, json.Unmarshal([]byte(run(t, append([]string{"search"}, tt.query...)...)), &products))

		names := make([]string, len(products))
		for i, p := range products {
			names[i] = p.Name
		}
		assert.Equal(t, tt.want, names, "query %v", tt.query)
	}
}

func TestSeedMissingFile(t *testing.T) {
	t.Setenv("KIOSK_STORE_DRIVER", "badger")
	t.Setenv("KIOSK_STORE_IN_MEMORY", "true")

	rootCmd.SetArgs([]string{"seed", "--file", filepath.Join(t.TempDir(), "absent.yaml")})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.Execute())
}
