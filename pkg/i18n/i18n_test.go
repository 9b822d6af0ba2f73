package i18n_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/filterschema/pkg/i18n"
)

func TestBundle_Translate(t *testing.T) {
	b, err := i18n.New()
	gt.NoError(t, err).Required()

	gt.Value(t, b.Translate("case-type")).Equal("Case Type")
	gt.Value(t, b.Translate("no-such-key")).Equal("no-such-key")
	gt.N(t, b.Len()).Greater(10)
}

func TestBundle_Sub(t *testing.T) {
	b, err := i18n.New()
	gt.NoError(t, err).Required()

	gt.Value(t, b.Sub("x-create-date", "min")).Equal("Min Create Date")
	gt.Value(t, b.Sub("task-x", "name")).Equal("Task Name")
	gt.Value(t, b.Sub("task-x", "unknown")).Equal("Task unknown")
	gt.Value(t, b.Sub("case-type")).Equal("Case Type")
}

func TestNew_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ja_JP.toml")
	gt.NoError(t, os.WriteFile(path, []byte(`
"case-type" = "ケース種別"
"x-create-date" = "作成日 ({0})"
`), 0644)).Required()

	b, err := i18n.New(i18n.WithFile(path), i18n.WithMessages(map[string]string{"min": "最小"}))
	gt.NoError(t, err).Required()

	gt.Value(t, b.Translate("case-type")).Equal("ケース種別")
	gt.Value(t, b.Translate("priority")).Equal("Priority")
	gt.Value(t, b.Sub("x-create-date", "min")).Equal("作成日 (最小)")
}

func TestNew_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := i18n.New(i18n.WithFile(filepath.Join(t.TempDir(), "none.toml")))
		gt.Error(t, err)
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		gt.NoError(t, os.WriteFile(path, []byte("= broken"), 0644)).Required()

		_, err := i18n.New(i18n.WithFile(path))
		gt.Error(t, err)
	})
}
