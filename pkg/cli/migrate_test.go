package cli_test

import (
	"testing"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/filterschema/pkg/cli"
)

func TestIndexConfig(t *testing.T) {
	testCases := []struct {
		name       string
		prefix     string
		collection string
	}{
		{name: "no prefix", prefix: "", collection: "view_states"},
		{name: "with prefix", prefix: "staging", collection: "staging_view_states"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := cli.IndexConfig(tc.prefix)
			gt.NoError(t, cfg.Validate())
			gt.Array(t, cfg.Collections).Length(1).Required()
			gt.Value(t, cfg.Collections[0].Name).Equal(tc.collection)
			gt.Array(t, cfg.Collections[0].Indexes).Length(1).Required()
			gt.Value(t, cfg.Collections[0].Indexes[0].Fields).Equal([]fireconf.IndexField{
				{Path: "session_id", Order: fireconf.OrderAscending},
				{Path: "updated_at", Order: fireconf.OrderDescending},
			})
		})
	}
}
