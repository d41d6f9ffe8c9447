package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/DefiantLabs/course-platform/catalog"
	"github.com/DefiantLabs/course-platform/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindFlagsPrefersCommandLine(t *testing.T) {
	var conf config.IndexConfig
	cmd := &cobra.Command{Use: "test"}
	config.SetupDatabaseFlags(&conf.Database, cmd)
	config.SetupIndexSpecificFlags(&conf, cmd)

	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
[database]
host = "db.internal"
port = "6543"

[base]
batch-size = 250
exit-when-caught-up = true
`)))

	require.NoError(t, cmd.PersistentFlags().Set("database.port", "5433"))
	bindFlags(cmd, v)

	assert.Equal(t, "db.internal", conf.Database.Host)
	assert.Equal(t, "5433", conf.Database.Port)
	assert.Equal(t, uint64(250), conf.Base.BatchSize)
	assert.True(t, conf.Base.ExitWhenCaughtUp)
	assert.Equal(t, int64(-1), conf.Base.StartBlock)
}

func TestDefaultConfigRoundTripsThroughFlags(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, config.WriteConfig(&b, config.DefaultFileConfig()))

	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(&b))

	var conf config.ServeConfig
	cmd := &cobra.Command{Use: "test"}
	config.SetupDatabaseFlags(&conf.Database, cmd)
	config.SetupRedisFlags(&conf.Redis, cmd)
	config.SetupServeSpecificFlags(&conf, cmd)
	bindFlags(cmd, v)

	assert.Equal(t, "localhost", conf.Database.Host)
	assert.Equal(t, 4000, conf.Server.Port)
	assert.NoError(t, conf.Validate())
}

func TestRenderCatalog(t *testing.T) {
	entries := []catalog.Entry{{ID: "1", UUID: "u", Title: "t", PriceInYd: "5", PurchaseCount: "0"}}

	jsonOut, err := renderCatalog(entries, config.CatalogFormatJSON)
	require.NoError(t, err)
	var decoded []catalog.Entry
	require.NoError(t, json.Unmarshal(jsonOut.Bytes(), &decoded))
	assert.Equal(t, entries[0].PriceInYd, decoded[0].PriceInYd)

	csvOut, err := renderCatalog(entries, config.CatalogFormatCSV)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(csvOut.String(), "id,uuid,title"))
}
